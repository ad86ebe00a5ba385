// Package meshing fan-triangulates the convex polygons the CSG core
// emits into a flat-array triangle mesh (spec.md section 6's meshing
// collaborator contract).
package meshing

import "github.com/TrentSterling/runtimecsg/pkg/polygon"

// maxUint16Index is the largest vertex count still addressable by a
// 16-bit index buffer.
const maxUint16Index = 1 << 16

// Mesh is a triangle mesh with flat, interleaved-by-attribute arrays:
// three floats per vertex in Vertices/Normals, two per vertex in UVs,
// and either three uint16s or three uint32s per triangle depending on
// Use32BitIndices.
type Mesh struct {
	Vertices        []float32
	Normals         []float32
	UVs             []float32
	Indices16       []uint16
	Indices32       []uint32
	Use32BitIndices bool
	MaterialTags    []int // one per triangle
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m.Use32BitIndices {
		return len(m.Indices32) / 3
	}
	return len(m.Indices16) / 3
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// Triangulate fan-triangulates every polygon in polys as (v0, vi, vi+1)
// and packs the result into a single Mesh, choosing 32-bit indices once
// the vertex count would overflow a 16-bit buffer.
func Triangulate(polys []*polygon.Polygon) *Mesh {
	totalVerts := 0
	totalTris := 0
	for _, p := range polys {
		totalVerts += len(p.Vertices)
		if len(p.Vertices) >= 3 {
			totalTris += len(p.Vertices) - 2
		}
	}

	m := &Mesh{
		Vertices:     make([]float32, 0, totalVerts*3),
		Normals:      make([]float32, 0, totalVerts*3),
		UVs:          make([]float32, 0, totalVerts*2),
		MaterialTags: make([]int, 0, totalTris),
	}
	m.Use32BitIndices = totalVerts > maxUint16Index

	base := 0
	for _, p := range polys {
		n := len(p.Vertices)
		if n < 3 {
			continue
		}
		for _, v := range p.Vertices {
			m.Vertices = append(m.Vertices, v.Position.X, v.Position.Y, v.Position.Z)
			m.Normals = append(m.Normals, v.Normal.X, v.Normal.Y, v.Normal.Z)
			m.UVs = append(m.UVs, v.UV.U, v.UV.V)
		}
		for i := 1; i < n-1; i++ {
			m.appendTriangle(base, base+i, base+i+1)
			m.MaterialTags = append(m.MaterialTags, p.Material)
		}
		base += n
	}
	return m
}

func (m *Mesh) appendTriangle(a, b, c int) {
	if m.Use32BitIndices {
		m.Indices32 = append(m.Indices32, uint32(a), uint32(b), uint32(c))
	} else {
		m.Indices16 = append(m.Indices16, uint16(a), uint16(b), uint16(c))
	}
}
