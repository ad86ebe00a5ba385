// Command runtimecsg is a headless driver for the CSG core: it reads a
// scene script, evaluates it into a brush chain, runs the boolean chain
// evaluator, and reports the resulting mesh's statistics.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/TrentSterling/runtimecsg/pkg/brush"
	"github.com/TrentSterling/runtimecsg/pkg/csg"
	"github.com/TrentSterling/runtimecsg/pkg/meshing"
	"github.com/TrentSterling/runtimecsg/pkg/scene"
	"github.com/TrentSterling/runtimecsg/pkg/uvmap"
)

func main() {
	scenePath := flag.String("scene", "", "path to a scene script (- for stdin); required")
	texelsPerUnit := flag.Float64("texels-per-unit", 32.0, "UV projection scale")
	verbose := flag.Bool("verbose", false, "log diagnostic counters from the chain evaluator")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: runtimecsg -scene <path>")
		os.Exit(2)
	}

	source, err := readSource(*scenePath)
	if err != nil {
		log.Fatalf("runtimecsg: %v", err)
	}

	brushes, evalErrs, err := evaluateScene(source)
	if err != nil {
		log.Fatalf("runtimecsg: scene evaluation failed: %v", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			log.Printf("runtimecsg: scene error: %s", e.Error())
		}
		os.Exit(1)
	}

	var logger *slog.Logger
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	polys, stats := csg.ProcessWithStats(brushes, logger)
	for i, p := range polys {
		polys[i] = uvmap.Project(p, *texelsPerUnit)
	}
	mesh := meshing.Triangulate(polys)

	fmt.Printf("brushes: %d\n", len(brushes))
	fmt.Printf("output polygons: %d\n", len(polys))
	fmt.Printf("triangles: %d\n", mesh.TriangleCount())
	fmt.Printf("vertices: %d\n", mesh.VertexCount())
	fmt.Printf("32-bit indices: %v\n", mesh.Use32BitIndices)
	if *verbose {
		fmt.Printf("fragments produced: %d, discarded: %d, coplanar-suppressed: %d, degenerate: %d\n",
			stats.FragmentsProduced, stats.FragmentsDiscarded, stats.CoplanarSuppressed, stats.DegenerateRejected)
	}
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func evaluateScene(source string) ([]*brush.Brush, []scene.EvalError, error) {
	e := scene.NewEngine()
	res, evalErrs, err := e.Evaluate(source)
	if err != nil || len(evalErrs) > 0 || res == nil {
		return nil, evalErrs, err
	}
	return res.Brushes, nil, nil
}
