// Package scene provides the host scene scripting collaborator: a
// Lisp-like DSL (via zygomys) for describing a chain of CSG brushes,
// evaluated in a fresh sandbox per call (spec.md section 6's host
// scene/editor integration, listed as out of core scope but specified
// for the CLI in cmd/runtimecsg).
package scene

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/TrentSterling/runtimecsg/pkg/brush"
)

// EvalTimeout bounds how long a single scene script may run before its
// sandbox is abandoned as hung.
const EvalTimeout = 5 * time.Second

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the output of evaluating a scene script: the ordered list of
// brushes it built, in chain order.
type Result struct {
	Brushes []*brush.Brush
}

// Engine wraps the zygomys interpreter for scene evaluation. It is safe
// for concurrent use; each call to Evaluate creates a fresh sandboxed
// environment for determinism. generation is bumped on every call so a
// hung sandbox's late result can be recognized as stale once a newer
// call has already started.
type Engine struct {
	generation atomic.Uint64
}

// NewEngine creates a new Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes scene DSL source and produces a Result, bounding the
// sandbox's run time at EvalTimeout.
//
// Return semantics:
//   - On success: result + nil errors + nil error
//   - On parse/eval failure: nil result + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded call): nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	gen := e.generation.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), EvalTimeout)
	defer cancel()

	return e.run(ctx, gen, func() (*Result, []EvalError, error) {
		return e.evaluate(source)
	})
}

// run executes fn on its own goroutine and waits for it to finish, subject
// to two ways of giving up early: ctx expiring, or a later Evaluate call
// bumping the generation counter past gen before fn returns. fn's own
// goroutine may still be running when run returns in either case; a
// leaked evaluation is not memory-unsafe, only wasted work, since fn only
// closes over local state.
func (e *Engine) run(ctx context.Context, gen uint64, fn func() (*Result, []EvalError, error)) (*Result, []EvalError, error) {
	var (
		result   *Result
		evalErrs []EvalError
		runErr   error
	)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("panic during scene evaluation: %v", r)
			}
		}()
		result, evalErrs, runErr = fn()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("scene evaluation exceeded %s", EvalTimeout)
	}

	// fn may have finished after a later Evaluate call already bumped the
	// generation; that makes this result stale even though it arrived.
	if e.generation.Load() != gen {
		return nil, nil, fmt.Errorf("scene evaluation superseded by a newer request")
	}
	return result, evalErrs, runErr
}

func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	result := &Result{}
	registerBuiltins(env, result)

	if evalErrs := loadAndRun(env, preprocessSource(source)); evalErrs != nil {
		return nil, evalErrs, nil
	}
	return result, nil, nil
}

// loadAndRun compiles and executes source in env, translating any
// zygomys compile or runtime failure into scene-level eval errors.
func loadAndRun(env *zygo.Zlisp, source string) []EvalError {
	if err := env.LoadString(source); err != nil {
		return parseZygomysError(err)
	}
	if _, err := env.Run(); err != nil {
		return parseZygomysError(err)
	}
	return nil
}

// zygomysLinePatterns recognizes the line-number formats zygomys embeds
// in its compile/run error messages, most specific first.
var zygomysLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`),
	regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`),
}

// parseZygomysError extracts a line number and message from a zygomys
// error, falling back to an unlocated error when the message matches
// neither known format.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()
	for _, pattern := range zygomysLinePatterns {
		m := pattern.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
