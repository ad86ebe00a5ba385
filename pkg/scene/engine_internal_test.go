package scene

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunTimesOut(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	block := make(chan struct{})
	defer close(block) // let the leaked goroutine finish so it doesn't outlive the test

	_, _, err := e.run(ctx, 1, func() (*Result, []EvalError, error) {
		<-block
		return &Result{}, nil, nil
	})
	if err == nil || !strings.Contains(err.Error(), "exceeded") {
		t.Fatalf("run() error = %v, want a timeout error", err)
	}
}

func TestRunDiscardsStaleGeneration(t *testing.T) {
	e := NewEngine()
	e.generation.Store(2) // a newer call has already started

	_, _, err := e.run(context.Background(), 1, func() (*Result, []EvalError, error) {
		return &Result{}, nil, nil
	})
	if err == nil || !strings.Contains(err.Error(), "superseded") {
		t.Fatalf("run() error = %v, want a superseded error", err)
	}
}

func TestRunReturnsResultOnSuccess(t *testing.T) {
	e := NewEngine()
	gen := e.generation.Add(1)
	want := &Result{}

	res, evalErrs, err := e.run(context.Background(), gen, func() (*Result, []EvalError, error) {
		return want, nil, nil
	})
	if err != nil || evalErrs != nil || res != want {
		t.Fatalf("run() = (%v, %v, %v)", res, evalErrs, err)
	}
}

func TestRunRecoversPanic(t *testing.T) {
	e := NewEngine()
	gen := e.generation.Add(1)

	_, _, err := e.run(context.Background(), gen, func() (*Result, []EvalError, error) {
		panic("boom")
	})
	if err == nil || !strings.Contains(err.Error(), "panic") {
		t.Fatalf("run() error = %v, want a panic error", err)
	}
}
