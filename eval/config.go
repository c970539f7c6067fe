package eval

import (
	"fmt"
	"io"

	"github.com/luthersystems/lcalc/environ"
	"github.com/luthersystems/lcalc/lisp"
	"github.com/luthersystems/lcalc/parser"
)

// Config is a function that configures an Evaluator.
type Config func(ev *Evaluator) error

// WithEnviron returns a Config that makes the evaluator use env as its global
// environment instead of a fresh one.
func WithEnviron(env *environ.Environ) Config {
	return func(ev *Evaluator) error {
		if env == nil {
			return fmt.Errorf("nil environment")
		}
		ev.Env = env
		return nil
	}
}

// WithReader returns a Config that makes the evaluator use r to parse source
// streams given to Load.
func WithReader(r lisp.Reader) Config {
	return func(ev *Evaluator) error {
		ev.Reader = r
		return nil
	}
}

// WithReaderName is like WithReader but selects the reader by name (see
// parser.NewReader).
func WithReaderName(name string) Config {
	return func(ev *Evaluator) error {
		r, err := parser.NewReader(name)
		if err != nil {
			return err
		}
		ev.Reader = r
		return nil
	}
}

// WithStderr returns a Config that makes the evaluator write diagnostic output
// to w instead of the default, os.Stderr.  Diagnostic output includes stack
// traces and trace lines when no trace writer is given.
func WithStderr(w io.Writer) Config {
	return func(ev *Evaluator) error {
		ev.Stderr = w
		return nil
	}
}

// WithTrace returns a Config that makes the evaluator write a line to w for
// every closure application and global definition.  If w is nil trace lines
// are written to the evaluator's Stderr.
func WithTrace(w io.Writer) Config {
	return func(ev *Evaluator) error {
		ev.tracing = true
		ev.trace = w
		return nil
	}
}

// WithStrict returns a Config that makes EvalLine reject text following the
// first form of a line.
func WithStrict(strict bool) Config {
	return func(ev *Evaluator) error {
		ev.Strict = strict
		return nil
	}
}

// WithMaxStackHeight returns a Config that limits the number of closure
// applications in progress to n.  Applications beyond the limit fail with a
// *lisp.StackOverflowError.  A non-positive n means no limit, the default.
func WithMaxStackHeight(n int) Config {
	return func(ev *Evaluator) error {
		ev.Stack.MaxHeight = n
		return nil
	}
}
