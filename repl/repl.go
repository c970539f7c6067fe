// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/luthersystems/lcalc/config"
	"github.com/luthersystems/lcalc/eval"
)

// Messages written by the repl.
const (
	Banner  = ";; Simple Lambda Calc Interpreter"
	Goodbye = ";; Goodbye!"
	Quit    = "(quit)"
)

// ErrInterrupt is returned by a LineReader when the user abandons the current
// line.
var ErrInterrupt = errors.New("interrupt")

// LineReader supplies lines of input to the repl.  ReadLine returns io.EOF
// when the input is exhausted.
type LineReader interface {
	ReadLine() (string, error)
	AddHistory(line string)
	Close() error
}

// Repl evaluates one line of input at a time against a single evaluator.
type Repl struct {
	Lines  LineReader
	Eval   *eval.Evaluator
	Stdout io.Writer
	Stderr io.Writer
	Timing bool

	// StackTrace makes the repl print the call stack of a failed
	// application to the evaluator's Stderr after the error message.
	StackTrace bool
}

// Config is a function that configures a Repl.
type Config func(r *Repl) error

// WithLineReader makes the repl read input from lines.
func WithLineReader(lines LineReader) Config {
	return func(r *Repl) error {
		r.Lines = lines
		return nil
	}
}

// WithEvaluator makes the repl evaluate input with ev.
func WithEvaluator(ev *eval.Evaluator) Config {
	return func(r *Repl) error {
		r.Eval = ev
		return nil
	}
}

// WithOutput makes the repl print values to stdout and diagnostics to stderr.
func WithOutput(stdout, stderr io.Writer) Config {
	return func(r *Repl) error {
		r.Stdout = stdout
		r.Stderr = stderr
		return nil
	}
}

// WithTiming makes the repl report the time taken to evaluate each line.
func WithTiming(timing bool) Config {
	return func(r *Repl) error {
		r.Timing = timing
		return nil
	}
}

// WithStackTrace makes the repl print call stacks attached to errors.
func WithStackTrace(on bool) Config {
	return func(r *Repl) error {
		r.StackTrace = on
		return nil
	}
}

// New returns a Repl configured by configs.  A line reader must be
// configured.  Without an evaluator the repl uses a fresh one.
func New(configs ...Config) (*Repl, error) {
	r := &Repl{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	for _, fn := range configs {
		err := fn(r)
		if err != nil {
			return nil, err
		}
	}
	if r.Lines == nil {
		return nil, fmt.Errorf("no line reader configured")
	}
	if r.Eval == nil {
		ev, err := eval.New(eval.WithStderr(r.Stderr))
		if err != nil {
			return nil, err
		}
		r.Eval = ev
	}
	return r, nil
}

// Run reads and evaluates lines until the input ends or a line exactly equal
// to (quit) is read.  Run closes r.Lines before it returns.
func (r *Repl) Run() (err error) {
	defer func() {
		cerr := r.Lines.Close()
		if err == nil {
			err = cerr
		}
	}()
	fmt.Fprintln(r.Stdout, Banner)
	for {
		line, err := r.Lines.ReadLine()
		if err == ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.Lines.AddHistory(line)
		if line == Quit {
			break
		}
		r.evalLine(line)
	}
	fmt.Fprintln(r.Stdout, Goodbye)
	return nil
}

func (r *Repl) evalLine(line string) {
	start := time.Now()
	v, err := r.Eval.EvalLine(line)
	if err != nil {
		fmt.Fprintf(r.Stderr, ";; Error: %v\n", err)
		if r.StackTrace {
			r.Eval.PrintStackTrace(err)
		}
	} else {
		fmt.Fprintln(r.Stdout, v)
	}
	if r.Timing {
		fmt.Fprintf(r.Stderr, ";; elapsed %v\n", time.Since(start))
	}
}

// RunRepl runs a session on standard input using the editor, history and
// timing settings in c.  When standard input is not a terminal lines are read
// without an editor.
func RunRepl(c *config.Config, ev *eval.Evaluator) error {
	lines, err := newLineReader(c, os.Stdin)
	if err != nil {
		return err
	}
	r, err := New(
		WithLineReader(lines),
		WithEvaluator(ev),
		WithTiming(c.Timing),
		WithStackTrace(c.Trace),
	)
	if err != nil {
		lines.Close()
		return err
	}
	return r.Run()
}
