// Package lcalctest runs sequences of expressions through an evaluator and
// compares printed results, for use in package tests.
package lcalctest

import (
	"strings"
	"testing"

	"github.com/luthersystems/lcalc/eval"
)

// TestSequence is a sequence of expressions which are evaluated sequentially
// by a single eval.Evaluator.
type TestSequence []struct {
	Expr   string // an expression
	Result string // the printed result, or the error message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// Runner is a test runner.
type Runner struct {
	// Configs are applied to every evaluator created by the runner.
	Configs []eval.Config
}

// NewEvaluator returns an evaluator with a fresh global environment.
func (r *Runner) NewEvaluator(t testing.TB) *eval.Evaluator {
	t.Helper()
	ev, err := eval.New(append([]eval.Config{eval.WithStrict(true)}, r.Configs...)...)
	if err != nil {
		t.Fatalf("Failed to initialize evaluator: %v", err)
	}
	return ev
}

// RunTestSuite runs each TestSequence in tests on isolated evaluators.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		ev := r.NewEvaluator(t)
		for j, expr := range test.TestSequence {
			result := Result(ev, expr.Expr)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
		}
	}
}

// RunTestSuite runs tests with a default Runner.
func RunTestSuite(t *testing.T, tests TestSuite) {
	(&Runner{}).RunTestSuite(t, tests)
}

// Result evaluates line and returns the printed value, or the error message
// if parsing or evaluation fails.
func Result(ev *eval.Evaluator, line string) string {
	v, err := ev.EvalLine(line)
	if err != nil {
		return err.Error()
	}
	return v.String()
}

// Church returns the source of the church numeral n built from applications
// of succ to zero.
func Church(n int) string {
	return strings.Repeat("(succ ", n) + "zero" + strings.Repeat(")", n)
}

// ChurchPrelude defines zero and succ.
const ChurchPrelude = `
(define zero (lambda (s) (lambda (z) z)))
(define succ (lambda (n) (lambda (s) (lambda (z) (s ((n s) z))))))
`
