package eval_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/environ"
	"github.com/luthersystems/lcalc/eval"
	"github.com/luthersystems/lcalc/lcalctest"
	"github.com/luthersystems/lcalc/lisp"
	"github.com/luthersystems/lcalc/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := lcalctest.TestSuite{
		{"integers", lcalctest.TestSequence{
			{"0", "0"},
			{"42", "42"},
		}},
		{"primitives", lcalctest.TestSequence{
			{"inc", "#<primitive inc>"},
			{"(inc 0)", "1"},
			{"(inc (inc (inc 0)))", "3"},
			{"(dec (inc 0))", "0"},
			{"(dec 0)", "-1"},
		}},
		{"lambda basics", lcalctest.TestSequence{
			{"(lambda (a) a)", "#<closure (lambda (a) a)>"},
			{"((lambda (a) a) 1)", "1"},
			{"((lambda (a) (inc a)) 0)", "1"},
			{"((lambda (a) a) inc)", "#<primitive inc>"},
		}},
		{"closures", lcalctest.TestSequence{
			{"(((lambda (a) (lambda (b) (b a))) 5) inc)", "6"},
			{"((((lambda (a) (lambda (b) (lambda (c) ((c a) b)))) 1) 2) (lambda (x) (lambda (y) x)))", "1"},
			{"((((lambda (a) (lambda (b) (lambda (c) ((c a) b)))) 1) 2) (lambda (x) (lambda (y) y)))", "2"},
			{"((((lambda (a) (lambda (b) (lambda (c) (c (b a))))) 3) inc) dec)", "3"},
		}},
		{"shadowing", lcalctest.TestSequence{
			{"(((lambda (x) (lambda (x) x)) 1) 2)", "2"},
			{"(((lambda (x) (lambda (y) x)) 1) 2)", "1"},
			{"((((lambda (x) (lambda (x) (lambda (y) x))) 1) 2) 3)", "2"},
		}},
		{"define", lcalctest.TestSequence{
			{"(define id (lambda (a) a))", "0"},
			{"(id 1)", "1"},
			{"(define id (lambda (a) (inc a)))", "0"},
			{"(id 1)", "2"},
		}},
		{"define values", lcalctest.TestSequence{
			{"(define zero 0)", "0"},
			{"(define one (inc zero))", "0"},
			{"zero", "0"},
			{"one", "1"},
		}},
		{"independent captures", lcalctest.TestSequence{
			{"(define k (lambda (x) (lambda (y) x)))", "0"},
			{"(define kone (k 1))", "0"},
			{"(define ktwo (k 2))", "0"},
			{"(kone 0)", "1"},
			{"(ktwo 0)", "2"},
			{"(kone 0)", "1"},
		}},
		{"deferred globals", lcalctest.TestSequence{
			{"(define f (lambda (x) (g x)))", "0"},
			{"(f 1)", "input:1:24: unbound name: g"},
			{"(define g inc)", "0"},
			{"(f 1)", "2"},
			{"(define g dec)", "0"},
			{"(f 1)", "0"},
		}},
		{"runtime errors", lcalctest.TestSequence{
			{"a", "input:1:1: unbound name: a"},
			{"(1 0)", "input:1:1: not a function: 1"},
			{"((inc 0) 0)", "input:1:1: not a function: 1"},
			{"(inc inc)", "inc: expected int: #<primitive inc>"},
			{"(dec (lambda (a) a))", "dec: expected int: #<closure (lambda (a) a)>"},
		}},
		{"failed define binds nothing", lcalctest.TestSequence{
			{"(define bad (inc inc))", "inc: expected int: #<primitive inc>"},
			{"bad", "input:1:1: unbound name: bad"},
			{"(define inc (inc inc))", "inc: expected int: #<primitive inc>"},
			{"(inc 1)", "2"},
		}},
		{"parse errors", lcalctest.TestSequence{
			{")", "input:1:1: open brace expected"},
			{"(lambda (1) a)", "input:1:10: arg is not a symbol"},
			{"(inc 0", "input:1:7: token expected: ) (unexpected end of input)"},
			{"(lambda (a) (define b a))", "input:1:14: define is only allowed in global scope"},
			{"(inc 0) 1", `input:1:9: unexpected trailing token: int "1"`},
			{"(inc #)", "input:1:6: illegal character '#'"},
			{"", "input:1:1: unexpected end of input"},
		}},
	}
	lcalctest.RunTestSuite(t, tests)
}

func TestChurchNumerals(t *testing.T) {
	r := &lcalctest.Runner{}
	ev := r.NewEvaluator(t)
	_, err := ev.LoadString("prelude", lcalctest.ChurchPrelude)
	require.NoError(t, err)

	for k := 0; k < 10; k++ {
		expr := fmt.Sprintf("((%s inc) 0)", lcalctest.Church(k))
		assert.Equal(t, fmt.Sprint(k), lcalctest.Result(ev, expr), "k=%d", k)
	}
	assert.Equal(t, "1", lcalctest.Result(ev, "(((succ zero) inc) 0)"))

	_, err = ev.LoadString("numbers", `
		(define two (succ (succ zero)))
		(define three (succ two))
	`)
	require.NoError(t, err)
	assert.Equal(t, "8", lcalctest.Result(ev, "(((three two) inc) 0)"))
	assert.Equal(t, "9", lcalctest.Result(ev, "(((two three) inc) 0)"))
}

func TestErrorTypes(t *testing.T) {
	ev, err := eval.New()
	require.NoError(t, err)

	_, err = ev.EvalLine("nope")
	var unbound *lisp.UnboundNameError
	if assert.True(t, errors.As(err, &unbound)) {
		assert.Equal(t, "nope", unbound.Name)
	}

	_, err = ev.EvalLine("(0 0)")
	var naf *lisp.NotAFunctionError
	if assert.True(t, errors.As(err, &naf)) {
		assert.Equal(t, lisp.Int(0), naf.Value)
	}

	_, err = ev.EvalLine("(inc dec)")
	var typeErr *lisp.TypeError
	assert.True(t, errors.As(err, &typeErr))

	_, err = ev.EvalLine("(lambda a a)")
	var parseErr *lisp.ParseError
	if assert.True(t, errors.As(err, &parseErr)) {
		assert.Equal(t, lisp.CondParse, lisp.Condition(err))
	}
}

func TestIdentityLaw(t *testing.T) {
	ev, err := eval.New()
	require.NoError(t, err)
	id, err := ev.EvalLine("(lambda (a) a)")
	require.NoError(t, err)
	inc, ok := ev.Env.Get("inc")
	require.True(t, ok)
	for _, x := range []lisp.Atom{lisp.Int(0), lisp.Int(7), inc, id} {
		v, err := id.Apply(x)
		if assert.NoError(t, err) {
			assert.True(t, lisp.Equal(x, v), "input: %v", x)
		}
	}
}

func TestLoad(t *testing.T) {
	for _, name := range []string{parser.ReaderRD, parser.ReaderParsec} {
		ev, err := eval.New(eval.WithReaderName(name))
		require.NoError(t, err, "reader %s", name)
		v, err := ev.LoadString("church.lc", lcalctest.ChurchPrelude+`
			(define four (succ (succ (succ (succ zero)))))
			((four inc) 0)
		`)
		if assert.NoError(t, err, "reader %s", name) {
			assert.Equal(t, lisp.Int(4), v, "reader %s", name)
		}
		assert.Equal(t, []string{"inc", "dec", "zero", "succ", "four"}, ev.Env.Names(), "reader %s", name)

		_, err = ev.LoadString("bad.lc", "(define five (succ four)) (1 five)")
		assert.Error(t, err, "reader %s", name)
		_, ok := ev.Env.Get("five")
		assert.True(t, ok, "reader %s", name)
	}
	_, err := eval.New(eval.WithReaderName("yacc"))
	assert.Error(t, err)
}

func TestSharedEnviron(t *testing.T) {
	env := environ.NewGlobal()
	ev1, err := eval.New(eval.WithEnviron(env))
	require.NoError(t, err)
	ev2, err := eval.New(eval.WithEnviron(env))
	require.NoError(t, err)
	_, err = ev1.EvalLine("(define two (inc (inc 0)))")
	require.NoError(t, err)
	assert.Equal(t, "2", lcalctest.Result(ev2, "two"))

	_, err = eval.New(eval.WithEnviron(nil))
	assert.Error(t, err)
}

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	ev, err := eval.New(eval.WithTrace(&buf))
	require.NoError(t, err)
	_, err = ev.EvalLine("(define one ((lambda (a) (inc a)) 0))")
	require.NoError(t, err)
	assert.Equal(t, "apply (lambda (a) (inc a)) to 0\ndefine one = 1\n", buf.String())

	buf.Reset()
	_, err = ev.EvalLine("(((lambda (a) (lambda (b) a)) 1) 2)")
	require.NoError(t, err)
	assert.Equal(t, "apply (lambda (a) (lambda (b) a)) to 1\napply (lambda (b) a) to 2\n", buf.String())
}

func TestNonStrictLine(t *testing.T) {
	ev, err := eval.New()
	require.NoError(t, err)
	v, err := ev.EvalLine("(inc 0) trailing ) text")
	if assert.NoError(t, err) {
		assert.Equal(t, lisp.Int(1), v)
	}
}

func TestLoadFunc(t *testing.T) {
	ev, err := eval.New()
	require.NoError(t, err)
	var printed []string
	err = ev.LoadFunc("test", strings.NewReader("(define one (inc 0)) (inc one) (dec one)"), func(node ast.Node, v lisp.Atom) error {
		printed = append(printed, node.String()+" => "+v.String())
		if len(printed) == 2 {
			return errStop
		}
		return nil
	})
	assert.Equal(t, errStop, err)
	assert.Equal(t, []string{"(define one (inc 0)) => 0", "(inc one) => 2"}, printed)

	// nothing is evaluated when the source cannot be read
	_, err = ev.LoadString("test", "(define two (inc one)) (inc")
	assert.Error(t, err)
	_, ok := ev.Env.Get("two")
	assert.False(t, ok)
}

var errStop = errors.New("stop")

func TestStackTrace(t *testing.T) {
	ev, err := eval.New(eval.WithMaxStackHeight(3))
	require.NoError(t, err)

	_, err = ev.EvalLine("((lambda (a) (inc b)) 0)")
	if assert.Error(t, err) {
		assert.Equal(t, "input:1:19: unbound name: b", err.Error())
		assert.Equal(t, lisp.CondUnboundName, lisp.Condition(err))
		stack, ok := lisp.StackTrace(err)
		if assert.True(t, ok) {
			require.Equal(t, 1, stack.Height())
			assert.Equal(t, "(lambda (a) (inc b)) applied to 0", stack.Top().String())
		}
	}
	assert.Equal(t, 0, ev.Stack.Height())

	_, err = ev.EvalLine("(define w (lambda (x) (x x)))")
	require.NoError(t, err)
	_, err = ev.EvalLine("(w w)")
	if assert.Error(t, err) {
		assert.Equal(t, "stack overflow: maximum height 3 exceeded", err.Error())
		assert.Equal(t, lisp.CondStackOverflow, lisp.Condition(err))
		stack, ok := lisp.StackTrace(err)
		if assert.True(t, ok) {
			assert.Equal(t, 3, stack.Height())
			var buf bytes.Buffer
			_, err := stack.DebugPrint(&buf)
			require.NoError(t, err)
			assert.Equal(t, `Stack Trace [3 frames -- entrypoint last]:
  height 2: (lambda (x) (x x)) applied to #<closure (lambda (x) (x x))>
  height 1: (lambda (x) (x x)) applied to #<closure (lambda (x) (x x))>
  height 0: (lambda (x) (x x)) applied to #<closure (lambda (x) (x x))>
`, buf.String())
		}
	}
	assert.Equal(t, 0, ev.Stack.Height())

	// errors outside of any closure carry no stack
	_, err = ev.EvalLine("(1 0)")
	_, ok := lisp.StackTrace(err)
	assert.False(t, ok)
}

func TestStderr(t *testing.T) {
	var stderr bytes.Buffer
	ev, err := eval.New(eval.WithStderr(&stderr), eval.WithTrace(nil))
	require.NoError(t, err)
	_, err = ev.EvalLine("((lambda (a) (a 0)) 1)")
	require.Error(t, err)
	assert.True(t, ev.PrintStackTrace(err))
	assert.Equal(t, `apply (lambda (a) (a 0)) to 1
Stack Trace [1 frames -- entrypoint last]:
  height 0: (lambda (a) (a 0)) applied to 1
`, stderr.String())

	stderr.Reset()
	_, err = ev.EvalLine("(1 0)")
	require.Error(t, err)
	assert.False(t, ev.PrintStackTrace(err))
	assert.Equal(t, "", stderr.String())

	// without tracing nothing is written for successful forms
	ev, err = eval.New(eval.WithStderr(&stderr))
	require.NoError(t, err)
	_, err = ev.EvalLine("((lambda (a) (inc a)) 1)")
	require.NoError(t, err)
	assert.Equal(t, "", stderr.String())
}

func TestEvalLineReader(t *testing.T) {
	ev, err := eval.New(eval.WithReaderName(parser.ReaderParsec))
	require.NoError(t, err)
	tests := lcalctest.TestSequence{
		{"(inc 0)", "1"},
		{"(define id (lambda (a) a))", "0"},
		{"(id 7) (inc 0)", "7"},
		{"", "input:1:1: unexpected end of input"},
		{"   ", "input:1:1: unexpected end of input"},
	}
	for i, test := range tests {
		assert.Equal(t, test.Result, lcalctest.Result(ev, test.Expr), "test %d: %q", i, test.Expr)
	}

	_, err = ev.EvalLine("(a)")
	var parseErr *lisp.ParseError
	assert.True(t, errors.As(err, &parseErr))

	ev, err = eval.New(eval.WithReaderName(parser.ReaderParsec), eval.WithStrict(true))
	require.NoError(t, err)
	_, err = ev.EvalLine("(inc 0) (dec 0)")
	if assert.Error(t, err) {
		assert.True(t, strings.HasPrefix(err.Error(), "input:1:"), err.Error())
		assert.True(t, strings.HasSuffix(err.Error(), "unexpected trailing form: (dec 0)"), err.Error())
	}
}
