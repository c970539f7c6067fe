// Package eval implements a tree-walking evaluator for resolved lambda
// calculus forms.
package eval

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/environ"
	"github.com/luthersystems/lcalc/lisp"
	"github.com/luthersystems/lcalc/parser"
	"github.com/luthersystems/lcalc/parser/rdparser"
	"github.com/luthersystems/lcalc/parser/token"
	"github.com/luthersystems/lcalc/scope"
)

// DefineResult is the value of every define form.
var DefineResult lisp.Atom = lisp.Int(0)

// Evaluator evaluates forms against a global environment.  An Evaluator is
// not safe for concurrent use.
type Evaluator struct {
	Env    *environ.Environ
	Scope  *scope.GlobalScope
	Reader lisp.Reader
	Stderr io.Writer
	Strict bool
	Stack  *lisp.CallStack

	tracing bool
	trace   io.Writer
}

var _ lisp.Applier = (*Evaluator)(nil)

// New returns an Evaluator with a fresh global environment, modified by
// configs in order.
func New(configs ...Config) (*Evaluator, error) {
	ev := &Evaluator{
		Env:    environ.NewGlobal(),
		Scope:  scope.NewGlobal(),
		Reader: rdparser.NewReader(),
		Stderr: os.Stderr,
		Stack:  &lisp.CallStack{},
	}
	for _, config := range configs {
		err := config(ev)
		if err != nil {
			return nil, err
		}
	}
	return ev, nil
}

// frame is the activation of a closure.
type frame struct {
	arg      lisp.Atom
	captures []lisp.Atom
}

// Eval evaluates a top-level form.  If evaluation fails the global
// environment is left unchanged.
func (ev *Evaluator) Eval(node ast.Node) (lisp.Atom, error) {
	return ev.eval(node, nil)
}

// EvalLine parses the first form in line with ev.Reader and evaluates it.
// Readers that cannot stop after one form must accept the entire line.
func (ev *Evaluator) EvalLine(line string) (lisp.Atom, error) {
	node, err := ev.parseLine(line)
	if err != nil {
		return nil, err
	}
	return ev.Eval(node)
}

func (ev *Evaluator) parseLine(line string) (ast.Node, error) {
	if lp, ok := ev.Reader.(lisp.LineParser); ok {
		return lp.ParseLine(parser.LineSource, line, ev.Scope, ev.Strict)
	}
	nodes, err := ev.Reader.Read(parser.LineSource, strings.NewReader(line), ev.Scope)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		loc := &token.Location{File: parser.LineSource, Line: 1, Col: 1}
		return nil, lisp.ParseErrorf(loc, "unexpected end of input")
	}
	if ev.Strict && len(nodes) > 1 {
		return nil, lisp.ParseErrorf(nodes[1].Source(), "unexpected trailing form: %v", nodes[1])
	}
	return nodes[0], nil
}

// Load reads every form in r with ev.Reader and evaluates them in order.  Load
// returns the value of the last form.  Forms preceding a failure keep their
// effects.
func (ev *Evaluator) Load(name string, r io.Reader) (lisp.Atom, error) {
	var v lisp.Atom
	err := ev.LoadFunc(name, r, func(_ ast.Node, x lisp.Atom) error {
		v = x
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// LoadFunc is like Load but calls fn with each form and its value.  If fn
// returns an error no further forms are evaluated.  No form is evaluated
// unless all of r can be read.
func (ev *Evaluator) LoadFunc(name string, r io.Reader, fn func(ast.Node, lisp.Atom) error) error {
	nodes, err := ev.Reader.Read(name, r, ev.Scope)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		v, err := ev.Eval(node)
		if err != nil {
			return err
		}
		err = fn(node, v)
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadString is like Load but reads forms from source.
func (ev *Evaluator) LoadString(name, source string) (lisp.Atom, error) {
	return ev.Load(name, strings.NewReader(source))
}

func (ev *Evaluator) eval(node ast.Node, f *frame) (lisp.Atom, error) {
	switch n := node.(type) {
	case *ast.IntLiteral:
		return lisp.Int(n.Value), nil
	case *ast.Symbol:
		return ev.evalSymbol(n, f)
	case *ast.Call:
		fn, err := ev.eval(n.Lhs, f)
		if err != nil {
			return nil, err
		}
		arg, err := ev.eval(n.Rhs, f)
		if err != nil {
			return nil, err
		}
		if !lisp.IsFunction(fn) {
			return nil, &lisp.NotAFunctionError{Value: fn, Source: n.Loc}
		}
		return fn.Apply(arg)
	case *ast.LambdaDef:
		return ev.makeClosure(n, f)
	case *ast.Define:
		v, err := ev.eval(n.Value, f)
		if err != nil {
			return nil, err
		}
		ev.Env.Put(n.Name, v)
		ev.tracef("define %s = %v", n.Name, v)
		return DefineResult, nil
	default:
		return nil, fmt.Errorf("cannot evaluate node: %T", node)
	}
}

func (ev *Evaluator) evalSymbol(n *ast.Symbol, f *frame) (lisp.Atom, error) {
	switch n.Location.Kind {
	case scope.Global:
		v, ok := ev.Env.Get(n.Name)
		if !ok {
			return nil, &lisp.UnboundNameError{Name: n.Name, Source: n.Loc}
		}
		return v, nil
	case scope.Var:
		if f == nil {
			return nil, fmt.Errorf("%v: parameter %s referenced outside of a lambda", n.Loc, n.Name)
		}
		return f.arg, nil
	case scope.Closure:
		i := n.Location.Index
		if f == nil || i < 0 || i >= len(f.captures) {
			return nil, fmt.Errorf("%v: capture %d of %s is out of range", n.Loc, i, n.Name)
		}
		return f.captures[i], nil
	default:
		return nil, fmt.Errorf("%v: invalid location for %s: %v", n.Loc, n.Name, n.Location)
	}
}

// makeClosure captures the enclosing frame.  The capture list of the new
// closure is the enclosing closure's capture list followed by the enclosing
// parameter, so capture slot i always holds the parameter of the lambda at
// nesting depth i.
func (ev *Evaluator) makeClosure(n *ast.LambdaDef, f *frame) (lisp.Atom, error) {
	size := n.Scope.Captures()
	var captures []lisp.Atom
	switch {
	case f == nil && size == 0:
	case f != nil && len(f.captures)+1 == size:
		captures = make([]lisp.Atom, size)
		copy(captures, f.captures)
		captures[size-1] = f.arg
	default:
		return nil, fmt.Errorf("%v: lambda evaluated outside the scope it was read in", n.Loc)
	}
	return &lisp.Closure{Lambda: n, Captures: captures, Applier: ev}, nil
}

// ApplyClosure implements lisp.Applier.  A runtime error raised while
// evaluating the body carries a copy of the call stack at the point of
// failure.
func (ev *Evaluator) ApplyClosure(c *lisp.Closure, arg lisp.Atom) (lisp.Atom, error) {
	ev.tracef("apply %v to %v", c.Lambda, arg)
	err := ev.Stack.Push(c, arg)
	if err != nil {
		return nil, err
	}
	defer ev.Stack.Pop()
	v, err := ev.eval(c.Lambda.Body, &frame{arg: arg, captures: c.Captures})
	if err != nil {
		if _, ok := lisp.StackTrace(err); !ok {
			err = &lisp.StackError{Err: err, Stack: ev.Stack.Copy()}
		}
		return nil, err
	}
	return v, nil
}

// PrintStackTrace writes the call stack attached to err to ev.Stderr.
// PrintStackTrace returns false if err carries no call stack.
func (ev *Evaluator) PrintStackTrace(err error) bool {
	stack, ok := lisp.StackTrace(err)
	if !ok {
		return false
	}
	stack.DebugPrint(ev.Stderr)
	return true
}

func (ev *Evaluator) tracef(format string, v ...interface{}) {
	if !ev.tracing {
		return
	}
	w := ev.trace
	if w == nil {
		w = ev.Stderr
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", ev.Stack.Height()), fmt.Sprintf(format, v...))
}
