// Package ast defines the resolved syntax tree produced by the readers.  Each
// Symbol carries the scope.Location computed while reading, so evaluation
// never consults the scope chain.
package ast

import (
	"strconv"
	"strings"

	"github.com/luthersystems/lcalc/parser/token"
	"github.com/luthersystems/lcalc/scope"
)

// Node is a resolved syntax tree node.  The concrete node types are Symbol,
// IntLiteral, Call, LambdaDef and Define.
type Node interface {
	// Source returns the location of the first token of the node, which may be
	// nil for nodes that were not read from source.
	Source() *token.Location
	String() string
	node()
}

// Symbol is a variable reference.
type Symbol struct {
	Name     string
	Location scope.Location
	Loc      *token.Location
}

// IntLiteral is a non-negative integer literal.
type IntLiteral struct {
	Value int
	Loc   *token.Location
}

// Call applies Lhs to Rhs.
type Call struct {
	Lhs Node
	Rhs Node
	Loc *token.Location
}

// LambdaDef is a single parameter function definition.  Body was resolved
// against Scope.
type LambdaDef struct {
	Scope *scope.LambdaScope
	Body  Node
	Loc   *token.Location
}

// Define binds Name in the global environment to the value of Value.
type Define struct {
	Name  string
	Value Node
	Loc   *token.Location
}

func (n *Symbol) Source() *token.Location     { return n.Loc }
func (n *IntLiteral) Source() *token.Location { return n.Loc }
func (n *Call) Source() *token.Location       { return n.Loc }
func (n *LambdaDef) Source() *token.Location  { return n.Loc }
func (n *Define) Source() *token.Location     { return n.Loc }

func (*Symbol) node()     {}
func (*IntLiteral) node() {}
func (*Call) node()       {}
func (*LambdaDef) node()  {}
func (*Define) node()     {}

// Param returns the name of the lambda's parameter.
func (n *LambdaDef) Param() string {
	return n.Scope.Param().Name
}

func (n *Symbol) String() string     { return format(n, false) }
func (n *IntLiteral) String() string { return format(n, false) }
func (n *Call) String() string       { return format(n, false) }
func (n *LambdaDef) String() string  { return format(n, false) }
func (n *Define) String() string     { return format(n, false) }

// Dump renders node as source text with every symbol annotated by its
// resolved location.  A lambda parameter is annotated with the closure slot
// nested lambdas use to reach it.
//
//	(lambda (a:CLOSURE[0]) (lambda (b:CLOSURE[1]) (b:VAR a:CLOSURE[0])))
func Dump(node Node) string {
	return format(node, true)
}

func format(node Node, annotate bool) string {
	var b strings.Builder
	write(&b, node, annotate)
	return b.String()
}

func write(b *strings.Builder, node Node, annotate bool) {
	switch n := node.(type) {
	case *Symbol:
		b.WriteString(n.Name)
		if annotate {
			b.WriteByte(':')
			b.WriteString(n.Location.String())
		}
	case *IntLiteral:
		b.WriteString(strconv.Itoa(n.Value))
	case *Call:
		b.WriteByte('(')
		write(b, n.Lhs, annotate)
		b.WriteByte(' ')
		write(b, n.Rhs, annotate)
		b.WriteByte(')')
	case *LambdaDef:
		b.WriteString("(lambda (")
		if annotate {
			b.WriteString(n.Scope.Param().String())
		} else {
			b.WriteString(n.Param())
		}
		b.WriteString(") ")
		write(b, n.Body, annotate)
		b.WriteByte(')')
	case *Define:
		b.WriteString("(define ")
		b.WriteString(n.Name)
		b.WriteByte(' ')
		write(b, n.Value, annotate)
		b.WriteByte(')')
	case nil:
		b.WriteString("<nil>")
	}
}

// Walk calls fn for node and each of its descendants in depth-first order.
// Walk does not descend into the children of a node for which fn returns
// false.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Call:
		Walk(n.Lhs, fn)
		Walk(n.Rhs, fn)
	case *LambdaDef:
		Walk(n.Body, fn)
	case *Define:
		Walk(n.Value, fn)
	}
}
