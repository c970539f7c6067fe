package lisp

import (
	"io"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/scope"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read the contents of r and return the resolved forms it contains.
	// Symbols are resolved against sc, and the forms are evaluated in order.
	Read(name string, r io.Reader, sc scope.Scope) ([]ast.Node, error)
}

// LineParser is implemented by Readers that can parse a single form from the
// start of a line.  When strict is true ParseLine fails if anything follows
// the form.
type LineParser interface {
	ParseLine(name, line string, sc scope.Scope, strict bool) (ast.Node, error)
}
