package parser

import (
	"fmt"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/lisp"
	"github.com/luthersystems/lcalc/parser/rdparser"
	"github.com/luthersystems/lcalc/scope"
)

// Names of the available readers.
const (
	ReaderRD     = "rd"
	ReaderParsec = "parsec"
)

// LineSource is the source name reported in errors from Parse and ParseLine.
const LineSource = "input"

// NewReader returns the lisp.Reader with the given name.  The empty name
// selects the recursive descent reader.
func NewReader(name string) (lisp.Reader, error) {
	switch name {
	case "", ReaderRD:
		return rdparser.NewReader(), nil
	case ReaderParsec:
		return NewParsecReader(), nil
	default:
		return nil, fmt.Errorf("unknown reader: %q", name)
	}
}

// Parse reads the first form in line, resolving symbols against sc.  Any
// text following the form is ignored.
func Parse(line string, sc scope.Scope) (ast.Node, error) {
	return ParseLine(line, sc, false)
}

// ParseLine reads the first form in line, resolving symbols against sc.  When
// strict is true ParseLine returns an error if any tokens follow the form.
func ParseLine(line string, sc scope.Scope, strict bool) (ast.Node, error) {
	return rdparser.ParseLine(LineSource, line, sc, strict)
}
