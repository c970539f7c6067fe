package lisp

import (
	"errors"
	"fmt"

	"github.com/luthersystems/lcalc/parser/token"
)

// Error conditions reported by the reader and the evaluator.
const (
	CondParse         = "parse-error"
	CondUnboundName   = "unbound-name"
	CondNotAFunction  = "not-a-function"
	CondTypeError     = "type-error"
	CondStackOverflow = "stack-overflow"
	CondError         = "error"
)

// Conditioner is an error with a condition type.
type Conditioner interface {
	error
	Condition() string
}

// Condition returns the condition of the first Conditioner in err's chain.
func Condition(err error) string {
	var c Conditioner
	if errors.As(err, &c) {
		return c.Condition()
	}
	return CondError
}

// ParseError reports malformed source text.
type ParseError struct {
	Source *token.Location
	Msg    string
}

// ParseErrorf returns a *ParseError located at source.
func ParseErrorf(source *token.Location, format string, v ...interface{}) *ParseError {
	return &ParseError{
		Source: source,
		Msg:    fmt.Sprintf(format, v...),
	}
}

func (err *ParseError) Condition() string { return CondParse }

func (err *ParseError) Error() string {
	if err.Source == nil {
		return err.Msg
	}
	return fmt.Sprintf("%v: %s", err.Source, err.Msg)
}

// UnboundNameError reports a global reference without a binding.
type UnboundNameError struct {
	Name   string
	Source *token.Location
}

func (err *UnboundNameError) Condition() string { return CondUnboundName }

func (err *UnboundNameError) Error() string {
	if err.Source == nil {
		return fmt.Sprintf("unbound name: %s", err.Name)
	}
	return fmt.Sprintf("%v: unbound name: %s", err.Source, err.Name)
}

// NotAFunctionError reports the application of a value that is not callable.
type NotAFunctionError struct {
	Value  Atom
	Source *token.Location
}

func (err *NotAFunctionError) Condition() string { return CondNotAFunction }

func (err *NotAFunctionError) Error() string {
	if err.Source == nil {
		return fmt.Sprintf("not a function: %v", err.Value)
	}
	return fmt.Sprintf("%v: not a function: %v", err.Source, err.Value)
}

// TypeError reports a value of the wrong type passed to a primitive.
type TypeError struct {
	Op    string
	Want  AtomType
	Value Atom
}

func (err *TypeError) Condition() string { return CondTypeError }

func (err *TypeError) Error() string {
	if err.Op == "" {
		return fmt.Sprintf("expected %v: %v", err.Want, err.Value)
	}
	return fmt.Sprintf("%s: expected %v: %v", err.Op, err.Want, err.Value)
}
