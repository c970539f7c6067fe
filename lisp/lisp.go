package lisp

import (
	"fmt"
	"strconv"

	"github.com/luthersystems/lcalc/ast"
)

// AtomType is the type of an Atom
type AtomType uint

// Possible AtomType values
const (
	AInvalid AtomType = iota
	AInt
	APrimitive
	AClosure
)

var atomTypeStrings = []string{
	AInvalid:   "INVALID",
	AInt:       "int",
	APrimitive: "primitive",
	AClosure:   "closure",
}

func (t AtomType) String() string {
	if int(t) >= len(atomTypeStrings) {
		return atomTypeStrings[AInvalid]
	}
	return atomTypeStrings[t]
}

// Atom is a runtime value: an Int, a Primitive function or a Closure.
type Atom interface {
	// Type returns the variant of the Atom.
	Type() AtomType
	// Apply calls the Atom with a single argument.  Apply returns a
	// *NotAFunctionError if the Atom is not callable.
	Apply(arg Atom) (Atom, error)
	// AsInt returns the integer value of the Atom.  AsInt returns a
	// *TypeError if the Atom is not an Int.
	AsInt() (int, error)
	String() string
	atom()
}

// Int is a self-evaluating integer.
type Int int

var _ Atom = Int(0)

func (Int) Type() AtomType { return AInt }

func (x Int) Apply(arg Atom) (Atom, error) {
	return nil, &NotAFunctionError{Value: x}
}

func (x Int) AsInt() (int, error) { return int(x), nil }

func (x Int) String() string { return strconv.Itoa(int(x)) }

func (Int) atom() {}

// PrimitiveFunc implements a built-in function.
type PrimitiveFunc func(arg Atom) (Atom, error)

// Primitive is a built-in unary function.
type Primitive struct {
	Name string
	Fn   PrimitiveFunc
}

var _ Atom = (*Primitive)(nil)

// NewPrimitive returns a Primitive with the given name.
func NewPrimitive(name string, fn PrimitiveFunc) *Primitive {
	return &Primitive{Name: name, Fn: fn}
}

func (*Primitive) Type() AtomType { return APrimitive }

func (p *Primitive) Apply(arg Atom) (Atom, error) {
	return p.Fn(arg)
}

func (p *Primitive) AsInt() (int, error) {
	return 0, &TypeError{Want: AInt, Value: p}
}

func (p *Primitive) String() string {
	return fmt.Sprintf("#<primitive %s>", p.Name)
}

func (*Primitive) atom() {}

// Applier evaluates the body of a closure.  The evaluator implements Applier
// so that closures can be applied like any other Atom.
type Applier interface {
	ApplyClosure(c *Closure, arg Atom) (Atom, error)
}

// Closure is a user defined function.  Captures holds the values of the
// enclosing lambdas' parameters at the time the closure was created, indexed
// by the capture slots assigned while reading Lambda.
type Closure struct {
	Lambda   *ast.LambdaDef
	Captures []Atom
	Applier  Applier
}

var _ Atom = (*Closure)(nil)

func (*Closure) Type() AtomType { return AClosure }

func (c *Closure) Apply(arg Atom) (Atom, error) {
	if c.Applier == nil {
		return nil, fmt.Errorf("closure has no evaluator: %v", c)
	}
	return c.Applier.ApplyClosure(c, arg)
}

func (c *Closure) AsInt() (int, error) {
	return 0, &TypeError{Want: AInt, Value: c}
}

func (c *Closure) String() string {
	return fmt.Sprintf("#<closure %v>", c.Lambda)
}

func (*Closure) atom() {}

// IsFunction returns true if v can be applied.
func IsFunction(v Atom) bool {
	switch v.Type() {
	case APrimitive, AClosure:
		return true
	default:
		return false
	}
}

// Equal returns true if a and b are interchangeable.  Integers are compared
// by value and functions by identity.
func Equal(a, b Atom) bool {
	if a == nil || b == nil {
		return a == b
	}
	x, ok := a.(Int)
	if ok {
		y, ok := b.(Int)
		return ok && x == y
	}
	return a == b
}
