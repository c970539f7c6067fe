// Package scope implements the lexical scope chain consulted while reading
// source.  Every identifier is resolved to a Location purely from its lexical
// position: the parameter of the innermost enclosing lambda is a Var, a
// parameter of any further enclosing lambda is a Closure slot, and anything
// else is a Global whose binding is looked up during evaluation.
package scope

import (
	"fmt"
	"sort"
)

// Kind is the storage class of a variable reference.
type Kind uint8

const (
	// Global references are resolved by name in the global environment at
	// evaluation time.
	Global Kind = iota
	// Var references read the parameter of the current call frame.
	Var
	// Closure references read a value captured when the enclosing closure
	// was created.
	Closure
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "GLOBAL"
	case Var:
		return "VAR"
	case Closure:
		return "CLOSURE"
	default:
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
}

// Location is the resolved storage location of a variable reference.  Index
// is only meaningful for Closure locations.
type Location struct {
	Kind  Kind
	Index int

	binding *Binding
}

// GlobalLocation is the location of every name that is not a parameter of an
// enclosing lambda.
var GlobalLocation = Location{Kind: Global}

// Mark records that the location was referenced.  Marks are diagnostic only
// and never affect evaluation.
func (loc Location) Mark() {
	if loc.binding == nil {
		return
	}
	switch loc.Kind {
	case Var:
		loc.binding.UsedAsVar = true
	case Closure:
		loc.binding.Captured = true
	}
}

// Binding returns the parameter binding loc refers to.  Global locations have
// no binding.
func (loc Location) Binding() (*Binding, bool) {
	return loc.binding, loc.binding != nil
}

// Equal returns true if loc and other denote the same storage class and slot.
func (loc Location) Equal(other Location) bool {
	if loc.Kind != other.Kind {
		return false
	}
	return loc.Kind != Closure || loc.Index == other.Index
}

func (loc Location) String() string {
	if loc.Kind == Closure {
		return fmt.Sprintf("%s[%d]", loc.Kind, loc.Index)
	}
	return loc.Kind.String()
}

// Binding describes the parameter of a lambda.  Slot is the capture index at
// which nested closures find the parameter's value.
type Binding struct {
	Name      string
	Slot      int
	UsedAsVar bool
	Captured  bool
}

func (b *Binding) String() string {
	return fmt.Sprintf("%s:%s", b.Name, Location{Kind: Closure, Index: b.Slot})
}

// Scope is a link in the lexical scope chain.
type Scope interface {
	// Lookup resolves name to exactly one Location.  The innermost binding of
	// name wins and unknown names resolve to GlobalLocation.
	Lookup(name string) Location
	// IsGlobal returns true for the root of the chain.
	IsGlobal() bool
}

// GlobalScope is the terminal link of every scope chain.
type GlobalScope struct{}

var _ Scope = (*GlobalScope)(nil)

// NewGlobal returns a global scope.
func NewGlobal() *GlobalScope {
	return &GlobalScope{}
}

// Lookup implements Scope.
func (*GlobalScope) Lookup(name string) Location {
	return GlobalLocation
}

// IsGlobal implements Scope.
func (*GlobalScope) IsGlobal() bool {
	return true
}

// LambdaScope is the scope of a single parameter lambda body.  A LambdaScope
// is immutable once created, so resolved references never change after a
// lambda body has been read.
type LambdaScope struct {
	parent Scope
	param  *Binding
}

var _ Scope = (*LambdaScope)(nil)

// NewLambda returns the scope of a lambda whose parameter is param and whose
// definition appears in parent.
func NewLambda(parent Scope, param string) *LambdaScope {
	slot := 0
	if p, ok := parent.(*LambdaScope); ok {
		slot = p.param.Slot + 1
	}
	return &LambdaScope{
		parent: parent,
		param:  &Binding{Name: param, Slot: slot},
	}
}

// Lookup implements Scope.
func (s *LambdaScope) Lookup(name string) Location {
	if s.param.Name == name {
		return Location{Kind: Var, binding: s.param}
	}
	for p := s.outer(); p != nil; p = p.outer() {
		if p.param.Name == name {
			return Location{Kind: Closure, Index: p.param.Slot, binding: p.param}
		}
	}
	return GlobalLocation
}

// IsGlobal implements Scope.
func (s *LambdaScope) IsGlobal() bool {
	return false
}

// Parent returns the scope in which the lambda was defined.
func (s *LambdaScope) Parent() Scope {
	return s.parent
}

// Param returns the parameter binding of the lambda.
func (s *LambdaScope) Param() *Binding {
	return s.param
}

// Captures returns the number of values a closure created from this scope
// captures from its enclosing frames.
func (s *LambdaScope) Captures() int {
	return s.param.Slot
}

// Bindings returns the parameters visible in s, innermost first.  Shadowed
// parameters are included.
func (s *LambdaScope) Bindings() []*Binding {
	var bindings []*Binding
	for p := s; p != nil; p = p.outer() {
		bindings = append(bindings, p.param)
	}
	return bindings
}

// Locations returns the location of every name visible in s.
func (s *LambdaScope) Locations() map[string]Location {
	locs := make(map[string]Location)
	for _, b := range s.Bindings() {
		if _, ok := locs[b.Name]; !ok {
			locs[b.Name] = s.Lookup(b.Name)
		}
	}
	return locs
}

// Names returns the names visible in s sorted lexically.
func (s *LambdaScope) Names() []string {
	locs := s.Locations()
	names := make([]string, 0, len(locs))
	for name := range locs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *LambdaScope) outer() *LambdaScope {
	p, _ := s.parent.(*LambdaScope)
	return p
}
