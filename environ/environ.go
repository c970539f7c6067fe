// Package environ implements the global environment, the only mutable state
// shared between top-level forms.
package environ

import (
	"fmt"

	"github.com/luthersystems/lcalc/lisp"
	"github.com/luthersystems/lcalc/symbol"
)

// Environ maps global names to values.  Bindings may be overwritten but are
// never removed.  Environ is not safe for concurrent use.
type Environ struct {
	symbols  symbol.Table
	bindings *bindings
}

// New returns an empty environment that interns names in symbols.  If symbols
// is nil a new table is created.
func New(symbols symbol.Table) *Environ {
	if symbols == nil {
		symbols = symbol.NewTable()
	}
	return &Environ{
		symbols:  symbols,
		bindings: newBindings(0),
	}
}

// NewGlobal returns an environment containing the default builtins.
func NewGlobal() *Environ {
	env := New(nil)
	err := env.AddBuiltins()
	if err != nil {
		panic(err)
	}
	return env
}

// Len returns the number of global bindings in env.
func (env *Environ) Len() int {
	return env.bindings.Len()
}

// Get returns the value bound to name.
func (env *Environ) Get(name string) (lisp.Atom, bool) {
	id, ok := env.symbols.Peek(name)
	if !ok {
		return nil, false
	}
	return env.bindings.Get(id)
}

// Put binds name to v in env, replacing any existing binding.
func (env *Environ) Put(name string, v lisp.Atom) {
	if v == nil {
		panic("nil value")
	}
	env.bindings.Put(env.symbols.Intern(name), v)
}

// Names returns the bound names in the order they were first bound.
func (env *Environ) Names() []string {
	names := make([]string, env.bindings.Len())
	for i := range names {
		names[i] = symbol.String(env.bindings.GetVariable(i), env.symbols)
	}
	return names
}

// AddBuiltins binds the given funs to their names in env.  When called with no
// arguments AddBuiltins adds lisp.DefaultBuiltins to env.  AddBuiltins returns
// an error, and binds nothing, if any name is already bound.
func (env *Environ) AddBuiltins(funs ...*lisp.Primitive) error {
	if len(funs) == 0 {
		funs = lisp.DefaultBuiltins()
	}
	for _, f := range funs {
		if _, exists := env.Get(f.Name); exists {
			return fmt.Errorf("symbol already defined: %s", f.Name)
		}
	}
	for _, f := range funs {
		env.Put(f.Name, f)
	}
	return nil
}
