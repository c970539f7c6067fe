package environ

import (
	"github.com/luthersystems/lcalc/lisp"
	"github.com/luthersystems/lcalc/symbol"
)

type bindingPair struct {
	name  symbol.ID
	value lisp.Atom
}

// bindings is an ordered set of variable bindings.  Bindings are never
// removed, so the index of a variable is stable once it is bound.
type bindings struct {
	pairs []bindingPair
	index map[symbol.ID]int
}

func newBindings(n int) *bindings {
	return &bindings{
		pairs: make([]bindingPair, 0, n),
		index: make(map[symbol.ID]int, n),
	}
}

// Len returns the number of symbols bound.
func (s *bindings) Len() int {
	return len(s.pairs)
}

// GetVariable returns the variable at index i.
func (s *bindings) GetVariable(i int) symbol.ID {
	return s.pairs[i].name
}

// Get returns the value bound to variable.
func (s *bindings) Get(variable symbol.ID) (lisp.Atom, bool) {
	i, ok := s.index[variable]
	if !ok {
		return nil, false
	}
	return s.pairs[i].value, true
}

// PutIndex rebinds the variable at index i to v.
func (s *bindings) PutIndex(i int, v lisp.Atom) {
	s.pairs[i].value = v
}

// Put binds variable to v.  If variable was previously bound its entry will be
// updated.  Otherwise Put creates a new variable binding.
func (s *bindings) Put(variable symbol.ID, v lisp.Atom) {
	i, ok := s.index[variable]
	if ok {
		s.PutIndex(i, v)
		return
	}
	s.index[variable] = len(s.pairs)
	s.pairs = append(s.pairs, bindingPair{variable, v})
}
