// Package symbol interns identifier text so that names can be compared and
// used as map keys by a small integer ID.
package symbol

import (
	"fmt"
	"sync"
)

// ID identifies an interned symbol.  The zero ID is never assigned.
type ID uint32

// Table maps symbol IDs to strings.
type Table interface {
	// Len returns the number of symbols interned in the table.
	Len() int
	// Intern inserts the given symbol into the table if it is not present and
	// returns its ID.
	Intern(symbol string) ID
	// Peek retrieves the ID of a symbol without automatically interning it.
	// Peek returns true iff the symbol has been interned into the table.
	Peek(symbol string) (ID, bool)
	// Symbol returns the symbol associated with id.
	Symbol(id ID) (string, bool)
}

// String returns the text of id in table, or a diagnostic string if id is
// unknown to table.
func String(id ID, table Table) string {
	s, ok := table.Symbol(id)
	if !ok {
		return fmt.Sprintf("#<SYMBOL %#x>", uint32(id))
	}
	return s
}

// NewTable returns an empty Table that is safe for concurrent use.
func NewTable() Table {
	return &table{
		i: make(map[ID]string),
		s: make(map[string]ID),
	}
}

type table struct {
	sync   sync.RWMutex
	lastid ID
	i      map[ID]string
	s      map[string]ID
}

var _ Table = (*table)(nil)

// Len implements the Table interface
func (t *table) Len() int {
	t.sync.RLock()
	defer t.sync.RUnlock()
	return len(t.s)
}

// Intern implements the Table interface
func (t *table) Intern(s string) ID {
	t.sync.Lock()
	defer t.sync.Unlock()
	if id, ok := t.s[s]; ok {
		return id
	}
	t.lastid++
	id := t.lastid
	t.s[s] = id
	t.i[id] = s
	return id
}

// Peek implements the Table interface
func (t *table) Peek(s string) (ID, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	id, ok := t.s[s]
	return id, ok
}

// Symbol implements the Table interface
func (t *table) Symbol(id ID) (string, bool) {
	t.sync.RLock()
	defer t.sync.RUnlock()
	s, ok := t.i[id]
	return s, ok
}
