// Package interntoken shares the backing storage of repeated token text.
package interntoken

import (
	"sync"
	"unsafe"
)

// Table maps token text to a canonical string.  A nil *Table is valid and
// interns nothing.
type Table struct {
	mut    sync.RWMutex
	intern map[string]string
}

func NewTable() *Table {
	return &Table{
		intern: make(map[string]string),
	}
}

// GetBytes returns a string equal to b.  The lookup does not allocate when
// the text has been seen before.
func (tab *Table) GetBytes(b []byte) string {
	if tab == nil || len(b) == 0 {
		return string(b)
	}
	tab.mut.RLock()
	s, ok := tab.intern[unsafe.String(&b[0], len(b))]
	tab.mut.RUnlock()
	if ok {
		return s
	}
	// b is reused by the scanner so the key must be copied.
	return tab.insert(string(b))
}

// Get returns a string that equals s.
func (tab *Table) Get(s string) string {
	if tab == nil {
		return s
	}
	tab.mut.RLock()
	p, ok := tab.intern[s]
	tab.mut.RUnlock()
	if ok {
		return p
	}
	return tab.insert(s)
}

// Len returns the number of distinct strings in the table.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	tab.mut.RLock()
	defer tab.mut.RUnlock()
	return len(tab.intern)
}

func (tab *Table) insert(s string) string {
	tab.mut.Lock()
	defer tab.mut.Unlock()
	p, ok := tab.intern[s]
	if !ok {
		p = s
		tab.intern[s] = p
	}
	return p
}
