package interntoken

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tab := NewTable()
	a := tab.GetBytes([]byte("lambda"))
	b := tab.GetBytes([]byte("lambda"))
	c := tab.Get("lambda")
	assert.Equal(t, "lambda", a)
	assert.Equal(t, unsafe.StringData(a), unsafe.StringData(b))
	assert.Equal(t, unsafe.StringData(a), unsafe.StringData(c))
	assert.Equal(t, "", tab.GetBytes(nil))
	tab.Get("succ")
	assert.Equal(t, 2, tab.Len())

	var null *Table
	assert.Equal(t, "x", null.GetBytes([]byte("x")))
	assert.Equal(t, "x", null.Get("x"))
	assert.Equal(t, 0, null.Len())
}
