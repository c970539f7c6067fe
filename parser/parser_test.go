package parser_test

import (
	"strings"
	"testing"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/parser"
	"github.com/luthersystems/lcalc/scope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var programs = []string{
	"0",
	"a",
	"(inc 0)",
	"(lambda (a) a)",
	"(lambda (a) (lambda (b) (b a)))",
	"(lambda (x) (lambda (x) (lambda (y) x)))",
	"(define id (lambda (a) a)) (id 1)",
	`
(define zero (lambda (s) (lambda (z) z)))
(define succ (lambda (n) (lambda (s) (lambda (z) (s ((n s) z))))))
(((succ (succ zero)) inc) 0)
`,
	"((lambda(a)a)12)",
	"lambdas",
}

func read(t *testing.T, name, source string) []string {
	t.Helper()
	r, err := parser.NewReader(name)
	require.NoError(t, err)
	nodes, err := r.Read("test", strings.NewReader(source), scope.NewGlobal())
	require.NoError(t, err, "reader %s: %q", name, source)
	dumps := make([]string, len(nodes))
	for i := range nodes {
		dumps[i] = ast.Dump(nodes[i])
	}
	return dumps
}

func TestReadersAgree(t *testing.T) {
	for i, source := range programs {
		rd := read(t, parser.ReaderRD, source)
		pc := read(t, parser.ReaderParsec, source)
		assert.NotEmpty(t, rd, "test %d", i)
		assert.Equal(t, rd, pc, "test %d: %q", i, source)
	}
}

func TestParsecReaderErrors(t *testing.T) {
	tests := []string{
		"(inc 0",
		"(a)",
		"(a b c)",
		"(lambda (a b) a)",
		"(lambda a a)",
		"(lambda (a) (define b a))",
		"(define 1 1)",
		"(define x)",
		"lambda",
		"(inc #)",
		"())",
	}
	r := parser.NewParsecReader()
	for i, source := range tests {
		_, err := r.Read("test", strings.NewReader(source), scope.NewGlobal())
		if assert.Error(t, err, "test %d: %q", i, source) {
			assert.True(t, strings.HasPrefix(err.Error(), "test:1:"), "test %d: %v", i, err)
		}
	}
}

func TestNewReader(t *testing.T) {
	for _, name := range []string{"", parser.ReaderRD, parser.ReaderParsec} {
		r, err := parser.NewReader(name)
		assert.NoError(t, err)
		assert.NotNil(t, r)
	}
	_, err := parser.NewReader("lalr")
	if assert.Error(t, err) {
		assert.Equal(t, `unknown reader: "lalr"`, err.Error())
	}
}

func TestParseLine(t *testing.T) {
	node, err := parser.Parse("(inc 0) (dec 0)", scope.NewGlobal())
	require.NoError(t, err)
	assert.Equal(t, "(inc 0)", node.String())

	_, err = parser.ParseLine("(inc 0) (dec 0)", scope.NewGlobal(), true)
	if assert.Error(t, err) {
		assert.Equal(t, "input:1:9: unexpected trailing token: (", err.Error())
	}

	node, err = parser.ParseLine("  (lambda (a) a)  ", scope.NewGlobal(), true)
	require.NoError(t, err)
	assert.Equal(t, "input:1:3", node.Source().String())

	_, err = parser.ParseLine("", scope.NewGlobal(), false)
	assert.Error(t, err)
}
