package token

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner(t *testing.T) {
	s := NewScanner("test", strings.NewReader("ab\ncd"))
	assert.Equal(t, "test:1:1", s.LocStart().String())

	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'b', s.Rune())
	assert.Equal(t, "ab", s.Text())
	tok := s.EmitToken(SYMBOL)
	assert.Equal(t, "ab", tok.Text)
	assert.Equal(t, &Location{File: "test", Pos: 0, Line: 1, Col: 1}, tok.Source)
	assert.Equal(t, "", s.Text())

	require.NoError(t, s.ScanRune())
	s.Ignore()
	r, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 'c', r)

	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	tok = s.EmitToken(SYMBOL)
	assert.Equal(t, "cd", tok.Text)
	assert.Equal(t, &Location{File: "test", Pos: 3, Line: 2, Col: 1}, tok.Source)
	assert.Equal(t, &Location{File: "test", Pos: 4, Line: 2, Col: 2}, s.Loc())

	_, ok = s.Peek()
	assert.False(t, ok)
	assert.Equal(t, io.EOF, s.ScanRune())
	assert.Equal(t, "test:2:3", s.LocStart().String())
}

func TestScannerInvalidUTF8(t *testing.T) {
	s := NewScanner("test", strings.NewReader("a\xff"))
	require.NoError(t, s.ScanRune())
	err := s.ScanRune()
	if assert.Error(t, err) {
		assert.Equal(t, "test:1:2: invalid utf-8 sequence in source text", err.Error())
	}
}

func TestSymbolTextShared(t *testing.T) {
	s := NewScanner("test", strings.NewReader("xx"))
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	a := s.EmitToken(SYMBOL)
	s = NewScanner("test", strings.NewReader("xx"))
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	b := s.EmitToken(SYMBOL)
	assert.Equal(t, a.Text, b.Text)
	assert.Equal(t, symbolText.Get("xx"), b.Text)
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Type: SYMBOL, Text: "a"}, `symbol "a"`},
		{Token{Type: INT, Text: "12"}, `int "12"`},
		{Token{Type: LAMBDA, Text: "lambda"}, "lambda"},
		{Token{Type: PAREN_L, Text: "("}, "("},
		{Token{Type: EOF}, "EOF"},
		{Token{Type: Type(99)}, "invalid"},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.tok.String())
	}
}

func TestLocationString(t *testing.T) {
	var loc *Location
	assert.Equal(t, "<unknown>", loc.String())
	assert.Equal(t, "f[3]", (&Location{File: "f", Pos: 3}).String())
	assert.Equal(t, "f:2", (&Location{File: "f", Line: 2}).String())
	assert.Equal(t, "f:2:5", (&Location{File: "f", Line: 2, Col: 5}).String())
}

func TestKeyword(t *testing.T) {
	typ, ok := Keyword("lambda")
	assert.True(t, ok)
	assert.Equal(t, LAMBDA, typ)
	typ, ok = Keyword("define")
	assert.True(t, ok)
	assert.Equal(t, DEFINE, typ)
	_, ok = Keyword("lambdas")
	assert.False(t, ok)
}
