package token

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/luthersystems/lcalc/parser/internal/interntoken"
)

// symbolText is shared by all scanners so that every occurrence of a name
// refers to the same string.
var symbolText = interntoken.NewTable()

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
type Scanner struct {
	file string
	r    *bufio.Reader

	// location of the last scanned rune
	pos  int
	line int
	col  int

	c    rune
	size int

	text     []byte
	start    Location
	startSet bool

	peeked  bool
	peek    rune
	peekN   int
	peekErr error
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	return &Scanner{
		file: file,
		r:    bufio.NewReader(r),
		line: 1,
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Source: s.LocStart(),
	}
	if typ == SYMBOL {
		tok.Text = symbolText.GetBytes(s.text)
	} else {
		tok.Text = s.Text()
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text = s.text[:0]
	s.startSet = false
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.text)
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value and the next call to s.ScanRune will return an error
// that reflects of the cause.
func (s *Scanner) Peek() (rune, bool) {
	if !s.peeked {
		s.peeked = true
		s.peek, s.peekN, s.peekErr = s.r.ReadRune()
		if s.peekErr == nil && s.peek == utf8.RuneError && s.peekN == 1 {
			s.peekErr = fmt.Errorf("%v: invalid utf-8 sequence in source text", s.nextLoc())
		}
	}
	if s.peekErr != nil {
		return 0, false
	}
	return s.peek, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  At the end of input ScanRune returns io.EOF.
func (s *Scanner) ScanRune() error {
	if _, ok := s.Peek(); !ok {
		return s.peekErr
	}
	next := s.nextLoc()
	s.pos, s.line, s.col = next.Pos, next.Line, next.Col
	s.c, s.size = s.peek, s.peekN
	s.peeked = false
	if !s.startSet {
		s.start = next
		s.startSet = true
	}
	s.text = utf8.AppendRune(s.text, s.c)
	return nil
}

func (s *Scanner) nextLoc() Location {
	loc := Location{
		File: s.file,
		Pos:  s.pos + s.size,
		Line: s.line,
		Col:  s.col + 1,
	}
	if s.c == '\n' {
		loc.Line++
		loc.Col = 1
	}
	return loc
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	if s.startSet {
		loc := s.start
		return &loc
	}
	loc := s.nextLoc()
	return &loc
}

// Loc returns a Location referencing the current scanner position, the last
// position of the current token.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}
