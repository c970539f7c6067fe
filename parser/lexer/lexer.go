package lexer

import (
	"fmt"
	"io"
	"unicode"

	"github.com/luthersystems/lcalc/parser/token"
)

// Lexer splits lambda calculus source into tokens.  Symbols are runs of
// lowercase ascii letters and integers are runs of decimal digits.  Adjacent
// symbols and integers need no separating whitespace.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	readErr error
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// NextToken returns the next token in the input.  Once the input is exhausted
// NextToken returns EOF tokens indefinitely.  Any other read failure is
// reported as an ERROR token and is also sticky.
func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr)
	}
	lex.readErr = lex.skipWhitespace()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr)
	}
	lex.readChar()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr)
	}
	switch {
	case lex.ch == '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case lex.ch == ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case isDigit(lex.ch):
		return lex.readNumber()
	case isWord(lex.ch):
		return lex.readSymbol()
	default:
		return lex.emit(token.INVALID, fmt.Sprintf("illegal character %q", lex.ch))
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error) *token.Token {
	if err == io.EOF {
		return lex.emit(token.EOF, "")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) readSymbol() *token.Token {
	for isWord(lex.peekRune()) {
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr)
		}
	}
	if typ, ok := token.Keyword(lex.scanner.Text()); ok {
		return lex.scanner.EmitToken(typ)
	}
	return lex.scanner.EmitToken(token.SYMBOL)
}

func (lex *Lexer) readNumber() *token.Token {
	for isDigit(lex.peekRune()) {
		if lex.readChar() != nil {
			return lex.emitError(lex.readErr)
		}
	}
	// the text may not actually be a usable number (overflow), but we can find
	// that out at parse time -- not scan time.
	return lex.scanner.EmitToken(token.INT)
}

func (lex *Lexer) skipWhitespace() error {
	for unicode.IsSpace(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

// peekRune returns 0 at the end of input, which matches no token class.
func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isWord(c rune) bool {
	return 'a' <= c && c <= 'z'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
