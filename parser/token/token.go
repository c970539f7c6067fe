package token

import "fmt"

// Token is a lexical unit of lambda calculus source text.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case SYMBOL, INT, ERROR, INVALID:
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	default:
		return tok.Type.String()
	}
}

type Type uint

// Type constants used by the lexer and parsers.
const (
	INVALID Type = iota
	ERROR
	EOF

	SYMBOL
	INT

	// Keywords
	LAMBDA
	DEFINE

	// Delimiters
	PAREN_L
	PAREN_R

	numTokenTypes
)

var keywords = map[string]Type{
	"lambda": LAMBDA,
	"define": DEFINE,
}

// Keyword returns the keyword Type corresponding to text.  Keyword returns
// false if text is an ordinary symbol.
func Keyword(text string) (Type, bool) {
	typ, ok := keywords[text]
	return typ, ok
}

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		SYMBOL:  "symbol",
		INT:     "int",
		LAMBDA:  "lambda",
		DEFINE:  "define",
		PAREN_L: "(",
		PAREN_R: ")",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location is a position in a named source.
type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
