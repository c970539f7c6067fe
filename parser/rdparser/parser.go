package rdparser

import (
	"io"
	"strconv"
	"strings"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/lisp"
	"github.com/luthersystems/lcalc/parser/lexer"
	"github.com/luthersystems/lcalc/parser/token"
	"github.com/luthersystems/lcalc/scope"
)

type reader struct {
}

// NewReader returns a lisp.Reader backed by the recursive descent Parser.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader, sc scope.Scope) ([]ast.Node, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram(sc)
}

// ParseLine implements lisp.LineParser.
func (*reader) ParseLine(name, line string, sc scope.Scope, strict bool) (ast.Node, error) {
	return ParseLine(name, line, sc, strict)
}

// ParseLine reads the first form in line, resolving symbols against sc.  When
// strict is true ParseLine returns an error if any tokens follow the form.
func ParseLine(name, line string, sc scope.Scope, strict bool) (ast.Node, error) {
	p := New(token.NewScanner(name, strings.NewReader(line)))
	node, err := p.ParseExpression(sc)
	if err != nil {
		return nil, err
	}
	if strict {
		err = p.ExpectEOF()
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Parser is a recursive descent parser that resolves every symbol against
// the lexical scope chain as it is read.
type Parser struct {
	lex  *lexer.Lexer
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: lexer.New(scanner),
	}
	// Setup the peek token so the parser is in the proper state when the
	// first parse function is called.
	p.ReadToken()
	return p
}

// ParseProgram parses forms until the end of input.
func (p *Parser) ParseProgram(sc scope.Scope) ([]ast.Node, error) {
	var exprs []ast.Node
	for !p.expect(token.EOF) {
		expr, err := p.ParseExpression(sc)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single form.  Tokens following the form are not
// consumed.
func (p *Parser) ParseExpression(sc scope.Scope) (ast.Node, error) {
	return p.parseToken(sc, p.ReadToken())
}

// ExpectEOF returns an error if any tokens remain in the input.
func (p *Parser) ExpectEOF() error {
	if p.expect(token.EOF) {
		return nil
	}
	p.ReadToken()
	return p.errorf("unexpected trailing token: %v", p.Token())
}

func (p *Parser) parseToken(sc scope.Scope, tok *token.Token) (ast.Node, error) {
	switch tok.Type {
	case token.SYMBOL:
		return p.parseSymbol(sc, tok), nil
	case token.INT:
		return p.parseLiteralInt(tok)
	case token.PAREN_L:
	case token.EOF:
		return nil, p.errorf("unexpected end of input")
	case token.ERROR, token.INVALID:
		return nil, p.errorf("%s", tok.Text)
	default:
		return nil, p.errorf("open brace expected")
	}

	open := tok
	switch p.PeekType() {
	case token.LAMBDA:
		p.ReadToken()
		return p.parseLambda(sc, open)
	case token.DEFINE:
		p.ReadToken()
		return p.parseDefine(sc, open)
	}
	lhs, err := p.ParseExpression(sc)
	if err != nil {
		return nil, err
	}
	rhs, err := p.ParseExpression(sc)
	if err != nil {
		return nil, err
	}
	if err := p.require(token.PAREN_R); err != nil {
		return nil, err
	}
	return &ast.Call{Lhs: lhs, Rhs: rhs, Loc: open.Source}, nil
}

func (p *Parser) parseSymbol(sc scope.Scope, tok *token.Token) *ast.Symbol {
	loc := sc.Lookup(tok.Text)
	loc.Mark()
	return &ast.Symbol{Name: tok.Text, Location: loc, Loc: tok.Source}
}

func (p *Parser) parseLiteralInt(tok *token.Token) (ast.Node, error) {
	x, err := strconv.Atoi(tok.Text)
	if err != nil {
		return nil, p.errorf("integer literal overflows int: %v", tok.Text)
	}
	return &ast.IntLiteral{Value: x, Loc: tok.Source}, nil
}

// parseLambda parses the remainder of a lambda expression following the
// lambda keyword.
func (p *Parser) parseLambda(parent scope.Scope, open *token.Token) (*ast.LambdaDef, error) {
	if err := p.require(token.PAREN_L); err != nil {
		return nil, err
	}
	if !p.expect(token.SYMBOL) {
		p.ReadToken()
		return nil, p.errorf("arg is not a symbol")
	}
	param := p.Token().Text
	if err := p.require(token.PAREN_R); err != nil {
		return nil, err
	}
	sc := scope.NewLambda(parent, param)
	body, err := p.ParseExpression(sc)
	if err != nil {
		return nil, err
	}
	if err := p.require(token.PAREN_R); err != nil {
		return nil, err
	}
	return &ast.LambdaDef{Scope: sc, Body: body, Loc: open.Source}, nil
}

// parseDefine parses the remainder of a define expression following the
// define keyword.  The bound name is not resolved because it is a new
// binding, not a reference.
func (p *Parser) parseDefine(sc scope.Scope, open *token.Token) (*ast.Define, error) {
	if !sc.IsGlobal() {
		return nil, p.errorf("define is only allowed in global scope")
	}
	if !p.expect(token.SYMBOL) {
		p.ReadToken()
		return nil, p.errorf("define name is not a symbol")
	}
	name := p.Token().Text
	value, err := p.ParseExpression(sc)
	if err != nil {
		return nil, err
	}
	if err := p.require(token.PAREN_R); err != nil {
		return nil, err
	}
	return &ast.Define{Name: name, Value: value, Loc: open.Source}, nil
}

// ReadToken advances the parser and returns the new current token.
func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

// Token returns the current token.
func (p *Parser) Token() *token.Token {
	return p.curr
}

// Peek returns the token following the current token.
func (p *Parser) Peek() *token.Token {
	return p.peek
}

func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.peek.Type
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

// require consumes the next token and returns an error if it is not of type
// typ.
func (p *Parser) require(typ token.Type) error {
	if p.expect(typ) {
		return nil
	}
	p.ReadToken()
	switch p.Token().Type {
	case token.EOF:
		return p.errorf("token expected: %v (unexpected end of input)", typ)
	case token.ERROR, token.INVALID:
		return p.errorf("%s", p.Token().Text)
	}
	return p.errorf("token expected: %v", typ)
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return lisp.ParseErrorf(p.Token().Source, format, v...)
}
