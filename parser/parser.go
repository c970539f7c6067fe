/*
Package parser provides lambda calculus readers.

	expr   := <symbol> | <int> | '(' <expr>* ')'
	int    := /[0-9]+/
	symbol := /[a-z]+/

The grammar above is the surface s-expression syntax accepted by the
combinator reader in this file.  Special forms are recognized while the
s-expressions are resolved into an ast:

	(lambda (<symbol>) <expr>)
	(define <symbol> <expr>)
	(<expr> <expr>)
*/
package parser

import (
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"strconv"

	"github.com/luthersystems/lcalc/ast"
	"github.com/luthersystems/lcalc/lisp"
	"github.com/luthersystems/lcalc/parser/token"
	"github.com/luthersystems/lcalc/scope"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeList:    "LIST",
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// sexpr is an unresolved s-expression produced by the combinator grammar.
type sexpr struct {
	typ      nodeType
	term     *parsec.Terminal
	children []*sexpr
	pos      int
}

type parsecReader struct {
}

// NewParsecReader returns a lisp.Reader built from parser combinators.  It
// accepts the same language as the recursive descent reader and produces
// identical resolved forms.
func NewParsecReader() lisp.Reader {
	return &parsecReader{}
}

// Read implements lisp.Reader.
func (*parsecReader) Read(name string, r io.Reader, sc scope.Scope) ([]ast.Node, error) {
	text, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b := &builder{lines: newLineIndex(name, text)}
	var nodes []ast.Node
	s := parsec.NewScanner(text)
	expr := newParsecParser()
	root, s := expr(s)
	for root != nil {
		x, ok := root.(*sexpr)
		if !ok {
			return nil, lisp.ParseErrorf(b.lines.location(s.GetCursor()), "unexpected parse node: %T", root)
		}
		node, err := b.build(sc, x)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		root, s = expr(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		cursor := s.GetCursor()
		return nil, lisp.ParseErrorf(b.lines.location(cursor), "syntax error near %q", excerpt(text, cursor))
	}
	return nodes, nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	integer := parsec.Token(`[0-9]+`, "INT")
	symbol := parsec.Token(`[a-z]+`, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm), integer, symbol)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(astNode(nodeList), openP, exprList, closeP)
	expr = parsec.OrdChoice(firstNode, term, list)
	return expr
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newSExpr(t, nodes)
	}
}

func firstNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func newSExpr(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			panic(fmt.Sprintf("unexpected term node: %T", nodes[0]))
		}
		return &sexpr{typ: typ, term: term, pos: term.Position}
	case nodeList:
		x := &sexpr{typ: typ}
		// We don't want terminal parsec nodes '(' and ')'
		for _, c := range nodes {
			switch c := c.(type) {
			case *sexpr:
				x.children = append(x.children, c)
			case *parsec.Terminal:
				if c.Name == "OPENP" {
					x.pos = c.Position
				}
			}
		}
		return x
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

// builder resolves s-expressions into ast nodes.
type builder struct {
	lines *lineIndex
}

func (b *builder) build(sc scope.Scope, x *sexpr) (ast.Node, error) {
	loc := b.lines.location(x.pos)
	if x.typ == nodeTerm {
		switch x.term.Name {
		case "INT":
			v, err := strconv.Atoi(x.term.Value)
			if err != nil {
				return nil, lisp.ParseErrorf(loc, "integer literal overflows int: %v", x.term.Value)
			}
			return &ast.IntLiteral{Value: v, Loc: loc}, nil
		case "SYMBOL":
			if _, ok := token.Keyword(x.term.Value); ok {
				return nil, lisp.ParseErrorf(loc, "open brace expected")
			}
			symloc := sc.Lookup(x.term.Value)
			symloc.Mark()
			return &ast.Symbol{Name: x.term.Value, Location: symloc, Loc: loc}, nil
		default:
			return nil, lisp.ParseErrorf(loc, "unexpected token: %v", x.term.Name)
		}
	}
	if len(x.children) > 0 && x.children[0].typ == nodeTerm {
		switch x.children[0].term.Value {
		case "lambda":
			return b.buildLambda(sc, x, loc)
		case "define":
			return b.buildDefine(sc, x, loc)
		}
	}
	if len(x.children) != 2 {
		return nil, lisp.ParseErrorf(loc, "application requires exactly two expressions, found %d", len(x.children))
	}
	lhs, err := b.build(sc, x.children[0])
	if err != nil {
		return nil, err
	}
	rhs, err := b.build(sc, x.children[1])
	if err != nil {
		return nil, err
	}
	return &ast.Call{Lhs: lhs, Rhs: rhs, Loc: loc}, nil
}

func (b *builder) buildLambda(parent scope.Scope, x *sexpr, loc *token.Location) (ast.Node, error) {
	if len(x.children) != 3 {
		return nil, lisp.ParseErrorf(loc, "lambda requires a parameter list and a body")
	}
	params := x.children[1]
	if params.typ != nodeList || len(params.children) != 1 || !isSymbol(params.children[0]) {
		return nil, lisp.ParseErrorf(b.lines.location(params.pos), "arg is not a symbol")
	}
	sc := scope.NewLambda(parent, params.children[0].term.Value)
	body, err := b.build(sc, x.children[2])
	if err != nil {
		return nil, err
	}
	return &ast.LambdaDef{Scope: sc, Body: body, Loc: loc}, nil
}

func (b *builder) buildDefine(sc scope.Scope, x *sexpr, loc *token.Location) (ast.Node, error) {
	if !sc.IsGlobal() {
		return nil, lisp.ParseErrorf(loc, "define is only allowed in global scope")
	}
	if len(x.children) != 3 {
		return nil, lisp.ParseErrorf(loc, "define requires a name and a value")
	}
	if !isSymbol(x.children[1]) {
		return nil, lisp.ParseErrorf(b.lines.location(x.children[1].pos), "define name is not a symbol")
	}
	value, err := b.build(sc, x.children[2])
	if err != nil {
		return nil, err
	}
	return &ast.Define{Name: x.children[1].term.Value, Value: value, Loc: loc}, nil
}

func isSymbol(x *sexpr) bool {
	if x.typ != nodeTerm || x.term.Name != "SYMBOL" {
		return false
	}
	_, isKeyword := token.Keyword(x.term.Value)
	return !isKeyword
}

// lineIndex converts byte offsets into token locations.
type lineIndex struct {
	file   string
	starts []int // byte offset of the first byte of each line
}

func newLineIndex(file string, text []byte) *lineIndex {
	idx := &lineIndex{file: file, starts: []int{0}}
	for i, c := range text {
		if c == '\n' {
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

func (idx *lineIndex) location(pos int) *token.Location {
	line := sort.Search(len(idx.starts), func(i int) bool { return idx.starts[i] > pos })
	return &token.Location{
		File: idx.file,
		Pos:  pos,
		Line: line,
		Col:  pos - idx.starts[line-1] + 1,
	}
}

func excerpt(text []byte, pos int) string {
	const n = 16
	if pos >= len(text) {
		return ""
	}
	end := pos + n
	if end > len(text) {
		end = len(text)
	}
	return string(text[pos:end])
}
