// Package parser implements a backtracking recursive-descent parser for
// C11 translation units. Every rule takes a position into the shared
// token slice and returns the built node together with the position one
// past what it consumed; on failure the caller's position is unchanged,
// so alternatives are tried in order until one commits. Type checking is
// folded into the same pass: each node carries the type expression its
// production computed, and an illegal type combination fails the parse
// like any syntax error.
package parser

import (
	"fmt"

	"github.com/sysidos/crust/pkg/ast"
	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/symtable"
)

// DefaultMaxDepth bounds grammar recursion so degenerate input fails
// with an error instead of exhausting the goroutine stack.
const DefaultMaxDepth = 512

// Parser holds the immutable token slice and the recursion limit. The
// cursor itself is threaded through rule calls by value, never stored,
// so a failed alternative cannot corrupt its caller's position.
type Parser struct {
	toks     []lexer.Token
	src      string
	maxDepth int
	depth    int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth overrides the maximum grammar nesting depth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) { p.maxDepth = n }
}

// New creates a parser over toks. src labels the translation unit in
// errors, typically the input file name.
func New(toks []lexer.Token, src string, opts ...Option) *Parser {
	p := &Parser{toks: toks, src: src, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses toks as a single translation unit and returns the typed
// parse tree.
func Parse(toks []lexer.Token, src string, opts ...Option) (*ast.Node, error) {
	return New(toks, src, opts...).Parse()
}

// Parse runs the translation-unit rule and requires it to consume every
// token; leftover input is an error naming the source.
func (p *Parser) Parse() (*ast.Node, error) {
	node, pos, err := p.translationUnit(0)
	if err != nil {
		return nil, &ParseError{Src: p.src, Err: err}
	}
	if pos != len(p.toks) {
		err := fmt.Errorf("stopped at token %d of %d (%q)", pos, len(p.toks), p.toks[pos].Type)
		return nil, &ParseError{Src: p.src, Err: err}
	}
	return node, nil
}

// Cursor primitives.

func (p *Parser) checkPos(pos int) error {
	if pos >= len(p.toks) {
		return &PositionError{Pos: pos}
	}
	return nil
}

func (p *Parser) expect(pos int, tt lexer.TokenType) error {
	if err := p.checkPos(pos); err != nil {
		return err
	}
	if p.toks[pos].Type != tt {
		return &UnexpectedTokenError{Expected: tt.String(), Found: p.toks[pos], Pos: pos}
	}
	return nil
}

func (p *Parser) peekIs(pos int, tt lexer.TokenType) bool {
	return pos < len(p.toks) && p.toks[pos].Type == tt
}

func (p *Parser) peekAny(pos int, ops []lexer.TokenType) bool {
	if pos >= len(p.toks) {
		return false
	}
	t := p.toks[pos].Type
	for _, op := range ops {
		if t == op {
			return true
		}
	}
	return false
}

func (p *Parser) enter() error {
	if p.depth >= p.maxDepth {
		return &DepthError{Limit: p.maxDepth}
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// ruleFn is the shape every grammar rule shares.
type ruleFn func(pos int) (*ast.Node, int, error)

// commaList parses item { ',' item }. The comma is consumed tentatively:
// if the item after it fails, the loop stops with the comma unconsumed,
// which lets an enclosing rule claim it. A list that folded exactly one
// item takes that item's type when flatten is set; otherwise the list
// type collects every item type as a child.
func (p *Parser) commaList(pos int, kind ast.Kind, flatten bool, item ruleFn) (*ast.Node, int, error) {
	cur := ast.New(kind)
	child, pos, err := item(pos)
	if err != nil {
		return nil, pos, err
	}
	first := child.Type
	cur.Type.Child = append(cur.Type.Child, child.Type)
	cur.Add(child)
	n := 1
	for p.peekIs(pos, lexer.TokenComma) {
		child, next, err := item(pos + 1)
		if err != nil {
			break
		}
		cur.Type.Child = append(cur.Type.Child, child.Type)
		cur.Add(child)
		pos = next
		n++
	}
	if flatten && n == 1 {
		cur.Type = first
	}
	return cur, pos, nil
}

// repetition parses item { item } with no separator, with the same
// single-item type flattening as commaList.
func (p *Parser) repetition(pos int, kind ast.Kind, flatten bool, item ruleFn) (*ast.Node, int, error) {
	cur := ast.New(kind)
	child, pos, err := item(pos)
	if err != nil {
		return nil, pos, err
	}
	first := child.Type
	cur.Type.Child = append(cur.Type.Child, child.Type)
	cur.Add(child)
	n := 1
	for {
		child, next, err := item(pos)
		if err != nil {
			break
		}
		cur.Type.Child = append(cur.Type.Child, child.Type)
		cur.Add(child)
		pos = next
		n++
	}
	if flatten && n == 1 {
		cur.Type = first
	}
	return cur, pos, nil
}

// Translation-unit level.

// translationUnit parses external-declaration { external-declaration }
// until the token slice is exhausted. An empty slice yields an empty
// unit. A failure on the very first declaration is the unit's error;
// after that the unit stops and leaves the leftover tokens to the
// driver's full-consumption check.
func (p *Parser) translationUnit(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.TranslationUnit{})
	for pos < len(p.toks) {
		child, next, err := p.externalDeclaration(pos)
		if err != nil {
			if len(cur.Children) == 0 {
				return nil, pos, err
			}
			break
		}
		cur.Type.Child = append(cur.Type.Child, child.Type)
		cur.Add(child)
		pos = next
	}
	return cur, pos, nil
}

// externalDeclaration tries function-definition first, then declaration.
func (p *Parser) externalDeclaration(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.ExternalDeclaration{})
	if child, next, err := p.functionDefinition(pos); err == nil {
		cur.Type = child.Type
		cur.Add(child)
		return cur, next, nil
	}
	child, next, err := p.declaration(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = child.Type
	cur.Add(child)
	return cur, next, nil
}

// functionDefinition parses declaration-specifiers declarator
// [ declaration-list ] compound-statement. The node's type is a function
// tag whose children record the return specifiers, the declarator and
// the body.
func (p *Parser) functionDefinition(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.FunctionDefinition{})
	specs, pos, err := p.declarationSpecifiers(pos)
	if err != nil {
		return nil, pos, err
	}
	decl, pos, err := p.declarator(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type.Val = append(cur.Type.Val, symtable.Tfunction{})
	cur.Type.Child = append(cur.Type.Child, specs.Type, decl.Type)
	cur.Add(specs)
	cur.Add(decl)
	if decls, next, err := p.declarationList(pos); err == nil {
		cur.Type.Child = append(cur.Type.Child, decls.Type)
		cur.Add(decls)
		pos = next
	}
	body, pos, err := p.compoundStatement(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type.Child = append(cur.Type.Child, body.Type)
	cur.Add(body)
	return cur, pos, nil
}

// declarationList parses declaration { declaration }, used for K&R
// style parameter declarations between declarator and body.
func (p *Parser) declarationList(pos int) (*ast.Node, int, error) {
	return p.repetition(pos, ast.DeclarationList{}, true, p.declaration)
}
