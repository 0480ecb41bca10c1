package parser

import (
	"github.com/sysidos/crust/pkg/ast"
	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/symtable"
)

// statement parses one statement. Statements carry no value type except
// a return with an expression, whose type is the returned expression's.
func (p *Parser) statement(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	cur := ast.New(ast.Statement{})
	for _, rule := range []ruleFn{
		p.labeledStatement,
		p.compoundStatement,
		p.expressionStatement,
		p.selectionStatement,
		p.iterationStatement,
		p.jumpStatement,
	} {
		if child, next, err := rule(pos); err == nil {
			cur.Type = child.Type
			cur.Add(child)
			return cur, next, nil
		}
	}
	return nil, pos, &NoAlternativeError{Rule: "statement"}
}

// labeledStatement parses label : statement, case constant-expression :
// statement, or default : statement.
func (p *Parser) labeledStatement(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	switch p.toks[pos].Type {
	case lexer.TokenIdent:
		if err := p.expect(pos+1, lexer.TokenColon); err != nil {
			return nil, pos, err
		}
		stmt, next, err := p.statement(pos + 2)
		if err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.LabeledStatement{Label: p.toks[pos].Literal})
		cur.Type = symtable.New(symtable.None())
		cur.Add(stmt)
		return cur, next, nil
	case lexer.TokenCase:
		ce, next, err := p.constantExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenColon); err != nil {
			return nil, pos, err
		}
		stmt, next, err := p.statement(next + 1)
		if err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.LabeledStatement{Label: "case"})
		cur.Type = symtable.New(symtable.None())
		cur.Add(ce)
		cur.Add(stmt)
		return cur, next, nil
	case lexer.TokenDefault:
		if err := p.expect(pos+1, lexer.TokenColon); err != nil {
			return nil, pos, err
		}
		stmt, next, err := p.statement(pos + 2)
		if err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.LabeledStatement{Label: "default"})
		cur.Type = symtable.New(symtable.None())
		cur.Add(stmt)
		return cur, next, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "labeled statement"}
}

// compoundStatement parses { [ block-item-list ] }.
func (p *Parser) compoundStatement(pos int) (*ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenLBrace); err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.CompoundStatement{})
	cur.Type = symtable.New(symtable.None())
	if p.peekIs(pos+1, lexer.TokenRBrace) {
		return cur, pos + 2, nil
	}
	list, next, err := p.blockItemList(pos + 1)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenRBrace); err != nil {
		return nil, pos, err
	}
	cur.Add(list)
	return cur, next + 1, nil
}

func (p *Parser) blockItemList(pos int) (*ast.Node, int, error) {
	return p.repetition(pos, ast.BlockItemList{}, true, p.blockItem)
}

// blockItem parses a declaration or a statement.
func (p *Parser) blockItem(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.BlockItem{})
	if child, next, err := p.declaration(pos); err == nil {
		cur.Type = child.Type
		cur.Add(child)
		return cur, next, nil
	}
	child, next, err := p.statement(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = child.Type
	cur.Add(child)
	return cur, next, nil
}

// expressionStatement parses [ expression ] ;. The expression's value is
// discarded, so the statement itself has no type.
func (p *Parser) expressionStatement(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.ExpressionStatement{})
	cur.Type = symtable.New(symtable.None())
	if p.peekIs(pos, lexer.TokenSemicolon) {
		return cur, pos + 1, nil
	}
	expr, next, err := p.expression(pos)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenSemicolon); err != nil {
		return nil, pos, err
	}
	cur.Add(expr)
	return cur, next + 1, nil
}

// selectionStatement parses if ( expression ) statement [ else statement ]
// or switch ( expression ) statement.
func (p *Parser) selectionStatement(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	if t != lexer.TokenIf && t != lexer.TokenSwitch {
		return nil, pos, &NoAlternativeError{Rule: "selection statement"}
	}
	if err := p.expect(pos+1, lexer.TokenLParen); err != nil {
		return nil, pos, err
	}
	cond, next, err := p.expression(pos + 2)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenRParen); err != nil {
		return nil, pos, err
	}
	body, next, err := p.statement(next + 1)
	if err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.SelectionStatement{Tok: t})
	cur.Type = symtable.New(symtable.None())
	cur.Add(cond)
	cur.Add(body)
	if t == lexer.TokenIf && p.peekIs(next, lexer.TokenElse) {
		alt, next2, err := p.statement(next + 1)
		if err != nil {
			return nil, pos, err
		}
		cur.Add(alt)
		next = next2
	}
	return cur, next, nil
}

// iterationStatement parses while, do-while, and for loops. A for clause
// opens with either a declaration or an expression statement, so both
// forms share one path.
func (p *Parser) iterationStatement(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	switch t {
	case lexer.TokenWhile:
		if err := p.expect(pos+1, lexer.TokenLParen); err != nil {
			return nil, pos, err
		}
		cond, next, err := p.expression(pos + 2)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		body, next, err := p.statement(next + 1)
		if err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.IterationStatement{Tok: t})
		cur.Type = symtable.New(symtable.None())
		cur.Add(cond)
		cur.Add(body)
		return cur, next, nil
	case lexer.TokenDo:
		body, next, err := p.statement(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenWhile); err != nil {
			return nil, pos, err
		}
		if err := p.expect(next+1, lexer.TokenLParen); err != nil {
			return nil, pos, err
		}
		cond, next, err := p.expression(next + 2)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		if err := p.expect(next+1, lexer.TokenSemicolon); err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.IterationStatement{Tok: t})
		cur.Type = symtable.New(symtable.None())
		cur.Add(body)
		cur.Add(cond)
		return cur, next + 2, nil
	case lexer.TokenFor:
		if err := p.expect(pos+1, lexer.TokenLParen); err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.IterationStatement{Tok: t})
		cur.Type = symtable.New(symtable.None())
		init, next, err := p.declaration(pos + 2)
		if err != nil {
			init, next, err = p.expressionStatement(pos + 2)
			if err != nil {
				return nil, pos, err
			}
		}
		cur.Add(init)
		cond, next, err := p.expressionStatement(next)
		if err != nil {
			return nil, pos, err
		}
		cur.Add(cond)
		if !p.peekIs(next, lexer.TokenRParen) {
			step, n, err := p.expression(next)
			if err != nil {
				return nil, pos, err
			}
			cur.Add(step)
			next = n
		}
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		body, next, err := p.statement(next + 1)
		if err != nil {
			return nil, pos, err
		}
		cur.Add(body)
		return cur, next, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "iteration statement"}
}

// jumpStatement parses goto, continue, break, and return.
func (p *Parser) jumpStatement(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	switch p.toks[pos].Type {
	case lexer.TokenGoto:
		if err := p.expect(pos+1, lexer.TokenIdent); err != nil {
			return nil, pos, err
		}
		if err := p.expect(pos+2, lexer.TokenSemicolon); err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.JumpStatement{Keyword: "goto", Label: p.toks[pos+1].Literal})
		cur.Type = symtable.New(symtable.None())
		return cur, pos + 3, nil
	case lexer.TokenContinue, lexer.TokenBreak:
		if err := p.expect(pos+1, lexer.TokenSemicolon); err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.JumpStatement{Keyword: p.toks[pos].Type.String()})
		cur.Type = symtable.New(symtable.None())
		return cur, pos + 2, nil
	case lexer.TokenReturn:
		cur := ast.New(ast.JumpStatement{Keyword: "return"})
		if p.peekIs(pos+1, lexer.TokenSemicolon) {
			cur.Type = symtable.New(symtable.None())
			return cur, pos + 2, nil
		}
		expr, next, err := p.expression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenSemicolon); err != nil {
			return nil, pos, err
		}
		cur.Type = expr.Type
		cur.Add(expr)
		return cur, next + 1, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "jump statement"}
}
