package parser

import (
	"github.com/sysidos/crust/pkg/ast"
	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/sema"
	"github.com/sysidos/crust/pkg/symtable"
)

// identifier parses a plain IDENT. Its type is a named placeholder;
// resolution against declarations happens downstream.
func (p *Parser) identifier(pos int) (*ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenIdent); err != nil {
		return nil, pos, err
	}
	name := p.toks[pos].Literal
	node := ast.New(ast.Identifier{Name: name})
	node.Type = symtable.New(symtable.Identifier(name))
	return node, pos + 1, nil
}

// stringLiteral parses a string literal or __func__. The literal is
// typed as a char array of its unescaped length. __func__ stands in for
// the enclosing function's name, which is unknown until resolution, so
// it gets a fixed placeholder value.
func (p *Parser) stringLiteral(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	tok := p.toks[pos]
	var value string
	switch tok.Type {
	case lexer.TokenString:
		value = tok.Literal
	case lexer.TokenFuncName:
		value = "__func_name__"
	default:
		return nil, pos, &UnexpectedTokenError{Expected: "STRING", Found: tok, Pos: pos}
	}
	node := ast.New(ast.StringLiteral{Value: value})
	node.Type = symtable.TypeExpression{
		Val: []symtable.BaseType{symtable.Array(int64(len(value))), symtable.Char()},
	}
	return node, pos + 1, nil
}

// primaryExpression parses IDENT, a constant, a string literal, a
// parenthesized expression or a generic selection. Integer and character
// constants are typed long, floating constants double.
func (p *Parser) primaryExpression(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.PrimaryExpression{})
	tok := p.toks[pos]
	switch tok.Type {
	case lexer.TokenIdent:
		child, next, err := p.identifier(pos)
		if err != nil {
			return nil, pos, err
		}
		cur.Type = child.Type
		cur.Add(child)
		return cur, next, nil
	case lexer.TokenInt:
		child := ast.New(ast.IntConstant{Value: tok.IVal})
		child.Type = symtable.New(symtable.Long())
		cur.Type = child.Type
		cur.Add(child)
		return cur, pos + 1, nil
	case lexer.TokenFConst:
		child := ast.New(ast.FloatConstant{Value: tok.FVal})
		child.Type = symtable.New(symtable.Double())
		cur.Type = child.Type
		cur.Add(child)
		return cur, pos + 1, nil
	case lexer.TokenString, lexer.TokenFuncName:
		child, next, err := p.stringLiteral(pos)
		if err != nil {
			return nil, pos, err
		}
		cur.Type = child.Type
		cur.Add(child)
		return cur, next, nil
	case lexer.TokenLParen:
		expr, next, err := p.expression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		cur.Type = expr.Type
		cur.Add(expr)
		return cur, next + 1, nil
	case lexer.TokenGeneric:
		child, next, err := p.genericSelection(pos)
		if err != nil {
			return nil, pos, err
		}
		cur.Type = child.Type
		cur.Add(child)
		return cur, next, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "primary expression"}
}

// genericSelection parses
// _Generic ( assignment-expression , generic-assoc-list ).
func (p *Parser) genericSelection(pos int) (*ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenGeneric); err != nil {
		return nil, pos, err
	}
	if err := p.expect(pos+1, lexer.TokenLParen); err != nil {
		return nil, pos, err
	}
	ctrl, next, err := p.assignmentExpression(pos + 2)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenComma); err != nil {
		return nil, pos, err
	}
	assocs, next, err := p.genericAssocList(next + 1)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenRParen); err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.GenericSelection{})
	cur.Type = assocs.Type
	cur.Add(ctrl)
	cur.Add(assocs)
	return cur, next + 1, nil
}

func (p *Parser) genericAssocList(pos int) (*ast.Node, int, error) {
	return p.commaList(pos, ast.GenericAssocList{}, true, p.genericAssociation)
}

// genericAssociation parses ( type-name | default ) : assignment-expression.
// The association takes its expression's type.
func (p *Parser) genericAssociation(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.GenericAssociation{})
	if p.peekIs(pos, lexer.TokenDefault) {
		if err := p.expect(pos+1, lexer.TokenColon); err != nil {
			return nil, pos, err
		}
		expr, next, err := p.assignmentExpression(pos + 2)
		if err != nil {
			return nil, pos, err
		}
		cur.Type = expr.Type
		cur.Add(expr)
		return cur, next, nil
	}
	tn, next, err := p.typeName(pos)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenColon); err != nil {
		return nil, pos, err
	}
	expr, next, err := p.assignmentExpression(next + 1)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = expr.Type
	cur.Add(tn)
	cur.Add(expr)
	return cur, next, nil
}

// compoundLiteral parses ( type-name ) { initializer-list [,] } and
// returns the type name and initializer list.
func (p *Parser) compoundLiteral(pos int) (*ast.Node, *ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenLParen); err != nil {
		return nil, nil, pos, err
	}
	tn, next, err := p.typeName(pos + 1)
	if err != nil {
		return nil, nil, pos, err
	}
	if err := p.expect(next, lexer.TokenRParen); err != nil {
		return nil, nil, pos, err
	}
	if err := p.expect(next+1, lexer.TokenLBrace); err != nil {
		return nil, nil, pos, err
	}
	list, next, err := p.initializerList(next + 2)
	if err != nil {
		return nil, nil, pos, err
	}
	if p.peekIs(next, lexer.TokenComma) {
		next++
	}
	if err := p.expect(next, lexer.TokenRBrace); err != nil {
		return nil, nil, pos, err
	}
	return tn, list, next + 1, nil
}

// postfixExpression parses a compound literal or primary expression
// followed by any number of suffixes. A suffixed expression's type wraps
// the head type as a lone child; without suffixes the head type passes
// through unchanged.
func (p *Parser) postfixExpression(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.PostfixExpression{})
	var headType symtable.TypeExpression
	if tn, list, next, err := p.compoundLiteral(pos); err == nil {
		cur.Add(tn)
		cur.Add(list)
		headType = tn.Type
		pos = next
	} else {
		prim, next, err := p.primaryExpression(pos)
		if err != nil {
			return nil, pos, err
		}
		cur.Add(prim)
		headType = prim.Type
		pos = next
	}
	suffixed := false
	for {
		post, next, err := p.postfixExpressionPost(pos)
		if err != nil {
			break
		}
		cur.Add(post)
		pos = next
		suffixed = true
	}
	if suffixed {
		cur.Type = symtable.TypeExpression{Child: []symtable.TypeExpression{headType}}
	} else {
		cur.Type = headType
	}
	return cur, pos, nil
}

// postfixExpressionPost parses one postfix suffix: index, call, member
// access, arrow access, or post-increment/decrement.
func (p *Parser) postfixExpressionPost(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	switch t {
	case lexer.TokenLBracket:
		expr, next, err := p.expression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRBracket); err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.PostfixExpressionPost{Tok: t})
		cur.Type = expr.Type
		cur.Add(expr)
		return cur, next + 1, nil
	case lexer.TokenLParen:
		cur := ast.New(ast.PostfixExpressionPost{Tok: t})
		if p.peekIs(pos+1, lexer.TokenRParen) {
			return cur, pos + 2, nil
		}
		args, next, err := p.argumentExpressionList(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		cur.Type = args.Type
		cur.Add(args)
		return cur, next + 1, nil
	case lexer.TokenDot, lexer.TokenArrow:
		member, next, err := p.identifier(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.PostfixExpressionPost{Tok: t})
		cur.Add(member)
		return cur, next, nil
	case lexer.TokenIncrement, lexer.TokenDecrement:
		return ast.New(ast.PostfixExpressionPost{Tok: t}), pos + 1, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "postfix suffix"}
}

func (p *Parser) argumentExpressionList(pos int) (*ast.Node, int, error) {
	return p.commaList(pos, ast.ArgumentExpressionList{}, true, p.assignmentExpression)
}

// unaryExpression dispatches on the leading token: prefix ++/--, sizeof,
// _Alignof, one of the unary operators, or a postfix expression. Taking
// an address yields a pointer wrapping the operand type; dereferencing
// yields a pointer of unknown pointee until resolution; logical not
// yields long; the other operators keep the operand type.
func (p *Parser) unaryExpression(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	switch t {
	case lexer.TokenIncrement, lexer.TokenDecrement:
		child, next, err := p.unaryExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.UnaryExpression{Op: t, HasOp: true})
		cur.Type = child.Type
		cur.Add(child)
		return cur, next, nil
	case lexer.TokenSizeof:
		cur := ast.New(ast.UnaryExpression{Op: t, HasOp: true})
		cur.Type = symtable.New(symtable.SizeT())
		if p.peekIs(pos+1, lexer.TokenLParen) {
			if tn, next, err := p.typeName(pos + 2); err == nil && p.peekIs(next, lexer.TokenRParen) {
				cur.Add(tn)
				return cur, next + 1, nil
			}
		}
		child, next, err := p.unaryExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		cur.Add(child)
		return cur, next, nil
	case lexer.TokenAlignof:
		if err := p.expect(pos+1, lexer.TokenLParen); err != nil {
			return nil, pos, err
		}
		tn, next, err := p.typeName(pos + 2)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.UnaryExpression{Op: t, HasOp: true})
		cur.Type = symtable.New(symtable.SizeT())
		cur.Add(tn)
		return cur, next + 1, nil
	case lexer.TokenAmpersand, lexer.TokenStar, lexer.TokenPlus,
		lexer.TokenMinus, lexer.TokenTilde, lexer.TokenNot:
		child, next, err := p.castExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.UnaryExpression{Op: t, HasOp: true})
		switch t {
		case lexer.TokenAmpersand:
			cur.Type = symtable.TypeExpression{
				Val:   []symtable.BaseType{symtable.Pointer()},
				Child: []symtable.TypeExpression{child.Type},
			}
		case lexer.TokenStar:
			cur.Type = symtable.TypeExpression{
				Val: []symtable.BaseType{symtable.Pointer(), symtable.VoidPointer()},
			}
		case lexer.TokenNot:
			cur.Type = symtable.New(symtable.Long())
		default:
			cur.Type = child.Type
		}
		cur.Add(ast.New(ast.UnaryOperator{Op: t}))
		cur.Add(child)
		return cur, next, nil
	}
	child, next, err := p.postfixExpression(pos)
	if err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.UnaryExpression{})
	cur.Type = child.Type
	cur.Add(child)
	return cur, next, nil
}

// castExpression parses ( type-name ) cast-expression or falls back to
// a unary expression. An illegal cast fails the parse rather than
// backtracking: the shape already committed to being a cast.
func (p *Parser) castExpression(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	if p.peekIs(pos, lexer.TokenLParen) {
		if tn, next, err := p.typeName(pos + 1); err == nil && p.peekIs(next, lexer.TokenRParen) {
			if inner, end, err := p.castExpression(next + 1); err == nil {
				if !sema.CastIsLegal(tn.Type, inner.Type) {
					return nil, pos, &CastError{From: inner.Type, To: tn.Type}
				}
				cur := ast.New(ast.CastExpression{})
				cur.Type = tn.Type
				cur.Add(tn)
				cur.Add(inner)
				return cur, end, nil
			}
		}
	}
	child, next, err := p.unaryExpression(pos)
	if err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.CastExpression{})
	cur.Type = child.Type
	cur.Add(child)
	return cur, next, nil
}

// binaryLevel folds one precedence level left-associatively. Each fold
// step combines the operand types through sema; failure to combine is a
// parse error at the operator. With no operator present the wrapper
// simply inherits its single child's type.
func (p *Parser) binaryLevel(pos int, kind ast.Kind, operand ruleFn, ops ...lexer.TokenType) (*ast.Node, int, error) {
	left, pos, err := operand(pos)
	if err != nil {
		return nil, pos, err
	}
	for p.peekAny(pos, ops) {
		op := p.toks[pos].Type
		right, next, err := operand(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		combined, ok := sema.Combine(left.Type, right.Type, op)
		if !ok {
			return nil, pos, &TypeCombinationError{Left: left.Type, Right: right.Type, Op: op}
		}
		bin := ast.New(ast.BinaryExpression{Op: op})
		bin.Type = combined
		bin.Add(left)
		bin.Add(right)
		left = bin
		pos = next
	}
	cur := ast.New(kind)
	cur.Type = left.Type
	cur.Add(left)
	return cur, pos, nil
}

func (p *Parser) multiplicativeExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.MultiplicativeExpression{}, p.castExpression,
		lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent)
}

func (p *Parser) additiveExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.AdditiveExpression{}, p.multiplicativeExpression,
		lexer.TokenPlus, lexer.TokenMinus)
}

func (p *Parser) shiftExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.ShiftExpression{}, p.additiveExpression,
		lexer.TokenShl, lexer.TokenShr)
}

func (p *Parser) relationalExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.RelationalExpression{}, p.shiftExpression,
		lexer.TokenLt, lexer.TokenGt, lexer.TokenLe, lexer.TokenGe)
}

func (p *Parser) equalityExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.EqualityExpression{}, p.relationalExpression,
		lexer.TokenEq, lexer.TokenNe)
}

func (p *Parser) andExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.AndExpression{}, p.equalityExpression,
		lexer.TokenAmpersand)
}

func (p *Parser) exclusiveOrExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.ExclusiveOrExpression{}, p.andExpression,
		lexer.TokenCaret)
}

func (p *Parser) inclusiveOrExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.InclusiveOrExpression{}, p.exclusiveOrExpression,
		lexer.TokenPipe)
}

func (p *Parser) logicalAndExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.LogicalAndExpression{}, p.inclusiveOrExpression,
		lexer.TokenAnd)
}

func (p *Parser) logicalOrExpression(pos int) (*ast.Node, int, error) {
	return p.binaryLevel(pos, ast.LogicalOrExpression{}, p.logicalAndExpression,
		lexer.TokenOr)
}

// scalarCondTypes lists the types a ?: condition may have.
var scalarCondTypes = []symtable.TypeExpression{
	symtable.New(symtable.Int()),
	symtable.New(symtable.Bool()),
	symtable.New(symtable.Long()),
	symtable.New(symtable.Signed()),
	symtable.New(symtable.Unsigned()),
	symtable.New(symtable.Char()),
}

// conditionalExpression parses logical-or [ ? expression : conditional ].
// Both branches must have the same type, which becomes the result type.
func (p *Parser) conditionalExpression(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	cur := ast.New(ast.ConditionalExpression{})
	cond, pos, err := p.logicalOrExpression(pos)
	if err != nil {
		return nil, pos, err
	}
	if !p.peekIs(pos, lexer.TokenQuestion) {
		cur.Type = cond.Type
		cur.Add(cond)
		return cur, pos, nil
	}
	legal := false
	for _, t := range scalarCondTypes {
		if sema.Equal(cond.Type, t) {
			legal = true
			break
		}
	}
	if !legal {
		return nil, pos, &TypeCombinationError{Left: cond.Type, Op: lexer.TokenQuestion}
	}
	thenExpr, next, err := p.expression(pos + 1)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenColon); err != nil {
		return nil, pos, err
	}
	elseExpr, end, err := p.conditionalExpression(next + 1)
	if err != nil {
		return nil, pos, err
	}
	if !sema.Equal(thenExpr.Type, elseExpr.Type) {
		return nil, pos, &TypeCombinationError{Left: thenExpr.Type, Right: elseExpr.Type, Op: lexer.TokenColon}
	}
	cur.Type = elseExpr.Type
	cur.Add(cond)
	cur.Add(thenExpr)
	cur.Add(elseExpr)
	return cur, end, nil
}

var assignOps = []lexer.TokenType{
	lexer.TokenAssign, lexer.TokenStarAssign, lexer.TokenSlashAssign,
	lexer.TokenPercentAssign, lexer.TokenPlusAssign, lexer.TokenMinusAssign,
	lexer.TokenShlAssign, lexer.TokenShrAssign, lexer.TokenAndAssign,
	lexer.TokenXorAssign, lexer.TokenOrAssign,
}

func (p *Parser) assignmentOperator(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	if !p.peekAny(pos, assignOps) {
		return nil, pos, &UnexpectedTokenError{Expected: "assignment operator", Found: p.toks[pos], Pos: pos}
	}
	return ast.New(ast.AssignmentOperator{Op: p.toks[pos].Type}), pos + 1, nil
}

// assignmentExpression tries unary-expression assignment-operator
// assignment-expression first, checking that the right type converts
// implicitly to the left; otherwise it reparses from the start as a
// conditional expression.
func (p *Parser) assignmentExpression(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	cur := ast.New(ast.AssignmentExpression{})
	if left, next, err := p.unaryExpression(pos); err == nil {
		if op, next, err := p.assignmentOperator(next); err == nil {
			if right, end, err := p.assignmentExpression(next); err == nil {
				resolved, err := sema.ResolveImplicit(left.Type, right.Type)
				if err != nil {
					return nil, pos, &AssignmentError{Left: left.Type, Right: right.Type}
				}
				cur.Type = resolved
				cur.Add(left)
				cur.Add(op)
				cur.Add(right)
				return cur, end, nil
			}
		}
	}
	child, next, err := p.conditionalExpression(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = child.Type
	cur.Add(child)
	return cur, next, nil
}

// expression parses assignment-expression { , assignment-expression }.
// A comma expression takes the type of its last operand.
func (p *Parser) expression(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.Expression{})
	child, pos, err := p.assignmentExpression(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = child.Type
	cur.Add(child)
	for p.peekIs(pos, lexer.TokenComma) {
		child, next, err := p.assignmentExpression(pos + 1)
		if err != nil {
			break
		}
		cur.Type = child.Type
		cur.Add(child)
		pos = next
	}
	return cur, pos, nil
}

func (p *Parser) constantExpression(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.ConstantExpression{})
	child, next, err := p.conditionalExpression(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = child.Type
	cur.Add(child)
	return cur, next, nil
}
