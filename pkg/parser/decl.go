package parser

import (
	"github.com/sysidos/crust/pkg/ast"
	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/sema"
	"github.com/sysidos/crust/pkg/symtable"
)

// declaration parses declaration-specifiers [ init-declarator-list ] ;
// or a static assertion.
func (p *Parser) declaration(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.Declaration{})
	if sa, next, err := p.staticAssertDeclaration(pos); err == nil {
		cur.Type = sa.Type
		cur.Add(sa)
		return cur, next, nil
	}
	specs, next, err := p.declarationSpecifiers(pos)
	if err != nil {
		return nil, pos, err
	}
	if p.peekIs(next, lexer.TokenSemicolon) {
		cur.Type = specs.Type
		cur.Add(specs)
		return cur, next + 1, nil
	}
	list, next, err := p.initDeclaratorList(next)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenSemicolon); err != nil {
		return nil, pos, err
	}
	cur.Type.Child = append(cur.Type.Child, specs.Type, list.Type)
	cur.Add(specs)
	cur.Add(list)
	return cur, next + 1, nil
}

// declarationSpecifiers parses one specifier optionally followed by more.
// Multiple specifiers pair up as type children; a single one passes its
// type through.
func (p *Parser) declarationSpecifiers(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.DeclarationSpecifiers{})
	first, next, err := p.declarationSpecifier(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Add(first)
	if rest, end, err := p.declarationSpecifiers(next); err == nil {
		cur.Type.Child = append(cur.Type.Child, first.Type, rest.Type)
		cur.Add(rest)
		return cur, end, nil
	}
	cur.Type = first.Type
	return cur, next, nil
}

func (p *Parser) declarationSpecifier(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	if p.peekIs(pos, lexer.TokenTypedef) {
		return nil, pos, &UnsupportedError{Feature: "typedef"}
	}
	if n, next, err := p.storageClassSpecifier(pos); err == nil {
		return n, next, nil
	}
	if n, next, err := p.typeSpecifier(pos); err == nil {
		return n, next, nil
	}
	if n, next, err := p.typeQualifier(pos); err == nil {
		return n, next, nil
	}
	if n, next, err := p.functionSpecifier(pos); err == nil {
		return n, next, nil
	}
	if n, next, err := p.alignmentSpecifier(pos); err == nil {
		return n, next, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "declaration specifier"}
}

func (p *Parser) initDeclaratorList(pos int) (*ast.Node, int, error) {
	return p.commaList(pos, ast.InitDeclaratorList{}, true, p.initDeclarator)
}

// initDeclarator parses declarator [ = initializer ]. The initializer
// type must match the declarator's; placeholders pass, so the check
// mainly rejects structurally incompatible shapes.
func (p *Parser) initDeclarator(pos int) (*ast.Node, int, error) {
	decl, next, err := p.declarator(pos)
	if err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.InitDeclarator{})
	cur.Type = decl.Type
	cur.Add(decl)
	if !p.peekIs(next, lexer.TokenAssign) {
		return cur, next, nil
	}
	init, next, err := p.initializer(next + 1)
	if err != nil {
		return nil, pos, err
	}
	if !sema.Equal(decl.Type, init.Type) {
		return nil, pos, &AssignmentError{Left: decl.Type, Right: init.Type}
	}
	cur.Add(init)
	return cur, next, nil
}

var storageTags = map[lexer.TokenType]symtable.BaseType{
	lexer.TokenExtern:      symtable.Textern{},
	lexer.TokenStatic:      symtable.Tstatic{},
	lexer.TokenThreadLocal: symtable.TthreadLocal{},
	lexer.TokenAuto:        symtable.Tauto{},
	lexer.TokenRegister:    symtable.Tregister{},
}

// storageClassSpecifier parses extern/static/_Thread_local/auto/register.
// typedef is recognized but rejected: the parser has no symbol table to
// feed typedef names back into the grammar.
func (p *Parser) storageClassSpecifier(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	if t == lexer.TokenTypedef {
		return nil, pos, &UnsupportedError{Feature: "typedef"}
	}
	tag, ok := storageTags[t]
	if !ok {
		return nil, pos, &UnexpectedTokenError{Expected: "storage class specifier", Found: p.toks[pos], Pos: pos}
	}
	n := ast.New(ast.StorageClassSpecifier{Tok: t})
	n.Type = symtable.New(tag)
	return n, pos + 1, nil
}

var typeSpecTags = map[lexer.TokenType]symtable.BaseType{
	lexer.TokenVoid:      symtable.Tvoid{},
	lexer.TokenChar:      symtable.Tchar{},
	lexer.TokenShort:     symtable.Tshort{},
	lexer.TokenInt_:      symtable.Tint{},
	lexer.TokenLong:      symtable.Tlong{},
	lexer.TokenFloat:     symtable.Tfloat{},
	lexer.TokenDouble:    symtable.Tdouble{},
	lexer.TokenSigned:    symtable.Tsigned{},
	lexer.TokenUnsigned:  symtable.Tunsigned{},
	lexer.TokenBool:      symtable.Tbool{},
	lexer.TokenComplex:   symtable.Tcomplex{},
	lexer.TokenImaginary: symtable.Timaginary{},
}

// typeSpecifier parses a single type-specifier keyword, an atomic type
// specifier, a struct/union specifier or an enum specifier.
func (p *Parser) typeSpecifier(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	if tag, ok := typeSpecTags[t]; ok {
		n := ast.New(ast.TypeSpecifier{Tok: t})
		n.Type = symtable.New(tag)
		return n, pos + 1, nil
	}
	switch t {
	case lexer.TokenAtomic:
		child, next, err := p.atomicTypeSpecifier(pos)
		if err != nil {
			return nil, pos, err
		}
		n := ast.New(ast.TypeSpecifier{Tok: t})
		n.Type = child.Type
		n.Add(child)
		return n, next, nil
	case lexer.TokenStruct, lexer.TokenUnion:
		child, next, err := p.structOrUnionSpecifier(pos)
		if err != nil {
			return nil, pos, err
		}
		n := ast.New(ast.TypeSpecifier{Tok: t})
		n.Type = child.Type
		n.Add(child)
		return n, next, nil
	case lexer.TokenEnum:
		child, next, err := p.enumSpecifier(pos)
		if err != nil {
			return nil, pos, err
		}
		n := ast.New(ast.TypeSpecifier{Tok: t})
		n.Type = child.Type
		n.Add(child)
		return n, next, nil
	}
	return nil, pos, &UnexpectedTokenError{Expected: "type specifier", Found: p.toks[pos], Pos: pos}
}

// structOrUnionSpecifier parses struct-or-union followed by a tag, a
// member list, or both.
func (p *Parser) structOrUnionSpecifier(pos int) (*ast.Node, int, error) {
	su, next, err := p.structOrUnion(pos)
	if err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.StructOrUnionSpecifier{})
	cur.Type = su.Type
	cur.Add(su)
	if p.peekIs(next, lexer.TokenLBrace) {
		list, next, err := p.structDeclarationList(next + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRBrace); err != nil {
			return nil, pos, err
		}
		cur.Add(list)
		return cur, next + 1, nil
	}
	name, next, err := p.identifier(next)
	if err != nil {
		return nil, pos, err
	}
	cur.Add(name)
	if p.peekIs(next, lexer.TokenLBrace) {
		list, next, err := p.structDeclarationList(next + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRBrace); err != nil {
			return nil, pos, err
		}
		cur.Add(list)
		return cur, next + 1, nil
	}
	return cur, next, nil
}

func (p *Parser) structOrUnion(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	switch t {
	case lexer.TokenStruct:
		n := ast.New(ast.StructOrUnion{Tok: t})
		n.Type = symtable.New(symtable.Tstruct{})
		return n, pos + 1, nil
	case lexer.TokenUnion:
		n := ast.New(ast.StructOrUnion{Tok: t})
		n.Type = symtable.New(symtable.Tunion{})
		return n, pos + 1, nil
	}
	return nil, pos, &UnexpectedTokenError{Expected: "struct or union", Found: p.toks[pos], Pos: pos}
}

func (p *Parser) structDeclarationList(pos int) (*ast.Node, int, error) {
	return p.repetition(pos, ast.StructDeclarationList{}, true, p.structDeclaration)
}

// structDeclaration parses one member declaration or a static assertion.
func (p *Parser) structDeclaration(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.StructDeclaration{})
	if sa, next, err := p.staticAssertDeclaration(pos); err == nil {
		cur.Type = sa.Type
		cur.Add(sa)
		return cur, next, nil
	}
	specs, next, err := p.specifierQualifierList(pos)
	if err != nil {
		return nil, pos, err
	}
	if p.peekIs(next, lexer.TokenSemicolon) {
		cur.Type = specs.Type
		cur.Add(specs)
		return cur, next + 1, nil
	}
	list, next, err := p.structDeclaratorList(next)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenSemicolon); err != nil {
		return nil, pos, err
	}
	cur.Type.Child = append(cur.Type.Child, specs.Type, list.Type)
	cur.Add(specs)
	cur.Add(list)
	return cur, next + 1, nil
}

// specifierQualifierList is declarationSpecifiers restricted to type
// specifiers and qualifiers.
func (p *Parser) specifierQualifierList(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.SpecifierQualifierList{})
	first, next, err := p.typeSpecifierOrQualifier(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Add(first)
	if rest, end, err := p.specifierQualifierList(next); err == nil {
		cur.Type.Child = append(cur.Type.Child, first.Type, rest.Type)
		cur.Add(rest)
		return cur, end, nil
	}
	cur.Type = first.Type
	return cur, next, nil
}

func (p *Parser) typeSpecifierOrQualifier(pos int) (*ast.Node, int, error) {
	if n, next, err := p.typeSpecifier(pos); err == nil {
		return n, next, nil
	}
	if n, next, err := p.typeQualifier(pos); err == nil {
		return n, next, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "specifier qualifier"}
}

func (p *Parser) structDeclaratorList(pos int) (*ast.Node, int, error) {
	return p.commaList(pos, ast.StructDeclaratorList{}, true, p.structDeclarator)
}

// structDeclarator parses a member declarator with an optional bit-field
// width, or a width alone for an anonymous field.
func (p *Parser) structDeclarator(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.StructDeclarator{})
	if p.peekIs(pos, lexer.TokenColon) {
		width, next, err := p.constantExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		cur.Type = width.Type
		cur.Add(width)
		return cur, next, nil
	}
	decl, next, err := p.declarator(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = decl.Type
	cur.Add(decl)
	if p.peekIs(next, lexer.TokenColon) {
		width, end, err := p.constantExpression(next + 1)
		if err != nil {
			return nil, pos, err
		}
		cur.Add(width)
		next = end
	}
	return cur, next, nil
}

// enumSpecifier parses enum [ tag ] [ { enumerator-list [,] } ]. At
// least one of tag and body must be present. Enums are int-typed.
func (p *Parser) enumSpecifier(pos int) (*ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenEnum); err != nil {
		return nil, pos, err
	}
	name := ""
	next := pos + 1
	if p.peekIs(next, lexer.TokenIdent) {
		name = p.toks[next].Literal
		next++
	}
	cur := ast.New(ast.EnumSpecifier{Name: name})
	cur.Type = symtable.New(symtable.Int())
	if p.peekIs(next, lexer.TokenLBrace) {
		list, end, err := p.enumeratorList(next + 1)
		if err != nil {
			return nil, pos, err
		}
		if p.peekIs(end, lexer.TokenComma) {
			end++
		}
		if err := p.expect(end, lexer.TokenRBrace); err != nil {
			return nil, pos, err
		}
		cur.Add(list)
		return cur, end + 1, nil
	}
	if name == "" {
		return nil, pos, p.expectFailure(next, "{")
	}
	return cur, next, nil
}

// expectFailure builds the error expect would report, for rules that
// already know the position cannot satisfy them.
func (p *Parser) expectFailure(pos int, what string) error {
	if err := p.checkPos(pos); err != nil {
		return err
	}
	return &UnexpectedTokenError{Expected: what, Found: p.toks[pos], Pos: pos}
}

func (p *Parser) enumeratorList(pos int) (*ast.Node, int, error) {
	return p.commaList(pos, ast.EnumeratorList{}, false, p.enumerator)
}

// enumValueTypes lists the types an explicit enumerator value may have.
var enumValueTypes = []symtable.TypeExpression{
	symtable.New(symtable.Int()),
	symtable.New(symtable.Bool()),
	symtable.New(symtable.Long()),
	symtable.New(symtable.Signed()),
	symtable.New(symtable.Unsigned()),
}

// enumerator parses enumeration-constant [ = constant-expression ]. An
// explicit value must be integer-typed.
func (p *Parser) enumerator(pos int) (*ast.Node, int, error) {
	name, next, err := p.enumerationConstant(pos)
	if err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.Enumerator{})
	cur.Type = symtable.New(symtable.Int())
	cur.Add(name)
	if !p.peekIs(next, lexer.TokenAssign) {
		return cur, next, nil
	}
	val, end, err := p.constantExpression(next + 1)
	if err != nil {
		return nil, pos, err
	}
	legal := false
	for _, t := range enumValueTypes {
		if sema.Equal(val.Type, t) {
			legal = true
			break
		}
	}
	if !legal {
		return nil, pos, &AssignmentError{Left: symtable.New(symtable.Int()), Right: val.Type}
	}
	cur.Add(val)
	return cur, end, nil
}

func (p *Parser) enumerationConstant(pos int) (*ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenIdent); err != nil {
		return nil, pos, err
	}
	n := ast.New(ast.EnumerationConstant{Name: p.toks[pos].Literal})
	n.Type = symtable.New(symtable.Int())
	return n, pos + 1, nil
}

// atomicTypeSpecifier parses _Atomic ( type-name ).
func (p *Parser) atomicTypeSpecifier(pos int) (*ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenAtomic); err != nil {
		return nil, pos, err
	}
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
	cur := ast.New(ast.AtomicTypeSpecifier{})
	cur.Type = symtable.TypeExpression{
		Val:   []symtable.BaseType{symtable.Tatomic{}},
		Child: []symtable.TypeExpression{tn.Type},
	}
	cur.Add(tn)
	return cur, next + 1, nil
}

var qualifierTags = map[lexer.TokenType]symtable.BaseType{
	lexer.TokenConst:    symtable.Tconst{},
	lexer.TokenRestrict: symtable.Trestrict{},
	lexer.TokenVolatile: symtable.Tvolatile{},
	lexer.TokenAtomic:   symtable.Tatomic{},
}

func (p *Parser) typeQualifier(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	tag, ok := qualifierTags[t]
	if !ok {
		return nil, pos, &UnexpectedTokenError{Expected: "type qualifier", Found: p.toks[pos], Pos: pos}
	}
	n := ast.New(ast.TypeQualifier{Tok: t})
	n.Type = symtable.New(tag)
	return n, pos + 1, nil
}

func (p *Parser) functionSpecifier(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	var tag symtable.BaseType
	switch t {
	case lexer.TokenInline:
		tag = symtable.Tinline{}
	case lexer.TokenNoreturn:
		tag = symtable.Tnoreturn{}
	default:
		return nil, pos, &UnexpectedTokenError{Expected: "function specifier", Found: p.toks[pos], Pos: pos}
	}
	n := ast.New(ast.FunctionSpecifier{Tok: t})
	n.Type = symtable.New(tag)
	return n, pos + 1, nil
}

// alignmentSpecifier parses _Alignas ( type-name | constant-expression ).
func (p *Parser) alignmentSpecifier(pos int) (*ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenAlignas); err != nil {
		return nil, pos, err
	}
	if err := p.expect(pos+1, lexer.TokenLParen); err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.AlignmentSpecifier{})
	if tn, next, err := p.typeName(pos + 2); err == nil {
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		cur.Type = tn.Type
		cur.Add(tn)
		return cur, next + 1, nil
	}
	ce, next, err := p.constantExpression(pos + 2)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenRParen); err != nil {
		return nil, pos, err
	}
	cur.Type = ce.Type
	cur.Add(ce)
	return cur, next + 1, nil
}

// declarator parses [ pointer ] direct-declarator. A pointer declarator
// pairs the pointer and direct types as children.
func (p *Parser) declarator(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	cur := ast.New(ast.Declarator{})
	ptr, next, err := p.pointer(pos)
	if err == nil {
		direct, end, err := p.directDeclarator(next)
		if err != nil {
			return nil, pos, err
		}
		cur.Type.Child = append(cur.Type.Child, ptr.Type, direct.Type)
		cur.Add(ptr)
		cur.Add(direct)
		return cur, end, nil
	}
	direct, next, err := p.directDeclarator(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = direct.Type
	cur.Add(direct)
	return cur, next, nil
}

// directDeclarator parses IDENT or ( declarator ), followed by any
// array/function suffixes.
func (p *Parser) directDeclarator(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.DirectDeclarator{})
	var head *ast.Node
	if p.peekIs(pos, lexer.TokenLParen) {
		if inner, next, err := p.declarator(pos + 1); err == nil {
			if err := p.expect(next, lexer.TokenRParen); err != nil {
				return nil, pos, err
			}
			head = inner
			pos = next + 1
		}
	}
	if head == nil {
		id, next, err := p.identifier(pos)
		if err != nil {
			return nil, pos, err
		}
		head = id
		pos = next
	}
	cur.Add(head)
	if posts, next, err := p.directDeclaratorPostList(pos); err == nil {
		cur.Type.Child = append(cur.Type.Child, head.Type, posts.Type)
		cur.Add(posts)
		return cur, next, nil
	}
	cur.Type = head.Type
	return cur, pos, nil
}

func (p *Parser) directDeclaratorPostList(pos int) (*ast.Node, int, error) {
	return p.repetition(pos, ast.DirectDeclaratorPostList{}, true, p.directDeclaratorPost)
}

// intConstValue digs through single-child wrapper nodes for an integer
// constant, used to size array declarators.
func intConstValue(n *ast.Node) (int64, bool) {
	for n != nil {
		if k, ok := n.Kind.(ast.IntConstant); ok {
			return k.Value, true
		}
		if len(n.Children) != 1 {
			return 0, false
		}
		n = n.Children[0]
	}
	return 0, false
}

// directDeclaratorPost parses one declarator suffix: an array dimension
// or a function parameter clause.
func (p *Parser) directDeclaratorPost(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	switch t {
	case lexer.TokenLBracket:
		cur := ast.New(ast.DirectDeclaratorPost{Tok: t})
		if p.peekIs(pos+1, lexer.TokenRBracket) {
			cur.Type = symtable.New(symtable.Array(-1))
			return cur, pos + 2, nil
		}
		size, next, err := p.assignmentExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRBracket); err != nil {
			return nil, pos, err
		}
		n, ok := intConstValue(size)
		if !ok {
			n = -1
		}
		cur.Type = symtable.New(symtable.Array(n))
		cur.Add(size)
		return cur, next + 1, nil
	case lexer.TokenLParen:
		cur := ast.New(ast.DirectDeclaratorPost{Tok: t})
		if p.peekIs(pos+1, lexer.TokenRParen) {
			cur.Type = symtable.New(symtable.Tfunction{})
			return cur, pos + 2, nil
		}
		if params, next, err := p.parameterTypeList(pos + 1); err == nil {
			if err := p.expect(next, lexer.TokenRParen); err != nil {
				return nil, pos, err
			}
			cur.Type = symtable.TypeExpression{
				Val:   []symtable.BaseType{symtable.Tfunction{}},
				Child: []symtable.TypeExpression{params.Type},
			}
			cur.Add(params)
			return cur, next + 1, nil
		}
		ids, next, err := p.identifierList(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		cur.Type = symtable.TypeExpression{
			Val:   []symtable.BaseType{symtable.Tfunction{}},
			Child: []symtable.TypeExpression{ids.Type},
		}
		cur.Add(ids)
		return cur, next + 1, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "declarator suffix"}
}

// pointer parses * [ type-qualifier-list ] [ pointer ], right-recursive.
func (p *Parser) pointer(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	if err := p.expect(pos, lexer.TokenStar); err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.Pointer{})
	cur.Type.Val = append(cur.Type.Val, symtable.Pointer())
	pos++
	if quals, next, err := p.typeQualifierList(pos); err == nil {
		cur.Type.Child = append(cur.Type.Child, quals.Type)
		cur.Add(quals)
		pos = next
	}
	if inner, next, err := p.pointer(pos); err == nil {
		cur.Type.Child = append(cur.Type.Child, inner.Type)
		cur.Add(inner)
		pos = next
	}
	return cur, pos, nil
}

func (p *Parser) typeQualifierList(pos int) (*ast.Node, int, error) {
	return p.repetition(pos, ast.TypeQualifierList{}, false, p.typeQualifier)
}

// parameterTypeList parses parameter-list [ , ... ]. A variadic list
// marks itself with a trailing variadic tag in its type.
func (p *Parser) parameterTypeList(pos int) (*ast.Node, int, error) {
	params, next, err := p.parameterList(pos)
	if err != nil {
		return nil, pos, err
	}
	variadic := false
	if p.peekIs(next, lexer.TokenComma) && p.peekIs(next+1, lexer.TokenEllipsis) {
		variadic = true
		next += 2
	}
	cur := ast.New(ast.ParameterTypeList{Variadic: variadic})
	cur.Type = params.Type
	if variadic {
		vals := make([]symtable.BaseType, 0, len(params.Type.Val)+1)
		vals = append(vals, params.Type.Val...)
		cur.Type.Val = append(vals, symtable.TvaList{})
	}
	cur.Add(params)
	return cur, next, nil
}

func (p *Parser) parameterList(pos int) (*ast.Node, int, error) {
	return p.commaList(pos, ast.ParameterList{}, false, p.parameterDeclaration)
}

// parameterDeclaration parses declaration-specifiers followed by a
// declarator, an abstract declarator, or nothing.
func (p *Parser) parameterDeclaration(pos int) (*ast.Node, int, error) {
	cur := ast.New(ast.ParameterDeclaration{})
	specs, next, err := p.declarationSpecifiers(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Add(specs)
	if decl, end, err := p.declarator(next); err == nil {
		cur.Type.Child = append(cur.Type.Child, specs.Type, decl.Type)
		cur.Add(decl)
		return cur, end, nil
	}
	if decl, end, err := p.abstractDeclarator(next); err == nil {
		cur.Type.Child = append(cur.Type.Child, specs.Type, decl.Type)
		cur.Add(decl)
		return cur, end, nil
	}
	cur.Type = specs.Type
	return cur, next, nil
}

func (p *Parser) identifierList(pos int) (*ast.Node, int, error) {
	return p.commaList(pos, ast.IdentifierList{}, true, p.identifier)
}

// typeName parses specifier-qualifier-list [ abstract-declarator ]. With
// an abstract declarator the declarator's shape leads and the specifiers
// become the pointee or element type, so a cast to a pointer type is
// recognizably pointer-typed.
func (p *Parser) typeName(pos int) (*ast.Node, int, error) {
	specs, next, err := p.specifierQualifierList(pos)
	if err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.TypeName{})
	cur.Add(specs)
	if abs, end, err := p.abstractDeclarator(next); err == nil {
		cur.Type = symtable.TypeExpression{
			Val:   abs.Type.Val,
			Child: []symtable.TypeExpression{specs.Type},
		}
		cur.Add(abs)
		return cur, end, nil
	}
	cur.Type = specs.Type
	return cur, next, nil
}

// abstractDeclarator parses pointer, direct-abstract-declarator, or
// pointer direct-abstract-declarator.
func (p *Parser) abstractDeclarator(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	cur := ast.New(ast.AbstractDeclarator{})
	if ptr, next, err := p.pointer(pos); err == nil {
		if direct, end, err := p.directAbstractDeclarator(next); err == nil {
			cur.Type = symtable.TypeExpression{
				Val:   ptr.Type.Val,
				Child: []symtable.TypeExpression{direct.Type},
			}
			cur.Add(ptr)
			cur.Add(direct)
			return cur, end, nil
		}
		cur.Type = ptr.Type
		cur.Add(ptr)
		return cur, next, nil
	}
	direct, next, err := p.directAbstractDeclarator(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = direct.Type
	cur.Add(direct)
	return cur, next, nil
}

func (p *Parser) directAbstractDeclarator(pos int) (*ast.Node, int, error) {
	return p.repetition(pos, ast.DirectAbstractDeclarator{}, true, p.directAbstractDeclaratorBlock)
}

// directAbstractDeclaratorBlock parses one abstract declarator block: a
// parenthesized abstract declarator, a parameter clause, or an array
// dimension.
func (p *Parser) directAbstractDeclaratorBlock(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	t := p.toks[pos].Type
	switch t {
	case lexer.TokenLParen:
		cur := ast.New(ast.DirectAbstractDeclaratorBlock{Tok: t})
		if p.peekIs(pos+1, lexer.TokenRParen) {
			cur.Type = symtable.New(symtable.Tfunction{})
			return cur, pos + 2, nil
		}
		if abs, next, err := p.abstractDeclarator(pos + 1); err == nil && p.peekIs(next, lexer.TokenRParen) {
			cur.Type = abs.Type
			cur.Add(abs)
			return cur, next + 1, nil
		}
		params, next, err := p.parameterTypeList(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRParen); err != nil {
			return nil, pos, err
		}
		cur.Type = symtable.TypeExpression{
			Val:   []symtable.BaseType{symtable.Tfunction{}},
			Child: []symtable.TypeExpression{params.Type},
		}
		cur.Add(params)
		return cur, next + 1, nil
	case lexer.TokenLBracket:
		cur := ast.New(ast.DirectAbstractDeclaratorBlock{Tok: t})
		if p.peekIs(pos+1, lexer.TokenRBracket) {
			cur.Type = symtable.New(symtable.Array(-1))
			return cur, pos + 2, nil
		}
		size, next, err := p.assignmentExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRBracket); err != nil {
			return nil, pos, err
		}
		n, ok := intConstValue(size)
		if !ok {
			n = -1
		}
		cur.Type = symtable.New(symtable.Array(n))
		cur.Add(size)
		return cur, next + 1, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "abstract declarator block"}
}

// initializer parses assignment-expression or a braced initializer list
// with an optional trailing comma.
func (p *Parser) initializer(pos int) (*ast.Node, int, error) {
	if err := p.enter(); err != nil {
		return nil, pos, err
	}
	defer p.leave()
	cur := ast.New(ast.Initializer{})
	if p.peekIs(pos, lexer.TokenLBrace) {
		list, next, err := p.initializerList(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if p.peekIs(next, lexer.TokenComma) {
			next++
		}
		if err := p.expect(next, lexer.TokenRBrace); err != nil {
			return nil, pos, err
		}
		cur.Type = list.Type
		cur.Add(list)
		return cur, next + 1, nil
	}
	child, next, err := p.assignmentExpression(pos)
	if err != nil {
		return nil, pos, err
	}
	cur.Type = child.Type
	cur.Add(child)
	return cur, next, nil
}

func (p *Parser) initializerList(pos int) (*ast.Node, int, error) {
	return p.commaList(pos, ast.InitializerList{}, true, p.initializerItem)
}

// initializerItem parses [ designation ] initializer.
func (p *Parser) initializerItem(pos int) (*ast.Node, int, error) {
	if des, next, err := p.designation(pos); err == nil {
		init, end, err := p.initializer(next)
		if err != nil {
			return nil, pos, err
		}
		cur := ast.New(ast.Initializer{})
		cur.Type = init.Type
		cur.Add(des)
		cur.Add(init)
		return cur, end, nil
	}
	return p.initializer(pos)
}

// designation parses designator-list =.
func (p *Parser) designation(pos int) (*ast.Node, int, error) {
	list, next, err := p.designatorList(pos)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenAssign); err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.Designation{})
	cur.Type = list.Type
	cur.Add(list)
	return cur, next + 1, nil
}

func (p *Parser) designatorList(pos int) (*ast.Node, int, error) {
	return p.repetition(pos, ast.DesignatorList{}, true, p.designator)
}

// designator parses [ constant-expression ] or . identifier.
func (p *Parser) designator(pos int) (*ast.Node, int, error) {
	if err := p.checkPos(pos); err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.Designator{})
	switch p.toks[pos].Type {
	case lexer.TokenLBracket:
		ce, next, err := p.constantExpression(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		if err := p.expect(next, lexer.TokenRBracket); err != nil {
			return nil, pos, err
		}
		cur.Type = ce.Type
		cur.Add(ce)
		return cur, next + 1, nil
	case lexer.TokenDot:
		id, next, err := p.identifier(pos + 1)
		if err != nil {
			return nil, pos, err
		}
		cur.Type = id.Type
		cur.Add(id)
		return cur, next, nil
	}
	return nil, pos, &NoAlternativeError{Rule: "designator"}
}

// staticAssertDeclaration parses
// _Static_assert ( constant-expression , string-literal ) ;
func (p *Parser) staticAssertDeclaration(pos int) (*ast.Node, int, error) {
	if err := p.expect(pos, lexer.TokenStaticAssert); err != nil {
		return nil, pos, err
	}
	if err := p.expect(pos+1, lexer.TokenLParen); err != nil {
		return nil, pos, err
	}
	ce, next, err := p.constantExpression(pos + 2)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenComma); err != nil {
		return nil, pos, err
	}
	msg, next, err := p.stringLiteral(next + 1)
	if err != nil {
		return nil, pos, err
	}
	if err := p.expect(next, lexer.TokenRParen); err != nil {
		return nil, pos, err
	}
	if err := p.expect(next+1, lexer.TokenSemicolon); err != nil {
		return nil, pos, err
	}
	cur := ast.New(ast.StaticAssertDeclaration{})
	cur.Type = symtable.New(symtable.None())
	cur.Add(ce)
	cur.Add(msg)
	return cur, next + 2, nil
}
