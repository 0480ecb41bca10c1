// Package ast defines the typed parse tree: one Node per recognized
// grammar construct, tagged with a Kind variant carrying the payload its
// production needs, plus the node's computed type expression.
package ast

import (
	"fmt"

	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/symtable"
)

// Kind identifies which production built a node.
type Kind interface {
	implNodeKind()
	String() string
}

// Node is one parse-tree node. Children are exclusively owned by their
// parent; the tree has no sharing and no cycles. Type is always set on a
// node returned from a successful parse.
type Node struct {
	Kind     Kind
	Children []*Node
	Type     symtable.TypeExpression
}

// New returns a node of the given kind with no children and no type.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Add appends a child node.
func (n *Node) Add(child *Node) {
	n.Children = append(n.Children, child)
}

// Structural kinds.
type TranslationUnit struct{}
type ExternalDeclaration struct{}
type FunctionDefinition struct{}
type DeclarationList struct{}
type Declaration struct{}
type DeclarationSpecifiers struct{}
type InitDeclaratorList struct{}
type InitDeclarator struct{}
type StructOrUnionSpecifier struct{}
type StructDeclarationList struct{}
type StructDeclaration struct{}
type SpecifierQualifierList struct{}
type StructDeclaratorList struct{}
type StructDeclarator struct{}
type EnumeratorList struct{}
type Enumerator struct{}
type AtomicTypeSpecifier struct{}
type AlignmentSpecifier struct{}
type Declarator struct{}
type DirectDeclarator struct{}
type DirectDeclaratorPostList struct{}
type Pointer struct{}
type TypeQualifierList struct{}
type ParameterList struct{}
type ParameterDeclaration struct{}
type IdentifierList struct{}
type TypeName struct{}
type AbstractDeclarator struct{}
type DirectAbstractDeclarator struct{}
type Initializer struct{}
type InitializerList struct{}
type Designation struct{}
type DesignatorList struct{}
type Designator struct{}
type StaticAssertDeclaration struct{}
type Statement struct{}
type CompoundStatement struct{}
type BlockItemList struct{}
type BlockItem struct{}
type ExpressionStatement struct{}
type Expression struct{}
type AssignmentExpression struct{}
type ConditionalExpression struct{}
type ConstantExpression struct{}
type LogicalOrExpression struct{}
type LogicalAndExpression struct{}
type InclusiveOrExpression struct{}
type ExclusiveOrExpression struct{}
type AndExpression struct{}
type EqualityExpression struct{}
type RelationalExpression struct{}
type ShiftExpression struct{}
type AdditiveExpression struct{}
type MultiplicativeExpression struct{}
type CastExpression struct{}
type PostfixExpression struct{}
type PrimaryExpression struct{}
type ArgumentExpressionList struct{}
type GenericSelection struct{}
type GenericAssocList struct{}
type GenericAssociation struct{}

// Kinds carrying a payload.

// StorageClassSpecifier records one of typedef/extern/static/etc.
type StorageClassSpecifier struct{ Tok lexer.TokenType }

// TypeSpecifier records a single type-specifier keyword; an atomic type
// specifier is recorded as TokenAtomic with the detail in a child node.
type TypeSpecifier struct{ Tok lexer.TokenType }

// StructOrUnion records which of the two keywords introduced a specifier.
type StructOrUnion struct{ Tok lexer.TokenType }

// EnumSpecifier records the enum tag; empty for an anonymous enum.
type EnumSpecifier struct{ Name string }

// TypeQualifier records const/restrict/volatile/_Atomic.
type TypeQualifier struct{ Tok lexer.TokenType }

// FunctionSpecifier records inline/_Noreturn.
type FunctionSpecifier struct{ Tok lexer.TokenType }

// DirectDeclaratorPost records a declarator suffix, tagged by its opening
// punctuator ('[' or '(').
type DirectDeclaratorPost struct{ Tok lexer.TokenType }

// DirectAbstractDeclaratorBlock mirrors DirectDeclaratorPost for
// abstract declarators.
type DirectAbstractDeclaratorBlock struct{ Tok lexer.TokenType }

// ParameterTypeList records whether the list ends in an ellipsis.
type ParameterTypeList struct{ Variadic bool }

// LabeledStatement records the label name, or "case"/"default".
type LabeledStatement struct{ Label string }

// SelectionStatement records if/switch.
type SelectionStatement struct{ Tok lexer.TokenType }

// IterationStatement records while/do/for.
type IterationStatement struct{ Tok lexer.TokenType }

// JumpStatement records goto/continue/break/return, with the goto label.
type JumpStatement struct {
	Keyword string
	Label   string
}

// AssignmentOperator records which assignment operator was used.
type AssignmentOperator struct{ Op lexer.TokenType }

// BinaryExpression records the operator folded at a binary level.
type BinaryExpression struct{ Op lexer.TokenType }

// UnaryExpression records a prefix operator (++/--/sizeof), if any.
type UnaryExpression struct {
	Op    lexer.TokenType
	HasOp bool
}

// UnaryOperator records one of & * + - ~ !.
type UnaryOperator struct{ Op lexer.TokenType }

// PostfixExpressionPost records a postfix suffix, tagged by its leading
// token ('[', '(', '.', '->', '++', '--').
type PostfixExpressionPost struct{ Tok lexer.TokenType }

// Identifier carries a name reference.
type Identifier struct{ Name string }

// EnumerationConstant carries an enumerator name.
type EnumerationConstant struct{ Name string }

// IntConstant carries an integer or character constant value.
type IntConstant struct{ Value int64 }

// FloatConstant carries a floating constant value.
type FloatConstant struct{ Value float64 }

// StringLiteral carries the unescaped contents of a string literal.
type StringLiteral struct{ Value string }

func (TranslationUnit) implNodeKind()               {}
func (ExternalDeclaration) implNodeKind()           {}
func (FunctionDefinition) implNodeKind()            {}
func (DeclarationList) implNodeKind()               {}
func (Declaration) implNodeKind()                   {}
func (DeclarationSpecifiers) implNodeKind()         {}
func (InitDeclaratorList) implNodeKind()            {}
func (InitDeclarator) implNodeKind()                {}
func (StorageClassSpecifier) implNodeKind()         {}
func (TypeSpecifier) implNodeKind()                 {}
func (StructOrUnionSpecifier) implNodeKind()        {}
func (StructOrUnion) implNodeKind()                 {}
func (StructDeclarationList) implNodeKind()         {}
func (StructDeclaration) implNodeKind()             {}
func (SpecifierQualifierList) implNodeKind()        {}
func (StructDeclaratorList) implNodeKind()          {}
func (StructDeclarator) implNodeKind()              {}
func (EnumSpecifier) implNodeKind()                 {}
func (EnumeratorList) implNodeKind()                {}
func (Enumerator) implNodeKind()                    {}
func (EnumerationConstant) implNodeKind()           {}
func (AtomicTypeSpecifier) implNodeKind()           {}
func (TypeQualifier) implNodeKind()                 {}
func (FunctionSpecifier) implNodeKind()             {}
func (AlignmentSpecifier) implNodeKind()            {}
func (Declarator) implNodeKind()                    {}
func (DirectDeclarator) implNodeKind()              {}
func (DirectDeclaratorPostList) implNodeKind()      {}
func (DirectDeclaratorPost) implNodeKind()          {}
func (Pointer) implNodeKind()                       {}
func (TypeQualifierList) implNodeKind()             {}
func (ParameterTypeList) implNodeKind()             {}
func (ParameterList) implNodeKind()                 {}
func (ParameterDeclaration) implNodeKind()          {}
func (IdentifierList) implNodeKind()                {}
func (TypeName) implNodeKind()                      {}
func (AbstractDeclarator) implNodeKind()            {}
func (DirectAbstractDeclarator) implNodeKind()      {}
func (DirectAbstractDeclaratorBlock) implNodeKind() {}
func (Initializer) implNodeKind()                   {}
func (InitializerList) implNodeKind()               {}
func (Designation) implNodeKind()                   {}
func (DesignatorList) implNodeKind()                {}
func (Designator) implNodeKind()                    {}
func (StaticAssertDeclaration) implNodeKind()       {}
func (Statement) implNodeKind()                     {}
func (LabeledStatement) implNodeKind()              {}
func (CompoundStatement) implNodeKind()             {}
func (BlockItemList) implNodeKind()                 {}
func (BlockItem) implNodeKind()                     {}
func (ExpressionStatement) implNodeKind()           {}
func (SelectionStatement) implNodeKind()            {}
func (IterationStatement) implNodeKind()            {}
func (JumpStatement) implNodeKind()                 {}
func (Expression) implNodeKind()                    {}
func (AssignmentExpression) implNodeKind()          {}
func (AssignmentOperator) implNodeKind()            {}
func (ConditionalExpression) implNodeKind()         {}
func (ConstantExpression) implNodeKind()            {}
func (LogicalOrExpression) implNodeKind()           {}
func (LogicalAndExpression) implNodeKind()          {}
func (InclusiveOrExpression) implNodeKind()         {}
func (ExclusiveOrExpression) implNodeKind()         {}
func (AndExpression) implNodeKind()                 {}
func (EqualityExpression) implNodeKind()            {}
func (RelationalExpression) implNodeKind()          {}
func (ShiftExpression) implNodeKind()               {}
func (AdditiveExpression) implNodeKind()            {}
func (MultiplicativeExpression) implNodeKind()      {}
func (BinaryExpression) implNodeKind()              {}
func (CastExpression) implNodeKind()                {}
func (UnaryExpression) implNodeKind()               {}
func (UnaryOperator) implNodeKind()                 {}
func (PostfixExpression) implNodeKind()             {}
func (PostfixExpressionPost) implNodeKind()         {}
func (PrimaryExpression) implNodeKind()             {}
func (ArgumentExpressionList) implNodeKind()        {}
func (GenericSelection) implNodeKind()              {}
func (GenericAssocList) implNodeKind()              {}
func (GenericAssociation) implNodeKind()            {}
func (Identifier) implNodeKind()                    {}
func (IntConstant) implNodeKind()                   {}
func (FloatConstant) implNodeKind()                 {}
func (StringLiteral) implNodeKind()                 {}

func (TranslationUnit) String() string          { return "TranslationUnit" }
func (ExternalDeclaration) String() string      { return "ExternalDeclaration" }
func (FunctionDefinition) String() string       { return "FunctionDefinition" }
func (DeclarationList) String() string          { return "DeclarationList" }
func (Declaration) String() string              { return "Declaration" }
func (DeclarationSpecifiers) String() string    { return "DeclarationSpecifiers" }
func (InitDeclaratorList) String() string       { return "InitDeclaratorList" }
func (InitDeclarator) String() string           { return "InitDeclarator" }
func (k StorageClassSpecifier) String() string  { return fmt.Sprintf("StorageClassSpecifier(%s)", k.Tok) }
func (k TypeSpecifier) String() string          { return fmt.Sprintf("TypeSpecifier(%s)", k.Tok) }
func (StructOrUnionSpecifier) String() string   { return "StructOrUnionSpecifier" }
func (k StructOrUnion) String() string          { return fmt.Sprintf("StructOrUnion(%s)", k.Tok) }
func (StructDeclarationList) String() string    { return "StructDeclarationList" }
func (StructDeclaration) String() string        { return "StructDeclaration" }
func (SpecifierQualifierList) String() string   { return "SpecifierQualifierList" }
func (StructDeclaratorList) String() string     { return "StructDeclaratorList" }
func (StructDeclarator) String() string         { return "StructDeclarator" }
func (k EnumSpecifier) String() string {
	if k.Name == "" {
		return "EnumSpecifier"
	}
	return fmt.Sprintf("EnumSpecifier(%s)", k.Name)
}
func (EnumeratorList) String() string           { return "EnumeratorList" }
func (Enumerator) String() string               { return "Enumerator" }
func (k EnumerationConstant) String() string    { return fmt.Sprintf("EnumerationConstant(%s)", k.Name) }
func (AtomicTypeSpecifier) String() string      { return "AtomicTypeSpecifier" }
func (k TypeQualifier) String() string          { return fmt.Sprintf("TypeQualifier(%s)", k.Tok) }
func (k FunctionSpecifier) String() string      { return fmt.Sprintf("FunctionSpecifier(%s)", k.Tok) }
func (AlignmentSpecifier) String() string       { return "AlignmentSpecifier" }
func (Declarator) String() string               { return "Declarator" }
func (DirectDeclarator) String() string         { return "DirectDeclarator" }
func (DirectDeclaratorPostList) String() string { return "DirectDeclaratorPostList" }
func (k DirectDeclaratorPost) String() string   { return fmt.Sprintf("DirectDeclaratorPost(%s)", k.Tok) }
func (Pointer) String() string                  { return "Pointer" }
func (TypeQualifierList) String() string        { return "TypeQualifierList" }
func (k ParameterTypeList) String() string {
	if k.Variadic {
		return "ParameterTypeList(...)"
	}
	return "ParameterTypeList"
}
func (ParameterList) String() string            { return "ParameterList" }
func (ParameterDeclaration) String() string     { return "ParameterDeclaration" }
func (IdentifierList) String() string           { return "IdentifierList" }
func (TypeName) String() string                 { return "TypeName" }
func (AbstractDeclarator) String() string       { return "AbstractDeclarator" }
func (DirectAbstractDeclarator) String() string { return "DirectAbstractDeclarator" }
func (k DirectAbstractDeclaratorBlock) String() string {
	return fmt.Sprintf("DirectAbstractDeclaratorBlock(%s)", k.Tok)
}
func (Initializer) String() string             { return "Initializer" }
func (InitializerList) String() string         { return "InitializerList" }
func (Designation) String() string             { return "Designation" }
func (DesignatorList) String() string          { return "DesignatorList" }
func (Designator) String() string              { return "Designator" }
func (StaticAssertDeclaration) String() string { return "StaticAssertDeclaration" }
func (Statement) String() string               { return "Statement" }
func (k LabeledStatement) String() string      { return fmt.Sprintf("LabeledStatement(%s)", k.Label) }
func (CompoundStatement) String() string       { return "CompoundStatement" }
func (BlockItemList) String() string           { return "BlockItemList" }
func (BlockItem) String() string               { return "BlockItem" }
func (ExpressionStatement) String() string     { return "ExpressionStatement" }
func (k SelectionStatement) String() string    { return fmt.Sprintf("SelectionStatement(%s)", k.Tok) }
func (k IterationStatement) String() string    { return fmt.Sprintf("IterationStatement(%s)", k.Tok) }
func (k JumpStatement) String() string {
	if k.Label != "" {
		return fmt.Sprintf("JumpStatement(%s %s)", k.Keyword, k.Label)
	}
	return fmt.Sprintf("JumpStatement(%s)", k.Keyword)
}
func (Expression) String() string             { return "Expression" }
func (AssignmentExpression) String() string   { return "AssignmentExpression" }
func (k AssignmentOperator) String() string   { return fmt.Sprintf("AssignmentOperator(%s)", k.Op) }
func (ConditionalExpression) String() string  { return "ConditionalExpression" }
func (ConstantExpression) String() string     { return "ConstantExpression" }
func (LogicalOrExpression) String() string    { return "LogicalOrExpression" }
func (LogicalAndExpression) String() string   { return "LogicalAndExpression" }
func (InclusiveOrExpression) String() string  { return "InclusiveOrExpression" }
func (ExclusiveOrExpression) String() string  { return "ExclusiveOrExpression" }
func (AndExpression) String() string          { return "AndExpression" }
func (EqualityExpression) String() string     { return "EqualityExpression" }
func (RelationalExpression) String() string   { return "RelationalExpression" }
func (ShiftExpression) String() string        { return "ShiftExpression" }
func (AdditiveExpression) String() string     { return "AdditiveExpression" }
func (MultiplicativeExpression) String() string { return "MultiplicativeExpression" }
func (k BinaryExpression) String() string     { return fmt.Sprintf("BinaryExpression(%s)", k.Op) }
func (CastExpression) String() string         { return "CastExpression" }
func (k UnaryExpression) String() string {
	if k.HasOp {
		return fmt.Sprintf("UnaryExpression(%s)", k.Op)
	}
	return "UnaryExpression"
}
func (k UnaryOperator) String() string         { return fmt.Sprintf("UnaryOperator(%s)", k.Op) }
func (PostfixExpression) String() string       { return "PostfixExpression" }
func (k PostfixExpressionPost) String() string { return fmt.Sprintf("PostfixExpressionPost(%s)", k.Tok) }
func (PrimaryExpression) String() string       { return "PrimaryExpression" }
func (ArgumentExpressionList) String() string  { return "ArgumentExpressionList" }
func (GenericSelection) String() string        { return "GenericSelection" }
func (GenericAssocList) String() string        { return "GenericAssocList" }
func (GenericAssociation) String() string      { return "GenericAssociation" }
func (k Identifier) String() string            { return fmt.Sprintf("Identifier(%s)", k.Name) }
func (k IntConstant) String() string           { return fmt.Sprintf("IntConstant(%d)", k.Value) }
func (k FloatConstant) String() string         { return fmt.Sprintf("FloatConstant(%g)", k.Value) }
func (k StringLiteral) String() string         { return fmt.Sprintf("StringLiteral(%q)", k.Value) }
