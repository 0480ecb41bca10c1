package ast

import (
	"bytes"
	"testing"

	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/symtable"
)

func TestAddChildren(t *testing.T) {
	root := New(TranslationUnit{})
	child := New(Declaration{})
	root.Add(child)
	if len(root.Children) != 1 || root.Children[0] != child {
		t.Fatalf("expected one child, got %d", len(root.Children))
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{TranslationUnit{}, "TranslationUnit"},
		{BinaryExpression{Op: lexer.TokenPlus}, "BinaryExpression(+)"},
		{Identifier{Name: "x"}, "Identifier(x)"},
		{IntConstant{Value: 42}, "IntConstant(42)"},
		{StringLiteral{Value: "hi"}, `StringLiteral("hi")`},
		{JumpStatement{Keyword: "goto", Label: "out"}, "JumpStatement(goto out)"},
		{JumpStatement{Keyword: "return"}, "JumpStatement(return)"},
		{UnaryExpression{Op: lexer.TokenStar, HasOp: true}, "UnaryExpression(*)"},
		{UnaryExpression{}, "UnaryExpression"},
		{ParameterTypeList{Variadic: true}, "ParameterTypeList(...)"},
		{EnumSpecifier{Name: "color"}, "EnumSpecifier(color)"},
		{EnumSpecifier{}, "EnumSpecifier"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestPrintTree(t *testing.T) {
	root := New(TranslationUnit{})
	decl := New(Declaration{})
	decl.Type = symtable.New(symtable.Int())
	ident := New(Identifier{Name: "x"})
	ident.Type = symtable.New(symtable.Identifier("x"))
	decl.Add(ident)
	root.Add(decl)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintTree(root)

	want := "TranslationUnit\n  Declaration : int\n    Identifier(x) : x\n"
	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}
