package parser

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sysidos/crust/pkg/ast"
	"github.com/sysidos/crust/pkg/lexer"
)

func parseExpr(t *testing.T, src string) *ast.Node {
	t.Helper()
	toks := lexer.Tokenize(src)
	p := New(toks, "test.c")
	node, next, err := p.expression(0)
	if err != nil {
		t.Fatalf("%q: parse failed: %v", src, err)
	}
	if next != len(toks) {
		t.Fatalf("%q: stopped at token %d of %d", src, next, len(toks))
	}
	return node
}

func TestExpressionTypes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1", "long"},
		{"3.5", "double"},
		{"'a'", "long"},
		{`"hi"`, "array[2] char"},
		{"x", "x"},
		{"1 + 2.5", "double"},
		{"1 - 2", "long"},
		{"1 << 2", "long"},
		{"1 == 2", "long"},
		{"1 && 2", "long"},
		{"!x", "long"},
		{"*p", "pointer void *"},
		{"sizeof x", "size_t"},
		{"sizeof(int)", "size_t"},
		{"a ? 1 : 2", "long"},
		{"(int)(1)", "int"},
	}
	for _, tc := range tests {
		node := parseExpr(t, tc.src)
		if got := node.Type.String(); got != tc.want {
			t.Errorf("%q: expected type %q, got %q", tc.src, tc.want, got)
		}
	}
}

func findBinary(n *ast.Node) *ast.Node {
	if _, ok := n.Kind.(ast.BinaryExpression); ok {
		return n
	}
	for _, c := range n.Children {
		if found := findBinary(c); found != nil {
			return found
		}
	}
	return nil
}

func TestSubtractionIsLeftAssociative(t *testing.T) {
	node := parseExpr(t, "a - b - c")
	outer := findBinary(node)
	if outer == nil {
		t.Fatal("no binary expression in tree")
	}
	if _, ok := outer.Children[0].Kind.(ast.BinaryExpression); !ok {
		t.Errorf("expected left child to be a binary expression, got %s", outer.Children[0].Kind)
	}
}

func TestIllegalCombination(t *testing.T) {
	toks := lexer.Tokenize("1 % 2.0")
	p := New(toks, "test.c")
	_, _, err := p.expression(0)
	var combErr *TypeCombinationError
	if !errors.As(err, &combErr) {
		t.Fatalf("expected a type combination error, got %v", err)
	}
}

func TestTernaryBranchMismatch(t *testing.T) {
	toks := lexer.Tokenize("a ? 1 : 2.0")
	p := New(toks, "test.c")
	_, _, err := p.expression(0)
	var combErr *TypeCombinationError
	if !errors.As(err, &combErr) {
		t.Fatalf("expected a type combination error, got %v", err)
	}
}

func TestIllegalCast(t *testing.T) {
	toks := lexer.Tokenize("(struct s)1")
	p := New(toks, "test.c")
	_, _, err := p.expression(0)
	var castErr *CastError
	if !errors.As(err, &castErr) {
		t.Fatalf("expected a cast error, got %v", err)
	}
}

func TestEnumeratorValueMustBeInteger(t *testing.T) {
	toks := lexer.Tokenize("enum e { A = 1.5 }")
	p := New(toks, "test.c")
	_, _, err := p.enumSpecifier(0)
	var asgErr *AssignmentError
	if !errors.As(err, &asgErr) {
		t.Fatalf("expected an assignment error, got %v", err)
	}
}

func TestTypedefIsUnsupported(t *testing.T) {
	toks := lexer.Tokenize("typedef int myint;")
	_, err := Parse(toks, "test.c")
	var unsupErr *UnsupportedError
	if !errors.As(err, &unsupErr) {
		t.Fatalf("expected an unsupported error, got %v", err)
	}
}

func TestDepthLimit(t *testing.T) {
	toks := lexer.Tokenize("((((((((1))))))))")
	p := New(toks, "test.c", WithMaxDepth(6))
	_, _, err := p.expression(0)
	var depthErr *DepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("expected a depth error, got %v", err)
	}
}

func TestArgumentListStopsBeforeDanglingComma(t *testing.T) {
	toks := lexer.Tokenize("a, b,")
	p := New(toks, "test.c")
	node, next, err := p.argumentExpressionList(0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(node.Children) != 2 {
		t.Errorf("expected 2 arguments, got %d", len(node.Children))
	}
	if next != 3 {
		t.Errorf("expected to stop at the dangling comma (token 3), got %d", next)
	}
}

func TestFuncNameLiteral(t *testing.T) {
	toks := lexer.Tokenize("__func__")
	p := New(toks, "test.c")
	node, _, err := p.primaryExpression(0)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	lit := node.Children[0]
	str, ok := lit.Kind.(ast.StringLiteral)
	if !ok {
		t.Fatalf("expected a string literal child, got %s", lit.Kind)
	}
	if str.Value != "__func_name__" {
		t.Errorf("expected value %q, got %q", "__func_name__", str.Value)
	}
	if got := lit.Type.String(); got != "array[13] char" {
		t.Errorf("expected type %q, got %q", "array[13] char", got)
	}
}

func TestEmptyInput(t *testing.T) {
	tree, err := Parse(nil, "test.c")
	if err != nil {
		t.Fatalf("expected empty unit, got error %v", err)
	}
	if _, ok := tree.Kind.(ast.TranslationUnit); !ok {
		t.Errorf("expected a translation unit, got %s", tree.Kind)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected no children, got %d", len(tree.Children))
	}
}

func TestParseIsDeterministic(t *testing.T) {
	toks := lexer.Tokenize("int main() { return 1 + 2; }")
	print := func() string {
		tree, err := Parse(toks, "test.c")
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		var buf bytes.Buffer
		ast.NewPrinter(&buf).PrintTree(tree)
		return buf.String()
	}
	if first, second := print(), print(); first != second {
		t.Errorf("two parses printed differently:\n%s\n---\n%s", first, second)
	}
}
