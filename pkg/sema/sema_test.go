package sema

import (
	"testing"

	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/symtable"
)

func typ(tags ...symtable.BaseType) symtable.TypeExpression {
	return symtable.TypeExpression{Val: tags}
}

func TestEqual(t *testing.T) {
	long := symtable.New(symtable.Long())
	dbl := symtable.New(symtable.Double())
	named := symtable.New(symtable.Identifier("x"))
	var unresolved symtable.TypeExpression

	if !Equal(long, long) {
		t.Error("long should equal long")
	}
	if Equal(long, dbl) {
		t.Error("long should not equal double")
	}
	if !Equal(named, dbl) {
		t.Error("a named placeholder should equal anything")
	}
	if !Equal(unresolved, long) {
		t.Error("an unresolved shape should equal anything")
	}

	ptrInt := symtable.TypeExpression{
		Val:   []symtable.BaseType{symtable.Pointer()},
		Child: []symtable.TypeExpression{symtable.New(symtable.Int())},
	}
	ptrChar := symtable.TypeExpression{
		Val:   []symtable.BaseType{symtable.Pointer()},
		Child: []symtable.TypeExpression{symtable.New(symtable.Char())},
	}
	if Equal(ptrInt, ptrChar) {
		t.Error("pointer to int should not equal pointer to char")
	}
	if !Equal(ptrInt, ptrInt) {
		t.Error("pointer to int should equal itself")
	}
}

func TestCombineArithmetic(t *testing.T) {
	long := symtable.New(symtable.Long())
	dbl := symtable.New(symtable.Double())
	chr := symtable.New(symtable.Char())

	got, ok := Combine(long, long, lexer.TokenPlus)
	if !ok || got.Primary() != symtable.Long() {
		t.Errorf("long + long: expected long, got %v ok=%v", got, ok)
	}
	got, ok = Combine(long, dbl, lexer.TokenStar)
	if !ok || got.Primary() != symtable.Double() {
		t.Errorf("long * double: expected double, got %v ok=%v", got, ok)
	}
	got, ok = Combine(chr, long, lexer.TokenMinus)
	if !ok || got.Primary() != symtable.Long() {
		t.Errorf("char - long: expected long, got %v ok=%v", got, ok)
	}
}

func TestCombineIntegerOnly(t *testing.T) {
	long := symtable.New(symtable.Long())
	dbl := symtable.New(symtable.Double())

	if _, ok := Combine(long, dbl, lexer.TokenPercent); ok {
		t.Error("long % double should be illegal")
	}
	if _, ok := Combine(long, dbl, lexer.TokenShl); ok {
		t.Error("long << double should be illegal")
	}
	if got, ok := Combine(long, long, lexer.TokenAmpersand); !ok || got.Primary() != symtable.Long() {
		t.Errorf("long & long: expected long, got %v ok=%v", got, ok)
	}
}

func TestCombinePointer(t *testing.T) {
	long := symtable.New(symtable.Long())
	ptr := typ(symtable.Pointer())

	got, ok := Combine(ptr, long, lexer.TokenPlus)
	if !ok || got.Primary() != symtable.Pointer() {
		t.Errorf("pointer + long: expected pointer, got %v ok=%v", got, ok)
	}
	got, ok = Combine(long, ptr, lexer.TokenPlus)
	if !ok || got.Primary() != symtable.Pointer() {
		t.Errorf("long + pointer: expected pointer, got %v ok=%v", got, ok)
	}
	if _, ok := Combine(ptr, ptr, lexer.TokenStar); ok {
		t.Error("pointer * pointer should be illegal")
	}
	got, ok = Combine(ptr, ptr, lexer.TokenEq)
	if !ok || got.Primary() != symtable.Long() {
		t.Errorf("pointer == pointer: expected long, got %v ok=%v", got, ok)
	}
}

func TestCombineLogical(t *testing.T) {
	long := symtable.New(symtable.Long())
	ptr := typ(symtable.Pointer())
	strct := symtable.New(symtable.Tstruct{})

	got, ok := Combine(long, ptr, lexer.TokenAnd)
	if !ok || got.Primary() != symtable.Long() {
		t.Errorf("long && pointer: expected long, got %v ok=%v", got, ok)
	}
	if _, ok := Combine(long, strct, lexer.TokenOr); ok {
		t.Error("long || struct should be illegal")
	}
}

func TestCombinePlaceholderWins(t *testing.T) {
	named := symtable.New(symtable.Identifier("x"))
	strct := symtable.New(symtable.Tstruct{})

	got, ok := Combine(named, strct, lexer.TokenPlus)
	if !ok || !Equal(got, named) {
		t.Errorf("placeholder + struct: expected placeholder, got %v ok=%v", got, ok)
	}
}

func TestCastIsLegal(t *testing.T) {
	long := symtable.New(symtable.Long())
	dbl := symtable.New(symtable.Double())
	void := symtable.New(symtable.Void())
	ptr := typ(symtable.Pointer())
	strct := symtable.New(symtable.Tstruct{})

	if !CastIsLegal(long, dbl) {
		t.Error("double to long should be legal")
	}
	if !CastIsLegal(ptr, long) {
		t.Error("long to pointer should be legal")
	}
	if !CastIsLegal(void, strct) {
		t.Error("anything to void should be legal")
	}
	if CastIsLegal(strct, long) {
		t.Error("long to struct should be illegal")
	}
	if CastIsLegal(long, strct) {
		t.Error("struct to long should be illegal")
	}
}

func TestResolveImplicit(t *testing.T) {
	long := symtable.New(symtable.Long())
	chr := symtable.New(symtable.Char())
	strct := symtable.New(symtable.Tstruct{})
	deref := typ(symtable.Pointer(), symtable.VoidPointer())

	got, err := ResolveImplicit(chr, long)
	if err != nil || got.Primary() != symtable.Char() {
		t.Errorf("char = long: expected char, got %v err=%v", got, err)
	}
	if _, err := ResolveImplicit(strct, long); err == nil {
		t.Error("struct = long should fail")
	}
	// A dereferenced pointer has an unknown pointee and accepts any store.
	if _, err := ResolveImplicit(deref, long); err != nil {
		t.Errorf("deref = long should succeed, got %v", err)
	}

	ptrInt := symtable.TypeExpression{
		Val:   []symtable.BaseType{symtable.Pointer()},
		Child: []symtable.TypeExpression{symtable.New(symtable.Int())},
	}
	ptrChar := symtable.TypeExpression{
		Val:   []symtable.BaseType{symtable.Pointer()},
		Child: []symtable.TypeExpression{symtable.New(symtable.Char())},
	}
	if _, err := ResolveImplicit(ptrInt, ptrChar); err == nil {
		t.Error("pointer to int = pointer to char should fail")
	}
	if _, err := ResolveImplicit(ptrInt, ptrInt); err != nil {
		t.Errorf("pointer to int = pointer to int should succeed, got %v", err)
	}
}
