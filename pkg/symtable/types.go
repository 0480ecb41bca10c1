// Package symtable defines the type vocabulary the parser attaches to
// every node: a flat set of base-type tags plus a composite TypeExpression
// tree for pointer/array/function shapes and multi-specifier combinations.
package symtable

import (
	"fmt"
	"strings"
)

// BaseType is a single primary type tag.
type BaseType interface {
	implBaseType()
	String() string
}

// Tvoid is the void type
type Tvoid struct{}

// Tbool is the _Bool type
type Tbool struct{}

// Tchar is the char type
type Tchar struct{}

// Tshort is the short type
type Tshort struct{}

// Tint is the int type
type Tint struct{}

// Tlong is the long type
type Tlong struct{}

// Tfloat is the float type
type Tfloat struct{}

// Tdouble is the double type
type Tdouble struct{}

// Tsigned is the signed specifier
type Tsigned struct{}

// Tunsigned is the unsigned specifier
type Tunsigned struct{}

// Tcomplex is the _Complex specifier
type Tcomplex struct{}

// Timaginary is the _Imaginary specifier
type Timaginary struct{}

// Tpointer marks a pointer; the pointee is the expression's child
type Tpointer struct{}

// TvoidPointer marks a generic pointer whose pointee is unresolved
type TvoidPointer struct{}

// Tarray is an array dimension; Len < 0 means unsized
type Tarray struct{ Len int64 }

// Tstruct marks a struct type
type Tstruct struct{}

// Tunion marks a union type
type Tunion struct{}

// Tfunction marks a function type
type Tfunction struct{}

// Textern, Tstatic, TthreadLocal, Tauto, Tregister are storage markers
type Textern struct{}
type Tstatic struct{}
type TthreadLocal struct{}
type Tauto struct{}
type Tregister struct{}

// Tconst, Trestrict, Tvolatile, Tatomic are qualifier markers
type Tconst struct{}
type Trestrict struct{}
type Tvolatile struct{}
type Tatomic struct{}

// Tinline and Tnoreturn are function-specifier markers
type Tinline struct{}
type Tnoreturn struct{}

// TsizeT is the platform size type produced by sizeof and _Alignof
type TsizeT struct{}

// TvaList marks a variadic parameter list
type TvaList struct{}

// Tidentifier is a named placeholder for a type known only by name
type Tidentifier struct{ Name string }

// Tnone marks constructs without a value type (statements, labels)
type Tnone struct{}

func (Tvoid) implBaseType()        {}
func (Tbool) implBaseType()        {}
func (Tchar) implBaseType()        {}
func (Tshort) implBaseType()       {}
func (Tint) implBaseType()         {}
func (Tlong) implBaseType()        {}
func (Tfloat) implBaseType()       {}
func (Tdouble) implBaseType()      {}
func (Tsigned) implBaseType()      {}
func (Tunsigned) implBaseType()    {}
func (Tcomplex) implBaseType()     {}
func (Timaginary) implBaseType()   {}
func (Tpointer) implBaseType()     {}
func (TvoidPointer) implBaseType() {}
func (Tarray) implBaseType()       {}
func (Tstruct) implBaseType()      {}
func (Tunion) implBaseType()       {}
func (Tfunction) implBaseType()    {}
func (Textern) implBaseType()      {}
func (Tstatic) implBaseType()      {}
func (TthreadLocal) implBaseType() {}
func (Tauto) implBaseType()        {}
func (Tregister) implBaseType()    {}
func (Tconst) implBaseType()       {}
func (Trestrict) implBaseType()    {}
func (Tvolatile) implBaseType()    {}
func (Tatomic) implBaseType()      {}
func (Tinline) implBaseType()      {}
func (Tnoreturn) implBaseType()    {}
func (TsizeT) implBaseType()       {}
func (TvaList) implBaseType()      {}
func (Tidentifier) implBaseType()  {}
func (Tnone) implBaseType()        {}

func (Tvoid) String() string        { return "void" }
func (Tbool) String() string        { return "_Bool" }
func (Tchar) String() string        { return "char" }
func (Tshort) String() string       { return "short" }
func (Tint) String() string         { return "int" }
func (Tlong) String() string        { return "long" }
func (Tfloat) String() string       { return "float" }
func (Tdouble) String() string      { return "double" }
func (Tsigned) String() string      { return "signed" }
func (Tunsigned) String() string    { return "unsigned" }
func (Tcomplex) String() string     { return "_Complex" }
func (Timaginary) String() string   { return "_Imaginary" }
func (Tpointer) String() string     { return "pointer" }
func (TvoidPointer) String() string { return "void *" }
func (t Tarray) String() string {
	if t.Len < 0 {
		return "array[]"
	}
	return fmt.Sprintf("array[%d]", t.Len)
}
func (Tstruct) String() string       { return "struct" }
func (Tunion) String() string        { return "union" }
func (Tfunction) String() string     { return "function" }
func (Textern) String() string       { return "extern" }
func (Tstatic) String() string       { return "static" }
func (TthreadLocal) String() string  { return "_Thread_local" }
func (Tauto) String() string         { return "auto" }
func (Tregister) String() string     { return "register" }
func (Tconst) String() string        { return "const" }
func (Trestrict) String() string     { return "restrict" }
func (Tvolatile) String() string     { return "volatile" }
func (Tatomic) String() string       { return "_Atomic" }
func (Tinline) String() string       { return "inline" }
func (Tnoreturn) String() string     { return "_Noreturn" }
func (TsizeT) String() string        { return "size_t" }
func (TvaList) String() string       { return "..." }
func (t Tidentifier) String() string { return t.Name }
func (Tnone) String() string         { return "none" }

// Convenience constructors for the common tags.
func Void() BaseType        { return Tvoid{} }
func Bool() BaseType        { return Tbool{} }
func Char() BaseType        { return Tchar{} }
func Short() BaseType       { return Tshort{} }
func Int() BaseType         { return Tint{} }
func Long() BaseType        { return Tlong{} }
func Float() BaseType       { return Tfloat{} }
func Double() BaseType      { return Tdouble{} }
func Signed() BaseType      { return Tsigned{} }
func Unsigned() BaseType    { return Tunsigned{} }
func Pointer() BaseType     { return Tpointer{} }
func VoidPointer() BaseType { return TvoidPointer{} }
func Array(n int64) BaseType {
	return Tarray{Len: n}
}
func SizeT() BaseType                 { return TsizeT{} }
func None() BaseType                  { return Tnone{} }
func Identifier(name string) BaseType { return Tidentifier{Name: name} }

// TypeExpression is a tree-shaped type descriptor. Val holds the flat
// primary tags for this level (e.g. ["unsigned", "long"]), Child holds
// composed sub-expressions (pointee, element, parameter types).
type TypeExpression struct {
	Val   []BaseType
	Child []TypeExpression
}

// New returns an expression seeded with a single primary tag.
func New(val BaseType) TypeExpression {
	return TypeExpression{Val: []BaseType{val}}
}

// Primary returns the first tag, or nil for an empty expression.
func (t TypeExpression) Primary() BaseType {
	if len(t.Val) == 0 {
		return nil
	}
	return t.Val[0]
}

// IsEmpty reports whether no tag has been assigned yet.
func (t TypeExpression) IsEmpty() bool {
	return len(t.Val) == 0 && len(t.Child) == 0
}

func (t TypeExpression) String() string {
	var sb strings.Builder
	parts := make([]string, 0, len(t.Val))
	for _, v := range t.Val {
		parts = append(parts, v.String())
	}
	sb.WriteString(strings.Join(parts, " "))
	if len(t.Child) > 0 {
		sub := make([]string, 0, len(t.Child))
		for _, c := range t.Child {
			sub = append(sub, c.String())
		}
		sb.WriteString("(")
		sb.WriteString(strings.Join(sub, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}
