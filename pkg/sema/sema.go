// Package sema answers the parser's type questions: whether a cast is
// legal, what type a binary operation produces, whether an assignment's
// right side converts to its left, and whether two types are equal.
// Rules here are the usual-arithmetic-conversion rules over the flat
// rank ladder _Bool < char < short < int < long < float < double.
package sema

import (
	"fmt"

	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/symtable"
)

// rank orders the arithmetic types for widening. Zero means the tag is
// not arithmetic.
func rank(t symtable.BaseType) int {
	switch t.(type) {
	case symtable.Tbool:
		return 1
	case symtable.Tchar:
		return 2
	case symtable.Tshort:
		return 3
	case symtable.Tint, symtable.Tsigned, symtable.Tunsigned:
		return 4
	case symtable.Tlong, symtable.TsizeT:
		return 5
	case symtable.Tfloat:
		return 6
	case symtable.Tdouble:
		return 7
	default:
		return 0
	}
}

func isArithmetic(t symtable.TypeExpression) bool {
	p := t.Primary()
	return p != nil && rank(p) > 0
}

func isInteger(t symtable.TypeExpression) bool {
	p := t.Primary()
	if p == nil {
		return false
	}
	r := rank(p)
	return r > 0 && r < rank(symtable.Float())
}

func isPointerLike(t symtable.TypeExpression) bool {
	switch t.Primary().(type) {
	case symtable.Tpointer, symtable.TvoidPointer, symtable.Tarray:
		return true
	default:
		return false
	}
}

func isScalar(t symtable.TypeExpression) bool {
	return isArithmetic(t) || isPointerLike(t)
}

// A placeholder is a type not yet pinned down: either a named reference
// whose declaration is resolved downstream, or a shape with no primary
// tag such as an indexed or called expression. Both compare equal to
// anything.
func isPlaceholder(t symtable.TypeExpression) bool {
	p := t.Primary()
	if p == nil {
		return true
	}
	_, ok := p.(symtable.Tidentifier)
	return ok
}

// Equal reports deep structural equality of two type expressions. A
// named-identifier placeholder compares equal to anything: its real type
// is only known after name resolution, which happens downstream.
func Equal(a, b symtable.TypeExpression) bool {
	if isPlaceholder(a) || isPlaceholder(b) {
		return true
	}
	if len(a.Val) != len(b.Val) || len(a.Child) != len(b.Child) {
		return false
	}
	for i := range a.Val {
		if a.Val[i] != b.Val[i] {
			return false
		}
	}
	for i := range a.Child {
		if !Equal(a.Child[i], b.Child[i]) {
			return false
		}
	}
	return true
}

// CastIsLegal reports whether an explicit cast from source to target is
// allowed: any scalar converts to any scalar, anything converts to void,
// and nothing converts to or from struct, union, or function types.
func CastIsLegal(target, source symtable.TypeExpression) bool {
	if isPlaceholder(target) || isPlaceholder(source) {
		return true
	}
	if _, ok := target.Primary().(symtable.Tvoid); ok {
		return true
	}
	if Equal(target, source) {
		return true
	}
	return isScalar(target) && isScalar(source)
}

// Combine computes the result type of applying a binary operator to two
// operand types. The wider arithmetic operand wins; pointer arithmetic
// keeps the pointer side. A false return means the combination is
// illegal and the expression must not parse.
func Combine(left, right symtable.TypeExpression, op lexer.TokenType) (symtable.TypeExpression, bool) {
	if isPlaceholder(left) {
		return left, true
	}
	if isPlaceholder(right) {
		return right, true
	}

	switch op {
	case lexer.TokenStar, lexer.TokenSlash:
		if isArithmetic(left) && isArithmetic(right) {
			return wider(left, right), true
		}
	case lexer.TokenPlus, lexer.TokenMinus:
		if isPointerLike(left) && isInteger(right) {
			return left, true
		}
		if isInteger(left) && isPointerLike(right) && op == lexer.TokenPlus {
			return right, true
		}
		if isArithmetic(left) && isArithmetic(right) {
			return wider(left, right), true
		}
	case lexer.TokenPercent, lexer.TokenShl, lexer.TokenShr,
		lexer.TokenAmpersand, lexer.TokenCaret, lexer.TokenPipe:
		if isInteger(left) && isInteger(right) {
			return wider(left, right), true
		}
	case lexer.TokenLt, lexer.TokenLe, lexer.TokenGt, lexer.TokenGe:
		if isArithmetic(left) && isArithmetic(right) {
			return wider(left, right), true
		}
		if isPointerLike(left) && isPointerLike(right) && Equal(left, right) {
			return symtable.New(symtable.Long()), true
		}
	case lexer.TokenEq, lexer.TokenNe:
		if isArithmetic(left) && isArithmetic(right) {
			return wider(left, right), true
		}
		if isPointerLike(left) && isPointerLike(right) {
			return symtable.New(symtable.Long()), true
		}
	case lexer.TokenAnd, lexer.TokenOr:
		if isScalar(left) && isScalar(right) {
			return symtable.New(symtable.Long()), true
		}
	}
	return symtable.TypeExpression{}, false
}

// ResolveImplicit resolves the conversion applied when the right side of
// an assignment is stored into the left. The result is always the left
// type; an error means no implicit conversion exists.
func ResolveImplicit(left, right symtable.TypeExpression) (symtable.TypeExpression, error) {
	if isPlaceholder(left) || isPlaceholder(right) {
		return left, nil
	}
	if Equal(left, right) {
		return left, nil
	}
	// A dereference has an unknown pointee until resolution and accepts
	// any stored value.
	if isPointerLike(left) && voidPointee(left) {
		return left, nil
	}
	if isArithmetic(left) && isArithmetic(right) {
		return left, nil
	}
	if isPointerLike(left) && isPointerLike(right) {
		if voidPointee(left) || voidPointee(right) {
			return left, nil
		}
		if len(left.Child) == len(right.Child) {
			ok := true
			for i := range left.Child {
				if !Equal(left.Child[i], right.Child[i]) {
					ok = false
					break
				}
			}
			if ok {
				return left, nil
			}
		}
	}
	return symtable.TypeExpression{}, fmt.Errorf("no implicit conversion from %s to %s", right, left)
}

func voidPointee(t symtable.TypeExpression) bool {
	for _, v := range t.Val {
		if _, ok := v.(symtable.TvoidPointer); ok {
			return true
		}
	}
	for _, c := range t.Child {
		switch c.Primary().(type) {
		case symtable.Tvoid, symtable.TvoidPointer:
			return true
		}
	}
	return false
}

func wider(left, right symtable.TypeExpression) symtable.TypeExpression {
	if rank(right.Primary()) > rank(left.Primary()) {
		return right
	}
	return left
}
