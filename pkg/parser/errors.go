package parser

import (
	"fmt"

	"github.com/sysidos/crust/pkg/lexer"
	"github.com/sysidos/crust/pkg/symtable"
)

// PositionError reports an access past the end of the token stream.
type PositionError struct {
	Pos int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position %d out of token range", e.Pos)
}

// UnexpectedTokenError reports a token that does not match what the
// grammar requires at its position.
type UnexpectedTokenError struct {
	Expected string
	Found    lexer.Token
	Pos      int
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("expected `%s`, found %q at %d", e.Expected, e.Found.Type, e.Pos)
}

// NoAlternativeError reports that every candidate production of an
// ordered-choice rule failed.
type NoAlternativeError struct {
	Rule string
}

func (e *NoAlternativeError) Error() string {
	return fmt.Sprintf("no viable alternative for %s", e.Rule)
}

// TypeCombinationError reports a binary operation whose operand types
// cannot be combined.
type TypeCombinationError struct {
	Left  symtable.TypeExpression
	Right symtable.TypeExpression
	Op    lexer.TokenType
}

func (e *TypeCombinationError) Error() string {
	if e.Right.IsEmpty() {
		return fmt.Sprintf("cannot use type %s with `%s`", e.Left, e.Op)
	}
	return fmt.Sprintf("cannot combine type %s with %s using `%s`", e.Left, e.Right, e.Op)
}

// CastError reports an explicit cast rejected by the type rules.
type CastError struct {
	From symtable.TypeExpression
	To   symtable.TypeExpression
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot cast from %s to %s", e.From, e.To)
}

// AssignmentError reports an assignment or initialization whose right
// side does not convert to its left.
type AssignmentError struct {
	Left  symtable.TypeExpression
	Right symtable.TypeExpression
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("cannot assign %s to %s", e.Right, e.Left)
}

// UnsupportedError reports a construct the parser rejects outright.
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported", e.Feature)
}

// DepthError reports input nested more deeply than the configured
// maximum.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("nesting exceeds maximum depth %d", e.Limit)
}

// ParseError wraps a parse failure with the source label it occurred in.
type ParseError struct {
	Src string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Src, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
