// Package filter implements the boolean query language used to filter files
// by tag: tag tokens combined with `&`, `|`, `!` and parentheses.
//
// The two binary operators share a single precedence level and associate
// strictly left-to-right; `a & b | c` means `(a & b) | c` purely by
// encounter order. Parentheses are the only way to override that.
package filter

import "errors"

// Parse errors. Each malformed query maps to exactly one of these.
var (
	ErrEmptyQuery         = errors.New("empty query")
	ErrUnbalancedParens   = errors.New("unbalanced parentheses")
	ErrExpectedOperator   = errors.New("expected a binary operator between operands")
	ErrUnexpectedOperator = errors.New("operator is missing its left operand")
	ErrUnexpectedEnd      = errors.New("unexpected end of query")
)

// Op discriminates the node variants of a parsed filter expression.
type Op int

const (
	// OpTag is a reference to a known tag index.
	OpTag Op = iota
	// OpAnd and OpOr are the binary operators.
	OpAnd
	OpOr
	// OpNot negates its single operand (held in lhs).
	OpNot
	// OpTrue and OpFalse are constant nodes. A query term naming a tag the
	// table has never seen becomes OpFalse rather than a parse error, so
	// filtering by a nonexistent tag yields an empty result instead of
	// failing; negating it folds to OpTrue. Both retain the source token
	// for printing.
	OpTrue
	OpFalse
)

// Expr is an immutable parsed filter expression.
type Expr struct {
	op       Op
	tag      string
	index    int
	lhs, rhs *Expr
}

// Op returns the node's variant.
func (e *Expr) Op() Op { return e.op }

// Tag builds a leaf referencing a resolved tag index.
func Tag(name string, index int) *Expr {
	return &Expr{op: OpTag, tag: name, index: index}
}

// Unknown builds the always-false leaf for a tag name with no known index.
func Unknown(name string) *Expr {
	return &Expr{op: OpFalse, tag: name}
}

// Resolver maps a tag token from the query text to a leaf node. Use Tag for
// known tags and Unknown for everything else.
type Resolver func(name string) *Expr

// Literal is a Resolver that keeps every token as an unresolved tag leaf.
// Useful when only the expression structure matters, as in round-trip
// printing.
func Literal(name string) *Expr {
	return &Expr{op: OpTag, tag: name, index: -1}
}

// Eval evaluates the expression against one file's tag flags. flags reports
// whether the tag at a given index is set. Eval is total: unresolved or
// unknown tags evaluate to false.
func (e *Expr) Eval(flags func(index int) bool) bool {
	switch e.op {
	case OpTag:
		return e.index >= 0 && flags(e.index)
	case OpAnd:
		return e.lhs.Eval(flags) && e.rhs.Eval(flags)
	case OpOr:
		return e.lhs.Eval(flags) || e.rhs.Eval(flags)
	case OpNot:
		return !e.lhs.Eval(flags)
	case OpTrue:
		return true
	default:
		return false
	}
}

// not negates an expression, folding double negation recursively and
// flipping constant nodes so the tree never stacks OpNot on OpNot.
func not(e *Expr) *Expr {
	switch e.op {
	case OpNot:
		return e.lhs
	case OpTrue:
		return &Expr{op: OpFalse, tag: e.tag}
	case OpFalse:
		return &Expr{op: OpTrue, tag: e.tag}
	default:
		return &Expr{op: OpNot, lhs: e}
	}
}

func and(lhs, rhs *Expr) *Expr { return &Expr{op: OpAnd, lhs: lhs, rhs: rhs} }
func or(lhs, rhs *Expr) *Expr  { return &Expr{op: OpOr, lhs: lhs, rhs: rhs} }
