package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokAnd tokenKind = iota
	tokOr
	tokNot
	tokExpr
)

type token struct {
	kind tokenKind
	expr *Expr
}

// Parse parses a filter query string. resolve maps each tag token to a leaf
// node. The grammar reduces left-to-right with no precedence between `&`
// and `|`; parentheses open a new reduction frame.
func Parse(input string, resolve Resolver) (*Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyQuery
	}
	var (
		stack  []token
		parens []int
		begin  int
	)
	pushTag := func(from, to int) {
		if to > from {
			stack = append(stack, token{kind: tokExpr, expr: resolve(input[from:to])})
		}
	}
	for i, c := range input {
		switch {
		case c == '(':
			parens = append(parens, len(stack))
			begin = i + 1
		case c == ')':
			pushTag(begin, i)
			begin = i + 1
			if len(parens) == 0 {
				return nil, ErrUnbalancedParens
			}
			last := parens[len(parens)-1]
			parens = parens[:len(parens)-1]
			if last >= len(stack)-1 {
				// Zero or one token inside the parens; nothing to reduce.
				continue
			}
			expr, err := parseTokens(stack[last:])
			if err != nil {
				return nil, err
			}
			stack = stack[:last]
			stack = append(stack, token{kind: tokExpr, expr: expr})
		case c == '!':
			pushTag(begin, i)
			begin = i + 1
			stack = append(stack, token{kind: tokNot})
		case c == '&':
			pushTag(begin, i)
			begin = i + 1
			stack = append(stack, token{kind: tokAnd})
		case c == '|':
			pushTag(begin, i)
			begin = i + 1
			stack = append(stack, token{kind: tokOr})
		case unicode.IsSpace(c):
			pushTag(begin, i)
			begin = i + utf8.RuneLen(c)
		}
	}
	pushTag(begin, len(input))
	if len(parens) > 0 {
		return nil, ErrUnbalancedParens
	}
	return parseTokens(stack)
}

// parseTokens reduces a flat token run into one expression, strictly left to
// right.
func parseTokens(toks []token) (*Expr, error) {
	expr, rest, err := nextOperand(toks)
	if err != nil {
		return nil, err
	}
	for len(rest) > 0 {
		t := rest[0]
		rest = rest[1:]
		switch t.kind {
		case tokAnd:
			var rhs *Expr
			rhs, rest, err = nextOperand(rest)
			if err != nil {
				return nil, err
			}
			expr = and(expr, rhs)
		case tokOr:
			var rhs *Expr
			rhs, rest, err = nextOperand(rest)
			if err != nil {
				return nil, err
			}
			expr = or(expr, rhs)
		default:
			// Two adjacent operands, e.g. "a b" or "a !b".
			return nil, ErrExpectedOperator
		}
	}
	return expr, nil
}

// nextOperand consumes one operand, applying any leading negations.
func nextOperand(toks []token) (*Expr, []token, error) {
	if len(toks) == 0 {
		return nil, nil, ErrUnexpectedEnd
	}
	t := toks[0]
	rest := toks[1:]
	switch t.kind {
	case tokAnd, tokOr:
		return nil, nil, ErrUnexpectedOperator
	case tokNot:
		inner, rest, err := nextOperand(rest)
		if err != nil {
			return nil, nil, err
		}
		return not(inner), rest, nil
	default:
		return t.expr, rest, nil
	}
}
