package filter

import "strings"

// String renders the expression back to canonical query text with minimal
// parenthesization: a child is parenthesized only when it is a binary node
// under a binary parent with the other operator, or a binary node directly
// under a negation. Parsing already-minimal text and printing it reproduces
// the input.
func (e *Expr) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Expr) write(sb *strings.Builder) {
	switch e.op {
	case OpTag, OpFalse:
		sb.WriteString(e.tag)
	case OpTrue:
		// A negated unknown tag; print the negation that produced it.
		sb.WriteByte('!')
		sb.WriteString(e.tag)
	case OpNot:
		sb.WriteByte('!')
		e.lhs.writeChild(sb, e.op)
	case OpAnd:
		e.lhs.writeChild(sb, e.op)
		sb.WriteString(" & ")
		e.rhs.writeChild(sb, e.op)
	case OpOr:
		e.lhs.writeChild(sb, e.op)
		sb.WriteString(" | ")
		e.rhs.writeChild(sb, e.op)
	}
}

// writeChild renders e as a child of a node with operator parent, wrapping
// it in parentheses only when required to preserve structure.
func (e *Expr) writeChild(sb *strings.Builder, parent Op) {
	binary := e.op == OpAnd || e.op == OpOr
	if binary && e.op != parent {
		sb.WriteByte('(')
		e.write(sb)
		sb.WriteByte(')')
		return
	}
	e.write(sb)
}
