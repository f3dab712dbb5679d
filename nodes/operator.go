package nodes

import "strings"

// Operator represents a binary comparison or logical operator. The zero
// value is invalid so that an unparsed operator cannot slip through to the
// compiler unnoticed.
type Operator int

const (
	OpInvalid Operator = iota
	OpEq
	OpNotEq
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpLike
	OpNotLike
	OpIn
	OpNotIn
	OpIs
	OpIsNot
	OpAnd
	OpOr
)

var operatorSQL = map[Operator]string{
	OpEq:      "=",
	OpNotEq:   "!=",
	OpGt:      ">",
	OpGtEq:    ">=",
	OpLt:      "<",
	OpLtEq:    "<=",
	OpLike:    "like",
	OpNotLike: "not like",
	OpIn:      "in",
	OpNotIn:   "not in",
	OpIs:      "is",
	OpIsNot:   "is not",
	OpAnd:     "and",
	OpOr:      "or",
}

// SQL returns the operator's SQL spelling, or an empty string for invalid
// operators.
func (op Operator) SQL() string { return operatorSQL[op] }

// ParseOperator maps an operator string as accepted by the builder layer to
// its Operator value. Word operators are matched case-insensitively and <>
// is normalised to !=. The logical operators and/or are not parseable; they
// are only constructed through And and Or combinators.
func ParseOperator(s string) (Operator, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "=":
		return OpEq, true
	case "!=", "<>":
		return OpNotEq, true
	case ">":
		return OpGt, true
	case ">=":
		return OpGtEq, true
	case "<":
		return OpLt, true
	case "<=":
		return OpLtEq, true
	case "like":
		return OpLike, true
	case "not like":
		return OpNotLike, true
	case "in":
		return OpIn, true
	case "not in":
		return OpNotIn, true
	case "is":
		return OpIs, true
	case "is not":
		return OpIsNot, true
	}
	return OpInvalid, false
}

// OperatorNode applies a binary operator to two operands: Left Op Right.
// For OpIn and OpNotIn the right operand is normally a ListNode and is
// rendered inside parentheses.
type OperatorNode struct {
	Combinable
	Left  Node
	Op    Operator
	Right Node
}

func (n *OperatorNode) Accept(v Visitor) error { return v.VisitOperator(n) }

// NewOperatorNode creates an OperatorNode with its embedded combinator
// initialised.
func NewOperatorNode(left Node, op Operator, right Node) *OperatorNode {
	n := &OperatorNode{Left: left, Op: op, Right: right}
	n.self = n
	return n
}

// UnaryOp represents a prefix or postfix single-operand operator.
type UnaryOp int

const (
	OpIsNull UnaryOp = iota
	OpIsNotNull
	OpNot
	OpExists
	OpNotExists
)

// UnaryOpNode applies a unary operator to one operand. IS NULL and IS NOT
// NULL render postfix; NOT and EXISTS render prefix with the operand in
// parentheses.
type UnaryOpNode struct {
	Combinable
	Op   UnaryOp
	Expr Node
}

func (n *UnaryOpNode) Accept(v Visitor) error { return v.VisitUnaryOp(n) }

// NewUnaryOpNode creates a UnaryOpNode with its embedded combinator
// initialised.
func NewUnaryOpNode(op UnaryOp, expr Node) *UnaryOpNode {
	n := &UnaryOpNode{Op: op, Expr: expr}
	n.self = n
	return n
}

// Exists creates an EXISTS predicate over a subquery node.
func Exists(sub Node) *UnaryOpNode {
	return NewUnaryOpNode(OpExists, sub)
}

// NotExists creates a NOT EXISTS predicate over a subquery node.
func NotExists(sub Node) *UnaryOpNode {
	return NewUnaryOpNode(OpNotExists, sub)
}
