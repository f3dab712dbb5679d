package nodes

// Predications provides comparison methods to types that embed it. The self
// field must be set to the embedding node so that comparisons reference the
// correct left-hand side.
type Predications struct {
	self Node
}

// Eq creates an equality comparison: self = val.
func (p Predications) Eq(val any) *OperatorNode {
	return NewOperatorNode(p.self, OpEq, Value(val))
}

// NotEq creates an inequality comparison: self != val.
func (p Predications) NotEq(val any) *OperatorNode {
	return NewOperatorNode(p.self, OpNotEq, Value(val))
}

// Gt creates a greater-than comparison: self > val.
func (p Predications) Gt(val any) *OperatorNode {
	return NewOperatorNode(p.self, OpGt, Value(val))
}

// GtEq creates a greater-than-or-equal comparison: self >= val.
func (p Predications) GtEq(val any) *OperatorNode {
	return NewOperatorNode(p.self, OpGtEq, Value(val))
}

// Lt creates a less-than comparison: self < val.
func (p Predications) Lt(val any) *OperatorNode {
	return NewOperatorNode(p.self, OpLt, Value(val))
}

// LtEq creates a less-than-or-equal comparison: self <= val.
func (p Predications) LtEq(val any) *OperatorNode {
	return NewOperatorNode(p.self, OpLtEq, Value(val))
}

// Like creates a LIKE comparison: self like val.
func (p Predications) Like(val any) *OperatorNode {
	return NewOperatorNode(p.self, OpLike, Value(val))
}

// NotLike creates a NOT LIKE comparison: self not like val.
func (p Predications) NotLike(val any) *OperatorNode {
	return NewOperatorNode(p.self, OpNotLike, Value(val))
}

// In creates an IN predicate: self in (vals...).
func (p Predications) In(vals ...any) *OperatorNode {
	return NewOperatorNode(p.self, OpIn, ValueList(vals...))
}

// NotIn creates a NOT IN predicate: self not in (vals...).
func (p Predications) NotIn(vals ...any) *OperatorNode {
	return NewOperatorNode(p.self, OpNotIn, ValueList(vals...))
}

// IsNull creates an IS NULL predicate.
func (p Predications) IsNull() *UnaryOpNode {
	return NewUnaryOpNode(OpIsNull, p.self)
}

// IsNotNull creates an IS NOT NULL predicate.
func (p Predications) IsNotNull() *UnaryOpNode {
	return NewUnaryOpNode(OpIsNotNull, p.self)
}

// As wraps self under an alias name.
func (p Predications) As(name string) *AliasNode {
	return Alias(p.self, name)
}

// Asc creates an ascending order term over self.
func (p Predications) Asc() *OrderByNode {
	return &OrderByNode{Expr: p.self, Dir: Ascending}
}

// Desc creates a descending order term over self.
func (p Predications) Desc() *OrderByNode {
	return &OrderByNode{Expr: p.self, Dir: Descending}
}
