package nodes

// Combinable provides logical chaining methods to types that embed it.
// The self field must be set to the embedding node.
type Combinable struct {
	self Node
}

// And combines self with other: self and other.
func (c Combinable) And(other Node) *OperatorNode {
	return NewOperatorNode(c.self, OpAnd, other)
}

// Or combines self with other and wraps the result in parentheses for
// correct precedence: (self or other).
func (c Combinable) Or(other Node) *GroupNode {
	return Group(NewOperatorNode(c.self, OpOr, other))
}

// Not negates self: not (self).
func (c Combinable) Not() *UnaryOpNode {
	return NewUnaryOpNode(OpNot, c.self)
}
