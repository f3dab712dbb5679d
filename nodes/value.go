package nodes

// ValueNode wraps a plain Go value destined for a bind parameter. A nil
// value renders as the NULL keyword and is never parameterized.
type ValueNode struct {
	Value any
}

func (n *ValueNode) Accept(v Visitor) error { return v.VisitValue(n) }

// GeneratedNode marks an insert value as database-generated. The compiler
// omits the column and the value together, letting the database fill in a
// default, sequence or autoincrement value.
type GeneratedNode struct{}

func (n *GeneratedNode) Accept(v Visitor) error { return v.VisitGenerated(n) }

// Generated is the sentinel placed in insert rows for database-generated
// columns. Because it implements Node it passes through Value unchanged.
var Generated = &GeneratedNode{}

// IsGenerated reports whether n is a generated-column sentinel.
func IsGenerated(n Node) bool {
	_, ok := n.(*GeneratedNode)
	return ok
}
