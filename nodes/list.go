package nodes

// ListNode is an ordered sequence of nodes rendered comma-separated. It
// backs column lists, projection lists and value tuples; any surrounding
// parentheses belong to the parent node's rendering.
type ListNode struct {
	Items []Node
}

func (n *ListNode) Accept(v Visitor) error { return v.VisitList(n) }

// List creates a list from prebuilt nodes.
func List(items ...Node) *ListNode {
	return &ListNode{Items: items}
}

// ValueList creates a list wrapping each val through Value.
func ValueList(vals ...any) *ListNode {
	items := make([]Node, len(vals))
	for i, v := range vals {
		items[i] = Value(v)
	}
	return &ListNode{Items: items}
}

// GroupNode wraps an expression in parentheses, guarding precedence when
// OR-combined predicates nest inside AND chains.
type GroupNode struct {
	Combinable
	Expr Node
}

func (n *GroupNode) Accept(v Visitor) error { return v.VisitGroup(n) }

// Group wraps expr in parentheses.
func Group(expr Node) *GroupNode {
	n := &GroupNode{Expr: expr}
	n.Combinable.self = n
	return n
}
