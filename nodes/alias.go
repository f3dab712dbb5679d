package nodes

// AliasNode binds an expression or table reference to an alias name,
// rendered as expr AS alias.
type AliasNode struct {
	Predications
	Expr Node
	Name string
}

func (n *AliasNode) Accept(v Visitor) error { return v.VisitAlias(n) }

// Alias wraps expr under the given alias name.
func Alias(expr Node, name string) *AliasNode {
	n := &AliasNode{Expr: expr, Name: name}
	n.Predications.self = n
	return n
}
