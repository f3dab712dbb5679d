package nodes

// ColumnNode is a reference to a column, optionally qualified by a table or
// alias name. An empty Table renders the bare column name.
type ColumnNode struct {
	Predications
	Table string
	Name  string
}

func (n *ColumnNode) Accept(v Visitor) error { return v.VisitColumn(n) }

// Col creates a table-qualified column reference. Pass an empty table for an
// unqualified reference.
func Col(table, name string) *ColumnNode {
	n := &ColumnNode{Table: table, Name: name}
	n.Predications.self = n
	return n
}

// Column creates an unqualified column reference.
func Column(name string) *ColumnNode {
	return Col("", name)
}
