package nodes

// TableNode is a reference to a table by name. The name is stored verbatim;
// quoting is the compiler's job.
type TableNode struct {
	Name string
}

func (n *TableNode) Accept(v Visitor) error { return v.VisitTable(n) }

// Table creates a table reference.
func Table(name string) *TableNode {
	return &TableNode{Name: name}
}

// Col creates a column reference qualified by this table.
func (n *TableNode) Col(name string) *ColumnNode {
	return Col(n.Name, name)
}

// As creates an aliased reference to this table.
func (n *TableNode) As(alias string) *AliasNode {
	return Alias(n, alias)
}
