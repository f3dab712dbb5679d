package nodes

// OnConflictNode captures an insert's conflict handling intent in dialect
// neutral form. The target is either a column list, a named constraint or
// bare; Columns and Constraint are mutually exclusive. The outcome is either
// do-nothing or do-update-set with optional predicates on the conflict
// target and on the update.
type OnConflictNode struct {
	Columns     []*ColumnNode
	Constraint  string
	TargetWhere *WhereNode
	DoNothing   bool
	Updates     []*AssignmentNode
	UpdateWhere *WhereNode
}

func (n *OnConflictNode) Accept(v Visitor) error { return v.VisitOnConflict(n) }

// OnDuplicateKeyUpdateNode is the MySQL-flavoured duplicate-key update
// clause. It has no conflict target and no predicates.
type OnDuplicateKeyUpdateNode struct {
	Updates []*AssignmentNode
}

func (n *OnDuplicateKeyUpdateNode) Accept(v Visitor) error {
	return v.VisitOnDuplicateKeyUpdate(n)
}
