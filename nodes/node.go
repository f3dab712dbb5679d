// Package nodes defines the immutable AST node types that represent SQL
// statements under construction. Builders compose trees of these nodes and
// the compiler walks them to produce dialect-specific SQL text.
package nodes

// Node is the interface that all AST nodes implement. Accept dispatches to
// the visitor method for the node's concrete type and propagates any error
// the visitor reports.
type Node interface {
	Accept(visitor Visitor) error
}

// Visitor defines the interface for walking the AST. Every node variant has
// exactly one method here, so a visitor that misses a variant fails to
// compile rather than at runtime.
type Visitor interface {
	VisitSelect(node *SelectNode) error
	VisitInsert(node *InsertNode) error
	VisitUpdate(node *UpdateNode) error
	VisitDelete(node *DeleteNode) error
	VisitFrom(node *FromNode) error
	VisitWhere(node *WhereNode) error
	VisitJoin(node *JoinNode) error
	VisitOrderBy(node *OrderByNode) error
	VisitReturning(node *ReturningNode) error
	VisitOnConflict(node *OnConflictNode) error
	VisitOnDuplicateKeyUpdate(node *OnDuplicateKeyUpdateNode) error
	VisitAssignment(node *AssignmentNode) error
	VisitTable(node *TableNode) error
	VisitColumn(node *ColumnNode) error
	VisitAlias(node *AliasNode) error
	VisitValue(node *ValueNode) error
	VisitGenerated(node *GeneratedNode) error
	VisitRaw(node *RawNode) error
	VisitOperator(node *OperatorNode) error
	VisitUnaryOp(node *UnaryOpNode) error
	VisitList(node *ListNode) error
	VisitGroup(node *GroupNode) error
}

// Value wraps a plain Go value into a ValueNode. If val already implements
// Node, it is returned as-is, so prebuilt expressions and the Generated
// sentinel pass through unchanged.
func Value(val any) Node {
	if n, ok := val.(Node); ok {
		return n
	}
	return &ValueNode{Value: val}
}
