package nodes

// AssignmentNode is a column = value pair in a SET clause.
type AssignmentNode struct {
	Column *ColumnNode
	Value  Node
}

func (n *AssignmentNode) Accept(v Visitor) error { return v.VisitAssignment(n) }

// Assign creates an assignment of val to the named column.
func Assign(column *ColumnNode, val any) *AssignmentNode {
	return &AssignmentNode{Column: column, Value: Value(val)}
}

// SelectNode is the root of a select statement. A nil Projections list
// renders select *.
type SelectNode struct {
	Distinct    bool
	Projections *ListNode
	From        *FromNode
	Joins       []*JoinNode
	Where       *WhereNode
	OrderBy     []*OrderByNode
	Limit       *ValueNode
	Offset      *ValueNode
}

func (n *SelectNode) Accept(v Visitor) error { return v.VisitSelect(n) }

// InsertNode is the root of an insert statement. Columns lists the target
// columns and each row in Rows must carry one value per column. Ignore,
// OnConflict and OnDuplicate express conflict handling intents; at most one
// may be set on a well-formed tree.
type InsertNode struct {
	Into        *TableNode
	Columns     *ListNode
	Rows        []*ListNode
	Ignore      bool
	OnConflict  *OnConflictNode
	OnDuplicate *OnDuplicateKeyUpdateNode
	Returning   *ReturningNode
}

func (n *InsertNode) Accept(v Visitor) error { return v.VisitInsert(n) }

// UpdateNode is the root of an update statement.
type UpdateNode struct {
	Table     *TableNode
	Set       []*AssignmentNode
	Where     *WhereNode
	Returning *ReturningNode
}

func (n *UpdateNode) Accept(v Visitor) error { return v.VisitUpdate(n) }

// DeleteNode is the root of a delete statement.
type DeleteNode struct {
	From      *TableNode
	Where     *WhereNode
	Returning *ReturningNode
}

func (n *DeleteNode) Accept(v Visitor) error { return v.VisitDelete(n) }
