package nodes

// FromNode is the FROM clause of a select: one or more table sources,
// rendered comma-separated.
type FromNode struct {
	Sources []Node
}

func (n *FromNode) Accept(v Visitor) error { return v.VisitFrom(n) }

// From creates a FROM clause over the given sources.
func From(sources ...Node) *FromNode {
	return &FromNode{Sources: sources}
}

// WhereNode is a WHERE clause holding one or more predicates that the
// compiler joins with AND.
type WhereNode struct {
	Conditions []Node
}

func (n *WhereNode) Accept(v Visitor) error { return v.VisitWhere(n) }

// Where creates a WHERE clause from the given predicates.
func Where(conditions ...Node) *WhereNode {
	return &WhereNode{Conditions: conditions}
}

// JoinKind selects the join variant.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
)

// JoinNode joins a target table or subquery onto the statement. On must be
// nil for cross joins and non-nil for every other kind.
type JoinNode struct {
	Kind   JoinKind
	Target Node
	On     Node
}

func (n *JoinNode) Accept(v Visitor) error { return v.VisitJoin(n) }

// Direction is an ORDER BY sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// OrderByNode is a single ORDER BY term: an expression plus direction.
type OrderByNode struct {
	Expr Node
	Dir  Direction
}

func (n *OrderByNode) Accept(v Visitor) error { return v.VisitOrderBy(n) }

// ReturningNode is a RETURNING clause. All renders returning * and takes
// precedence over Selections.
type ReturningNode struct {
	All        bool
	Selections *ListNode
}

func (n *ReturningNode) Accept(v Visitor) error { return v.VisitReturning(n) }
