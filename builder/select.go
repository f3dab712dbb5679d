package builder

import (
	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// SelectBuilder builds select statements.
type SelectBuilder struct {
	pipeline
	node *nodes.SelectNode
}

// SelectFrom starts a select over the given table. The table expression may
// carry an alias: "person as p".
func SelectFrom(table string) *SelectBuilder {
	return &SelectBuilder{
		node: &nodes.SelectNode{From: nodes.From(parseTableExpr(table))},
	}
}

func (b *SelectBuilder) with(n *nodes.SelectNode) *SelectBuilder {
	return &SelectBuilder{pipeline: b.pipeline, node: n}
}

func (b *SelectBuilder) clone() *nodes.SelectNode {
	n := *b.node
	if b.node.Projections != nil {
		items := make([]nodes.Node, len(b.node.Projections.Items))
		copy(items, b.node.Projections.Items)
		n.Projections = &nodes.ListNode{Items: items}
	}
	joins := make([]*nodes.JoinNode, len(b.node.Joins))
	copy(joins, b.node.Joins)
	n.Joins = joins
	orderBy := make([]*nodes.OrderByNode, len(b.node.OrderBy))
	copy(orderBy, b.node.OrderBy)
	n.OrderBy = orderBy
	return &n
}

// Select appends projection expressions: column references, optionally
// qualified ("person.id") or aliased ("id as person_id").
func (b *SelectBuilder) Select(exprs ...string) *SelectBuilder {
	n := b.clone()
	items := make([]nodes.Node, len(exprs))
	for i, e := range exprs {
		items[i] = parseColumnExpr(e)
	}
	n.Projections = appendList(n.Projections, items...)
	return b.with(n)
}

// SelectExpr appends prebuilt projection nodes.
func (b *SelectBuilder) SelectExpr(exprs ...nodes.Node) *SelectBuilder {
	n := b.clone()
	n.Projections = appendList(n.Projections, exprs...)
	return b.with(n)
}

// SelectAll clears the projection list so the statement renders select *.
func (b *SelectBuilder) SelectAll() *SelectBuilder {
	n := b.clone()
	n.Projections = nil
	return b.with(n)
}

// Distinct marks the select as distinct.
func (b *SelectBuilder) Distinct() *SelectBuilder {
	n := b.clone()
	n.Distinct = true
	return b.with(n)
}

// Where adds a predicate in triple form: Where("id", "=", 1). Predicates
// accumulate and are combined with AND. Pass a []any value with the in or
// not in operators.
func (b *SelectBuilder) Where(column, op string, value any) *SelectBuilder {
	return b.WhereExpr(pred(column, op, value))
}

// WhereExpr adds prebuilt predicate nodes.
func (b *SelectBuilder) WhereExpr(conds ...nodes.Node) *SelectBuilder {
	n := b.clone()
	n.Where = appendWhere(n.Where, conds...)
	return b.with(n)
}

// WhereRaw adds a raw SQL predicate with ? parameter slots.
func (b *SelectBuilder) WhereRaw(fragment string, values ...any) *SelectBuilder {
	return b.WhereExpr(nodes.Raw(fragment, values...))
}

// WhereExists adds an exists predicate over a subquery.
func (b *SelectBuilder) WhereExists(sub *SelectBuilder) *SelectBuilder {
	return b.WhereExpr(nodes.Exists(sub.Node()))
}

// InnerJoin joins a table on a column equality: InnerJoin("pet",
// "pet.owner_id", "person.id").
func (b *SelectBuilder) InnerJoin(table, leftCol, rightCol string) *SelectBuilder {
	return b.join(nodes.InnerJoin, table, leftCol, rightCol)
}

// LeftJoin joins a table with a left outer join.
func (b *SelectBuilder) LeftJoin(table, leftCol, rightCol string) *SelectBuilder {
	return b.join(nodes.LeftJoin, table, leftCol, rightCol)
}

// RightJoin joins a table with a right outer join.
func (b *SelectBuilder) RightJoin(table, leftCol, rightCol string) *SelectBuilder {
	return b.join(nodes.RightJoin, table, leftCol, rightCol)
}

// FullJoin joins a table with a full outer join.
func (b *SelectBuilder) FullJoin(table, leftCol, rightCol string) *SelectBuilder {
	return b.join(nodes.FullJoin, table, leftCol, rightCol)
}

func (b *SelectBuilder) join(kind nodes.JoinKind, table, leftCol, rightCol string) *SelectBuilder {
	on := nodes.NewOperatorNode(parseColumnRef(leftCol), nodes.OpEq, parseColumnRef(rightCol))
	return b.JoinOn(kind, table, on)
}

// JoinOn joins a table with an arbitrary on condition.
func (b *SelectBuilder) JoinOn(kind nodes.JoinKind, table string, on nodes.Node) *SelectBuilder {
	n := b.clone()
	n.Joins = append(n.Joins, &nodes.JoinNode{Kind: kind, Target: parseTableExpr(table), On: on})
	return b.with(n)
}

// CrossJoin adds a cross join, which carries no on condition.
func (b *SelectBuilder) CrossJoin(table string) *SelectBuilder {
	n := b.clone()
	n.Joins = append(n.Joins, &nodes.JoinNode{Kind: nodes.CrossJoin, Target: parseTableExpr(table)})
	return b.with(n)
}

// OrderBy appends an ascending order term.
func (b *SelectBuilder) OrderBy(column string) *SelectBuilder {
	return b.OrderByExpr(parseColumnRef(column).Asc())
}

// OrderByDesc appends a descending order term.
func (b *SelectBuilder) OrderByDesc(column string) *SelectBuilder {
	return b.OrderByExpr(parseColumnRef(column).Desc())
}

// OrderByExpr appends prebuilt order terms.
func (b *SelectBuilder) OrderByExpr(terms ...*nodes.OrderByNode) *SelectBuilder {
	n := b.clone()
	n.OrderBy = append(n.OrderBy, terms...)
	return b.with(n)
}

// Limit caps the row count. The value is bound as a parameter.
func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	n := b.clone()
	n.Limit = &nodes.ValueNode{Value: limit}
	return b.with(n)
}

// Offset skips the first rows. The value is bound as a parameter.
func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	n := b.clone()
	n.Offset = &nodes.ValueNode{Value: offset}
	return b.with(n)
}

// Use appends transformer plugins applied when the query is compiled.
func (b *SelectBuilder) Use(ts ...plugins.Transformer) *SelectBuilder {
	return &SelectBuilder{pipeline: b.pipeline.with(ts), node: b.node}
}

// Node returns the underlying tree. Callers must treat it as read-only.
func (b *SelectBuilder) Node() *nodes.SelectNode {
	return b.node
}

// Compile applies the transformer pipeline and renders the query for the
// given dialect.
func (b *SelectBuilder) Compile(d dialect.Dialect) (compiler.Compiled, error) {
	stmt := b.clone()
	for _, t := range b.transformers {
		var err error
		stmt, err = t.TransformSelect(stmt)
		if err != nil {
			return compiler.Compiled{}, err
		}
	}
	return compiler.Compile(d, stmt)
}

// ToSQL compiles the query and returns the SQL text with its parameters.
func (b *SelectBuilder) ToSQL(d dialect.Dialect) (string, []any, error) {
	c, err := b.Compile(d)
	if err != nil {
		return "", nil, err
	}
	return c.SQL, c.Parameters, nil
}
