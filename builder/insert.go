package builder

import (
	"strings"

	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// InsertBuilder builds insert statements.
type InsertBuilder struct {
	pipeline
	node *nodes.InsertNode
}

// InsertInto starts an insert into the given table.
func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{
		node: &nodes.InsertNode{Into: nodes.Table(strings.TrimSpace(table))},
	}
}

func (b *InsertBuilder) with(n *nodes.InsertNode) *InsertBuilder {
	return &InsertBuilder{pipeline: b.pipeline, node: n}
}

func (b *InsertBuilder) clone() *nodes.InsertNode {
	n := *b.node
	if b.node.Columns != nil {
		items := make([]nodes.Node, len(b.node.Columns.Items))
		copy(items, b.node.Columns.Items)
		n.Columns = &nodes.ListNode{Items: items}
	}
	rows := make([]*nodes.ListNode, len(b.node.Rows))
	copy(rows, b.node.Rows)
	n.Rows = rows
	return &n
}

// Columns sets the insert column list.
func (b *InsertBuilder) Columns(cols ...string) *InsertBuilder {
	n := b.clone()
	n.Columns = columnList(cols)
	return b.with(n)
}

// Values appends one row of values. Values are bound as parameters in the
// order given; pass nodes.Generated for database-generated columns and the
// compiler omits the column and value together.
func (b *InsertBuilder) Values(vals ...any) *InsertBuilder {
	n := b.clone()
	n.Rows = append(n.Rows, nodes.ValueList(vals...))
	return b.with(n)
}

// Rows appends several rows at once.
func (b *InsertBuilder) Rows(rows ...[]any) *InsertBuilder {
	n := b.clone()
	for _, r := range rows {
		n.Rows = append(n.Rows, nodes.ValueList(r...))
	}
	return b.with(n)
}

// Ignore marks the insert to skip conflicting rows. Only MySQL can express
// this; other dialects reject it at compile time.
func (b *InsertBuilder) Ignore() *InsertBuilder {
	n := b.clone()
	n.Ignore = true
	return b.with(n)
}

// Returning sets the returning selections.
func (b *InsertBuilder) Returning(exprs ...string) *InsertBuilder {
	n := b.clone()
	n.Returning = &nodes.ReturningNode{Selections: selectionList(exprs)}
	return b.with(n)
}

// ReturningAll sets returning *.
func (b *InsertBuilder) ReturningAll() *InsertBuilder {
	n := b.clone()
	n.Returning = &nodes.ReturningNode{All: true}
	return b.with(n)
}

// OnDuplicateKeyUpdate appends a duplicate-key assignment in MySQL form.
// Repeat to set several columns. Only MySQL can express this clause.
func (b *InsertBuilder) OnDuplicateKeyUpdate(column string, value any) *InsertBuilder {
	n := b.clone()
	var updates []*nodes.AssignmentNode
	if n.OnDuplicate != nil {
		updates = make([]*nodes.AssignmentNode, len(n.OnDuplicate.Updates), len(n.OnDuplicate.Updates)+1)
		copy(updates, n.OnDuplicate.Updates)
	}
	updates = append(updates, nodes.Assign(parseColumnRef(column), value))
	n.OnDuplicate = &nodes.OnDuplicateKeyUpdateNode{Updates: updates}
	return b.with(n)
}

// Use appends transformer plugins applied when the query is compiled.
func (b *InsertBuilder) Use(ts ...plugins.Transformer) *InsertBuilder {
	return &InsertBuilder{pipeline: b.pipeline.with(ts), node: b.node}
}

// Node returns the underlying tree. Callers must treat it as read-only.
func (b *InsertBuilder) Node() *nodes.InsertNode {
	return b.node
}

// Compile applies the transformer pipeline and renders the query for the
// given dialect.
func (b *InsertBuilder) Compile(d dialect.Dialect) (compiler.Compiled, error) {
	stmt := b.clone()
	for _, t := range b.transformers {
		var err error
		stmt, err = t.TransformInsert(stmt)
		if err != nil {
			return compiler.Compiled{}, err
		}
	}
	return compiler.Compile(d, stmt)
}

// ToSQL compiles the query and returns the SQL text with its parameters.
func (b *InsertBuilder) ToSQL(d dialect.Dialect) (string, []any, error) {
	c, err := b.Compile(d)
	if err != nil {
		return "", nil, err
	}
	return c.SQL, c.Parameters, nil
}

func (b *InsertBuilder) withConflict(t *nodes.OnConflictNode) *InsertBuilder {
	n := b.clone()
	n.OnConflict = t
	return b.with(n)
}

// --- conflict handling ---

func cloneConflict(c *nodes.OnConflictNode) *nodes.OnConflictNode {
	n := *c
	cols := make([]*nodes.ColumnNode, len(c.Columns))
	copy(cols, c.Columns)
	n.Columns = cols
	updates := make([]*nodes.AssignmentNode, len(c.Updates))
	copy(updates, c.Updates)
	n.Updates = updates
	return &n
}

// OnConflictColumns begins conflict handling targeting the given columns.
func (b *InsertBuilder) OnConflictColumns(cols ...string) *ConflictTargetBuilder {
	target := &nodes.OnConflictNode{Columns: make([]*nodes.ColumnNode, len(cols))}
	for i, c := range cols {
		target.Columns[i] = parseColumnRef(c)
	}
	return &ConflictTargetBuilder{insert: b, target: target}
}

// OnConflictConstraint begins conflict handling targeting a named unique
// constraint.
func (b *InsertBuilder) OnConflictConstraint(name string) *ConflictTargetBuilder {
	return &ConflictTargetBuilder{insert: b, target: &nodes.OnConflictNode{Constraint: name}}
}

// OnConflict begins conflict handling with a bare target, matching any
// conflicting unique index.
func (b *InsertBuilder) OnConflict() *ConflictTargetBuilder {
	return &ConflictTargetBuilder{insert: b, target: &nodes.OnConflictNode{}}
}

// ConflictTargetBuilder guides conflict clause construction: choose an
// optional target predicate, then the outcome. Like the statement builders
// it is immutable.
type ConflictTargetBuilder struct {
	insert *InsertBuilder
	target *nodes.OnConflictNode
}

// Where adds an index predicate on the conflict target, narrowing which
// partial unique index is matched.
func (cb *ConflictTargetBuilder) Where(column, op string, value any) *ConflictTargetBuilder {
	return cb.WhereExpr(pred(column, op, value))
}

// WhereExpr adds prebuilt index predicate nodes on the conflict target.
func (cb *ConflictTargetBuilder) WhereExpr(conds ...nodes.Node) *ConflictTargetBuilder {
	t := cloneConflict(cb.target)
	t.TargetWhere = appendWhere(t.TargetWhere, conds...)
	return &ConflictTargetBuilder{insert: cb.insert, target: t}
}

// DoNothing resolves conflicts by dropping the conflicting row.
func (cb *ConflictTargetBuilder) DoNothing() *InsertBuilder {
	t := cloneConflict(cb.target)
	t.DoNothing = true
	return cb.insert.withConflict(t)
}

// DoUpdateSet resolves conflicts by updating the existing row. Chain Set
// for more assignments and Where for an update predicate.
func (cb *ConflictTargetBuilder) DoUpdateSet(column string, value any) *ConflictUpdateBuilder {
	t := cloneConflict(cb.target)
	t.Updates = append(t.Updates, nodes.Assign(parseColumnRef(column), value))
	return &ConflictUpdateBuilder{insert: cb.insert.withConflict(t), target: t}
}

// ConflictUpdateBuilder extends a do-update-set outcome. The conflict
// clause is already attached, so terminal operations are available both
// here and after Insert.
type ConflictUpdateBuilder struct {
	insert *InsertBuilder
	target *nodes.OnConflictNode
}

// Set appends another assignment to the do-update-set outcome.
func (ub *ConflictUpdateBuilder) Set(column string, value any) *ConflictUpdateBuilder {
	t := cloneConflict(ub.target)
	t.Updates = append(t.Updates, nodes.Assign(parseColumnRef(column), value))
	return &ConflictUpdateBuilder{insert: ub.insert.withConflict(t), target: t}
}

// Where adds a predicate deciding whether the conflicting row is updated.
func (ub *ConflictUpdateBuilder) Where(column, op string, value any) *ConflictUpdateBuilder {
	return ub.WhereExpr(pred(column, op, value))
}

// WhereExpr adds prebuilt update predicate nodes.
func (ub *ConflictUpdateBuilder) WhereExpr(conds ...nodes.Node) *ConflictUpdateBuilder {
	t := cloneConflict(ub.target)
	t.UpdateWhere = appendWhere(t.UpdateWhere, conds...)
	return &ConflictUpdateBuilder{insert: ub.insert.withConflict(t), target: t}
}

// Insert returns the insert builder with the conflict clause attached.
func (ub *ConflictUpdateBuilder) Insert() *InsertBuilder {
	return ub.insert
}

// Returning sets the returning selections on the underlying insert.
func (ub *ConflictUpdateBuilder) Returning(exprs ...string) *InsertBuilder {
	return ub.insert.Returning(exprs...)
}

// ReturningAll sets returning * on the underlying insert.
func (ub *ConflictUpdateBuilder) ReturningAll() *InsertBuilder {
	return ub.insert.ReturningAll()
}

// Compile renders the underlying insert for the given dialect.
func (ub *ConflictUpdateBuilder) Compile(d dialect.Dialect) (compiler.Compiled, error) {
	return ub.insert.Compile(d)
}

// ToSQL compiles the underlying insert and returns the SQL text with its
// parameters.
func (ub *ConflictUpdateBuilder) ToSQL(d dialect.Dialect) (string, []any, error) {
	return ub.insert.ToSQL(d)
}
