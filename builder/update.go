package builder

import (
	"strings"

	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// UpdateBuilder builds update statements.
type UpdateBuilder struct {
	pipeline
	node *nodes.UpdateNode
}

// Update starts an update of the given table.
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{
		node: &nodes.UpdateNode{Table: nodes.Table(strings.TrimSpace(table))},
	}
}

func (b *UpdateBuilder) with(n *nodes.UpdateNode) *UpdateBuilder {
	return &UpdateBuilder{pipeline: b.pipeline, node: n}
}

func (b *UpdateBuilder) clone() *nodes.UpdateNode {
	n := *b.node
	set := make([]*nodes.AssignmentNode, len(b.node.Set))
	copy(set, b.node.Set)
	n.Set = set
	return &n
}

// Set appends an assignment. The value may be a plain value, bound as a
// parameter, or any expression node such as nodes.Raw.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	n := b.clone()
	n.Set = append(n.Set, nodes.Assign(parseColumnRef(column), value))
	return b.with(n)
}

// Where adds a predicate built from a column, an operator and a value.
// Predicates accumulate with and.
func (b *UpdateBuilder) Where(column, op string, value any) *UpdateBuilder {
	return b.WhereExpr(pred(column, op, value))
}

// WhereExpr adds prebuilt predicate nodes.
func (b *UpdateBuilder) WhereExpr(conds ...nodes.Node) *UpdateBuilder {
	n := b.clone()
	n.Where = appendWhere(n.Where, conds...)
	return b.with(n)
}

// WhereRaw adds a raw SQL predicate with ? slots bound to values.
func (b *UpdateBuilder) WhereRaw(fragment string, values ...any) *UpdateBuilder {
	return b.WhereExpr(nodes.Raw(fragment, values...))
}

// Returning sets the returning selections.
func (b *UpdateBuilder) Returning(exprs ...string) *UpdateBuilder {
	n := b.clone()
	n.Returning = &nodes.ReturningNode{Selections: selectionList(exprs)}
	return b.with(n)
}

// ReturningAll sets returning *.
func (b *UpdateBuilder) ReturningAll() *UpdateBuilder {
	n := b.clone()
	n.Returning = &nodes.ReturningNode{All: true}
	return b.with(n)
}

// Use appends transformer plugins applied when the query is compiled.
func (b *UpdateBuilder) Use(ts ...plugins.Transformer) *UpdateBuilder {
	return &UpdateBuilder{pipeline: b.pipeline.with(ts), node: b.node}
}

// Node returns the underlying tree. Callers must treat it as read-only.
func (b *UpdateBuilder) Node() *nodes.UpdateNode {
	return b.node
}

// Compile applies the transformer pipeline and renders the query for the
// given dialect.
func (b *UpdateBuilder) Compile(d dialect.Dialect) (compiler.Compiled, error) {
	stmt := b.clone()
	for _, t := range b.transformers {
		var err error
		stmt, err = t.TransformUpdate(stmt)
		if err != nil {
			return compiler.Compiled{}, err
		}
	}
	return compiler.Compile(d, stmt)
}

// ToSQL compiles the query and returns the SQL text with its parameters.
func (b *UpdateBuilder) ToSQL(d dialect.Dialect) (string, []any, error) {
	c, err := b.Compile(d)
	if err != nil {
		return "", nil, err
	}
	return c.SQL, c.Parameters, nil
}
