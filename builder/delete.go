package builder

import (
	"strings"

	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// DeleteBuilder builds delete statements.
type DeleteBuilder struct {
	pipeline
	node *nodes.DeleteNode
}

// DeleteFrom starts a delete from the given table.
func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{
		node: &nodes.DeleteNode{From: nodes.Table(strings.TrimSpace(table))},
	}
}

func (b *DeleteBuilder) with(n *nodes.DeleteNode) *DeleteBuilder {
	return &DeleteBuilder{pipeline: b.pipeline, node: n}
}

func (b *DeleteBuilder) clone() *nodes.DeleteNode {
	n := *b.node
	return &n
}

// Where adds a predicate built from a column, an operator and a value.
// Predicates accumulate with and.
func (b *DeleteBuilder) Where(column, op string, value any) *DeleteBuilder {
	return b.WhereExpr(pred(column, op, value))
}

// WhereExpr adds prebuilt predicate nodes.
func (b *DeleteBuilder) WhereExpr(conds ...nodes.Node) *DeleteBuilder {
	n := b.clone()
	n.Where = appendWhere(n.Where, conds...)
	return b.with(n)
}

// WhereRaw adds a raw SQL predicate with ? slots bound to values.
func (b *DeleteBuilder) WhereRaw(fragment string, values ...any) *DeleteBuilder {
	return b.WhereExpr(nodes.Raw(fragment, values...))
}

// Returning sets the returning selections.
func (b *DeleteBuilder) Returning(exprs ...string) *DeleteBuilder {
	n := b.clone()
	n.Returning = &nodes.ReturningNode{Selections: selectionList(exprs)}
	return b.with(n)
}

// ReturningAll sets returning *.
func (b *DeleteBuilder) ReturningAll() *DeleteBuilder {
	n := b.clone()
	n.Returning = &nodes.ReturningNode{All: true}
	return b.with(n)
}

// Use appends transformer plugins applied when the query is compiled.
func (b *DeleteBuilder) Use(ts ...plugins.Transformer) *DeleteBuilder {
	return &DeleteBuilder{pipeline: b.pipeline.with(ts), node: b.node}
}

// Node returns the underlying tree. Callers must treat it as read-only.
func (b *DeleteBuilder) Node() *nodes.DeleteNode {
	return b.node
}

// Compile applies the transformer pipeline and renders the query for the
// given dialect.
func (b *DeleteBuilder) Compile(d dialect.Dialect) (compiler.Compiled, error) {
	stmt := b.clone()
	for _, t := range b.transformers {
		var err error
		stmt, err = t.TransformDelete(stmt)
		if err != nil {
			return compiler.Compiled{}, err
		}
	}
	return compiler.Compile(d, stmt)
}

// ToSQL compiles the query and returns the SQL text with its parameters.
func (b *DeleteBuilder) ToSQL(d dialect.Dialect) (string, []any, error) {
	c, err := b.Compile(d)
	if err != nil {
		return "", nil, err
	}
	return c.SQL, c.Parameters, nil
}
