// Package builder provides the fluent query construction API. Builders are
// immutable: every method returns a new builder whose tree shares untouched
// children with its parent, so a partially built query can be forked and
// extended in different directions without the branches affecting each
// other.
package builder

import (
	"strings"

	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// pipeline carries the transformer plugins applied at compile time. It is
// copied on extension so forked builders keep independent plugin lists.
type pipeline struct {
	transformers []plugins.Transformer
}

func (p pipeline) with(ts []plugins.Transformer) pipeline {
	if len(ts) == 0 {
		return p
	}
	next := make([]plugins.Transformer, 0, len(p.transformers)+len(ts))
	next = append(next, p.transformers...)
	next = append(next, ts...)
	return pipeline{transformers: next}
}

// parseTableExpr parses a table expression of the form "person" or
// "person as p".
func parseTableExpr(s string) nodes.Node {
	if name, alias, ok := splitAlias(s); ok {
		return nodes.Table(name).As(alias)
	}
	return nodes.Table(strings.TrimSpace(s))
}

// parseColumnRef parses a column reference of the form "first_name" or
// "person.first_name". Aliases are not allowed here.
func parseColumnRef(s string) *nodes.ColumnNode {
	s = strings.TrimSpace(s)
	if table, name, ok := strings.Cut(s, "."); ok {
		return nodes.Col(table, name)
	}
	return nodes.Column(s)
}

// parseColumnExpr parses a selection expression: a column reference
// optionally followed by " as alias".
func parseColumnExpr(s string) nodes.Node {
	if name, alias, ok := splitAlias(s); ok {
		return parseColumnRef(name).As(alias)
	}
	return parseColumnRef(s)
}

// splitAlias splits "expr as alias" into its two halves.
func splitAlias(s string) (expr, alias string, ok bool) {
	s = strings.TrimSpace(s)
	before, after, found := strings.Cut(s, " as ")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(before), strings.TrimSpace(after), true
}

// columnList builds a list of plain column references.
func columnList(cols []string) *nodes.ListNode {
	items := make([]nodes.Node, len(cols))
	for i, c := range cols {
		items[i] = parseColumnRef(c)
	}
	return nodes.List(items...)
}

// selectionList builds a list of selection expressions, aliases allowed.
func selectionList(exprs []string) *nodes.ListNode {
	items := make([]nodes.Node, len(exprs))
	for i, e := range exprs {
		items[i] = parseColumnExpr(e)
	}
	return nodes.List(items...)
}

// pred builds a binary predicate from the builder's triple form. An
// unrecognised operator is carried as-is and rejected when the query is
// compiled, keeping the fluent chain free of error returns. A []any value
// becomes a value list, which pairs with the in and not in operators.
func pred(column, op string, value any) nodes.Node {
	parsed, _ := nodes.ParseOperator(op)
	var right nodes.Node
	if vals, isSlice := value.([]any); isSlice {
		right = nodes.ValueList(vals...)
	} else {
		right = nodes.Value(value)
	}
	return nodes.NewOperatorNode(parseColumnRef(column), parsed, right)
}

// appendWhere returns a new where clause extending w with conds. The
// original clause is never modified.
func appendWhere(w *nodes.WhereNode, conds ...nodes.Node) *nodes.WhereNode {
	if w == nil {
		return nodes.Where(conds...)
	}
	merged := make([]nodes.Node, 0, len(w.Conditions)+len(conds))
	merged = append(merged, w.Conditions...)
	merged = append(merged, conds...)
	return &nodes.WhereNode{Conditions: merged}
}

// appendList returns a new list extending l with items, or a fresh list
// when l is nil.
func appendList(l *nodes.ListNode, items ...nodes.Node) *nodes.ListNode {
	if l == nil {
		return nodes.List(items...)
	}
	merged := make([]nodes.Node, 0, len(l.Items)+len(items))
	merged = append(merged, l.Items...)
	merged = append(merged, items...)
	return &nodes.ListNode{Items: merged}
}
