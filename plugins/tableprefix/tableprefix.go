// Package tableprefix provides a Transformer that prefixes every table
// name in a statement, for schemas that namespace tables per tenant or
// per application:
//
//	q := builder.SelectFrom("person").Use(tableprefix.New("app_"))
//	// select * from "app_person"
//
// Relation aliases and column names are left alone; column qualifiers are
// rewritten only where they name a table rather than an alias.
package tableprefix

import (
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// TablePrefix prepends a fixed prefix to every table reference.
type TablePrefix struct {
	prefix string
}

// New creates a TablePrefix transformer with the given prefix.
func New(prefix string) *TablePrefix {
	return &TablePrefix{prefix: prefix}
}

func (p *TablePrefix) rewrite(name string) string { return p.prefix + name }

func (p *TablePrefix) TransformSelect(stmt *nodes.SelectNode) (*nodes.SelectNode, error) {
	return plugins.RewriteSelect(stmt, p.rewrite, nil), nil
}

func (p *TablePrefix) TransformInsert(stmt *nodes.InsertNode) (*nodes.InsertNode, error) {
	return plugins.RewriteInsert(stmt, p.rewrite, nil), nil
}

func (p *TablePrefix) TransformUpdate(stmt *nodes.UpdateNode) (*nodes.UpdateNode, error) {
	return plugins.RewriteUpdate(stmt, p.rewrite, nil), nil
}

func (p *TablePrefix) TransformDelete(stmt *nodes.DeleteNode) (*nodes.DeleteNode, error) {
	return plugins.RewriteDelete(stmt, p.rewrite, nil), nil
}
