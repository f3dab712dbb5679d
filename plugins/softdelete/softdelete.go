// Package softdelete provides a Transformer that injects "column is null"
// predicates into select statements, filtering out soft-deleted rows.
//
// By default every table referenced in the FROM clause and joins gets a
// where "deleted_at" is null predicate. Both the column name and the set
// of tables can be customised with options:
//
//	sd := softdelete.New()
//	builder.SelectFrom("users").Use(sd)
//	// select * from "users" where "users"."deleted_at" is null
//
//	softdelete.New(softdelete.WithColumn("removed_at"))
//	// ... where "users"."removed_at" is null
//
//	softdelete.New(softdelete.WithTables("users"))
//	// only "users" is filtered; other joined tables are unchanged
//
//	softdelete.New(
//	    softdelete.WithTableColumn("users", "deleted_at"),
//	    softdelete.WithTableColumn("posts", "removed_at"),
//	)
//	// per-table column names
package softdelete

import (
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// SoftDelete appends is-null predicates for a soft-delete column on every
// referenced table, or on a configured subset.
type SoftDelete struct {
	plugins.Base
	Column  string
	Columns map[string]string // per-table column overrides
	tables  map[string]bool   // nil means apply to all tables
}

// Option configures a SoftDelete transformer.
type Option func(*SoftDelete)

// WithColumn sets the soft-delete column name. Default is "deleted_at".
func WithColumn(name string) Option {
	return func(sd *SoftDelete) { sd.Column = name }
}

// WithTables restricts the plugin to the named tables. By default the
// plugin applies to every table in the query.
func WithTables(names ...string) Option {
	return func(sd *SoftDelete) {
		sd.tables = make(map[string]bool, len(names))
		for _, n := range names {
			sd.tables[n] = true
		}
	}
}

// WithTableColumn sets a per-table column override. The table is added to
// the restriction set, narrowing the plugin's scope.
func WithTableColumn(table, column string) Option {
	return func(sd *SoftDelete) {
		if sd.Columns == nil {
			sd.Columns = make(map[string]string)
		}
		sd.Columns[table] = column
		if sd.tables == nil {
			sd.tables = make(map[string]bool)
		}
		sd.tables[table] = true
	}
}

// New creates a SoftDelete transformer with the given options.
func New(opts ...Option) *SoftDelete {
	sd := &SoftDelete{Column: "deleted_at"}
	for _, o := range opts {
		o(sd)
	}
	return sd
}

// TransformSelect appends a "column is null" predicate for each matching
// table referenced by the statement. Columns are qualified with the
// relation's alias when one is in use.
func (sd *SoftDelete) TransformSelect(stmt *nodes.SelectNode) (*nodes.SelectNode, error) {
	var conds []nodes.Node
	for _, ref := range plugins.CollectTables(stmt) {
		if sd.appliesTo(ref.Name) {
			conds = append(conds, nodes.Col(ref.Qualifier, sd.columnFor(ref.Name)).IsNull())
		}
	}
	if len(conds) == 0 {
		return stmt, nil
	}
	out := *stmt
	out.Where = plugins.AppendConditions(stmt.Where, conds...)
	return &out, nil
}

func (sd *SoftDelete) appliesTo(tableName string) bool {
	if sd.tables == nil {
		return true
	}
	return sd.tables[tableName]
}

// columnFor returns the column name for the given table, preferring a
// per-table override.
func (sd *SoftDelete) columnFor(tableName string) string {
	if sd.Columns != nil {
		if col, ok := sd.Columns[tableName]; ok {
			return col
		}
	}
	return sd.Column
}
