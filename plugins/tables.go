package plugins

import "github.com/SferaDev/kysely/nodes"

// TableRef describes a table relation referenced by a select statement.
// Name is the underlying table name, used for matching and filtering;
// Qualifier is the name column references against the relation must use,
// which is the alias when the relation is aliased.
type TableRef struct {
	Name      string
	Qualifier string
}

// CollectTables returns the table relations a select statement references
// in its FROM clause and join targets. Subqueries are skipped.
func CollectTables(stmt *nodes.SelectNode) []TableRef {
	var refs []TableRef
	if stmt.From != nil {
		for _, src := range stmt.From.Sources {
			if ref, ok := tableRef(src); ok {
				refs = append(refs, ref)
			}
		}
	}
	for _, j := range stmt.Joins {
		if ref, ok := tableRef(j.Target); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

func tableRef(n nodes.Node) (TableRef, bool) {
	switch r := n.(type) {
	case *nodes.TableNode:
		return TableRef{Name: r.Name, Qualifier: r.Name}, true
	case *nodes.AliasNode:
		if tbl, ok := r.Expr.(*nodes.TableNode); ok {
			return TableRef{Name: tbl.Name, Qualifier: r.Name}, true
		}
		return TableRef{}, false
	default:
		return TableRef{}, false
	}
}

// AppendConditions returns a WHERE clause extending w with conds. The input
// clause is left unchanged; a nil w yields a fresh clause.
func AppendConditions(w *nodes.WhereNode, conds ...nodes.Node) *nodes.WhereNode {
	if w == nil {
		return nodes.Where(conds...)
	}
	items := make([]nodes.Node, len(w.Conditions), len(w.Conditions)+len(conds))
	copy(items, w.Conditions)
	return &nodes.WhereNode{Conditions: append(items, conds...)}
}
