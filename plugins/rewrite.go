package plugins

import "github.com/SferaDev/kysely/nodes"

// IdentFunc rewrites a single identifier.
type IdentFunc func(string) string

// RewriteSelect returns a copy of stmt with every table name passed through
// table and every column or alias name passed through column. A nil func
// leaves that identifier kind unchanged. Raw SQL fragments are opaque and
// never rewritten. Column qualifiers that name a relation alias follow the
// alias, not the table: they are rewritten with the column func so that the
// alias definition and its uses stay consistent.
func RewriteSelect(stmt *nodes.SelectNode, table, column IdentFunc) *nodes.SelectNode {
	return newIdentRewriter(table, column).selectNode(stmt)
}

// RewriteInsert is RewriteSelect for insert statements.
func RewriteInsert(stmt *nodes.InsertNode, table, column IdentFunc) *nodes.InsertNode {
	return newIdentRewriter(table, column).insertNode(stmt)
}

// RewriteUpdate is RewriteSelect for update statements.
func RewriteUpdate(stmt *nodes.UpdateNode, table, column IdentFunc) *nodes.UpdateNode {
	return newIdentRewriter(table, column).updateNode(stmt)
}

// RewriteDelete is RewriteSelect for delete statements.
func RewriteDelete(stmt *nodes.DeleteNode, table, column IdentFunc) *nodes.DeleteNode {
	return newIdentRewriter(table, column).deleteNode(stmt)
}

type identRewriter struct {
	table   IdentFunc
	column  IdentFunc
	aliases map[string]bool
}

func newIdentRewriter(table, column IdentFunc) *identRewriter {
	keep := func(s string) string { return s }
	if table == nil {
		table = keep
	}
	if column == nil {
		column = keep
	}
	return &identRewriter{table: table, column: column, aliases: map[string]bool{}}
}

// qualifier rewrites a column's table qualifier. Alias names recorded in
// scope are rewritten like the alias definition was.
func (r *identRewriter) qualifier(name string) string {
	if r.aliases[name] {
		return r.column(name)
	}
	return r.table(name)
}

func (r *identRewriter) node(n nodes.Node) nodes.Node {
	switch t := n.(type) {
	case nil:
		return nil
	case *nodes.TableNode:
		return nodes.Table(r.table(t.Name))
	case *nodes.ColumnNode:
		return r.columnNode(t)
	case *nodes.AliasNode:
		return nodes.Alias(r.node(t.Expr), r.column(t.Name))
	case *nodes.OperatorNode:
		return nodes.NewOperatorNode(r.node(t.Left), t.Op, r.node(t.Right))
	case *nodes.UnaryOpNode:
		return nodes.NewUnaryOpNode(t.Op, r.node(t.Expr))
	case *nodes.GroupNode:
		return nodes.Group(r.node(t.Expr))
	case *nodes.ListNode:
		return r.list(t)
	case *nodes.SelectNode:
		return r.selectNode(t)
	case *nodes.InsertNode:
		return r.insertNode(t)
	case *nodes.UpdateNode:
		return r.updateNode(t)
	case *nodes.DeleteNode:
		return r.deleteNode(t)
	default:
		// Values, raw fragments and the generated sentinel carry no
		// rewritable identifiers.
		return n
	}
}

func (r *identRewriter) columnNode(c *nodes.ColumnNode) *nodes.ColumnNode {
	if c.Table != "" {
		return nodes.Col(r.qualifier(c.Table), r.column(c.Name))
	}
	return nodes.Column(r.column(c.Name))
}

func (r *identRewriter) list(l *nodes.ListNode) *nodes.ListNode {
	if l == nil {
		return nil
	}
	items := make([]nodes.Node, len(l.Items))
	for i, item := range l.Items {
		items[i] = r.node(item)
	}
	return &nodes.ListNode{Items: items}
}

func (r *identRewriter) where(w *nodes.WhereNode) *nodes.WhereNode {
	if w == nil {
		return nil
	}
	conds := make([]nodes.Node, len(w.Conditions))
	for i, c := range w.Conditions {
		conds[i] = r.node(c)
	}
	return &nodes.WhereNode{Conditions: conds}
}

func (r *identRewriter) returning(ret *nodes.ReturningNode) *nodes.ReturningNode {
	if ret == nil {
		return nil
	}
	return &nodes.ReturningNode{All: ret.All, Selections: r.list(ret.Selections)}
}

func (r *identRewriter) assignments(set []*nodes.AssignmentNode) []*nodes.AssignmentNode {
	if set == nil {
		return nil
	}
	out := make([]*nodes.AssignmentNode, len(set))
	for i, a := range set {
		out[i] = &nodes.AssignmentNode{Column: r.columnNode(a.Column), Value: r.node(a.Value)}
	}
	return out
}

// recordAliases notes the relation aliases a statement introduces so that
// column qualifiers can be told apart from table names.
func (r *identRewriter) recordAliases(s *nodes.SelectNode) {
	record := func(n nodes.Node) {
		if a, ok := n.(*nodes.AliasNode); ok {
			r.aliases[a.Name] = true
		}
	}
	if s.From != nil {
		for _, src := range s.From.Sources {
			record(src)
		}
	}
	for _, j := range s.Joins {
		record(j.Target)
	}
}

func (r *identRewriter) selectNode(s *nodes.SelectNode) *nodes.SelectNode {
	r.recordAliases(s)
	n := *s
	n.Projections = r.list(s.Projections)
	if s.From != nil {
		sources := make([]nodes.Node, len(s.From.Sources))
		for i, src := range s.From.Sources {
			sources[i] = r.node(src)
		}
		n.From = &nodes.FromNode{Sources: sources}
	}
	if s.Joins != nil {
		joins := make([]*nodes.JoinNode, len(s.Joins))
		for i, j := range s.Joins {
			joins[i] = &nodes.JoinNode{Kind: j.Kind, Target: r.node(j.Target), On: r.node(j.On)}
		}
		n.Joins = joins
	}
	n.Where = r.where(s.Where)
	if s.OrderBy != nil {
		order := make([]*nodes.OrderByNode, len(s.OrderBy))
		for i, o := range s.OrderBy {
			order[i] = &nodes.OrderByNode{Expr: r.node(o.Expr), Dir: o.Dir}
		}
		n.OrderBy = order
	}
	return &n
}

func (r *identRewriter) insertNode(s *nodes.InsertNode) *nodes.InsertNode {
	n := *s
	if s.Into != nil {
		n.Into = nodes.Table(r.table(s.Into.Name))
	}
	n.Columns = r.list(s.Columns)
	if s.Rows != nil {
		rows := make([]*nodes.ListNode, len(s.Rows))
		for i, row := range s.Rows {
			rows[i] = r.list(row)
		}
		n.Rows = rows
	}
	if s.OnConflict != nil {
		c := *s.OnConflict
		if s.OnConflict.Columns != nil {
			cols := make([]*nodes.ColumnNode, len(s.OnConflict.Columns))
			for i, col := range s.OnConflict.Columns {
				cols[i] = r.columnNode(col)
			}
			c.Columns = cols
		}
		c.TargetWhere = r.where(s.OnConflict.TargetWhere)
		c.Updates = r.assignments(s.OnConflict.Updates)
		c.UpdateWhere = r.where(s.OnConflict.UpdateWhere)
		n.OnConflict = &c
	}
	if s.OnDuplicate != nil {
		n.OnDuplicate = &nodes.OnDuplicateKeyUpdateNode{Updates: r.assignments(s.OnDuplicate.Updates)}
	}
	n.Returning = r.returning(s.Returning)
	return &n
}

func (r *identRewriter) updateNode(s *nodes.UpdateNode) *nodes.UpdateNode {
	n := *s
	if s.Table != nil {
		n.Table = nodes.Table(r.table(s.Table.Name))
	}
	n.Set = r.assignments(s.Set)
	n.Where = r.where(s.Where)
	n.Returning = r.returning(s.Returning)
	return &n
}

func (r *identRewriter) deleteNode(s *nodes.DeleteNode) *nodes.DeleteNode {
	n := *s
	if s.From != nil {
		n.From = nodes.Table(r.table(s.From.Name))
	}
	n.Where = r.where(s.Where)
	n.Returning = r.returning(s.Returning)
	return &n
}
