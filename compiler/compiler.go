// Package compiler lowers query trees to SQL text plus an ordered parameter
// list. A single Compiler implements the node visitor for every dialect;
// engine differences are consulted through the dialect descriptor, never by
// testing which engine is being targeted.
package compiler

import (
	"strings"

	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/nodes"
)

// Compiled is the result of compiling a query tree: the final SQL string
// and the bind parameters in placeholder order. Parameters[i] always
// corresponds to the i+1th placeholder emitted.
type Compiled struct {
	SQL        string
	Parameters []any
}

// Compiler renders query trees for one dialect. A Compiler is single-shot
// per Compile call and not safe for concurrent use; Compile resets all
// internal state, so a Compiler may be reused sequentially.
type Compiler struct {
	dialect dialect.Dialect
	sb      strings.Builder
	params  []any
}

// New creates a Compiler targeting the given dialect.
func New(d dialect.Dialect) *Compiler {
	return &Compiler{dialect: d}
}

// Compile renders root and returns the SQL with its parameters. The tree is
// never mutated; on error the partial output is discarded.
func (c *Compiler) Compile(root nodes.Node) (Compiled, error) {
	c.sb.Reset()
	c.params = nil
	if root == nil {
		return Compiled{}, NewMalformedError("nil root node")
	}
	if err := root.Accept(c); err != nil {
		return Compiled{}, err
	}
	return Compiled{SQL: c.sb.String(), Parameters: c.params}, nil
}

// Compile renders root for the given dialect with a fresh Compiler.
func Compile(d dialect.Dialect, root nodes.Node) (Compiled, error) {
	return New(d).Compile(root)
}

// --- rendering helpers ---

func (c *Compiler) write(s string) {
	c.sb.WriteString(s)
}

// ident writes a quoted identifier.
func (c *Compiler) ident(name string) {
	c.write(c.dialect.QuoteIdentifier(name))
}

// bind appends v to the parameter list and writes its placeholder. The
// placeholder ordinal is the parameter's 1-based position, which keeps text
// order and parameter order identical regardless of placeholder style.
func (c *Compiler) bind(v any) {
	c.params = append(c.params, v)
	c.write(c.dialect.Placeholder(len(c.params)))
}

// join renders items separated by sep.
func (c *Compiler) join(sep string, items []nodes.Node) error {
	for i, n := range items {
		if i > 0 {
			c.write(sep)
		}
		if err := n.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

// --- statements ---

func (c *Compiler) VisitSelect(n *nodes.SelectNode) error {
	c.write("select ")
	if n.Distinct {
		c.write("distinct ")
	}
	if n.Projections == nil || len(n.Projections.Items) == 0 {
		c.write("*")
	} else if err := n.Projections.Accept(c); err != nil {
		return err
	}
	if n.From != nil {
		c.write(" ")
		if err := n.From.Accept(c); err != nil {
			return err
		}
	}
	for _, j := range n.Joins {
		c.write(" ")
		if err := j.Accept(c); err != nil {
			return err
		}
	}
	if err := c.whereClause(n.Where); err != nil {
		return err
	}
	if len(n.OrderBy) > 0 {
		c.write(" order by ")
		for i, o := range n.OrderBy {
			if i > 0 {
				c.write(", ")
			}
			if err := o.Accept(c); err != nil {
				return err
			}
		}
	}
	if n.Limit != nil {
		c.write(" limit ")
		if err := n.Limit.Accept(c); err != nil {
			return err
		}
	}
	if n.Offset != nil {
		c.write(" offset ")
		if err := n.Offset.Accept(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) VisitInsert(n *nodes.InsertNode) error {
	if n.Into == nil {
		return NewMalformedError("insert requires a target table")
	}
	if n.OnConflict != nil && n.OnDuplicate != nil {
		return NewMalformedError("on conflict and on duplicate key update are mutually exclusive")
	}
	if n.Ignore && (n.OnConflict != nil || n.OnDuplicate != nil) {
		return NewMalformedError("insert ignore cannot be combined with a conflict clause")
	}
	cols, rows, err := pruneGenerated(n)
	if err != nil {
		return err
	}
	c.write("insert ")
	if n.Ignore {
		if !c.dialect.SupportsInsertIgnore() {
			return NewUnsupportedError(c.dialect.Name(), "insert ignore")
		}
		c.write("ignore ")
	}
	c.write("into ")
	if err := n.Into.Accept(c); err != nil {
		return err
	}
	if len(cols) > 0 {
		c.write(" (")
		if err := c.join(", ", cols); err != nil {
			return err
		}
		c.write(")")
	}
	c.write(" values ")
	for i, row := range rows {
		if i > 0 {
			c.write(", ")
		}
		c.write("(")
		if err := c.join(", ", row); err != nil {
			return err
		}
		c.write(")")
	}
	if n.OnConflict != nil {
		c.write(" ")
		if err := n.OnConflict.Accept(c); err != nil {
			return err
		}
	}
	if n.OnDuplicate != nil {
		c.write(" ")
		if err := n.OnDuplicate.Accept(c); err != nil {
			return err
		}
	}
	return c.returningClause(n.Returning)
}

func (c *Compiler) VisitUpdate(n *nodes.UpdateNode) error {
	if n.Table == nil {
		return NewMalformedError("update requires a target table")
	}
	if len(n.Set) == 0 {
		return NewMalformedError("update requires at least one assignment")
	}
	c.write("update ")
	if err := n.Table.Accept(c); err != nil {
		return err
	}
	c.write(" set ")
	for i, a := range n.Set {
		if i > 0 {
			c.write(", ")
		}
		if err := a.Accept(c); err != nil {
			return err
		}
	}
	if err := c.whereClause(n.Where); err != nil {
		return err
	}
	return c.returningClause(n.Returning)
}

func (c *Compiler) VisitDelete(n *nodes.DeleteNode) error {
	if n.From == nil {
		return NewMalformedError("delete requires a target table")
	}
	c.write("delete from ")
	if err := n.From.Accept(c); err != nil {
		return err
	}
	if err := c.whereClause(n.Where); err != nil {
		return err
	}
	return c.returningClause(n.Returning)
}

// whereClause renders a leading space plus the clause, skipping empty ones.
func (c *Compiler) whereClause(w *nodes.WhereNode) error {
	if w == nil || len(w.Conditions) == 0 {
		return nil
	}
	c.write(" ")
	return w.Accept(c)
}

// returningClause renders a leading space plus the clause when present.
func (c *Compiler) returningClause(r *nodes.ReturningNode) error {
	if r == nil {
		return nil
	}
	c.write(" ")
	return r.Accept(c)
}

// pruneGenerated filters generated-column sentinels out of an insert's
// column list and value rows in one pass. A column is dropped exactly when
// its value is the sentinel, and every row must agree on which positions
// are generated; otherwise no single column list can describe the rows.
func pruneGenerated(n *nodes.InsertNode) ([]nodes.Node, [][]nodes.Node, error) {
	if len(n.Rows) == 0 {
		return nil, nil, NewMalformedError("insert requires at least one row")
	}
	var colItems []nodes.Node
	if n.Columns != nil {
		colItems = n.Columns.Items
	}
	width := len(n.Rows[0].Items)
	if colItems != nil && len(colItems) != width {
		return nil, nil, NewMalformedError("insert column count does not match value count")
	}
	dropped := make([]bool, width)
	anyDropped := false
	for i, item := range n.Rows[0].Items {
		if nodes.IsGenerated(item) {
			dropped[i] = true
			anyDropped = true
		}
	}
	if anyDropped && colItems == nil {
		return nil, nil, NewMalformedError("generated values require an insert column list")
	}
	rows := make([][]nodes.Node, len(n.Rows))
	for ri, row := range n.Rows {
		if len(row.Items) != width {
			return nil, nil, NewMalformedError("insert rows have inconsistent widths")
		}
		kept := make([]nodes.Node, 0, width)
		for i, item := range row.Items {
			if nodes.IsGenerated(item) != dropped[i] {
				return nil, nil, NewMalformedError("insert rows disagree on generated columns")
			}
			if !dropped[i] {
				kept = append(kept, item)
			}
		}
		if len(kept) == 0 {
			return nil, nil, NewMalformedError("insert requires at least one concrete value per row")
		}
		rows[ri] = kept
	}
	if colItems == nil {
		return nil, rows, nil
	}
	cols := make([]nodes.Node, 0, len(colItems))
	for i, col := range colItems {
		if !dropped[i] {
			cols = append(cols, col)
		}
	}
	return cols, rows, nil
}

// --- clauses ---

func (c *Compiler) VisitFrom(n *nodes.FromNode) error {
	if len(n.Sources) == 0 {
		return NewMalformedError("from requires at least one source")
	}
	c.write("from ")
	return c.join(", ", n.Sources)
}

func (c *Compiler) VisitWhere(n *nodes.WhereNode) error {
	if len(n.Conditions) == 0 {
		return NewMalformedError("where requires at least one condition")
	}
	c.write("where ")
	return c.join(" and ", n.Conditions)
}

var joinSQL = map[nodes.JoinKind]string{
	nodes.InnerJoin: "inner join",
	nodes.LeftJoin:  "left join",
	nodes.RightJoin: "right join",
	nodes.FullJoin:  "full join",
	nodes.CrossJoin: "cross join",
}

func (c *Compiler) VisitJoin(n *nodes.JoinNode) error {
	kw, ok := joinSQL[n.Kind]
	if !ok {
		return NewMalformedError("unknown join kind")
	}
	if n.Target == nil {
		return NewMalformedError("join requires a target")
	}
	c.write(kw)
	c.write(" ")
	if err := n.Target.Accept(c); err != nil {
		return err
	}
	if n.Kind == nodes.CrossJoin {
		if n.On != nil {
			return NewMalformedError("cross join cannot carry an on condition")
		}
		return nil
	}
	if n.On == nil {
		return NewMalformedError("join requires an on condition")
	}
	c.write(" on ")
	return n.On.Accept(c)
}

func (c *Compiler) VisitOrderBy(n *nodes.OrderByNode) error {
	if n.Expr == nil {
		return NewMalformedError("order by requires an expression")
	}
	if err := n.Expr.Accept(c); err != nil {
		return err
	}
	if n.Dir == nodes.Descending {
		c.write(" desc")
	} else {
		c.write(" asc")
	}
	return nil
}

func (c *Compiler) VisitReturning(n *nodes.ReturningNode) error {
	if !c.dialect.SupportsReturning() {
		return NewUnsupportedError(c.dialect.Name(), "returning")
	}
	c.write("returning ")
	if n.All {
		c.write("*")
		return nil
	}
	if n.Selections == nil || len(n.Selections.Items) == 0 {
		return NewMalformedError("returning requires at least one selection")
	}
	return n.Selections.Accept(c)
}

func (c *Compiler) VisitAssignment(n *nodes.AssignmentNode) error {
	if n.Column == nil || n.Value == nil {
		return NewMalformedError("assignment requires a column and a value")
	}
	if err := n.Column.Accept(c); err != nil {
		return err
	}
	c.write(" = ")
	return n.Value.Accept(c)
}
