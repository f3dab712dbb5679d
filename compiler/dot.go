package compiler

import (
	"fmt"
	"strings"

	"github.com/SferaDev/kysely/nodes"
)

// Color constants for DOT node categories.
const (
	colorStatement  = "#FF6961" // red — statement roots
	colorTable      = "#6CA6CD" // blue — tables, aliases
	colorColumn     = "#B0D4E8" // light blue — column references
	colorClause     = "#77DD77" // green — from, where, join, returning
	colorPredicate  = "#FFB347" // orange — operators, predicates
	colorValue      = "#D3D3D3" // grey — values, raw fragments
	colorConflict   = "#CDA0E0" // purple — conflict handling
	colorAssignment = "#FFEB80" // yellow — assignments, ordering
)

type dotNode struct {
	id    string
	label string
	color string
}

type dotEdge struct {
	from  string
	to    string
	label string
}

// DotRenderer walks a query tree and produces Graphviz DOT text. It exists
// for debugging builder output and powers the REPL's ast command. It
// implements nodes.Visitor.
type DotRenderer struct {
	nextID    int
	nodes     []dotNode
	edges     []dotEdge
	parentID  string
	edgeLabel string
}

// NewDotRenderer creates a DotRenderer ready to walk a tree.
func NewDotRenderer() *DotRenderer {
	return &DotRenderer{}
}

// Render walks root and returns the complete DOT graph text.
func Render(root nodes.Node) (string, error) {
	dr := NewDotRenderer()
	if root == nil {
		return "", NewMalformedError("nil root node")
	}
	if err := root.Accept(dr); err != nil {
		return "", err
	}
	return dr.ToDot(), nil
}

func (dr *DotRenderer) addNode(label, color string) string {
	id := fmt.Sprintf("n%d", dr.nextID)
	dr.nextID++
	dr.nodes = append(dr.nodes, dotNode{id: id, label: label, color: color})
	if dr.parentID != "" {
		dr.edges = append(dr.edges, dotEdge{from: dr.parentID, to: id, label: dr.edgeLabel})
	}
	return id
}

// addLeaf records a childless labelled node under an explicit parent.
func (dr *DotRenderer) addLeaf(parentID, edgeLabel, label, color string) {
	id := fmt.Sprintf("n%d", dr.nextID)
	dr.nextID++
	dr.nodes = append(dr.nodes, dotNode{id: id, label: label, color: color})
	dr.edges = append(dr.edges, dotEdge{from: parentID, to: id, label: edgeLabel})
}

// visitChild saves and restores the parent context around the child visit.
func (dr *DotRenderer) visitChild(parentID, label string, child nodes.Node) error {
	if child == nil {
		return nil
	}
	savedParent, savedLabel := dr.parentID, dr.edgeLabel
	dr.parentID = parentID
	dr.edgeLabel = label
	err := child.Accept(dr)
	dr.parentID = savedParent
	dr.edgeLabel = savedLabel
	return err
}

func (dr *DotRenderer) visitChildren(parentID, label string, children []nodes.Node) error {
	for i, child := range children {
		if err := dr.visitChild(parentID, fmt.Sprintf("%s[%d]", label, i), child); err != nil {
			return err
		}
	}
	return nil
}

// ToDot generates the DOT graph text accumulated so far.
func (dr *DotRenderer) ToDot() string {
	var sb strings.Builder
	sb.WriteString("digraph query {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	for _, n := range dr.nodes {
		fmt.Fprintf(&sb, "  %s [label=%q, fillcolor=%q];\n", n.id, n.label, n.color)
	}
	for _, e := range dr.edges {
		if e.label != "" {
			fmt.Fprintf(&sb, "  %s -> %s [label=%q];\n", e.from, e.to, e.label)
		} else {
			fmt.Fprintf(&sb, "  %s -> %s;\n", e.from, e.to)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func (dr *DotRenderer) VisitSelect(n *nodes.SelectNode) error {
	label := "select"
	if n.Distinct {
		label = "select distinct"
	}
	id := dr.addNode(label, colorStatement)
	if n.Projections != nil {
		if err := dr.visitChildren(id, "projection", n.Projections.Items); err != nil {
			return err
		}
	}
	if err := dr.visitChild(id, "from", n.From); err != nil {
		return err
	}
	for i, j := range n.Joins {
		if err := dr.visitChild(id, fmt.Sprintf("join[%d]", i), j); err != nil {
			return err
		}
	}
	if err := dr.visitChild(id, "where", n.Where); err != nil {
		return err
	}
	for i, o := range n.OrderBy {
		if err := dr.visitChild(id, fmt.Sprintf("order[%d]", i), o); err != nil {
			return err
		}
	}
	if err := dr.visitChild(id, "limit", n.Limit); err != nil {
		return err
	}
	return dr.visitChild(id, "offset", n.Offset)
}

func (dr *DotRenderer) VisitInsert(n *nodes.InsertNode) error {
	label := "insert"
	if n.Ignore {
		label = "insert ignore"
	}
	id := dr.addNode(label, colorStatement)
	if err := dr.visitChild(id, "into", n.Into); err != nil {
		return err
	}
	if n.Columns != nil {
		if err := dr.visitChildren(id, "column", n.Columns.Items); err != nil {
			return err
		}
	}
	for i, row := range n.Rows {
		if err := dr.visitChild(id, fmt.Sprintf("row[%d]", i), row); err != nil {
			return err
		}
	}
	if err := dr.visitChild(id, "on conflict", n.OnConflict); err != nil {
		return err
	}
	if err := dr.visitChild(id, "on duplicate", n.OnDuplicate); err != nil {
		return err
	}
	return dr.visitChild(id, "returning", n.Returning)
}

func (dr *DotRenderer) VisitUpdate(n *nodes.UpdateNode) error {
	id := dr.addNode("update", colorStatement)
	if err := dr.visitChild(id, "table", n.Table); err != nil {
		return err
	}
	for i, a := range n.Set {
		if err := dr.visitChild(id, fmt.Sprintf("set[%d]", i), a); err != nil {
			return err
		}
	}
	if err := dr.visitChild(id, "where", n.Where); err != nil {
		return err
	}
	return dr.visitChild(id, "returning", n.Returning)
}

func (dr *DotRenderer) VisitDelete(n *nodes.DeleteNode) error {
	id := dr.addNode("delete", colorStatement)
	if err := dr.visitChild(id, "from", n.From); err != nil {
		return err
	}
	if err := dr.visitChild(id, "where", n.Where); err != nil {
		return err
	}
	return dr.visitChild(id, "returning", n.Returning)
}

func (dr *DotRenderer) VisitFrom(n *nodes.FromNode) error {
	id := dr.addNode("from", colorClause)
	return dr.visitChildren(id, "source", n.Sources)
}

func (dr *DotRenderer) VisitWhere(n *nodes.WhereNode) error {
	id := dr.addNode("where", colorClause)
	return dr.visitChildren(id, "cond", n.Conditions)
}

func (dr *DotRenderer) VisitJoin(n *nodes.JoinNode) error {
	id := dr.addNode(joinSQL[n.Kind], colorClause)
	if err := dr.visitChild(id, "target", n.Target); err != nil {
		return err
	}
	return dr.visitChild(id, "on", n.On)
}

func (dr *DotRenderer) VisitOrderBy(n *nodes.OrderByNode) error {
	label := "order asc"
	if n.Dir == nodes.Descending {
		label = "order desc"
	}
	id := dr.addNode(label, colorAssignment)
	return dr.visitChild(id, "", n.Expr)
}

func (dr *DotRenderer) VisitReturning(n *nodes.ReturningNode) error {
	if n.All {
		dr.addNode("returning *", colorClause)
		return nil
	}
	id := dr.addNode("returning", colorClause)
	if n.Selections == nil {
		return nil
	}
	return dr.visitChildren(id, "sel", n.Selections.Items)
}

func (dr *DotRenderer) VisitOnConflict(n *nodes.OnConflictNode) error {
	label := "on conflict do update"
	if n.DoNothing {
		label = "on conflict do nothing"
	}
	id := dr.addNode(label, colorConflict)
	for i, col := range n.Columns {
		if err := dr.visitChild(id, fmt.Sprintf("target[%d]", i), col); err != nil {
			return err
		}
	}
	if n.Constraint != "" {
		dr.addLeaf(id, "constraint", n.Constraint, colorConflict)
	}
	if err := dr.visitChild(id, "target where", n.TargetWhere); err != nil {
		return err
	}
	for i, a := range n.Updates {
		if err := dr.visitChild(id, fmt.Sprintf("set[%d]", i), a); err != nil {
			return err
		}
	}
	return dr.visitChild(id, "update where", n.UpdateWhere)
}

func (dr *DotRenderer) VisitOnDuplicateKeyUpdate(n *nodes.OnDuplicateKeyUpdateNode) error {
	id := dr.addNode("on duplicate key update", colorConflict)
	for i, a := range n.Updates {
		if err := dr.visitChild(id, fmt.Sprintf("set[%d]", i), a); err != nil {
			return err
		}
	}
	return nil
}

func (dr *DotRenderer) VisitAssignment(n *nodes.AssignmentNode) error {
	id := dr.addNode("=", colorAssignment)
	if err := dr.visitChild(id, "column", n.Column); err != nil {
		return err
	}
	return dr.visitChild(id, "value", n.Value)
}

func (dr *DotRenderer) VisitTable(n *nodes.TableNode) error {
	dr.addNode(n.Name, colorTable)
	return nil
}

func (dr *DotRenderer) VisitColumn(n *nodes.ColumnNode) error {
	label := n.Name
	if n.Table != "" {
		label = n.Table + "." + n.Name
	}
	dr.addNode(label, colorColumn)
	return nil
}

func (dr *DotRenderer) VisitAlias(n *nodes.AliasNode) error {
	id := dr.addNode("as "+n.Name, colorTable)
	return dr.visitChild(id, "", n.Expr)
}

func (dr *DotRenderer) VisitValue(n *nodes.ValueNode) error {
	dr.addNode(fmt.Sprintf("%v", n.Value), colorValue)
	return nil
}

func (dr *DotRenderer) VisitGenerated(n *nodes.GeneratedNode) error {
	dr.addNode("generated", colorValue)
	return nil
}

func (dr *DotRenderer) VisitRaw(n *nodes.RawNode) error {
	id := dr.addNode("raw: "+n.Fragment, colorValue)
	for i, v := range n.Values {
		if err := dr.visitChild(id, fmt.Sprintf("value[%d]", i), nodes.Value(v)); err != nil {
			return err
		}
	}
	return nil
}

func (dr *DotRenderer) VisitOperator(n *nodes.OperatorNode) error {
	id := dr.addNode(n.Op.SQL(), colorPredicate)
	if err := dr.visitChild(id, "left", n.Left); err != nil {
		return err
	}
	return dr.visitChild(id, "right", n.Right)
}

func (dr *DotRenderer) VisitUnaryOp(n *nodes.UnaryOpNode) error {
	labels := map[nodes.UnaryOp]string{
		nodes.OpIsNull:    "is null",
		nodes.OpIsNotNull: "is not null",
		nodes.OpNot:       "not",
		nodes.OpExists:    "exists",
		nodes.OpNotExists: "not exists",
	}
	id := dr.addNode(labels[n.Op], colorPredicate)
	return dr.visitChild(id, "", n.Expr)
}

func (dr *DotRenderer) VisitList(n *nodes.ListNode) error {
	id := dr.addNode("list", colorValue)
	return dr.visitChildren(id, "item", n.Items)
}

func (dr *DotRenderer) VisitGroup(n *nodes.GroupNode) error {
	id := dr.addNode("( )", colorPredicate)
	return dr.visitChild(id, "", n.Expr)
}
