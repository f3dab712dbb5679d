package compiler

import "github.com/SferaDev/kysely/nodes"

func (c *Compiler) VisitTable(n *nodes.TableNode) error {
	if n.Name == "" {
		return NewMalformedError("table reference requires a name")
	}
	c.ident(n.Name)
	return nil
}

func (c *Compiler) VisitColumn(n *nodes.ColumnNode) error {
	if n.Name == "" {
		return NewMalformedError("column reference requires a name")
	}
	if n.Table != "" {
		c.ident(n.Table)
		c.write(".")
	}
	c.ident(n.Name)
	return nil
}

func (c *Compiler) VisitAlias(n *nodes.AliasNode) error {
	if n.Expr == nil || n.Name == "" {
		return NewMalformedError("alias requires an expression and a name")
	}
	// Subqueries need parentheses before they can be aliased.
	if sub, ok := n.Expr.(*nodes.SelectNode); ok {
		c.write("(")
		if err := sub.Accept(c); err != nil {
			return err
		}
		c.write(")")
	} else if err := n.Expr.Accept(c); err != nil {
		return err
	}
	c.write(" as ")
	c.ident(n.Name)
	return nil
}

func (c *Compiler) VisitValue(n *nodes.ValueNode) error {
	// nil always renders as the NULL keyword, never as a bind parameter.
	if n.Value == nil {
		c.write("null")
		return nil
	}
	c.bind(n.Value)
	return nil
}

func (c *Compiler) VisitGenerated(n *nodes.GeneratedNode) error {
	return NewMalformedError("generated sentinel outside insert values")
}

func (c *Compiler) VisitRaw(n *nodes.RawNode) error {
	frag := n.Fragment
	vi := 0
	for i := 0; i < len(frag); i++ {
		ch := frag[i]
		if ch != '?' {
			c.sb.WriteByte(ch)
			continue
		}
		// ?? is an escaped literal question mark.
		if i+1 < len(frag) && frag[i+1] == '?' {
			c.sb.WriteByte('?')
			i++
			continue
		}
		if vi >= len(n.Values) {
			return NewMalformedError("raw fragment has more slots than values")
		}
		c.bind(n.Values[vi])
		vi++
	}
	if vi != len(n.Values) {
		return NewMalformedError("raw fragment has fewer slots than values")
	}
	return nil
}

func (c *Compiler) VisitOperator(n *nodes.OperatorNode) error {
	sym := n.Op.SQL()
	if sym == "" {
		return NewMalformedError("invalid operator")
	}
	if n.Left == nil || n.Right == nil {
		return NewMalformedError("operator requires two operands")
	}
	if err := n.Left.Accept(c); err != nil {
		return err
	}
	c.write(" ")
	c.write(sym)
	c.write(" ")
	if n.Op == nodes.OpIn || n.Op == nodes.OpNotIn {
		if list, ok := n.Right.(*nodes.ListNode); ok && len(list.Items) == 0 {
			return NewMalformedError("in predicate requires at least one value")
		}
		c.write("(")
		if err := n.Right.Accept(c); err != nil {
			return err
		}
		c.write(")")
		return nil
	}
	return n.Right.Accept(c)
}

func (c *Compiler) VisitUnaryOp(n *nodes.UnaryOpNode) error {
	if n.Expr == nil {
		return NewMalformedError("unary operator requires an operand")
	}
	switch n.Op {
	case nodes.OpIsNull, nodes.OpIsNotNull:
		if err := n.Expr.Accept(c); err != nil {
			return err
		}
		if n.Op == nodes.OpIsNull {
			c.write(" is null")
		} else {
			c.write(" is not null")
		}
		return nil
	case nodes.OpNot, nodes.OpExists, nodes.OpNotExists:
		switch n.Op {
		case nodes.OpNot:
			c.write("not (")
		case nodes.OpExists:
			c.write("exists (")
		case nodes.OpNotExists:
			c.write("not exists (")
		}
		if err := n.Expr.Accept(c); err != nil {
			return err
		}
		c.write(")")
		return nil
	}
	return NewMalformedError("unknown unary operator")
}

func (c *Compiler) VisitList(n *nodes.ListNode) error {
	return c.join(", ", n.Items)
}

func (c *Compiler) VisitGroup(n *nodes.GroupNode) error {
	if n.Expr == nil {
		return NewMalformedError("group requires an expression")
	}
	c.write("(")
	if err := n.Expr.Accept(c); err != nil {
		return err
	}
	c.write(")")
	return nil
}
