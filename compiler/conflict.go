package compiler

import "github.com/SferaDev/kysely/nodes"

// Conflict handling is stored dialect-neutrally on the insert node and
// resolved here at compile time. Engines that lack a construct reject it
// with an UnsupportedError instead of emitting SQL they cannot honour.

func (c *Compiler) VisitOnConflict(n *nodes.OnConflictNode) error {
	if !c.dialect.SupportsOnConflict() {
		return NewUnsupportedError(c.dialect.Name(), "on conflict")
	}
	if len(n.Columns) > 0 && n.Constraint != "" {
		return NewMalformedError("on conflict cannot target both columns and a constraint")
	}
	if n.Constraint != "" && n.TargetWhere != nil {
		return NewMalformedError("constraint conflict target cannot carry an index predicate")
	}
	if n.DoNothing && len(n.Updates) > 0 {
		return NewMalformedError("do nothing cannot carry assignments")
	}
	if n.DoNothing && n.UpdateWhere != nil {
		return NewMalformedError("do nothing cannot carry an update predicate")
	}
	if !n.DoNothing && len(n.Updates) == 0 {
		return NewMalformedError("do update requires at least one assignment")
	}
	c.write("on conflict")
	if len(n.Columns) > 0 {
		c.write(" (")
		for i, col := range n.Columns {
			if i > 0 {
				c.write(", ")
			}
			if err := col.Accept(c); err != nil {
				return err
			}
		}
		c.write(")")
	} else if n.Constraint != "" {
		c.write(" on constraint ")
		c.ident(n.Constraint)
	}
	if err := c.whereClause(n.TargetWhere); err != nil {
		return err
	}
	if n.DoNothing {
		c.write(" do nothing")
		return nil
	}
	c.write(" do update set ")
	for i, a := range n.Updates {
		if i > 0 {
			c.write(", ")
		}
		if err := a.Accept(c); err != nil {
			return err
		}
	}
	return c.whereClause(n.UpdateWhere)
}

func (c *Compiler) VisitOnDuplicateKeyUpdate(n *nodes.OnDuplicateKeyUpdateNode) error {
	if !c.dialect.SupportsOnDuplicateKeyUpdate() {
		return NewUnsupportedError(c.dialect.Name(), "on duplicate key update")
	}
	if len(n.Updates) == 0 {
		return NewMalformedError("on duplicate key update requires at least one assignment")
	}
	c.write("on duplicate key update ")
	for i, a := range n.Updates {
		if i > 0 {
			c.write(", ")
		}
		if err := a.Accept(c); err != nil {
			return err
		}
	}
	return nil
}
