// Package plugins defines the Transformer interface for statement tree
// middleware and the rewriting helpers shared by the shipped plugins.
package plugins

import "github.com/SferaDev/kysely/nodes"

// Transformer is the interface that statement transformation plugins
// implement. A transformer runs at compile time on a private clone of the
// statement root: it may reassign the root's fields or return a rebuilt
// statement, but must never modify child nodes in place since those are
// shared with the builder that produced them. Plugins embed Base and
// override only the methods they need.
type Transformer interface {
	TransformSelect(stmt *nodes.SelectNode) (*nodes.SelectNode, error)
	TransformInsert(stmt *nodes.InsertNode) (*nodes.InsertNode, error)
	TransformUpdate(stmt *nodes.UpdateNode) (*nodes.UpdateNode, error)
	TransformDelete(stmt *nodes.DeleteNode) (*nodes.DeleteNode, error)
}

// Base provides no-op defaults for all Transformer methods.
type Base struct{}

func (Base) TransformSelect(s *nodes.SelectNode) (*nodes.SelectNode, error) {
	return s, nil
}
func (Base) TransformInsert(s *nodes.InsertNode) (*nodes.InsertNode, error) {
	return s, nil
}
func (Base) TransformUpdate(s *nodes.UpdateNode) (*nodes.UpdateNode, error) {
	return s, nil
}
func (Base) TransformDelete(s *nodes.DeleteNode) (*nodes.DeleteNode, error) {
	return s, nil
}
