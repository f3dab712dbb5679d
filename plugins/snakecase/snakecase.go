// Package snakecase provides a Transformer that rewrites camelCase
// identifiers to snake_case at compile time.
//
// Go callers can keep their struct-field naming when building queries
// against a snake_case schema:
//
//	q := builder.SelectFrom("userProfile").
//		Where("firstName", "=", "Jennifer").
//		Use(snakecase.New())
//	// select * from "user_profile" where "first_name" = $1
//
// Every table, column and alias identifier is rewritten. Raw SQL fragments
// are spliced verbatim and therefore keep whatever casing they were written
// with.
package snakecase

import (
	"github.com/go-openapi/inflect"

	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// SnakeCase rewrites camelCase identifiers to snake_case on every
// statement kind. Identifiers already in snake_case pass through
// unchanged, so the plugin is idempotent.
type SnakeCase struct{}

// New creates a SnakeCase transformer.
func New() *SnakeCase { return &SnakeCase{} }

func underscore(s string) string { return inflect.Underscore(s) }

func (p *SnakeCase) TransformSelect(stmt *nodes.SelectNode) (*nodes.SelectNode, error) {
	return plugins.RewriteSelect(stmt, underscore, underscore), nil
}

func (p *SnakeCase) TransformInsert(stmt *nodes.InsertNode) (*nodes.InsertNode, error) {
	return plugins.RewriteInsert(stmt, underscore, underscore), nil
}

func (p *SnakeCase) TransformUpdate(stmt *nodes.UpdateNode) (*nodes.UpdateNode, error) {
	return plugins.RewriteUpdate(stmt, underscore, underscore), nil
}

func (p *SnakeCase) TransformDelete(stmt *nodes.DeleteNode) (*nodes.DeleteNode, error) {
	return plugins.RewriteDelete(stmt, underscore, underscore), nil
}
