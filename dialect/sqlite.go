package dialect

import "github.com/SferaDev/kysely/internal/quoting"

// SQLite targets SQLite: double-quoted identifiers, anonymous ?
// placeholders, RETURNING (3.35+) and ON CONFLICT.
type SQLite struct{}

// NewSQLiteDialect returns the SQLite dialect descriptor.
func NewSQLiteDialect() Dialect {
	return SQLite{}
}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) QuoteIdentifier(name string) string {
	return quoting.DoubleQuote(name)
}

func (SQLite) Placeholder(_ int) string { return "?" }

func (SQLite) SupportsReturning() bool            { return true }
func (SQLite) SupportsOnConflict() bool           { return true }
func (SQLite) SupportsOnDuplicateKeyUpdate() bool { return false }
func (SQLite) SupportsInsertIgnore() bool         { return false }
