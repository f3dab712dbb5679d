package dialect

import (
	"strconv"

	"github.com/SferaDev/kysely/internal/quoting"
)

// Postgres targets PostgreSQL: double-quoted identifiers, $n placeholders,
// RETURNING and ON CONFLICT.
type Postgres struct{}

// NewPostgresDialect returns the PostgreSQL dialect descriptor.
func NewPostgresDialect() Dialect {
	return Postgres{}
}

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdentifier(name string) string {
	return quoting.DoubleQuote(name)
}

func (Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (Postgres) SupportsReturning() bool            { return true }
func (Postgres) SupportsOnConflict() bool           { return true }
func (Postgres) SupportsOnDuplicateKeyUpdate() bool { return false }
func (Postgres) SupportsInsertIgnore() bool         { return false }
