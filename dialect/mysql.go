package dialect

import "github.com/SferaDev/kysely/internal/quoting"

// MySQL targets MySQL and MariaDB: backtick-quoted identifiers, anonymous ?
// placeholders, INSERT IGNORE and ON DUPLICATE KEY UPDATE. RETURNING and ON
// CONFLICT are not available.
type MySQL struct{}

// NewMySQLDialect returns the MySQL dialect descriptor.
func NewMySQLDialect() Dialect {
	return MySQL{}
}

func (MySQL) Name() string { return "mysql" }

func (MySQL) QuoteIdentifier(name string) string {
	return quoting.Backtick(name)
}

func (MySQL) Placeholder(_ int) string { return "?" }

func (MySQL) SupportsReturning() bool            { return false }
func (MySQL) SupportsOnConflict() bool           { return false }
func (MySQL) SupportsOnDuplicateKeyUpdate() bool { return true }
func (MySQL) SupportsInsertIgnore() bool         { return true }
