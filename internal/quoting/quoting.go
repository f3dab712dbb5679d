// Package quoting provides shared identifier quoting utilities.
package quoting

import "strings"

// DoubleQuote quotes a SQL identifier using double quotes (PostgreSQL, SQLite, ANSI SQL).
// Internal double quotes are escaped by doubling them.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes a SQL identifier using backticks (MySQL).
// Internal backticks are escaped by doubling them.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}
