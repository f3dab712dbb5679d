// Package dialect describes the SQL engines the compiler can target. A
// Dialect is a passive descriptor: it answers how to quote identifiers, how
// to spell bind placeholders and which optional features the engine
// supports. All rendering decisions live in the compiler.
package dialect

// Dialect captures the engine-specific facts the compiler consults while
// rendering. Placeholder receives the 1-based ordinal of the parameter
// being bound; engines with positional placeholders encode it, engines with
// anonymous placeholders ignore it.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	Placeholder(n int) string
	SupportsReturning() bool
	SupportsOnConflict() bool
	SupportsOnDuplicateKeyUpdate() bool
	SupportsInsertIgnore() bool
}
