// Package kysely is a type-safe SQL query builder: statements are assembled
// through immutable fluent builders, compiled into parameterised SQL for
// PostgreSQL, MySQL or SQLite, and optionally executed through database/sql.
//
// This package re-exports the everyday surface from its subpackages.
// Advanced users can import subpackages directly:
//   - github.com/SferaDev/kysely/builder (fluent statement builders)
//   - github.com/SferaDev/kysely/nodes (query tree nodes)
//   - github.com/SferaDev/kysely/compiler (SQL rendering)
//   - github.com/SferaDev/kysely/dialect (dialect descriptors)
//   - github.com/SferaDev/kysely/plugins (query tree rewriting)
//   - github.com/SferaDev/kysely/exec (database/sql execution)
package kysely

import (
	"context"
	"database/sql"
	"errors"

	"github.com/SferaDev/kysely/builder"
	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/exec"
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

// --- Builder Types ---

// SelectBuilder builds select statements.
type SelectBuilder = builder.SelectBuilder

// InsertBuilder builds insert statements, including upsert clauses.
type InsertBuilder = builder.InsertBuilder

// UpdateBuilder builds update statements.
type UpdateBuilder = builder.UpdateBuilder

// DeleteBuilder builds delete statements.
type DeleteBuilder = builder.DeleteBuilder

// Compiled is a rendered statement: SQL text plus its parameters in
// placeholder order.
type Compiled = compiler.Compiled

// Dialect describes how one database engine renders SQL.
type Dialect = dialect.Dialect

// Node is the interface all query tree nodes implement.
type Node = nodes.Node

// Transformer rewrites statement trees before compilation.
type Transformer = plugins.Transformer

// --- Builder Constructors ---

// SelectFrom starts a select statement. The table expression may carry an
// alias, as in "person as p".
func SelectFrom(table string) *builder.SelectBuilder {
	return builder.SelectFrom(table)
}

// InsertInto starts an insert statement.
func InsertInto(table string) *builder.InsertBuilder {
	return builder.InsertInto(table)
}

// Update starts an update statement.
func Update(table string) *builder.UpdateBuilder {
	return builder.Update(table)
}

// DeleteFrom starts a delete statement.
func DeleteFrom(table string) *builder.DeleteBuilder {
	return builder.DeleteFrom(table)
}

// --- Common Node Constructors ---

// Table creates a table reference.
func Table(name string) *nodes.TableNode {
	return nodes.Table(name)
}

// Column creates an unqualified column reference.
func Column(name string) *nodes.ColumnNode {
	return nodes.Column(name)
}

// Col creates a table-qualified column reference.
func Col(table, name string) *nodes.ColumnNode {
	return nodes.Col(table, name)
}

// Value wraps a Go value as a query parameter.
func Value(val any) nodes.Node {
	return nodes.Value(val)
}

// Raw embeds a verbatim SQL fragment; ? slots bind the given values.
func Raw(fragment string, values ...any) *nodes.RawNode {
	return nodes.Raw(fragment, values...)
}

// Generated marks an insert value as database-generated, omitting its
// column from the statement.
var Generated = nodes.Generated

// --- Dialects ---

// NewPostgresDialect returns the PostgreSQL descriptor ($N placeholders,
// double-quoted identifiers).
func NewPostgresDialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}

// NewMySQLDialect returns the MySQL descriptor (? placeholders, backtick
// identifiers).
func NewMySQLDialect() dialect.Dialect {
	return dialect.NewMySQLDialect()
}

// NewSQLiteDialect returns the SQLite descriptor (? placeholders,
// double-quoted identifiers).
func NewSQLiteDialect() dialect.Dialect {
	return dialect.NewSQLiteDialect()
}

// --- Errors ---

// ErrUnsupported matches errors for features the target dialect cannot
// express.
var ErrUnsupported = compiler.ErrUnsupported

// ErrMalformed matches errors for structurally invalid statements.
var ErrMalformed = compiler.ErrMalformed

// IsUnsupported reports whether err is an unsupported-feature error.
func IsUnsupported(err error) bool { return compiler.IsUnsupported(err) }

// IsMalformed reports whether err is a malformed-statement error.
func IsMalformed(err error) bool { return compiler.IsMalformed(err) }

// --- Database Handle ---

// Statement is any builder that can compile itself for a dialect.
type Statement interface {
	Compile(d dialect.Dialect) (compiler.Compiled, error)
}

// ErrNoConnection is returned by DB execution methods when the handle was
// built without a connection.
var ErrNoConnection = errors.New("kysely: db has no connection")

// DB binds a dialect, an optional connection and a default plugin pipeline
// into one handle. Statements started from it inherit the plugins, and
// Exec and Query compile for the handle's dialect before running.
type DB struct {
	dialect dialect.Dialect
	conn    *exec.Conn
	plugins []plugins.Transformer
}

// NewDB builds a handle around a dialect. conn may be nil for a
// compile-only handle.
func NewDB(d dialect.Dialect, conn *exec.Conn, ts ...plugins.Transformer) *DB {
	return &DB{dialect: d, conn: conn, plugins: ts}
}

// Open connects to a database and wraps it in a handle whose dialect
// matches the engine (exec.Postgres, exec.MySQL or exec.SQLite).
func Open(engine, dsn string, ts ...plugins.Transformer) (*DB, error) {
	conn, err := exec.Open(engine, dsn)
	if err != nil {
		return nil, err
	}
	var d dialect.Dialect
	switch engine {
	case exec.MySQL:
		d = dialect.NewMySQLDialect()
	case exec.SQLite:
		d = dialect.NewSQLiteDialect()
	default:
		d = dialect.NewPostgresDialect()
	}
	return NewDB(d, conn, ts...), nil
}

// Dialect returns the handle's dialect.
func (db *DB) Dialect() dialect.Dialect { return db.dialect }

// Conn returns the underlying connection, or nil for compile-only handles.
func (db *DB) Conn() *exec.Conn { return db.conn }

// Close releases the connection if one is open.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// SelectFrom starts a select statement carrying the handle's plugins.
func (db *DB) SelectFrom(table string) *builder.SelectBuilder {
	return builder.SelectFrom(table).Use(db.plugins...)
}

// InsertInto starts an insert statement carrying the handle's plugins.
func (db *DB) InsertInto(table string) *builder.InsertBuilder {
	return builder.InsertInto(table).Use(db.plugins...)
}

// Update starts an update statement carrying the handle's plugins.
func (db *DB) Update(table string) *builder.UpdateBuilder {
	return builder.Update(table).Use(db.plugins...)
}

// DeleteFrom starts a delete statement carrying the handle's plugins.
func (db *DB) DeleteFrom(table string) *builder.DeleteBuilder {
	return builder.DeleteFrom(table).Use(db.plugins...)
}

// Compile renders a statement for the handle's dialect.
func (db *DB) Compile(s Statement) (compiler.Compiled, error) {
	return s.Compile(db.dialect)
}

// Exec compiles the statement and runs it, returning the driver's row
// counts.
func (db *DB) Exec(ctx context.Context, s Statement) (exec.Result, error) {
	if db.conn == nil {
		return exec.Result{}, ErrNoConnection
	}
	c, err := s.Compile(db.dialect)
	if err != nil {
		return exec.Result{}, err
	}
	return db.conn.Exec(ctx, c)
}

// Query compiles the statement and runs it, returning the rows. The caller
// closes them.
func (db *DB) Query(ctx context.Context, s Statement) (*sql.Rows, error) {
	if db.conn == nil {
		return nil, ErrNoConnection
	}
	c, err := s.Compile(db.dialect)
	if err != nil {
		return nil, err
	}
	return db.conn.Query(ctx, c)
}

// QueryRow compiles the statement and runs it for a single row.
func (db *DB) QueryRow(ctx context.Context, s Statement) (*sql.Row, error) {
	if db.conn == nil {
		return nil, ErrNoConnection
	}
	c, err := s.Compile(db.dialect)
	if err != nil {
		return nil, err
	}
	return db.conn.QueryRow(ctx, c), nil
}
