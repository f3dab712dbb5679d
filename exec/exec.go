// Package exec runs compiled queries against database/sql connections.
//
// The query-building packages never touch a database; this package is the
// boundary where a compiler.Compiled becomes a driver call. A Conn wraps a
// *sql.DB together with the engine it speaks, an optional prepared-statement
// cache and an optional structured logger.
package exec

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/SferaDev/kysely/compiler"
)

// Engine names accepted by Open.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

var driverNames = map[string]string{
	Postgres: "pgx",
	MySQL:    "mysql",
	SQLite:   "sqlite",
}

// DriverName reports the database/sql driver name registered for an engine.
func DriverName(engine string) (string, bool) {
	name, ok := driverNames[engine]
	return name, ok
}

// Conn executes compiled queries over a database handle. The zero value is
// not usable; construct one with Open or Wrap.
type Conn struct {
	db     *sql.DB
	engine string
	cache  *stmtCache
	log    zerolog.Logger
}

// Option configures a Conn at construction time.
type Option func(*Conn)

// WithLogger enables structured query logging. Every statement emits one
// completion event: debug on success, error on failure.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Conn) { c.log = log }
}

// WithStatementCache keeps up to size prepared statements on the connection,
// keyed by SQL text. Statements evicted from the cache are closed.
func WithStatementCache(size int) Option {
	return func(c *Conn) { c.cache = newStmtCache(size) }
}

// Open opens a database handle for the given engine and DSN. The matching
// driver must be linked into the binary; library code deliberately imports
// none so that callers choose what they ship.
func Open(engine, dsn string, opts ...Option) (*Conn, error) {
	driver, ok := driverNames[engine]
	if !ok {
		return nil, fmt.Errorf("exec: unknown engine %q", engine)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("exec: open %s: %w", engine, err)
	}
	return Wrap(db, engine, opts...), nil
}

// Wrap adapts a handle the caller already owns. Closing the returned Conn
// closes the handle.
func Wrap(db *sql.DB, engine string, opts ...Option) *Conn {
	c := &Conn{db: db, engine: engine, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DB returns the underlying handle.
func (c *Conn) DB() *sql.DB { return c.db }

// Engine returns the engine name the connection was opened for.
func (c *Conn) Engine() string { return c.engine }

// Close closes any cached statements and then the underlying handle.
func (c *Conn) Close() error {
	if c.cache != nil {
		c.cache.close()
	}
	return c.db.Close()
}

// Result reports what a statement changed. Engines that cannot supply one of
// the counters leave it zero; Postgres, for instance, reports no last insert
// id through this interface.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Exec runs a compiled statement that returns no rows.
func (c *Conn) Exec(ctx context.Context, q compiler.Compiled) (Result, error) {
	start := time.Now()
	res, err := c.exec(ctx, q)
	c.trace(start, q, err)
	if err != nil {
		return Result{}, fmt.Errorf("exec: %w", err)
	}
	affected, _ := res.RowsAffected()
	lastID, _ := res.LastInsertId()
	return Result{RowsAffected: affected, LastInsertID: lastID}, nil
}

func (c *Conn) exec(ctx context.Context, q compiler.Compiled) (sql.Result, error) {
	if c.cache != nil {
		stmt, err := c.cache.prepare(ctx, c.db, q.SQL)
		if err != nil {
			return nil, err
		}
		return stmt.ExecContext(ctx, q.Parameters...)
	}
	return c.db.ExecContext(ctx, q.SQL, q.Parameters...)
}

// Query runs a compiled query and returns its rows. The caller must close
// the rows.
func (c *Conn) Query(ctx context.Context, q compiler.Compiled) (*sql.Rows, error) {
	start := time.Now()
	rows, err := c.query(ctx, q)
	c.trace(start, q, err)
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}
	return rows, nil
}

func (c *Conn) query(ctx context.Context, q compiler.Compiled) (*sql.Rows, error) {
	if c.cache != nil {
		stmt, err := c.cache.prepare(ctx, c.db, q.SQL)
		if err != nil {
			return nil, err
		}
		return stmt.QueryContext(ctx, q.Parameters...)
	}
	return c.db.QueryContext(ctx, q.SQL, q.Parameters...)
}

// QueryRow runs a compiled query expected to return at most one row. Errors
// are deferred to Scan, matching database/sql.
func (c *Conn) QueryRow(ctx context.Context, q compiler.Compiled) *sql.Row {
	start := time.Now()
	if c.cache != nil {
		if stmt, err := c.cache.prepare(ctx, c.db, q.SQL); err == nil {
			row := stmt.QueryRowContext(ctx, q.Parameters...)
			c.trace(start, q, nil)
			return row
		}
	}
	row := c.db.QueryRowContext(ctx, q.SQL, q.Parameters...)
	c.trace(start, q, nil)
	return row
}

// trace emits the completion event for one statement. With the default
// disabled logger this is a single enabled check.
func (c *Conn) trace(start time.Time, q compiler.Compiled, err error) {
	var evt *zerolog.Event
	if err != nil {
		evt = c.log.Error().Err(err)
	} else {
		evt = c.log.Debug()
	}
	if !evt.Enabled() {
		return
	}
	evt.Str("query_id", uuid.NewString()).
		Str("sql", q.SQL).
		Int("params", len(q.Parameters)).
		Dur("duration", time.Since(start)).
		Msg("query")
}
