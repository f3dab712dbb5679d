package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SferaDev/kysely/builder"
	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/exec"
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins"
)

var errNoStatement = errors.New("no statement started (try 'from <table>', 'insert into <table>', 'update <table>' or 'delete from <table>')")

// stmtKind tracks the statement the session is currently building.
type stmtKind int

const (
	kindNone stmtKind = iota
	kindSelect
	kindInsert
	kindUpdate
	kindDelete
)

func (k stmtKind) String() string {
	switch k {
	case kindSelect:
		return "select"
	case kindInsert:
		return "insert"
	case kindUpdate:
		return "update"
	case kindDelete:
		return "delete"
	}
	return "none"
}

// namedPlugin pairs an enabled transformer with the name used to toggle it.
type namedPlugin struct {
	name        string
	description string
	transformer plugins.Transformer
}

// Session holds the REPL state: the active dialect, the statement being
// built, the enabled plugins and the database connection. Statements are
// kept as builders, so switching dialects re-renders the same tree.
type Session struct {
	engine  string
	dialect dialect.Dialect

	kind stmtKind
	sel  *builder.SelectBuilder
	ins  *builder.InsertBuilder
	upd  *builder.UpdateBuilder
	del  *builder.DeleteBuilder

	enabled  []namedPlugin
	commands []commandEntry

	conn    *exec.Conn
	lastDSN string
	out     io.Writer
}

func NewSession(engine string) *Session {
	s := &Session{out: os.Stdout}
	s.setDialect(engine)
	s.initCommands()
	return s
}

func (s *Session) setDialect(engine string) {
	switch engine {
	case exec.MySQL:
		s.engine = exec.MySQL
		s.dialect = dialect.NewMySQLDialect()
	case exec.SQLite:
		s.engine = exec.SQLite
		s.dialect = dialect.NewSQLiteDialect()
	default:
		s.engine = exec.Postgres
		s.dialect = dialect.NewPostgresDialect()
	}
}

// Execute dispatches one input line. Longest matching command prefix wins,
// so "on conflict" is tried before "on".
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	lower := strings.ToLower(line)

	for _, cmd := range s.commands {
		if strings.HasSuffix(cmd.prefix, " ") {
			if strings.HasPrefix(lower, cmd.prefix) {
				return cmd.handler(strings.TrimSpace(line[len(cmd.prefix):]))
			}
			continue
		}
		if lower == cmd.prefix {
			return cmd.handler("")
		}
	}
	return fmt.Errorf("unknown command %q (try 'help')", strings.Fields(line)[0])
}

// reset drops the current statement and starts a new one of the given kind.
func (s *Session) reset(kind stmtKind) {
	s.kind = kind
	s.sel = nil
	s.ins = nil
	s.upd = nil
	s.del = nil
}

// compile renders the current statement for the active dialect with the
// enabled plugins applied. The builders themselves stay plugin-free so
// toggling a plugin changes the output without rebuilding the statement.
func (s *Session) compile() (compiler.Compiled, error) {
	ts := make([]plugins.Transformer, len(s.enabled))
	for i, p := range s.enabled {
		ts[i] = p.transformer
	}
	switch s.kind {
	case kindSelect:
		return s.sel.Use(ts...).Compile(s.dialect)
	case kindInsert:
		return s.ins.Use(ts...).Compile(s.dialect)
	case kindUpdate:
		return s.upd.Use(ts...).Compile(s.dialect)
	case kindDelete:
		return s.del.Use(ts...).Compile(s.dialect)
	}
	return compiler.Compiled{}, errNoStatement
}

// statementNode exposes the current statement's tree for the ast and dot
// commands.
func (s *Session) statementNode() (nodes.Node, error) {
	switch s.kind {
	case kindSelect:
		return s.sel.Node(), nil
	case kindInsert:
		return s.ins.Node(), nil
	case kindUpdate:
		return s.upd.Node(), nil
	case kindDelete:
		return s.del.Node(), nil
	}
	return nil, errNoStatement
}

// hasReturning reports whether the current statement carries a returning
// clause, which means run should expect rows back.
func (s *Session) hasReturning() bool {
	switch s.kind {
	case kindInsert:
		return s.ins.Node().Returning != nil
	case kindUpdate:
		return s.upd.Node().Returning != nil
	case kindDelete:
		return s.del.Node().Returning != nil
	}
	return false
}

func (s *Session) enablePlugin(p namedPlugin) error {
	for i, cur := range s.enabled {
		if cur.name == p.name {
			s.enabled[i] = p
			fmt.Fprintf(s.out, "  Plugin %s updated (%s)\n", p.name, p.description)
			return nil
		}
	}
	s.enabled = append(s.enabled, p)
	fmt.Fprintf(s.out, "  Plugin %s enabled (%s)\n", p.name, p.description)
	return nil
}

func (s *Session) disablePlugin(name string) error {
	for i, cur := range s.enabled {
		if cur.name == name {
			s.enabled = append(s.enabled[:i], s.enabled[i+1:]...)
			fmt.Fprintf(s.out, "  Plugin %s disabled\n", name)
			return nil
		}
	}
	return fmt.Errorf("plugin %q is not enabled", name)
}

func (s *Session) enabledPluginNames() []string {
	names := make([]string, len(s.enabled))
	for i, p := range s.enabled {
		names[i] = p.name
	}
	return names
}

// commandNames lists the visible command prefixes for completion and help.
func (s *Session) commandNames() []string {
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		names = append(names, strings.TrimSpace(cmd.prefix))
	}
	return names
}

// Close releases the database connection if one is open.
func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
