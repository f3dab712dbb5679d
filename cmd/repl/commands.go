package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/SferaDev/kysely/builder"
	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/exec"
	"github.com/SferaDev/kysely/nodes"
	"github.com/SferaDev/kysely/plugins/snakecase"
	"github.com/SferaDev/kysely/plugins/softdelete"
	"github.com/SferaDev/kysely/plugins/tableprefix"
)

// commandEntry maps an input prefix to its handler. Prefixes ending in a
// space take arguments; the rest must match the whole line. completion
// names argument candidates for the completer.
type commandEntry struct {
	prefix     string
	handler    func(args string) error
	completion completionKind
	hidden     bool
}

func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// Statement starters.
		{prefix: "from ", handler: s.cmdFrom},
		{prefix: "insert into ", handler: s.cmdInsertInto},
		{prefix: "update ", handler: s.cmdUpdate},
		{prefix: "delete from ", handler: s.cmdDeleteFrom},

		// Select clauses.
		{prefix: "select ", handler: s.cmdSelect},
		{prefix: "distinct", handler: s.cmdDistinct},
		{prefix: "where ", handler: s.cmdWhere},
		{prefix: "join ", handler: s.joinHandler(nodes.InnerJoin)},
		{prefix: "inner join ", handler: s.joinHandler(nodes.InnerJoin), hidden: true},
		{prefix: "left join ", handler: s.joinHandler(nodes.LeftJoin)},
		{prefix: "right join ", handler: s.joinHandler(nodes.RightJoin)},
		{prefix: "full join ", handler: s.joinHandler(nodes.FullJoin)},
		{prefix: "cross join ", handler: s.cmdCrossJoin},
		{prefix: "order ", handler: s.cmdOrder},
		{prefix: "limit ", handler: s.cmdLimit},
		{prefix: "offset ", handler: s.cmdOffset},

		// Insert clauses.
		{prefix: "columns ", handler: s.cmdColumns},
		{prefix: "values ", handler: s.cmdValues},
		{prefix: "ignore", handler: s.cmdIgnore},
		{prefix: "on conflict ", handler: s.cmdOnConflict},
		{prefix: "on duplicate key update ", handler: s.cmdOnDuplicate},

		// Update clauses.
		{prefix: "set ", handler: s.cmdSet},

		// Shared clauses.
		{prefix: "returning ", handler: s.cmdReturning},

		// Inspection.
		{prefix: "sql", handler: s.cmdSQL},
		{prefix: "params", handler: s.cmdParams},
		{prefix: "ast", handler: s.cmdAST},
		{prefix: "dot ", handler: s.cmdDot},
		{prefix: "reset", handler: s.cmdReset},
		{prefix: "status", handler: s.cmdStatus},
		{prefix: "help", handler: s.cmdHelp},

		// Dialect and plugins.
		{prefix: "dialect ", handler: s.cmdDialect, completion: completeDialect},
		{prefix: "engine ", handler: s.cmdDialect, completion: completeDialect, hidden: true},
		{prefix: "plugin ", handler: s.cmdPlugin, completion: completePlugin},
		{prefix: "plugins", handler: s.cmdPlugins},

		// Database.
		{prefix: "connect ", handler: s.cmdConnect},
		{prefix: "connect", handler: s.cmdConnect, hidden: true},
		{prefix: "disconnect", handler: s.cmdDisconnect},
		{prefix: "run", handler: s.cmdRun},
		{prefix: "exec", handler: s.cmdRun, hidden: true},
	}

	// Longest prefix first so "on conflict" beats "on" and "left join"
	// beats "join".
	sort.SliceStable(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// --- statement starters ---

func (s *Session) cmdFrom(args string) error {
	if args == "" {
		return errors.New("usage: from <table> [as <alias>]")
	}
	s.reset(kindSelect)
	s.sel = builder.SelectFrom(args)
	fmt.Fprintf(s.out, "  select from %s\n", args)
	return nil
}

func (s *Session) cmdInsertInto(args string) error {
	if args == "" {
		return errors.New("usage: insert into <table>")
	}
	s.reset(kindInsert)
	s.ins = builder.InsertInto(args)
	fmt.Fprintf(s.out, "  insert into %s\n", args)
	return nil
}

func (s *Session) cmdUpdate(args string) error {
	if args == "" {
		return errors.New("usage: update <table>")
	}
	s.reset(kindUpdate)
	s.upd = builder.Update(args)
	fmt.Fprintf(s.out, "  update %s\n", args)
	return nil
}

func (s *Session) cmdDeleteFrom(args string) error {
	if args == "" {
		return errors.New("usage: delete from <table>")
	}
	s.reset(kindDelete)
	s.del = builder.DeleteFrom(args)
	fmt.Fprintf(s.out, "  delete from %s\n", args)
	return nil
}

// --- select clauses ---

func (s *Session) cmdSelect(args string) error {
	if s.kind != kindSelect {
		return errors.New("select needs an active select statement (use 'from <table>')")
	}
	if args == "*" {
		s.sel = s.sel.SelectAll()
		fmt.Fprintln(s.out, "  select *")
		return nil
	}
	var exprs []string
	for _, part := range strings.Split(args, ",") {
		if part = strings.TrimSpace(part); part != "" {
			exprs = append(exprs, part)
		}
	}
	if len(exprs) == 0 {
		return errors.New("usage: select <expr>[, <expr>...]")
	}
	s.sel = s.sel.Select(exprs...)
	fmt.Fprintf(s.out, "  select %s\n", strings.Join(exprs, ", "))
	return nil
}

func (s *Session) cmdDistinct(string) error {
	if s.kind != kindSelect {
		return errors.New("distinct needs an active select statement")
	}
	s.sel = s.sel.Distinct()
	fmt.Fprintln(s.out, "  distinct")
	return nil
}

func (s *Session) cmdWhere(args string) error {
	column, op, value, err := parseCondition(args)
	if err != nil {
		return err
	}
	switch s.kind {
	case kindSelect:
		s.sel = s.sel.Where(column, op, value)
	case kindUpdate:
		s.upd = s.upd.Where(column, op, value)
	case kindDelete:
		s.del = s.del.Where(column, op, value)
	default:
		return errNoStatement
	}
	fmt.Fprintf(s.out, "  where %s %s %v\n", column, op, value)
	return nil
}

func (s *Session) joinHandler(kind nodes.JoinKind) func(string) error {
	return func(args string) error { return s.join(kind, args) }
}

func (s *Session) join(kind nodes.JoinKind, args string) error {
	if s.kind != kindSelect {
		return errors.New("join needs an active select statement")
	}
	table, rest, ok := cutFold(args, " on ")
	if !ok {
		return errors.New("usage: join <table> on <left-column> = <right-column>")
	}
	parts := strings.Fields(rest)
	if len(parts) != 3 || parts[1] != "=" {
		return errors.New("usage: join <table> on <left-column> = <right-column>")
	}
	table = strings.TrimSpace(table)
	switch kind {
	case nodes.LeftJoin:
		s.sel = s.sel.LeftJoin(table, parts[0], parts[2])
	case nodes.RightJoin:
		s.sel = s.sel.RightJoin(table, parts[0], parts[2])
	case nodes.FullJoin:
		s.sel = s.sel.FullJoin(table, parts[0], parts[2])
	default:
		s.sel = s.sel.InnerJoin(table, parts[0], parts[2])
	}
	fmt.Fprintf(s.out, "  join %s on %s = %s\n", table, parts[0], parts[2])
	return nil
}

func (s *Session) cmdCrossJoin(args string) error {
	if s.kind != kindSelect {
		return errors.New("join needs an active select statement")
	}
	if args == "" {
		return errors.New("usage: cross join <table>")
	}
	s.sel = s.sel.CrossJoin(args)
	fmt.Fprintf(s.out, "  cross join %s\n", args)
	return nil
}

func (s *Session) cmdOrder(args string) error {
	if s.kind != kindSelect {
		return errors.New("order needs an active select statement")
	}
	parts := strings.Fields(args)
	switch {
	case len(parts) == 1:
		s.sel = s.sel.OrderBy(parts[0])
	case len(parts) == 2 && strings.EqualFold(parts[1], "asc"):
		s.sel = s.sel.OrderBy(parts[0])
	case len(parts) == 2 && strings.EqualFold(parts[1], "desc"):
		s.sel = s.sel.OrderByDesc(parts[0])
	default:
		return errors.New("usage: order <column> [asc|desc]")
	}
	fmt.Fprintf(s.out, "  order by %s\n", args)
	return nil
}

func (s *Session) cmdLimit(args string) error {
	if s.kind != kindSelect {
		return errors.New("limit needs an active select statement")
	}
	n, err := strconv.Atoi(args)
	if err != nil {
		return fmt.Errorf("limit wants a number, got %q", args)
	}
	s.sel = s.sel.Limit(n)
	fmt.Fprintf(s.out, "  limit %d\n", n)
	return nil
}

func (s *Session) cmdOffset(args string) error {
	if s.kind != kindSelect {
		return errors.New("offset needs an active select statement")
	}
	n, err := strconv.Atoi(args)
	if err != nil {
		return fmt.Errorf("offset wants a number, got %q", args)
	}
	s.sel = s.sel.Offset(n)
	fmt.Fprintf(s.out, "  offset %d\n", n)
	return nil
}

// --- insert clauses ---

func (s *Session) cmdColumns(args string) error {
	if s.kind != kindInsert {
		return errors.New("columns needs an active insert statement")
	}
	names := parseNames(args)
	if len(names) == 0 {
		return errors.New("usage: columns <name>[, <name>...]")
	}
	s.ins = s.ins.Columns(names...)
	fmt.Fprintf(s.out, "  columns %s\n", strings.Join(names, ", "))
	return nil
}

func (s *Session) cmdValues(args string) error {
	if s.kind != kindInsert {
		return errors.New("values needs an active insert statement")
	}
	toks := tokenize(args)
	if len(toks) == 0 {
		return errors.New("usage: values <value>[, <value>...]")
	}
	vals := make([]any, len(toks))
	for i, t := range toks {
		vals[i] = parseValue(t)
	}
	s.ins = s.ins.Values(vals...)
	fmt.Fprintf(s.out, "  + row (%d values)\n", len(vals))
	return nil
}

func (s *Session) cmdIgnore(string) error {
	if s.kind != kindInsert {
		return errors.New("ignore needs an active insert statement")
	}
	s.ins = s.ins.Ignore()
	fmt.Fprintln(s.out, "  ignore conflicting rows")
	return nil
}

// cmdOnConflict handles the forms
//
//	on conflict <column>... do nothing
//	on conflict <column>... do update <col>=<val>...
//	on conflict constraint <name> do nothing|do update ...
//	on conflict any do nothing
func (s *Session) cmdOnConflict(args string) error {
	if s.kind != kindInsert {
		return errors.New("on conflict needs an active insert statement")
	}
	toks := tokenize(args)
	doAt := -1
	for i, t := range toks {
		if strings.EqualFold(t.text, "do") {
			doAt = i
			break
		}
	}
	if doAt < 0 || doAt+1 >= len(toks) {
		return errors.New("usage: on conflict <columns...>|constraint <name>|any do nothing|update <col>=<val>...")
	}
	target := toks[:doAt]
	action := toks[doAt+1:]

	var tb *builder.ConflictTargetBuilder
	switch {
	case len(target) == 2 && strings.EqualFold(target[0].text, "constraint"):
		tb = s.ins.OnConflictConstraint(target[1].text)
	case len(target) == 1 && strings.EqualFold(target[0].text, "any"):
		tb = s.ins.OnConflict()
	case len(target) > 0:
		cols := make([]string, len(target))
		for i, t := range target {
			cols[i] = t.text
		}
		tb = s.ins.OnConflictColumns(cols...)
	default:
		tb = s.ins.OnConflict()
	}

	switch strings.ToLower(action[0].text) {
	case "nothing":
		s.ins = tb.DoNothing()
		fmt.Fprintln(s.out, "  on conflict do nothing")
		return nil
	case "update":
		assigns, err := parseAssignments(action[1:])
		if err != nil {
			return err
		}
		ub := tb.DoUpdateSet(assigns[0].column, assigns[0].value)
		for _, a := range assigns[1:] {
			ub = ub.Set(a.column, a.value)
		}
		s.ins = ub.Insert()
		fmt.Fprintf(s.out, "  on conflict do update (%d assignments)\n", len(assigns))
		return nil
	}
	return fmt.Errorf("unknown conflict action %q (nothing or update)", action[0].text)
}

func (s *Session) cmdOnDuplicate(args string) error {
	if s.kind != kindInsert {
		return errors.New("on duplicate key update needs an active insert statement")
	}
	assigns, err := parseAssignments(tokenize(args))
	if err != nil {
		return err
	}
	for _, a := range assigns {
		s.ins = s.ins.OnDuplicateKeyUpdate(a.column, a.value)
	}
	fmt.Fprintf(s.out, "  on duplicate key update (%d assignments)\n", len(assigns))
	return nil
}

// --- update clauses ---

func (s *Session) cmdSet(args string) error {
	if s.kind != kindUpdate {
		return errors.New("set needs an active update statement (upserts use 'on conflict ... do update')")
	}
	assigns, err := parseAssignments(tokenize(args))
	if err != nil {
		return err
	}
	for _, a := range assigns {
		s.upd = s.upd.Set(a.column, a.value)
	}
	fmt.Fprintf(s.out, "  set (%d assignments)\n", len(assigns))
	return nil
}

// --- shared clauses ---

func (s *Session) cmdReturning(args string) error {
	names := parseNames(args)
	if len(names) == 0 {
		return errors.New("usage: returning *|<expr>[, <expr>...]")
	}
	all := len(names) == 1 && names[0] == "*"
	switch s.kind {
	case kindInsert:
		if all {
			s.ins = s.ins.ReturningAll()
		} else {
			s.ins = s.ins.Returning(names...)
		}
	case kindUpdate:
		if all {
			s.upd = s.upd.ReturningAll()
		} else {
			s.upd = s.upd.Returning(names...)
		}
	case kindDelete:
		if all {
			s.del = s.del.ReturningAll()
		} else {
			s.del = s.del.Returning(names...)
		}
	default:
		return errors.New("returning applies to insert, update and delete statements")
	}
	fmt.Fprintf(s.out, "  returning %s\n", strings.Join(names, ", "))
	return nil
}

// --- inspection ---

func (s *Session) cmdSQL(string) error {
	c, err := s.compile()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "  %s\n", c.SQL)
	return nil
}

func (s *Session) cmdParams(string) error {
	c, err := s.compile()
	if err != nil {
		return err
	}
	if len(c.Parameters) == 0 {
		fmt.Fprintln(s.out, "  (no parameters)")
		return nil
	}
	for i, p := range c.Parameters {
		fmt.Fprintf(s.out, "  %s = %#v\n", s.dialect.Placeholder(i+1), p)
	}
	return nil
}

func (s *Session) cmdAST(string) error {
	root, err := s.statementNode()
	if err != nil {
		return err
	}
	dot, err := compiler.Render(root)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, dot)
	return nil
}

func (s *Session) cmdDot(args string) error {
	if args == "" {
		return errors.New("usage: dot <file>")
	}
	root, err := s.statementNode()
	if err != nil {
		return err
	}
	dot, err := compiler.Render(root)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args, []byte(dot), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "  wrote %s\n", args)
	return nil
}

func (s *Session) cmdReset(string) error {
	s.reset(kindNone)
	fmt.Fprintln(s.out, "  Statement cleared")
	return nil
}

func (s *Session) cmdStatus(string) error {
	fmt.Fprintf(s.out, "  Dialect:   %s\n", s.dialect.Name())
	fmt.Fprintf(s.out, "  Statement: %s\n", s.kind)
	if len(s.enabled) == 0 {
		fmt.Fprintln(s.out, "  Plugins:   (none)")
	} else {
		fmt.Fprintf(s.out, "  Plugins:   %s\n", strings.Join(s.enabledPluginNames(), ", "))
	}
	if s.conn == nil {
		fmt.Fprintln(s.out, "  Database:  not connected")
	} else {
		fmt.Fprintf(s.out, "  Database:  %s\n", sanitizeDSN(s.lastDSN))
	}
	return nil
}

// --- dialect and plugins ---

func (s *Session) cmdDialect(args string) error {
	name := strings.ToLower(args)
	if _, ok := exec.DriverName(name); !ok {
		return fmt.Errorf("unknown dialect %q (postgres, mysql, sqlite)", name)
	}
	s.setDialect(name)
	if s.conn != nil && s.conn.Engine() != s.engine {
		fmt.Fprintf(s.out, "  Note: still connected to a %s database\n", s.conn.Engine())
	}
	fmt.Fprintf(s.out, "  Dialect: %s\n", s.dialect.Name())
	return nil
}

func (s *Session) cmdPlugin(args string) error {
	parts := strings.Fields(args)
	if len(parts) == 0 {
		return errors.New("usage: plugin snakecase | plugin tableprefix <prefix> | plugin softdelete [column] | plugin off <name>")
	}
	switch strings.ToLower(parts[0]) {
	case "off":
		if len(parts) != 2 {
			return errors.New("usage: plugin off <name>")
		}
		return s.disablePlugin(parts[1])
	case "snakecase":
		return s.enablePlugin(namedPlugin{
			name:        "snakecase",
			description: "rewrites identifiers to snake_case",
			transformer: snakecase.New(),
		})
	case "tableprefix":
		if len(parts) != 2 {
			return errors.New("usage: plugin tableprefix <prefix>")
		}
		return s.enablePlugin(namedPlugin{
			name:        "tableprefix",
			description: fmt.Sprintf("prefixes table names with %q", parts[1]),
			transformer: tableprefix.New(parts[1]),
		})
	case "softdelete":
		column := "deleted_at"
		var opts []softdelete.Option
		if len(parts) == 2 {
			column = parts[1]
			opts = append(opts, softdelete.WithColumn(column))
		}
		return s.enablePlugin(namedPlugin{
			name:        "softdelete",
			description: fmt.Sprintf("hides rows where %s is set", column),
			transformer: softdelete.New(opts...),
		})
	}
	return fmt.Errorf("unknown plugin %q (snakecase, tableprefix, softdelete)", parts[0])
}

func (s *Session) cmdPlugins(string) error {
	if len(s.enabled) == 0 {
		fmt.Fprintln(s.out, "  No plugins enabled")
		return nil
	}
	for _, p := range s.enabled {
		fmt.Fprintf(s.out, "  %-12s %s\n", p.name, p.description)
	}
	return nil
}

// --- database ---

func (s *Session) cmdConnect(args string) error {
	dsn := args
	if dsn == "" {
		dsn = s.lastDSN
	}
	if dsn == "" {
		return errors.New("usage: connect <dsn>")
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	conn, err := exec.Open(s.engine, dsn, exec.WithStatementCache(64))
	if err != nil {
		return err
	}
	if err := conn.DB().Ping(); err != nil {
		_ = conn.Close()
		return fmt.Errorf("ping: %w", err)
	}
	s.conn = conn
	s.lastDSN = dsn
	fmt.Fprintf(s.out, "  Connected to %s (%s)\n", sanitizeDSN(dsn), s.engine)
	return nil
}

func (s *Session) cmdDisconnect(string) error {
	if s.conn == nil {
		return errors.New("not connected")
	}
	err := s.Close()
	fmt.Fprintln(s.out, "  Disconnected")
	return err
}

func (s *Session) cmdRun(string) error {
	if s.conn == nil {
		return errors.New("not connected (use 'connect <dsn>')")
	}
	c, err := s.compile()
	if err != nil {
		return err
	}
	ctx := context.Background()
	if s.kind == kindSelect || s.hasReturning() {
		rows, err := s.conn.Query(ctx, c)
		if err != nil {
			return err
		}
		defer rows.Close()
		table, err := formatRows(rows)
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, table)
		return nil
	}
	res, err := s.conn.Exec(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "  %d row(s) affected\n", res.RowsAffected)
	return nil
}

func (s *Session) cmdHelp(string) error {
	fmt.Fprint(s.out, `
Statements
  from <table> [as <alias>]      start a select
  insert into <table>            start an insert
  update <table>                 start an update
  delete from <table>            start a delete

Select clauses
  select <expr>[, ...] | *       projection (expr may be "col as alias")
  distinct                       select distinct
  where <col> <op> <value>       add a condition (=, !=, >, >=, <, <=,
                                 like, not like, in, not in, is, is not)
  join <table> on <l> = <r>      inner join (also left/right/full/cross join)
  order <col> [asc|desc]         add an order term
  limit <n> / offset <n>         pagination

Insert clauses
  columns <name>[, ...]          declared column list
  values <value>[, ...]          add a row ('generated' omits that column)
  ignore                         keep conflicting rows unchanged
  on conflict <cols> do nothing  upsert, also "do update a=1 b=2",
                                 "constraint <name> do ...", "any do nothing"
  on duplicate key update a=1    mysql-flavored upsert

Update and delete clauses
  set <col>=<val>[, ...]         update assignments
  where ... / returning ...      as above ('returning *' for all columns)

Inspection
  sql / params                   show the compiled statement
  ast / dot <file>               graphviz view of the statement tree
  reset / status                 clear the statement / show session state

Dialect and plugins
  dialect postgres|mysql|sqlite  switch the target dialect
  plugin snakecase               enable a rewrite plugin
  plugin tableprefix <prefix>
  plugin softdelete [column]
  plugin off <name> / plugins    disable / list

Database
  connect <dsn> / disconnect     open or close a database connection
  run                            execute the current statement

exit or quit leaves the shell.
`)
	return nil
}
