package kysely_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/SferaDev/kysely"
	"github.com/SferaDev/kysely/exec"
	"github.com/SferaDev/kysely/plugins/snakecase"
)

// TestFluentSelect exercises the facade end to end.
func TestFluentSelect(t *testing.T) {
	q, err := kysely.SelectFrom("person").
		Select("id", "first_name").
		Where("age", ">=", 18).
		OrderBy("first_name").
		Limit(10).
		Compile(kysely.NewPostgresDialect())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	expected := `select "id", "first_name" from "person" where "age" >= $1 order by "first_name" limit $2`
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}
	if len(q.Parameters) != 2 || q.Parameters[0] != 18 || q.Parameters[1] != 10 {
		t.Errorf("Expected params [18 10], got %v", q.Parameters)
	}
}

// TestParameterOrder checks parameters line up with their placeholders.
func TestParameterOrder(t *testing.T) {
	q, err := kysely.SelectFrom("person").
		Where("first_name", "=", "Alice").
		Where("age", ">", 18).
		Compile(kysely.NewPostgresDialect())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if !strings.Contains(q.SQL, "$1") || !strings.Contains(q.SQL, "$2") {
		t.Errorf("Expected parameterised SQL, got: %s", q.SQL)
	}
	if len(q.Parameters) != 2 {
		t.Fatalf("Expected 2 params, got %d", len(q.Parameters))
	}
	if q.Parameters[0] != "Alice" {
		t.Errorf("Expected first param to be 'Alice', got %v", q.Parameters[0])
	}
	if q.Parameters[1] != 18 {
		t.Errorf("Expected second param to be 18, got %v", q.Parameters[1])
	}
}

// TestMultipleDialects renders one statement for each supported engine.
func TestMultipleDialects(t *testing.T) {
	tests := []struct {
		name     string
		dialect  kysely.Dialect
		expected string
	}{
		{
			name:     "PostgreSQL",
			dialect:  kysely.NewPostgresDialect(),
			expected: `select "name" from "person" where "active" = $1`,
		},
		{
			name:     "MySQL",
			dialect:  kysely.NewMySQLDialect(),
			expected: "select `name` from `person` where `active` = ?",
		},
		{
			name:     "SQLite",
			dialect:  kysely.NewSQLiteDialect(),
			expected: `select "name" from "person" where "active" = ?`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := kysely.SelectFrom("person").
				Select("name").
				Where("active", "=", true).
				Compile(tt.dialect)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			if q.SQL != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, q.SQL)
			}
		})
	}
}

// TestDMLStatements covers insert, update and delete through the facade.
func TestDMLStatements(t *testing.T) {
	pg := kysely.NewPostgresDialect()

	q, err := kysely.InsertInto("person").
		Columns("first_name", "email").
		Values("Alice", "alice@example.com").
		Compile(pg)
	if err != nil {
		t.Fatalf("insert Compile failed: %v", err)
	}
	if !strings.Contains(q.SQL, "insert into") {
		t.Errorf("Expected insert statement, got: %s", q.SQL)
	}

	q, err = kysely.Update("person").
		Set("status", "inactive").
		Where("id", "=", 1).
		Compile(pg)
	if err != nil {
		t.Fatalf("update Compile failed: %v", err)
	}
	if !strings.Contains(q.SQL, "update") || !strings.Contains(q.SQL, "set") {
		t.Errorf("Expected update statement, got: %s", q.SQL)
	}

	q, err = kysely.DeleteFrom("person").
		Where("status", "=", "deleted").
		Compile(pg)
	if err != nil {
		t.Fatalf("delete Compile failed: %v", err)
	}
	if !strings.Contains(q.SQL, "delete from") {
		t.Errorf("Expected delete statement, got: %s", q.SQL)
	}
}

// TestUpsertPerDialect shows the same conflict intent rendering differently
// per engine.
func TestUpsertPerDialect(t *testing.T) {
	base := kysely.InsertInto("pet").
		Columns("name", "species").
		Values("Rex", "dog")

	pgq, err := base.OnConflictColumns("name").
		DoUpdateSet("species", "cat").
		Compile(kysely.NewPostgresDialect())
	if err != nil {
		t.Fatalf("postgres Compile failed: %v", err)
	}
	if !strings.Contains(pgq.SQL, `on conflict ("name") do update set`) {
		t.Errorf("postgres upsert: %s", pgq.SQL)
	}

	myq, err := base.OnDuplicateKeyUpdate("species", "cat").
		Compile(kysely.NewMySQLDialect())
	if err != nil {
		t.Fatalf("mysql Compile failed: %v", err)
	}
	if !strings.Contains(myq.SQL, "on duplicate key update") {
		t.Errorf("mysql upsert: %s", myq.SQL)
	}
}

// TestGeneratedValueOmitsColumn inserts with the Generated sentinel.
func TestGeneratedValueOmitsColumn(t *testing.T) {
	q, err := kysely.InsertInto("person").
		Columns("id", "first_name").
		Values(kysely.Generated, "Alice").
		Compile(kysely.NewPostgresDialect())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	expected := `insert into "person" ("first_name") values ($1)`
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}
}

// TestErrorMatching checks the re-exported error helpers.
func TestErrorMatching(t *testing.T) {
	_, err := kysely.InsertInto("person").
		Columns("name").
		Values("Alice").
		Returning("id").
		Compile(kysely.NewMySQLDialect())
	if !kysely.IsUnsupported(err) {
		t.Errorf("Expected unsupported error, got %v", err)
	}
	if !errors.Is(err, kysely.ErrUnsupported) {
		t.Errorf("Expected errors.Is match, got %v", err)
	}

	_, err = kysely.InsertInto("person").Compile(kysely.NewPostgresDialect())
	if !kysely.IsMalformed(err) {
		t.Errorf("Expected malformed error, got %v", err)
	}
}

// TestDBCompileOnlyHandle uses a handle without a connection.
func TestDBCompileOnlyHandle(t *testing.T) {
	db := kysely.NewDB(kysely.NewPostgresDialect(), nil)

	q, err := db.Compile(db.SelectFrom("person"))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if q.SQL != `select * from "person"` {
		t.Errorf("unexpected SQL: %s", q.SQL)
	}

	if _, err := db.Exec(context.Background(), db.DeleteFrom("person")); !errors.Is(err, kysely.ErrNoConnection) {
		t.Errorf("Expected ErrNoConnection, got %v", err)
	}
}

// TestDBSeedsPlugins checks handle plugins reach every statement.
func TestDBSeedsPlugins(t *testing.T) {
	db := kysely.NewDB(kysely.NewPostgresDialect(), nil, snakecase.New())

	q, err := db.Compile(db.SelectFrom("userProfile").Where("firstName", "=", "Ada"))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	expected := `select * from "user_profile" where "first_name" = $1`
	if q.SQL != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, q.SQL)
	}
}

// TestDBExecRoundTrip runs a handle against a mock driver.
func TestDBExecRoundTrip(t *testing.T) {
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	db := kysely.NewDB(kysely.NewPostgresDialect(), exec.Wrap(raw, exec.Postgres))
	defer db.Close()

	mock.ExpectExec(`insert into "person"`).
		WithArgs("Alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`select \* from "person"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectClose()

	res, err := db.Exec(context.Background(),
		db.InsertInto("person").Columns("first_name").Values("Alice"))
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Errorf("Expected 1 row affected, got %d", res.RowsAffected)
	}

	rows, err := db.Query(context.Background(), db.SelectFrom("person"))
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("Expected ids [1], got %v", ids)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("db.Close failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestForkedStatementsFromHandle extends one base two ways.
func TestForkedStatementsFromHandle(t *testing.T) {
	db := kysely.NewDB(kysely.NewPostgresDialect(), nil)
	base := db.SelectFrom("person").Where("active", "=", true)

	adults := base.Where("age", ">=", 18)
	named := base.Where("first_name", "=", "Ada")

	aq, err := db.Compile(adults)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	nq, err := db.Compile(named)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !strings.Contains(aq.SQL, `"age"`) || strings.Contains(aq.SQL, "first_name") {
		t.Errorf("adults branch leaked: %s", aq.SQL)
	}
	if !strings.Contains(nq.SQL, `"first_name"`) || strings.Contains(nq.SQL, "age") {
		t.Errorf("named branch leaked: %s", nq.SQL)
	}
}
