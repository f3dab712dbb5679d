package builder

import (
	"testing"

	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/internal/testutil"
	"github.com/SferaDev/kysely/nodes"
)

// --- rows ---

func TestInsertSingleRow(t *testing.T) {
	t.Parallel()
	q := InsertInto("person").
		Columns("first_name", "last_name", "gender").
		Values("Jennifer", "Aniston", "female")
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "person" ("first_name", "last_name", "gender") values ($1, $2, $3)`,
		"Jennifer", "Aniston", "female")
}

func TestInsertMultipleRowsRowMajorOrder(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name", "species").
		Values("Catto", "cat").
		Values("Doggo", "dog")
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "pet" ("name", "species") values ($1, $2), ($3, $4)`,
		"Catto", "cat", "Doggo", "dog")
}

func TestInsertRowsBulk(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name", "species").
		Rows([]any{"Catto", "cat"}, []any{"Doggo", "dog"})
	testutil.AssertEqual(t, len(q.Node().Rows), 2)
}

func TestInsertGeneratedColumnOmitted(t *testing.T) {
	t.Parallel()
	q := InsertInto("person").
		Columns("id", "first_name").
		Values(nodes.Generated, "Jennifer")
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "person" ("first_name") values ($1)`, "Jennifer")
}

func TestInsertNoRowsFailsAtCompile(t *testing.T) {
	t.Parallel()
	q := InsertInto("person").Columns("first_name")
	_, err := q.Compile(pg)
	testutil.AssertErrorIs(t, err, compiler.ErrMalformed)
}

// --- conflict handling ---

func TestOnConflictColumnsDoNothing(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name", "species").
		Values("Catto", "cat").
		OnConflictColumns("name").
		DoNothing()
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "pet" ("name", "species") values ($1, $2) on conflict ("name") do nothing`,
		"Catto", "cat")
}

func TestOnConflictDoUpdateSet(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name", "species").
		Values("Catto", "cat").
		OnConflictColumns("name").
		DoUpdateSet("species", "feline").
		Insert()
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "pet" ("name", "species") values ($1, $2) on conflict ("name") do update set "species" = $3`,
		"Catto", "cat", "feline")
}

func TestOnConflictConstraintTarget(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name").
		Values("Catto").
		OnConflictConstraint("pet_name_key").
		DoNothing()
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "pet" ("name") values ($1) on conflict on constraint "pet_name_key" do nothing`,
		"Catto")
}

func TestOnConflictBareTarget(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name").
		Values("Catto").
		OnConflict().
		DoNothing()
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "pet" ("name") values ($1) on conflict do nothing`, "Catto")
}

func TestOnConflictTargetWhere(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name").
		Values("Catto").
		OnConflictColumns("name").
		Where("deleted_at", "is", nil).
		DoNothing()
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "pet" ("name") values ($1) on conflict ("name") where "deleted_at" is null do nothing`,
		"Catto")
}

func TestOnConflictUpdateWhereAndSetChaining(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name", "species").
		Values("Catto", "cat").
		OnConflictColumns("name").
		DoUpdateSet("species", "feline").
		Set("owner_id", 7).
		Where("pet.species", "!=", "dog").
		Insert()
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "pet" ("name", "species") values ($1, $2) on conflict ("name") do update set "species" = $3, "owner_id" = $4 where "pet"."species" != $5`,
		"Catto", "cat", "feline", 7, "dog")
}

func TestConflictContextsForkIndependently(t *testing.T) {
	t.Parallel()
	target := InsertInto("pet").
		Columns("name", "species").
		Values("Catto", "cat").
		OnConflictColumns("name")

	nothing := target.DoNothing()
	update := target.DoUpdateSet("species", "feline").Insert()

	testutil.AssertCompile(t, pg, nothing.Node(),
		`insert into "pet" ("name", "species") values ($1, $2) on conflict ("name") do nothing`,
		"Catto", "cat")
	testutil.AssertCompile(t, pg, update.Node(),
		`insert into "pet" ("name", "species") values ($1, $2) on conflict ("name") do update set "species" = $3`,
		"Catto", "cat", "feline")
}

func TestConflictUpdateBuilderDelegatesTerminals(t *testing.T) {
	t.Parallel()
	ub := InsertInto("pet").
		Columns("name").
		Values("Catto").
		OnConflictColumns("name").
		DoUpdateSet("name", "Cat")

	c, err := ub.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c.SQL,
		`insert into "pet" ("name") values ($1) on conflict ("name") do update set "name" = $2`)

	sql, params, err := ub.ToSQL(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, c.SQL)
	testutil.AssertEqual(t, len(params), 2)
}

func TestOnConflictUnsupportedOnMySQL(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name").
		Values("Catto").
		OnConflictColumns("name").
		DoNothing()
	_, err := q.Compile(my)
	testutil.AssertErrorIs(t, err, compiler.ErrUnsupported)
}

// --- MySQL conflict forms ---

func TestInsertIgnore(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").Columns("name").Values("Catto").Ignore()
	testutil.AssertCompile(t, my, q.Node(),
		"insert ignore into `pet` (`name`) values (?)", "Catto")
}

func TestInsertIgnoreUnsupportedOnPostgres(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").Columns("name").Values("Catto").Ignore()
	_, err := q.Compile(pg)
	testutil.AssertErrorIs(t, err, compiler.ErrUnsupported)
}

func TestOnDuplicateKeyUpdate(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name", "species").
		Values("Catto", "cat").
		OnDuplicateKeyUpdate("species", "cat")
	testutil.AssertCompile(t, my, q.Node(),
		"insert into `pet` (`name`, `species`) values (?, ?) on duplicate key update `species` = ?",
		"Catto", "cat", "cat")
}

func TestOnDuplicateKeyUpdateRepeatable(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name").
		Values("Catto").
		OnDuplicateKeyUpdate("species", "cat").
		OnDuplicateKeyUpdate("owner_id", 7)
	testutil.AssertEqual(t, len(q.Node().OnDuplicate.Updates), 2)
	testutil.AssertCompile(t, my, q.Node(),
		"insert into `pet` (`name`) values (?) on duplicate key update `species` = ?, `owner_id` = ?",
		"Catto", "cat", 7)
}

// --- returning ---

func TestInsertReturning(t *testing.T) {
	t.Parallel()
	q := InsertInto("person").
		Columns("first_name").
		Values("Jennifer").
		Returning("id", "first_name")
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "person" ("first_name") values ($1) returning "id", "first_name"`,
		"Jennifer")
}

func TestInsertReturningAll(t *testing.T) {
	t.Parallel()
	q := InsertInto("person").
		Columns("first_name").
		Values("Jennifer").
		ReturningAll()
	testutil.AssertCompile(t, lite, q.Node(),
		`insert into "person" ("first_name") values (?) returning *`, "Jennifer")
}

func TestConflictUpdateReturningDelegates(t *testing.T) {
	t.Parallel()
	q := InsertInto("pet").
		Columns("name").
		Values("Catto").
		OnConflictColumns("name").
		DoUpdateSet("name", "Cat").
		Returning("id")
	testutil.AssertCompile(t, pg, q.Node(),
		`insert into "pet" ("name") values ($1) on conflict ("name") do update set "name" = $2 returning "id"`,
		"Catto", "Cat")
}

// --- plugin pipeline ---

func TestInsertTransformerCalled(t *testing.T) {
	t.Parallel()
	ct := &countingTransformer{}
	q := InsertInto("person").Columns("first_name").Values("Jennifer").Use(ct)

	_, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ct.called, 1)
}

func TestInsertTransformerErrorStops(t *testing.T) {
	t.Parallel()
	q := InsertInto("person").Columns("first_name").Values("Jennifer").Use(failingTransformer{})

	_, err := q.Compile(pg)
	testutil.AssertErrorIs(t, err, errTransform)
}
