package snakecase

import (
	"testing"

	"github.com/SferaDev/kysely/builder"
	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/internal/testutil"
	"github.com/SferaDev/kysely/plugins"
)

var pg = dialect.NewPostgresDialect()

func TestSelectIdentifiers(t *testing.T) {
	t.Parallel()
	q := builder.SelectFrom("userProfile").
		Select("firstName", "lastName").
		Where("createdAt", ">", "2024-01-01").
		Use(New())

	c, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c.SQL,
		`select "first_name", "last_name" from "user_profile" where "created_at" > $1`)
}

func TestInsertIdentifiers(t *testing.T) {
	t.Parallel()
	q := builder.InsertInto("personPet").
		Columns("ownerId", "petName").
		Values(7, "Catto").
		Use(New())

	c, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c.SQL,
		`insert into "person_pet" ("owner_id", "pet_name") values ($1, $2)`)
}

func TestUpdateIdentifiers(t *testing.T) {
	t.Parallel()
	q := builder.Update("userProfile").
		Set("lastName", "Aniston").
		Where("userId", "=", 1).
		Use(New())

	c, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c.SQL,
		`update "user_profile" set "last_name" = $1 where "user_id" = $2`)
}

func TestDeleteIdentifiers(t *testing.T) {
	t.Parallel()
	q := builder.DeleteFrom("userProfile").
		Where("userId", "=", 1).
		Use(New())

	c, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c.SQL,
		`delete from "user_profile" where "user_id" = $1`)
}

func TestSnakeCaseIdentifiersPassThrough(t *testing.T) {
	t.Parallel()
	q := builder.SelectFrom("user_profile").
		Select("first_name").
		Use(New())

	c, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c.SQL, `select "first_name" from "user_profile"`)
}

func TestRawFragmentsKeepCasing(t *testing.T) {
	t.Parallel()
	q := builder.SelectFrom("userProfile").
		WhereRaw(`"createdAt" > ?`, "2024-01-01").
		Use(New())

	c, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, c.SQL,
		`select * from "user_profile" where "createdAt" > $1`)
}

func TestSatisfiesTransformer(t *testing.T) {
	t.Parallel()
	var _ plugins.Transformer = New()
}
