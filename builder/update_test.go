package builder

import (
	"testing"

	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/internal/testutil"
	"github.com/SferaDev/kysely/nodes"
)

func TestUpdateSetAndWhere(t *testing.T) {
	t.Parallel()
	q := Update("person").
		Set("first_name", "Jen").
		Set("last_name", "Aniston").
		Where("id", "=", 1)
	testutil.AssertCompile(t, pg, q.Node(),
		`update "person" set "first_name" = $1, "last_name" = $2 where "id" = $3`,
		"Jen", "Aniston", 1)
}

func TestUpdateSetNodeValue(t *testing.T) {
	t.Parallel()
	q := Update("person").
		Set("updated_at", nodes.Raw("now()")).
		Where("id", "=", 1)
	testutil.AssertCompile(t, pg, q.Node(),
		`update "person" set "updated_at" = now() where "id" = $1`, 1)
}

func TestUpdateWithoutAssignmentsFailsAtCompile(t *testing.T) {
	t.Parallel()
	q := Update("person").Where("id", "=", 1)
	_, err := q.Compile(pg)
	testutil.AssertErrorIs(t, err, compiler.ErrMalformed)
}

func TestUpdateReturning(t *testing.T) {
	t.Parallel()
	q := Update("person").
		Set("first_name", "Jen").
		Where("id", "=", 1).
		Returning("id", "first_name")
	testutil.AssertCompile(t, pg, q.Node(),
		`update "person" set "first_name" = $1 where "id" = $2 returning "id", "first_name"`,
		"Jen", 1)
}

func TestUpdateReturningUnsupportedOnMySQL(t *testing.T) {
	t.Parallel()
	q := Update("person").Set("first_name", "Jen").ReturningAll()
	_, err := q.Compile(my)
	testutil.AssertErrorIs(t, err, compiler.ErrUnsupported)
}

func TestUpdateWhereRaw(t *testing.T) {
	t.Parallel()
	q := Update("person").
		Set("active", false).
		WhereRaw("last_login < ?", "2024-01-01")
	testutil.AssertCompile(t, pg, q.Node(),
		`update "person" set "active" = $1 where last_login < $2`,
		false, "2024-01-01")
}

func TestUpdateForksShareNoState(t *testing.T) {
	t.Parallel()
	base := Update("person").Set("active", false)

	guests := base.Where("role", "=", "guest")
	stale := base.Where("last_login", "<", "2024-01-01").Returning("id")

	testutil.AssertEqual(t, len(base.Node().Set), 1)
	if base.Node().Where != nil {
		t.Error("expected base to keep a nil where clause")
	}
	testutil.AssertCompile(t, pg, guests.Node(),
		`update "person" set "active" = $1 where "role" = $2`, false, "guest")
	testutil.AssertCompile(t, pg, stale.Node(),
		`update "person" set "active" = $1 where "last_login" < $2 returning "id"`,
		false, "2024-01-01")
}

func TestUpdateTransformerCalled(t *testing.T) {
	t.Parallel()
	ct := &countingTransformer{}
	q := Update("person").Set("first_name", "Jen").Use(ct)

	_, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, ct.called, 1)
}

func TestUpdateTransformerErrorStops(t *testing.T) {
	t.Parallel()
	q := Update("person").Set("first_name", "Jen").Use(failingTransformer{})

	sql, _, err := q.ToSQL(pg)
	testutil.AssertErrorIs(t, err, errTransform)
	testutil.AssertEqual(t, sql, "")
}
