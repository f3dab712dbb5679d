package builder

import (
	"testing"

	"github.com/SferaDev/kysely/internal/testutil"
	"github.com/SferaDev/kysely/nodes"
)

// --- projections ---

func TestSelectDefaultsToStar(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person")
	testutil.AssertCompile(t, pg, q.Node(), `select * from "person"`)
}

func TestSelectColumnsAccumulate(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").Select("first_name").Select("last_name")
	testutil.AssertCompile(t, pg, q.Node(),
		`select "first_name", "last_name" from "person"`)
}

func TestSelectAllResetsProjections(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").Select("first_name").SelectAll()
	testutil.AssertCompile(t, pg, q.Node(), `select * from "person"`)
}

func TestSelectDistinct(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").Select("gender").Distinct()
	testutil.AssertCompile(t, pg, q.Node(), `select distinct "gender" from "person"`)
}

func TestSelectExprNodes(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").SelectExpr(nodes.Raw("count(*)").As("total"))
	testutil.AssertCompile(t, pg, q.Node(), `select count(*) as "total" from "person"`)
}

// --- predicates ---

func TestWhereConditionsJoinWithAnd(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").
		Where("first_name", "=", "Jennifer").
		Where("age", ">=", 18)
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" where "first_name" = $1 and "age" >= $2`,
		"Jennifer", 18)
}

func TestWhereExprCombinators(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").WhereExpr(
		nodes.Column("age").Lt(18).Or(nodes.Column("age").Gt(60)),
	)
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" where ("age" < $1 or "age" > $2)`, 18, 60)
}

func TestWhereRawInterleavesParameters(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").
		Where("gender", "=", "female").
		WhereRaw("lower(first_name) = ?", "jennifer").
		Where("age", ">", 18)
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" where "gender" = $1 and lower(first_name) = $2 and "age" > $3`,
		"female", "jennifer", 18)
}

func TestWhereExistsSubquery(t *testing.T) {
	t.Parallel()
	sub := SelectFrom("pet").Where("pet.owner_id", "=", 1)
	q := SelectFrom("person").WhereExists(sub)
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" where exists (select * from "pet" where "pet"."owner_id" = $1)`, 1)
}

// --- joins ---

func TestJoinKinds(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").
		InnerJoin("pet", "pet.owner_id", "person.id").
		LeftJoin("toy", "toy.pet_id", "pet.id")
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" inner join "pet" on "pet"."owner_id" = "person"."id" left join "toy" on "toy"."pet_id" = "pet"."id"`)
}

func TestCrossJoin(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").CrossJoin("pet")
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" cross join "pet"`)
}

func TestJoinOnCustomCondition(t *testing.T) {
	t.Parallel()
	on := nodes.Col("pet", "owner_id").Eq(nodes.Col("person", "id")).
		And(nodes.Col("pet", "species").Eq("dog"))
	q := SelectFrom("person").JoinOn(nodes.LeftJoin, "pet", on)
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" left join "pet" on "pet"."owner_id" = "person"."id" and "pet"."species" = $1`,
		"dog")
}

// --- ordering and paging ---

func TestOrderByDirections(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").OrderBy("last_name").OrderByDesc("created_at")
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" order by "last_name" asc, "created_at" desc`)
}

func TestLimitOffsetAreParameters(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").Where("age", ">", 18).Limit(10).Offset(20)
	testutil.AssertCompile(t, pg, q.Node(),
		`select * from "person" where "age" > $1 limit $2 offset $3`, 18, 10, 20)
}

// --- dialects ---

func TestSelectSQLitePlaceholders(t *testing.T) {
	t.Parallel()
	sql, params, err := SelectFrom("person").Where("age", ">", 18).Limit(10).ToSQL(lite)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `select * from "person" where "age" > ? limit ?`)
	testutil.AssertEqual(t, len(params), 2)
}

func TestSelectMySQLQuoting(t *testing.T) {
	t.Parallel()
	sql, _, err := SelectFrom("person").Select("first_name").ToSQL(my)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, "select `first_name` from `person`")
}

// --- terminals ---

func TestToSQLMatchesCompile(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").Where("id", "=", 7)

	c, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	sql, params, err := q.ToSQL(pg)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, sql, c.SQL)
	testutil.AssertEqual(t, len(params), len(c.Parameters))
}

func TestCompileIsRepeatable(t *testing.T) {
	t.Parallel()
	q := SelectFrom("person").Where("id", "=", 7)

	first, err := q.Compile(pg)
	testutil.AssertNoError(t, err)
	second, err := q.Compile(pg)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, first.SQL, second.SQL)
}
