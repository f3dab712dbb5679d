package plugins

import (
	"testing"

	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/internal/testutil"
	"github.com/SferaDev/kysely/nodes"
)

var pg = dialect.NewPostgresDialect()

func tagTable(s string) string  { return "t_" + s }
func tagColumn(s string) string { return "c_" + s }

// --- select rewriting ---

func TestRewriteSelectTablesAndColumns(t *testing.T) {
	t.Parallel()
	stmt := &nodes.SelectNode{
		Projections: nodes.List(nodes.Column("name")),
		From:        nodes.From(nodes.Table("person")),
		Where:       nodes.Where(nodes.Col("person", "age").Gt(18)),
	}

	got := RewriteSelect(stmt, tagTable, tagColumn)

	testutil.AssertCompile(t, pg, got,
		`select "c_name" from "t_person" where "t_person"."c_age" > $1`, 18)
}

func TestRewriteSelectLeavesInputUnchanged(t *testing.T) {
	t.Parallel()
	stmt := &nodes.SelectNode{
		From:  nodes.From(nodes.Table("person")),
		Where: nodes.Where(nodes.Column("age").Gt(18)),
	}

	RewriteSelect(stmt, tagTable, tagColumn)

	testutil.AssertCompile(t, pg, stmt,
		`select * from "person" where "age" > $1`, 18)
}

// --- alias handling ---

func TestRewriteAliasQualifierFollowsColumnFunc(t *testing.T) {
	t.Parallel()
	stmt := &nodes.SelectNode{
		From:  nodes.From(nodes.Table("person").As("p")),
		Where: nodes.Where(nodes.Col("p", "age").Gt(18)),
	}

	// With a nil column func the alias and its uses stay untouched while
	// the underlying table is still rewritten.
	got := RewriteSelect(stmt, tagTable, nil)

	testutil.AssertCompile(t, pg, got,
		`select * from "t_person" as "p" where "p"."age" > $1`, 18)
}

func TestRewriteAliasDefinitionAndUseStayConsistent(t *testing.T) {
	t.Parallel()
	stmt := &nodes.SelectNode{
		From:  nodes.From(nodes.Table("person").As("who")),
		Where: nodes.Where(nodes.Col("who", "age").Gt(18)),
	}

	got := RewriteSelect(stmt, tagTable, tagColumn)

	testutil.AssertCompile(t, pg, got,
		`select * from "t_person" as "c_who" where "c_who"."c_age" > $1`, 18)
}

// --- statement coverage ---

func TestRewriteInsertConflictClause(t *testing.T) {
	t.Parallel()
	stmt := &nodes.InsertNode{
		Into:    nodes.Table("pet"),
		Columns: nodes.List(nodes.Column("name")),
		Rows:    []*nodes.ListNode{nodes.ValueList("Catto")},
		OnConflict: &nodes.OnConflictNode{
			Columns: []*nodes.ColumnNode{nodes.Column("name")},
			Updates: []*nodes.AssignmentNode{nodes.Assign(nodes.Column("species"), "cat")},
		},
	}

	got := RewriteInsert(stmt, tagTable, tagColumn)

	testutil.AssertCompile(t, pg, got,
		`insert into "t_pet" ("c_name") values ($1) on conflict ("c_name") do update set "c_species" = $2`,
		"Catto", "cat")
}

func TestRewriteUpdate(t *testing.T) {
	t.Parallel()
	stmt := &nodes.UpdateNode{
		Table: nodes.Table("person"),
		Set:   []*nodes.AssignmentNode{nodes.Assign(nodes.Column("age"), 30)},
		Where: nodes.Where(nodes.Column("id").Eq(1)),
	}

	got := RewriteUpdate(stmt, tagTable, tagColumn)

	testutil.AssertCompile(t, pg, got,
		`update "t_person" set "c_age" = $1 where "c_id" = $2`, 30, 1)
}

func TestRewriteDelete(t *testing.T) {
	t.Parallel()
	stmt := &nodes.DeleteNode{
		From:  nodes.Table("person"),
		Where: nodes.Where(nodes.Column("id").Eq(1)),
	}

	got := RewriteDelete(stmt, tagTable, tagColumn)

	testutil.AssertCompile(t, pg, got,
		`delete from "t_person" where "c_id" = $1`, 1)
}

// --- opaque nodes ---

func TestRewriteLeavesRawFragmentsAlone(t *testing.T) {
	t.Parallel()
	stmt := &nodes.SelectNode{
		From:  nodes.From(nodes.Table("person")),
		Where: nodes.Where(nodes.Raw(`"person"."age" > ?`, 18)),
	}

	got := RewriteSelect(stmt, tagTable, tagColumn)

	testutil.AssertCompile(t, pg, got,
		`select * from "t_person" where "person"."age" > $1`, 18)
}

func TestRewriteDescendsIntoSubqueries(t *testing.T) {
	t.Parallel()
	sub := &nodes.SelectNode{
		Projections: nodes.List(nodes.Column("owner_id")),
		From:        nodes.From(nodes.Table("pet")),
	}
	stmt := &nodes.SelectNode{
		From:  nodes.From(nodes.Table("person")),
		Where: nodes.Where(nodes.NewOperatorNode(nodes.Column("id"), nodes.OpIn, sub)),
	}

	got := RewriteSelect(stmt, tagTable, tagColumn)

	testutil.AssertCompile(t, pg, got,
		`select * from "t_person" where "c_id" in (select "c_owner_id" from "t_pet")`)
}
