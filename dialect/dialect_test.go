package dialect

import "testing"

func TestPostgresDescriptor(t *testing.T) {
	t.Parallel()
	d := NewPostgresDialect()

	if d.Name() != "postgres" {
		t.Errorf("unexpected name %q", d.Name())
	}
	if got := d.QuoteIdentifier("first_name"); got != `"first_name"` {
		t.Errorf("QuoteIdentifier = %q, want %q", got, `"first_name"`)
	}
	if got := d.Placeholder(1); got != "$1" {
		t.Errorf("Placeholder(1) = %q, want %q", got, "$1")
	}
	if got := d.Placeholder(12); got != "$12" {
		t.Errorf("Placeholder(12) = %q, want %q", got, "$12")
	}
	if !d.SupportsReturning() || !d.SupportsOnConflict() {
		t.Error("postgres must support returning and on conflict")
	}
	if d.SupportsOnDuplicateKeyUpdate() || d.SupportsInsertIgnore() {
		t.Error("postgres must not support mysql-only conflict forms")
	}
}

func TestMySQLDescriptor(t *testing.T) {
	t.Parallel()
	d := NewMySQLDialect()

	if d.Name() != "mysql" {
		t.Errorf("unexpected name %q", d.Name())
	}
	if got := d.QuoteIdentifier("first_name"); got != "`first_name`" {
		t.Errorf("QuoteIdentifier = %q, want %q", got, "`first_name`")
	}
	if got := d.Placeholder(7); got != "?" {
		t.Errorf("Placeholder(7) = %q, want %q", got, "?")
	}
	if d.SupportsReturning() || d.SupportsOnConflict() {
		t.Error("mysql must not support returning or on conflict")
	}
	if !d.SupportsOnDuplicateKeyUpdate() || !d.SupportsInsertIgnore() {
		t.Error("mysql must support its native conflict forms")
	}
}

func TestSQLiteDescriptor(t *testing.T) {
	t.Parallel()
	d := NewSQLiteDialect()

	if d.Name() != "sqlite" {
		t.Errorf("unexpected name %q", d.Name())
	}
	if got := d.QuoteIdentifier("first_name"); got != `"first_name"` {
		t.Errorf("QuoteIdentifier = %q, want %q", got, `"first_name"`)
	}
	if got := d.Placeholder(3); got != "?" {
		t.Errorf("Placeholder(3) = %q, want %q", got, "?")
	}
	if !d.SupportsReturning() || !d.SupportsOnConflict() {
		t.Error("sqlite must support returning and on conflict")
	}
	if d.SupportsOnDuplicateKeyUpdate() || d.SupportsInsertIgnore() {
		t.Error("sqlite must not support mysql-only conflict forms")
	}
}

func TestIdentifierQuoteEscaping(t *testing.T) {
	t.Parallel()
	if got := NewPostgresDialect().QuoteIdentifier(`we"ird`); got != `"we""ird"` {
		t.Errorf("embedded quote not doubled: %q", got)
	}
	if got := NewMySQLDialect().QuoteIdentifier("we`ird"); got != "`we``ird`" {
		t.Errorf("embedded backtick not doubled: %q", got)
	}
}
