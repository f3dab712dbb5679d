package testutil

import (
	"errors"
	"reflect"
	"testing"

	"github.com/SferaDev/kysely/compiler"
	"github.com/SferaDev/kysely/dialect"
	"github.com/SferaDev/kysely/nodes"
)

// AssertEqual checks that got == want and reports a descriptive error if not.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("expected:\n  %v\ngot:\n  %v", want, got)
	}
}

// AssertCompile compiles root for the given dialect and compares the SQL
// text and the parameter list, in order.
func AssertCompile(t *testing.T, d dialect.Dialect, root nodes.Node, wantSQL string, wantParams ...any) {
	t.Helper()
	got, err := compiler.Compile(d, root)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	if got.SQL != wantSQL {
		t.Errorf("expected:\n  %s\ngot:\n  %s", wantSQL, got.SQL)
	}
	if len(wantParams) == 0 && len(got.Parameters) == 0 {
		return
	}
	if !reflect.DeepEqual(got.Parameters, wantParams) {
		t.Errorf("expected params %v, got %v", wantParams, got.Parameters)
	}
}

// AssertCompileError compiles root and requires an error matching sentinel
// via errors.Is.
func AssertCompileError(t *testing.T, d dialect.Dialect, root nodes.Node, sentinel error) {
	t.Helper()
	_, err := compiler.Compile(d, root)
	if err == nil {
		t.Fatal("expected a compile error but got nil")
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("expected error matching %v, got %v", sentinel, err)
	}
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
}

// AssertErrorIs fails the test unless err matches target via errors.Is.
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
	if !errors.Is(err, target) {
		t.Errorf("expected error matching %v, got %v", target, err)
	}
}
