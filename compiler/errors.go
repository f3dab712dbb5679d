package compiler

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for compilation failures.
var (
	// ErrUnsupported is returned when a query uses a feature the target
	// dialect cannot express.
	ErrUnsupported = errors.New("kysely: feature not supported by dialect")

	// ErrMalformed is returned when a query tree violates a structural
	// invariant and no SQL can honestly represent it.
	ErrMalformed = errors.New("kysely: malformed query tree")
)

// UnsupportedError reports a feature that the target dialect cannot
// express. Queries fail at compile time rather than producing SQL the
// engine would reject or quietly misread.
type UnsupportedError struct {
	dialect string
	feature string
}

// Error returns the error string.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("kysely: %s does not support %s", e.dialect, e.feature)
}

// Is reports whether the target error matches UnsupportedError.
// This allows errors.Is(err, ErrUnsupported) to return true.
func (e *UnsupportedError) Is(err error) bool {
	return err == ErrUnsupported
}

// Dialect returns the name of the dialect that rejected the feature.
func (e *UnsupportedError) Dialect() string {
	return e.dialect
}

// Feature returns the rejected feature.
func (e *UnsupportedError) Feature() string {
	return e.feature
}

// NewUnsupportedError returns a new UnsupportedError for the given dialect
// and feature.
func NewUnsupportedError(dialect, feature string) *UnsupportedError {
	return &UnsupportedError{dialect: dialect, feature: feature}
}

// IsUnsupported returns true if the error is an UnsupportedError.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

// MalformedError reports a structurally invalid query tree, for example an
// insert without rows or a raw fragment whose slots do not match its values.
type MalformedError struct {
	reason string
}

// Error returns the error string.
func (e *MalformedError) Error() string {
	return "kysely: malformed query: " + e.reason
}

// Is reports whether the target error matches MalformedError.
// This allows errors.Is(err, ErrMalformed) to return true.
func (e *MalformedError) Is(err error) bool {
	return err == ErrMalformed
}

// Reason returns the human-readable reason the tree was rejected.
func (e *MalformedError) Reason() string {
	return e.reason
}

// NewMalformedError returns a new MalformedError with the given reason.
func NewMalformedError(reason string) *MalformedError {
	return &MalformedError{reason: reason}
}

// IsMalformed returns true if the error is a MalformedError.
func IsMalformed(err error) bool {
	if err == nil {
		return false
	}
	var e *MalformedError
	return errors.As(err, &e) || errors.Is(err, ErrMalformed)
}
