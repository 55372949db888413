package sequence

import "fmt"

// Error is the package's structured error type. Code is stable; Message is
// for humans and must not be matched on.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func newError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

var (
	// ErrNoSuchEntry is returned when an index cannot be resolved against the
	// structure's current state.
	ErrNoSuchEntry = newError("SEQ-ENTRY-404", "no such entry")

	// ErrPermissionsVisibilityMismatch is returned when a permission snapshot
	// of the wrong visibility is offered to a sequence.
	ErrPermissionsVisibilityMismatch = newError("SEQ-PERM-001", "permissions visibility does not match sequence kind")

	// ErrExpectedIndexRequired is returned when a sentried append omits the
	// expected index.
	ErrExpectedIndexRequired = newError("SEQ-SUCC-000", "sentried append requires an expected index")
)

// SuccessorField names which causal index a rejected mutation disagreed on.
type SuccessorField string

const (
	SuccessorData        SuccessorField = "data"
	SuccessorOwners      SuccessorField = "owners"
	SuccessorPermissions SuccessorField = "permissions"
)

// SuccessorError reports a mutation whose expected-index field did not match
// the current collection length. The rejected call left the structure
// unchanged; retry with Expected.
type SuccessorError struct {
	Field    SuccessorField
	Expected uint64
}

func (e *SuccessorError) Error() string {
	return fmt.Sprintf("%s successor mismatch: expected %d", e.Field, e.Expected)
}

func errSuccessor(field SuccessorField, expected uint64) error {
	return &SuccessorError{Field: field, Expected: expected}
}
