package database

import (
	"errors"
	"fmt"
)

// ErrCopyNotAvailable is returned by the loan workflow when the copy chosen
// for issuance is no longer in Available status. The status flip is a
// conditional update, so two issuances racing for the same copy cannot both
// succeed.
var ErrCopyNotAvailable = errors.New("book copy is not available for loan")

// ErrLoanAlreadyReturned is returned when a return targets a loan whose
// return date is already set. Returned is a terminal state.
var ErrLoanAlreadyReturned = errors.New("loan has already been returned")

// ReferentialIntegrityError reports a delete that was blocked because
// dependent rows still reference the entity. Dependents carries the blocking
// count for user-facing messages.
type ReferentialIntegrityError struct {
	Entity     string // "author", "publisher", "category", "member"
	Dependents int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s: %d dependent record(s) exist", e.Entity, e.Dependents)
}

// NotFoundError reports an operation that targeted a row that does not
// exist, so callers can tell a no-op from success.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
