package services

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a referenced person did not exist in the store at
// the time of the check.
var ErrNotFound = errors.New("person not found")

// InvariantError reports a mutation rejected because applying it would break
// a relationship invariant (gender mismatch for a role, a spouse already
// linked elsewhere, a self-link). The reason is written for the
// administrator and shown verbatim; nothing is applied.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return e.Reason
}

func invariantf(format string, args ...interface{}) error {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}

// IsInvariantViolation reports whether err is an InvariantError.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
