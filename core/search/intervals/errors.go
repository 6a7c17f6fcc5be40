package intervals

import (
	"fmt"
)

// A malformed proximity query, reported when a query is built.
type InvalidProximityError struct {
	Op     string // operator being built, e.g. "near"
	Reason string
}

func (err *InvalidProximityError) Error() string {
	return fmt.Sprintf("invalid proximity query (%v): %v", err.Op, err.Reason)
}

func newInvalidProximityError(op, reason string, args ...interface{}) error {
	return &InvalidProximityError{op, fmt.Sprintf(reason, args...)}
}
