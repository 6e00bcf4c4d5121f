package trellokeep

import (
	"fmt"
	"strings"
)

// NotFoundError indicates that one or more requested list names had no
// case-insensitive match on the source board.
type NotFoundError struct {
	Board string
	Names []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("list not found on board %q: %s",
		e.Board, strings.Join(e.Names, ", "))
}

// ValidationError indicates that the transform stage received a model
// response that does not conform to the snapshot schema.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid transform response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid transform response: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
