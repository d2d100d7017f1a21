package planner

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned when a mutation names an id that is not
// in the store.
var ErrTaskNotFound = errors.New("task not found")

// OpError carries the operation and target of a failed mutation.
type OpError struct {
	Op  string
	ID  string
	Err error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.ID != "" {
		return fmt.Sprintf("%s task %s: %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("%s task: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapTaskErr(op, id string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, ID: id, Err: err}
}
