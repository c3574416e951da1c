package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNodeID is returned when an event names a node id that is not
	// registered in the corresponding position table.
	ErrUnknownNodeID = errors.New("unknown node id")

	// ErrInvalidConfiguration is returned by constructors given unusable parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// UnknownNodeError identifies the table and id that failed to resolve.
// It matches ErrUnknownNodeID under errors.Is.
type UnknownNodeError struct {
	Role  NodeRole
	ID    int
	Frame int64 // frame being spawned, -1 when resolved outside a tick
}

func (e *UnknownNodeError) Error() string {
	if e.Frame < 0 {
		return fmt.Sprintf("%s %d: %v", e.Role, e.ID, ErrUnknownNodeID)
	}
	return fmt.Sprintf("frame %d: %s %d: %v", e.Frame, e.Role, e.ID, ErrUnknownNodeID)
}

// Unwrap exposes the sentinel.
func (e *UnknownNodeError) Unwrap() error {
	return ErrUnknownNodeID
}
