package registry

import (
	"errors"
	"fmt"

	"github.com/huntgame/conflict-engine/pkg/types"
)

var (
	// ErrConflictNotFound is returned when no conflict exists for the id
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrUnsupportedConflictType is returned when no strategy catalog entry
	// covers the conflict's type
	ErrUnsupportedConflictType = errors.New("unsupported conflict type")
)

// InvalidStateError is returned when an operation is not valid for the
// conflict's current status, e.g. resolving a conflict that is not pending.
type InvalidStateError struct {
	ConflictID string
	Status     types.ConflictStatus
	Op         string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("conflict %s: cannot %s in status %s", e.ConflictID, e.Op, e.Status)
}

// ExecutorError wraps a failure raised inside a strategy executor. The
// conflict stays in resolving state so an operator can retry or abandon it.
type ExecutorError struct {
	Strategy types.ResolutionType
	Err      error
}

func (e *ExecutorError) Error() string {
	return fmt.Sprintf("executor %s failed: %v", e.Strategy, e.Err)
}

// Unwrap returns the underlying executor failure.
func (e *ExecutorError) Unwrap() error {
	return e.Err
}
