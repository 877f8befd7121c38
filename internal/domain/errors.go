package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrServerNotFound = errors.New("server not found")

	// ErrLifecycleComplete is returned by LifecycleAdvancer.Next when the
	// current status is terminal. It signals normal completion, not a fault.
	ErrLifecycleComplete = errors.New("lifecycle complete")
)

// NameLengthError is returned when a server name violates the length constraint.
type NameLengthError struct {
	Name string
}

func (e *NameLengthError) Error() string {
	return fmt.Sprintf("name %q must be between %d and %d characters", e.Name, NameMinLen, NameMaxLen)
}
