package engine

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrIndexOutOfRange indicates operator indices outside the tension sequence.
	ErrIndexOutOfRange = errors.New("tension index out of range")

	// ErrEmptyState indicates an operator was applied to a state without tensions.
	ErrEmptyState = errors.New("state has no tensions")

	// ErrInvalidValue indicates a parameter or seed value outside its domain.
	ErrInvalidValue = errors.New("invalid value")

	// ErrRecursionLimit indicates a recursion depth above the configured maximum.
	ErrRecursionLimit = errors.New("recursion limit exceeded")

	// ErrInvalidConfig indicates invalid engine configuration.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// IndexError reports invalid tension indices passed to an operator.
type IndexError struct {
	Op  Operation
	I   int
	J   int
	Len int
}

// Error returns the error message.
func (e *IndexError) Error() string {
	if e.Len < 2 {
		return fmt.Sprintf("%s: need at least two tensions, have %d", e.Op, e.Len)
	}
	if e.I == e.J {
		return fmt.Sprintf("%s: indices must differ, got i=j=%d", e.Op, e.I)
	}
	return fmt.Sprintf("%s: indices (%d, %d) out of range [0, %d)", e.Op, e.I, e.J, e.Len)
}

// Unwrap returns ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// EmptyStateError reports an operator applied to a state with no tensions.
type EmptyStateError struct {
	Op Operation
}

// Error returns the error message.
func (e *EmptyStateError) Error() string {
	return fmt.Sprintf("%s: state has no tensions", e.Op)
}

// Unwrap returns ErrEmptyState.
func (e *EmptyStateError) Unwrap() error {
	return ErrEmptyState
}

// ValueError reports a parameter or seed value outside its domain.
type ValueError struct {
	Param   string
	Value   any
	Message string
}

// Error returns the error message.
func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Message)
}

// Unwrap returns ErrInvalidValue.
func (e *ValueError) Unwrap() error {
	return ErrInvalidValue
}

// RecursionLimitError reports a recurse depth above the configured maximum.
type RecursionLimitError struct {
	Depth int
	Limit int
}

// Error returns the error message.
func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("recurse: depth %d exceeds limit %d", e.Depth, e.Limit)
}

// Unwrap returns ErrRecursionLimit.
func (e *RecursionLimitError) Unwrap() error {
	return ErrRecursionLimit
}
