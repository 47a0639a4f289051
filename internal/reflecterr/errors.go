package reflecterr

import (
	"errors"
	"fmt"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrAmbiguousOverload     = errors.New("ambiguous overload")
	ErrNoMatchingOverload    = errors.New("no matching overload")
	ErrUnknownLoader         = errors.New("unknown loader")
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrInvalidIdentifier     = errors.New("invalid identifier")
	ErrConflictingAlias      = errors.New("conflicting alias")
	ErrInvalidFunction       = errors.New("invalid function")
	ErrInvalidCall           = errors.New("invalid call")
	ErrCyclicHierarchy       = errors.New("cyclic hierarchy")
)

// Error is a formatted reflection failure tagged with its kind.
type Error struct {
	Kind    error
	Message string
}

// New formats a failure of the given kind, printf style.
func New(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind so errors.Is works against the sentinels.
func (e *Error) Unwrap() error {
	return e.Kind
}
