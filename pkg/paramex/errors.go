package paramex

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Typed errors below unwrap to these
// so callers can classify with errors.Is and still recover details with
// errors.As.
var (
	// ErrPrecondition indicates a required construction argument (exception
	// type, message-template source) was not supplied.
	ErrPrecondition = errors.New("required argument not specified")

	// ErrInvalidArgument indicates a negative category, or a category or error
	// code left unset at finalization.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCategoryConflict indicates two unrelated exception types attempted to
	// share one category id.
	ErrCategoryConflict = errors.New("category conflict")

	// ErrUnsupportedType indicates a parameter source produced a value that is
	// neither an indexed sequence nor a named map.
	ErrUnsupportedType = errors.New("unsupported variables type")
)

// PreconditionError reports a missing required construction argument.
// Always a caller bug; not retryable.
type PreconditionError struct {
	Arg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("the %s is not specified", e.Arg)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// InvalidArgumentError reports an out-of-range or unset construction argument.
// Always a caller bug; not retryable.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return e.Reason
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// CategoryConflictError reports that a category id is already owned by an
// unrelated exception type. This is a cross-subsystem id collision and should
// fail fast and loudly; it must not be retried or caught silently.
type CategoryConflictError struct {
	Category   int
	Registered *Type
	Attempted  *Type
}

func (e *CategoryConflictError) Error() string {
	return fmt.Sprintf("the category [%d] is registered by exception type %s",
		e.Category, e.Registered.Name())
}

func (e *CategoryConflictError) Unwrap() error { return ErrCategoryConflict }

// UnsupportedTypeError reports that a ParameterSource produced a value of an
// unusable runtime type.
type UnsupportedTypeError struct {
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported variables type - %T", e.Value)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }
