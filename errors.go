package astrodyn

import "errors"

// All failures in this package are caller contract violations or physically
// degenerate inputs. They are synchronous and non-retryable: nothing here
// recovers automatically, and no poisoned value (NaN rotation, zero unit
// vector) is ever returned in place of an error.
var (
	// ErrInvalidArgument covers wrong dimensionality and out-of-enum frame
	// or unit tokens.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPreconditionUnset is returned when required prior state is missing,
	// typically a body attitude that was never set.
	ErrPreconditionUnset = errors.New("required state not set")
	// ErrGeometricSingularity flags degenerate geometry such as a zero cross
	// product from parallel position and velocity.
	ErrGeometricSingularity = errors.New("geometrically singular input")
	// ErrDivideByZero is returned when normalizing a zero vector.
	ErrDivideByZero = errors.New("division by zero")
)
