package binparser

import "github.com/pkg/errors"

// BuildError is raised synchronously at descriptor-construction time for an
// invalid combinator call (e.g. a string field with neither Length nor
// ZeroTerminated, or an array with no termination option). Combinator
// methods panic with a BuildError rather than returning one, since an
// invalid descriptor is a programmer mistake discovered once, at startup,
// not a per-call runtime condition. A few misconfigurations only visible
// at decode time (a chooser returning nil, a length field holding a
// non-integer) are returned from the parse as a BuildError instead.
type BuildError struct {
	cause error
}

func newBuildError(format string, args ...any) *BuildError {
	return &BuildError{cause: errors.Errorf(format, args...)}
}

func (e *BuildError) Error() string { return "binparser: build error: " + e.cause.Error() }
func (e *BuildError) Unwrap() error { return e.cause }

// AssertError is raised during decode when an Assert or AssertFunc option
// fails. It aborts the current parse and surfaces to the caller.
type AssertError struct {
	Field string
	Value any
	cause error
}

func newAssertError(field string, value any) *AssertError {
	return &AssertError{
		Field: field,
		Value: value,
		cause: errors.Errorf("assertion failed for field %q: %v", field, value),
	}
}

func (e *AssertError) Error() string { return "binparser: " + e.cause.Error() }
func (e *AssertError) Unwrap() error { return e.cause }

// OptionResolutionError is raised during decode when a LengthField option
// names a field not yet present on the object.
type OptionResolutionError struct {
	Field string
	cause error
}

func newOptionResolutionError(field, lengthField string) *OptionResolutionError {
	return &OptionResolutionError{
		Field: field,
		cause: errors.Errorf("field %q: length field %q is not yet present on the object", field, lengthField),
	}
}

func (e *OptionResolutionError) Error() string { return "binparser: " + e.cause.Error() }
func (e *OptionResolutionError) Unwrap() error { return e.cause }

// wrapf attaches a stack trace and field context to a lower-level error
// (e.g. from a Source or a sub-parser) as it propagates up the chain.
func wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
