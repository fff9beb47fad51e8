// Package errors provides the error taxonomy shared by the Aurora utilities.
//
// ContextualError captures the component, operation, failure kind, and optional
// status code and details of an error. It implements the error and Unwrap
// interfaces, and matches the Kind sentinels through errors.Is:
//
//	err := errors.Configuration("credentials", "Resolve", "MISTRAL_API_KEY not found")
//	if stderrors.Is(err, errors.ErrConfiguration) { ... }
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a failure. A Kind is itself an error so that it can be used
// as a sentinel target for errors.Is.
type Kind string

// Error returns the kind name.
func (k Kind) Error() string {
	return string(k)
}

// Failure kinds.
const (
	// ErrConfiguration marks a required setting that is missing or unusable.
	ErrConfiguration Kind = "configuration"

	// ErrDependency marks a required client or library that cannot be constructed.
	ErrDependency Kind = "dependency"

	// ErrTimeout marks a blocking call that exceeded its ceiling.
	ErrTimeout Kind = "timeout"

	// ErrValidation marks user input that failed a presence check.
	ErrValidation Kind = "validation"

	// ErrProcessing marks an unexpected failure while building a result.
	ErrProcessing Kind = "processing"
)

// ContextualError is a structured error type that provides consistent context
// about where and why an error occurred.
type ContextualError struct {
	// Component identifies the package that produced the error (e.g. "config", "billing").
	Component string

	// Operation describes what was being done when the error occurred.
	Operation string

	// Kind classifies the failure. Empty for unclassified errors.
	Kind Kind

	// Message is an optional human-readable explanation shown before the cause.
	Message string

	// StatusCode is an optional HTTP or application-level status code.
	StatusCode int

	// Details holds optional structured metadata about the error.
	Details map[string]any

	// Cause is the underlying error, if any.
	Cause error
}

// New creates a ContextualError with the given component, operation, and cause.
func New(component, operation string, cause error) *ContextualError {
	return &ContextualError{
		Component: component,
		Operation: operation,
		Cause:     cause,
	}
}

// Configuration creates a configuration error with a remediation message.
func Configuration(component, operation, message string) *ContextualError {
	return New(component, operation, nil).WithKind(ErrConfiguration).WithMessage(message)
}

// Dependency creates a dependency error with a remediation message.
func Dependency(component, operation, message string, cause error) *ContextualError {
	return New(component, operation, cause).WithKind(ErrDependency).WithMessage(message)
}

// Timeout creates a timeout error.
func Timeout(component, operation, message string) *ContextualError {
	return New(component, operation, nil).WithKind(ErrTimeout).WithMessage(message)
}

// Validation creates a validation error for a single field.
func Validation(component, field, message string) *ContextualError {
	return New(component, "Validate", nil).
		WithKind(ErrValidation).
		WithMessage(message).
		WithDetails(map[string]any{"field": field})
}

// Processing creates a processing error wrapping the unexpected failure.
func Processing(component, operation string, cause error) *ContextualError {
	return New(component, operation, cause).WithKind(ErrProcessing)
}

// Error returns a human-readable representation of the error.
func (e *ContextualError) Error() string {
	base := fmt.Sprintf("[%s] %s", e.Component, e.Operation)

	if e.StatusCode != 0 {
		base += fmt.Sprintf(" (status %d)", e.StatusCode)
	}

	if e.Message != "" {
		base += ": " + e.Message
	}

	if e.Cause != nil {
		base += ": " + e.Cause.Error()
	}

	return base
}

// Unwrap returns the underlying cause, enabling use with errors.Is and errors.As.
func (e *ContextualError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the Kind of this error.
func (e *ContextualError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind != "" && e.Kind == k
}

// WithKind sets the failure kind.
func (e *ContextualError) WithKind(kind Kind) *ContextualError {
	e.Kind = kind
	return e
}

// WithMessage sets the human-readable message.
func (e *ContextualError) WithMessage(message string) *ContextualError {
	e.Message = message
	return e
}

// WithStatusCode returns a copy of the error with the given status code set.
func (e *ContextualError) WithStatusCode(code int) *ContextualError {
	e.StatusCode = code
	return e
}

// WithDetails returns a copy of the error with the given details map set.
func (e *ContextualError) WithDetails(details map[string]any) *ContextualError {
	e.Details = details
	return e
}

// KindOf returns the Kind of the first ContextualError in err's chain that
// carries one, or the empty Kind.
func KindOf(err error) Kind {
	for err != nil {
		var ce *ContextualError
		if !stderrors.As(err, &ce) {
			return ""
		}
		if ce.Kind != "" {
			return ce.Kind
		}
		err = ce.Cause
	}
	return ""
}
