package morphe

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common request failures.
var (
	// ErrSameDialect is returned when a conversion is requested with
	// identical source and target dialects.
	ErrSameDialect = errors.New("morphe: source and target dialect are identical")

	// ErrUnsupportedDialect is returned when a dialect tag cannot be
	// normalized to a supported dialect.
	ErrUnsupportedDialect = errors.New("morphe: unsupported dialect")
)

// ValidationError reports a structural violation of the canonical model.
// Entity and Attribute locate the violation; either may be empty when the
// violation is not attached to a specific attribute or entity.
type ValidationError struct {
	Entity    string
	Attribute string
	Message   string
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	switch {
	case e.Entity != "" && e.Attribute != "":
		return fmt.Sprintf("morphe: %s.%s: %s", e.Entity, e.Attribute, e.Message)
	case e.Entity != "":
		return fmt.Sprintf("morphe: %s: %s", e.Entity, e.Message)
	default:
		return fmt.Sprintf("morphe: %s", e.Message)
	}
}

// IsValidation returns true if the error is a ValidationError or an
// aggregate of them.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var single *ValidationError
	var multi *ValidationErrors
	return errors.As(err, &single) || errors.As(err, &multi)
}

// ValidationErrors aggregates all violations of one error class found
// during a validation pass.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Error returns the error string.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "morphe: no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "morphe: %d validation errors:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// NewValidationErrors returns an aggregate error for the given violations,
// or nil if there are none. A single violation is returned as-is.
func NewValidationErrors(errs ...*ValidationError) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &ValidationErrors{Errors: errs}
	}
}

// InvalidRequestError reports a malformed request: identical or unsupported
// dialects, or missing input collections. The caller must fix the input;
// the operation is never retried.
type InvalidRequestError struct {
	Message string
	wrap    error
}

// Error returns the error string.
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("morphe: invalid request: %s", e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *InvalidRequestError) Unwrap() error {
	return e.wrap
}

// NewInvalidRequestError returns a new InvalidRequestError with the given
// message, optionally wrapping a sentinel.
func NewInvalidRequestError(msg string, wrap error) *InvalidRequestError {
	return &InvalidRequestError{Message: msg, wrap: wrap}
}

// IsInvalidRequest returns true if the error is an InvalidRequestError.
func IsInvalidRequest(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidRequestError
	return errors.As(err, &e)
}

// CollaboratorError reports a failed or malformed response from the
// external generative collaborator. It is recoverable: the conversion
// engine absorbs it by falling back to the deterministic path and only
// surfaces it when no deterministic mapping exists for the dialect pair.
type CollaboratorError struct {
	Err error
}

// Error returns the error string.
func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("morphe: collaborator: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// NewCollaboratorError returns a new CollaboratorError.
func NewCollaboratorError(err error) *CollaboratorError {
	return &CollaboratorError{Err: err}
}

// IsCollaborator returns true if the error is a CollaboratorError.
func IsCollaborator(err error) bool {
	if err == nil {
		return false
	}
	var e *CollaboratorError
	return errors.As(err, &e)
}

// Warning records a non-fatal ingestion problem: a file whose dialect was
// not recognized or whose extraction failed. Warnings are values carried in
// the ingestion result, not errors; the batch always continues.
type Warning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// String returns a human-readable form of the warning.
func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}
