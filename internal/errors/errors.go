package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes drkube distinguishes.
var (
	// ErrInvalidInput indicates invalid user input or configuration
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuestion indicates a question that is blank once trimmed
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrBadEndpoint indicates the configured service endpoint cannot be used to build a request
	ErrBadEndpoint = errors.New("bad endpoint")

	// ErrUnreachable indicates the DrKube service could not be contacted or its reply could not be read
	ErrUnreachable = errors.New("drkube unreachable")
)

// ValidationError represents an input validation failure
type ValidationError struct {
	Field   string // Field that failed validation
	Value   string // Invalid value
	Message string // Human-readable message
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s (value: %q)", e.Field, e.Message, e.Value)
}

// Is implements error comparison for errors.Is
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// RequestError is a failed exchange with the DrKube service: the request
// never completed or the reply body could not be read.
type RequestError struct {
	Op  string // "send" or "read"
	URL string // Request URL
	Err error  // Underlying error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches ErrUnreachable so callers need not know the concrete type.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnreachable
}

// NewRequestError creates a new request error
func NewRequestError(op, url string, err error) *RequestError {
	return &RequestError{Op: op, URL: url, Err: err}
}

// EndpointError reports an endpoint that a request URL cannot be built from.
type EndpointError struct {
	Endpoint string
	Err      error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("endpoint %q: %v", e.Endpoint, e.Err)
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

func (e *EndpointError) Is(target error) bool {
	return target == ErrBadEndpoint
}

// NewEndpointError creates a new endpoint error
func NewEndpointError(endpoint string, err error) *EndpointError {
	return &EndpointError{Endpoint: endpoint, Err: err}
}

// MultiError aggregates multiple errors
type MultiError struct {
	Errors []error
}

func (e *MultiError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

// Append adds an error to the multi-error if it's non-nil
func (e *MultiError) Append(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// ErrorOrNil returns the MultiError if it has errors, otherwise nil
func (e *MultiError) ErrorOrNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
