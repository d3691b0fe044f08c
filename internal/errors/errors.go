package errors

import "fmt"

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

// SimulatedError is the deliberate fault-injection failure triggered by the
// reserved product name "error". It exists to exercise the tracing and
// alerting paths, not to signal a real operational problem.
type SimulatedError struct {
	Message string
}

func (e *SimulatedError) Error() string {
	return e.Message
}

func NewSimulatedError(message string) *SimulatedError {
	return &SimulatedError{Message: message}
}

func IsSimulatedError(err error) (*SimulatedError, bool) {
	if se, ok := err.(*SimulatedError); ok {
		return se, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

type PublishError struct {
	Message string
	Cause   error
}

func (e *PublishError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}

func NewPublishError(message string, cause error) *PublishError {
	return &PublishError{Message: message, Cause: cause}
}

func IsPublishError(err error) (*PublishError, bool) {
	if pe, ok := err.(*PublishError); ok {
		return pe, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{Message: message, Cause: cause}
}
