// Package errors provides centralized error definitions and error handling
// utilities for the counterpoint codebase. It defines sentinel errors for the
// failure modes the client can hit (invalid input, invalid action for the
// current phase, transport failures, malformed payloads, persistence issues),
// typed errors carrying context, and classification helpers used by the UI to
// decide what can be shown to the user directly.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo Severity = iota
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Input and state sentinel errors
var (
	// ErrEmptyInput indicates that required user input was empty.
	ErrEmptyInput = New("input is empty")
	// ErrNoPendingResult indicates a focus selection with no pending refinement.
	ErrNoPendingResult = New("no pending refinement to confirm")
	// ErrInvalidFocus indicates a focus selection outside the offered questions.
	ErrInvalidFocus = New("question was not offered")
	// ErrWrongPhase indicates an action that is invalid for the current phase.
	ErrWrongPhase = New("action not valid in current phase")
	// ErrUnknownPersona indicates an opponent key outside the fixed persona set.
	ErrUnknownPersona = New("unknown opponent persona")
	// ErrEmptyTranscript indicates a summary request over an empty history.
	ErrEmptyTranscript = New("transcript is empty")
)

// Generation service sentinel errors
var (
	// ErrServiceUnavailable indicates the generation service could not be reached
	// or returned a non-success status.
	ErrServiceUnavailable = New("generation service unavailable")
	// ErrBadPayload indicates a response that could not be parsed into the
	// expected shape.
	ErrBadPayload = New("malformed generation service response")
)

// Persistence sentinel errors
var (
	// ErrSessionNotFound indicates that a session could not be found.
	ErrSessionNotFound = New("session not found")
	// ErrEmptySession indicates an attempt to persist a session with no content.
	ErrEmptySession = New("session has no content")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all typed errors.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// classified is implemented by every typed error in this package.
type classified interface {
	error
	Severity() Severity
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Typed Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid user input, blocked before any network
// call is attempted.
//
// Example:
//
//	err := errors.NewValidationError("thought cannot be empty", errors.ErrEmptyInput)
//	err = err.WithField("thought")
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	prefix := "validation error"
	if e.Field != "" {
		prefix = fmt.Sprintf("validation error [field=%s]", e.Field)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// UsageError represents an action that is invalid for the current controller
// phase, such as confirming a focus question with no pending refinement.
type UsageError struct {
	baseError
	Phase  string
	Action string
}

// NewUsageError creates a new UsageError.
func NewUsageError(message string, cause error) *UsageError {
	return &UsageError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithPhase adds the current phase to the error context.
func (e *UsageError) WithPhase(phase string) *UsageError {
	e.Phase = phase
	return e
}

// WithAction adds the rejected action to the error context.
func (e *UsageError) WithAction(action string) *UsageError {
	e.Action = action
	return e
}

// Error returns the formatted error message.
func (e *UsageError) Error() string {
	var parts []string
	if e.Action != "" {
		parts = append(parts, fmt.Sprintf("action=%s", e.Action))
	}
	if e.Phase != "" {
		parts = append(parts, fmt.Sprintf("phase=%s", e.Phase))
	}

	prefix := "usage error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("usage error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *UsageError) Is(target error) bool {
	if _, ok := target.(*UsageError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ServiceError represents a failure talking to the generation service: either
// a transport failure (request never completed, non-success status) or a
// payload failure (response missing the expected fields).
type ServiceError struct {
	baseError
	Endpoint   string
	StatusCode int
}

// NewServiceError creates a new ServiceError.
func NewServiceError(message string, cause error) *ServiceError {
	return &ServiceError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithEndpoint adds the endpoint path to the error context.
func (e *ServiceError) WithEndpoint(endpoint string) *ServiceError {
	e.Endpoint = endpoint
	return e
}

// WithStatusCode adds the HTTP status code to the error context.
func (e *ServiceError) WithStatusCode(code int) *ServiceError {
	e.StatusCode = code
	return e
}

// Error returns the formatted error message.
func (e *ServiceError) Error() string {
	var parts []string
	if e.Endpoint != "" {
		parts = append(parts, fmt.Sprintf("endpoint=%s", e.Endpoint))
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	prefix := "service error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("service error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ServiceError) Is(target error) bool {
	if _, ok := target.(*ServiceError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// PersistenceError represents a failure reading or writing the session
// library. Load-path persistence errors degrade to an empty collection and are
// reported at warning severity; write-path errors are real errors.
type PersistenceError struct {
	baseError
	Path string
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(message string, cause error) *PersistenceError {
	return &PersistenceError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath adds the storage path to the error context.
func (e *PersistenceError) WithPath(path string) *PersistenceError {
	e.Path = path
	return e
}

// WithSeverity sets the error severity.
func (e *PersistenceError) WithSeverity(s Severity) *PersistenceError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *PersistenceError) Error() string {
	prefix := "persistence error"
	if e.Path != "" {
		prefix = fmt.Sprintf("persistence error [path=%s]", e.Path)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *PersistenceError) Is(target error) bool {
	if _, ok := target.(*PersistenceError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end
// users. Typed errors carry their own classification; unknown errors default
// to false so internal details never leak into the UI.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var ce classified
	if As(err, &ce) {
		return ce.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't carry a classification.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityInfo
	}

	var ce classified
	if As(err, &ce) {
		return ce.Severity()
	}
	return SeverityError
}

// IsValidation returns true if the error is a validation or usage error, i.e.
// the user's action was rejected before any state changed.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var validation *ValidationError
	var usage *UsageError
	return As(err, &validation) || As(err, &usage)
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
