// Package errors provides domain-specific error types for freebsdnet.
//
// This package defines structured errors with error codes, making it easier
// to handle and test different error conditions consistently across the
// routing layers.
package errors

import "fmt"

// ErrorCode represents a category of error that can occur in the application.
type ErrorCode string

const (
	// ErrCodeSystem indicates that an underlying kernel call failed.
	ErrCodeSystem ErrorCode = "SYSTEM_ERROR"

	// ErrCodeUnavailable indicates that a RIB snapshot query returned no data.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"

	// ErrCodeTruncatedMessage indicates that a routing message declared a
	// length that would overrun the dump buffer.
	ErrCodeTruncatedMessage ErrorCode = "TRUNCATED_MESSAGE"

	// ErrCodeInvalidAddress indicates that a textual address failed to parse
	// under the required address family.
	ErrCodeInvalidAddress ErrorCode = "INVALID_ADDRESS"

	// ErrCodeUnknownInterface indicates that an interface name has no
	// resolvable index.
	ErrCodeUnknownInterface ErrorCode = "UNKNOWN_INTERFACE"

	// ErrCodePermission indicates that the routing control socket could not
	// be opened due to missing privileges.
	ErrCodePermission ErrorCode = "PERMISSION_ERROR"

	// ErrCodeConfig indicates a configuration-related error.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeValidation indicates a validation error.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
)

// Error represents a domain-specific error with an error code and optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error

	// Errno carries the OS error code for SYSTEM_ERROR, zero otherwise.
	Errno int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error for errors.Is and errors.As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a new domain error with the specified code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new domain error wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError creates a kernel-call error carrying the OS error code.
func NewSystemError(message string, errno int, cause error) *Error {
	return &Error{
		Code:    ErrCodeSystem,
		Message: message,
		Cause:   cause,
		Errno:   errno,
	}
}

// NewUnavailableError creates an empty-snapshot error.
func NewUnavailableError(message string) *Error {
	return New(ErrCodeUnavailable, message)
}

// NewTruncatedMessageError creates a buffer-overrun decode error.
func NewTruncatedMessageError(message string) *Error {
	return New(ErrCodeTruncatedMessage, message)
}

// NewInvalidAddressError creates an address parse error.
func NewInvalidAddressError(message string, cause error) *Error {
	return Wrap(ErrCodeInvalidAddress, message, cause)
}

// NewUnknownInterfaceError creates an interface resolution error.
func NewUnknownInterfaceError(message string, cause error) *Error {
	return Wrap(ErrCodeUnknownInterface, message, cause)
}

// NewPermissionError creates a control-channel privilege error.
func NewPermissionError(message string, cause error) *Error {
	return Wrap(ErrCodePermission, message, cause)
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, cause error) *Error {
	return Wrap(ErrCodeConfig, message, cause)
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *Error {
	return Wrap(ErrCodeValidation, message, cause)
}
