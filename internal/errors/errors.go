// Package errors defines the application error taxonomy. Each error carries a
// stable code used in logs and to pick the reply shown to the user.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown      = "UNKNOWN"
	CodeDatabase     = "DATABASE"
	CodeValidation   = "VALIDATION"
	CodePrecondition = "PRECONDITION"
	CodeDelivery     = "DELIVERY"
	CodeConfig       = "CONFIG"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if there is none.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && Code(err) == code
}

// DatabaseError wraps failures of the persistence layer.
type DatabaseError struct {
	base Error
}

func (e *DatabaseError) Error() string { return e.base.Error() }
func (e *DatabaseError) Code() string  { return e.base.Code() }
func (e *DatabaseError) Unwrap() error { return e.base.Unwrap() }

func NewDatabaseError(message string, cause error) error {
	return &DatabaseError{base: Error{code: CodeDatabase, message: message, err: cause}}
}

// ValidationError reports malformed user input. It is always recoverable
// with a corrective prompt.
type ValidationError struct {
	base Error
}

func (e *ValidationError) Error() string { return e.base.Error() }
func (e *ValidationError) Code() string  { return e.base.Code() }
func (e *ValidationError) Unwrap() error { return e.base.Unwrap() }

func NewValidationError(message string, cause error) error {
	return &ValidationError{base: Error{code: CodeValidation, message: message, err: cause}}
}

// PreconditionError reports that an operation was attempted before the
// state it depends on exists, e.g. listing ads without a stored location.
type PreconditionError struct {
	base Error
}

func (e *PreconditionError) Error() string { return e.base.Error() }
func (e *PreconditionError) Code() string  { return e.base.Code() }
func (e *PreconditionError) Unwrap() error { return e.base.Unwrap() }

func NewPreconditionError(message string) error {
	return &PreconditionError{base: Error{code: CodePrecondition, message: message}}
}

// DeliveryError wraps failures to send a message through the chat platform.
type DeliveryError struct {
	base Error
}

func (e *DeliveryError) Error() string { return e.base.Error() }
func (e *DeliveryError) Code() string  { return e.base.Code() }
func (e *DeliveryError) Unwrap() error { return e.base.Unwrap() }

func NewDeliveryError(message string, cause error) error {
	return &DeliveryError{base: Error{code: CodeDelivery, message: message, err: cause}}
}

type ConfigError struct {
	base Error
}

func (e *ConfigError) Error() string { return e.base.Error() }
func (e *ConfigError) Code() string  { return e.base.Code() }
func (e *ConfigError) Unwrap() error { return e.base.Unwrap() }

func NewConfigError(message string, cause error) error {
	return &ConfigError{base: Error{code: CodeConfig, message: message, err: cause}}
}
