package core

import (
	"errors"
	"fmt"
)

// RuntimeError is an error raised by the component runtime itself.
//
// Runtime errors include:
//   - Unknown method: the behaviour table has no such name
//   - Not constructed: the component did not come from Constructor.New
//   - Bad argument: a table method received the wrong argument shape
//   - Method exists: Define tried to overwrite an existing method
//   - Capability order: a capability was applied before its requirements
type RuntimeError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Component is the formatted component name, if any.
	Component string

	// Method is the behaviour-table method involved, if any.
	Method string
}

// ErrorCode categorizes runtime errors.
type ErrorCode string

const (
	ErrCodeUnknownMethod   ErrorCode = "UNKNOWN_METHOD"
	ErrCodeNotConstructed  ErrorCode = "NOT_CONSTRUCTED"
	ErrCodeBadArgument     ErrorCode = "BAD_ARGUMENT"
	ErrCodeMethodExists    ErrorCode = "METHOD_EXISTS"
	ErrCodeCapabilityOrder ErrorCode = "CAPABILITY_ORDER"
	ErrCodeReadOnly        ErrorCode = "READ_ONLY"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	switch {
	case e.Component != "" && e.Method != "":
		return fmt.Sprintf("%s: %s (component=%s, method=%s)", e.Code, e.Message, e.Component, e.Method)
	case e.Method != "":
		return fmt.Sprintf("%s: %s (method=%s)", e.Code, e.Message, e.Method)
	case e.Component != "":
		return fmt.Sprintf("%s: %s (component=%s)", e.Code, e.Message, e.Component)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func hasCode(err error, code ErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsUnknownMethod reports whether err is an unknown-method error.
// Uses errors.As to handle wrapped errors.
func IsUnknownMethod(err error) bool { return hasCode(err, ErrCodeUnknownMethod) }

// IsNotConstructed reports whether err came from a degraded component.
func IsNotConstructed(err error) bool { return hasCode(err, ErrCodeNotConstructed) }

// IsBadArgument reports whether err is an argument-shape error.
func IsBadArgument(err error) bool { return hasCode(err, ErrCodeBadArgument) }

// IsMethodExists reports whether err is a Define collision.
func IsMethodExists(err error) bool { return hasCode(err, ErrCodeMethodExists) }

// IsCapabilityOrder reports whether err is a composition-order violation.
func IsCapabilityOrder(err error) bool { return hasCode(err, ErrCodeCapabilityOrder) }

// IsReadOnly reports whether err is an attempt to write a prop.
func IsReadOnly(err error) bool { return hasCode(err, ErrCodeReadOnly) }

func badArgument(method string, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeBadArgument,
		Message: fmt.Sprintf(format, args...),
		Method:  method,
	}
}
