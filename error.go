package veritext

import (
	"errors"
	"fmt"
)

// Application error codes. They map the recoverable failure modes of the
// extraction pipeline; every one of them simply advances the fallback
// ladder at the orchestrator level.
const (
	ECORRUPT     = "corrupt"      // payload failed the corruption gate pre-parse
	EINTERNAL    = "internal"     // unexpected internal error
	EINVALID     = "invalid"      // invalid input
	ENETWORK     = "network"      // timeout, connection failure, non-2xx status
	ENOTFOUND    = "not_found"    // entity does not exist
	EREMOTE      = "remote"       // rendering job failure or empty result set
	ETOOSHORT    = "too_short"    // post-cleanup content below the minimum-length gate
	EUNSUPPORTED = "unsupported"  // unsupported content type
)

// Error represents an application-specific error. Application errors carry
// a machine-readable code and a human-readable message.
type Error struct {
	// Code categorizes the error for programmatic handling.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("veritext error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the root error, if available.
// Returns EINTERNAL for non-application errors and empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root error, if available.
// Returns the plain error string for non-application errors and empty
// string for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Errorf is a helper to construct an Error with formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
