package crawlhog

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and mappable to the behavior of the
// external fetch service (e.g. HTTP 429 becomes ERATELIMIT). They
// describe error classes, not specific failures.
const (
	ECONFIG      = "config"      // missing or invalid configuration (e.g. credential)
	EINVALID     = "invalid"     // validation failed on caller input
	ENOTFOUND    = "not_found"   // entity does not exist
	ERATELIMIT   = "rate_limit"  // transient backpressure from the fetch service
	EUNAVAILABLE = "unavailable" // collaborator is unreachable
	EINTERNAL    = "internal"    // internal error (the fallback)
)

// Error represents an application-specific error. Application errors can
// be unwrapped by the caller to extract the machine-readable code.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("crawlhog error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
