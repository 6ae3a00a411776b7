package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound marks a missing entity or an empty result set where not-found
// semantics apply.
func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf(format, args...))
}

// Conflict marks a duplicate unique field (building address, organization name).
func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "conflict", fmt.Errorf(format, args...))
}

// Invalid marks rejected input: malformed phone number, activity depth
// exceeded, missing required relation.
func Invalid(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, "validation", fmt.Errorf(format, args...))
}

// Internal wraps anything escaping a write path after rollback.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal", err)
}

// From extracts the typed error, mapping everything else to Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}
