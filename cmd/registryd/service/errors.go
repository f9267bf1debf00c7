package service

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the failure class of a registry operation
type ErrorCode string

const (
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeInvalidState ErrorCode = "INVALID_STATE"
	CodeRateLimited  ErrorCode = "RATE_LIMITED"

	// CodeDuplicateID marks an internal invariant violation: generated
	// IDs are unique, so a key collision should be unreachable.
	CodeDuplicateID ErrorCode = "DUPLICATE_ID"
)

// Error is an operation failure with a caller-visible code. Operations
// fail before any store write, so an Error never accompanies a partial
// state change.
type Error struct {
	Code    ErrorCode
	Message string

	// RetryAfterSeconds is set for CodeRateLimited
	RetryAfterSeconds int64
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsError extracts a registry Error from err, if one is in its chain
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func invalidInput(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...any) *Error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf(format, args...)}
}

func rateLimited(retryAfter int64) *Error {
	return &Error{
		Code:              CodeRateLimited,
		Message:           "request quota exceeded",
		RetryAfterSeconds: retryAfter,
	}
}

func duplicateID(assetID string) *Error {
	return &Error{Code: CodeDuplicateID, Message: fmt.Sprintf("asset id collision: %s", assetID)}
}
