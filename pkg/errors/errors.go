package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes double as HTTP status codes.
const (
	CodeSuccess         = 200
	CodeCreated         = 201
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternalError   = 500
	CodeBadGateway      = 502
)

// AppError application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError on code and message so wrapped sentinels compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates an error
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an underlying error
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// As extracts an AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or CodeInternalError.
func CodeOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternalError
}

// Predefined errors
var (
	ErrBadRequest      = New(CodeBadRequest, "bad request")
	ErrUnauthorized    = New(CodeUnauthorized, "unauthorized")
	ErrForbidden       = New(CodeForbidden, "forbidden")
	ErrInternalError   = New(CodeInternalError, "internal server error")
	ErrValidationError = New(CodeBadRequest, "validation failed")
	ErrStorageError    = New(CodeBadGateway, "object storage error")

	ErrInvalidCredentials = New(CodeUnauthorized, "invalid credentials")
	ErrInvalidToken       = New(CodeUnauthorized, "invalid token")
	ErrAccessDenied       = New(CodeForbidden, "access denied")
	ErrRecordNotFound     = New(CodeNotFound, "record not found")
	ErrRecordExists       = New(CodeConflict, "record already exists")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
)

// NotFound returns a 404 error naming the missing entity.
func NotFound(entity string) *AppError {
	return New(CodeNotFound, entity+" not found")
}

// IsNotFound reports whether err carries a 404 code.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
