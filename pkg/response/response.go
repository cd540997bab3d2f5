package response

import (
	"errors"
	"net/http"
)

// Error is a domain error that knows which HTTP status it maps to.
type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

// IsClientError reports whether the error is the caller's fault (4xx).
func (e *Error) IsClientError() bool {
	return e.Code >= http.StatusBadRequest && e.Code < http.StatusInternalServerError
}

func NewError(code int, err string) error {
	return &Error{code, errors.New(err)}
}

// StatusOf returns the status carried by err, or 500 when err is not a *Error.
func StatusOf(err error) int {
	var respErr *Error
	if errors.As(err, &respErr) {
		return respErr.Code
	}
	return http.StatusInternalServerError
}
