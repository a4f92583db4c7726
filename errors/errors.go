// Package errors provides an API for errors across the application.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type RequestError struct {
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// InvalidCredentials returns the fixed 401 error used by every credential
// failure. The message is intentionally the same for all of them so callers
// can not probe which step rejected the request.
func InvalidCredentials() *RequestError {
	return &RequestError{
		StatusCode: http.StatusUnauthorized,
		Err:        errors.New("wrong credentials"),
	}
}

// RecordNotFound returns a 404 error naming the missing entity.
func RecordNotFound(entity string) *RequestError {
	return &RequestError{
		StatusCode: http.StatusNotFound,
		Err:        fmt.Errorf("%s not found", entity),
	}
}

func IsInvalidCredentials(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnauthorized
}

func IsRecordNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}
