// Package errs provides types and support for reporting ledger failures
// through the web api.
package errs

import (
	"errors"
	"net/http"
)

// Response is the form used for API responses from failures in the API.
type Response struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted is used to pass an error during the request through the
// application with web specific context. The message of a trusted error is
// safe to show to clients.
type Trusted struct {
	Err    error
	Status int
	Code   string
}

// NewTrusted wraps a provided error with an HTTP status code. This
// function should be used when handlers encounter expected errors.
func NewTrusted(err error, status int) error {
	return &Trusted{Err: err, Status: status}
}

// Error implements the error interface. It uses the default message of the
// wrapped error. This is what will be shown in the services' logs.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap returns the wrapped error.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// IsTrusted checks if an error of type Trusted exists.
func IsTrusted(err error) bool {
	var te *Trusted
	return errors.As(err, &te)
}

// GetTrusted returns a copy of the Trusted pointer.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}

// =============================================================================

// Kind binds a known error to the status and code it's reported with.
type Kind struct {
	Err    error
	Status int
	Code   string
}

// Classify looks for the first kind the error matches and returns it as a
// trusted error. Errors matching no kind are returned unchanged so they are
// reported as internal errors.
func Classify(err error, kinds ...Kind) error {
	if err == nil {
		return nil
	}

	for _, k := range kinds {
		if errors.Is(err, k.Err) {
			status := k.Status
			if status == 0 {
				status = http.StatusBadRequest
			}
			return &Trusted{Err: err, Status: status, Code: k.Code}
		}
	}

	return err
}
