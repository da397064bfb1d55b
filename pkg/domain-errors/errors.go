// Package dErrors defines the closed set of error codes the service reports.
// Every error crossing a service boundary carries exactly one code; callers
// branch on codes, never on message text.
package dErrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies one failure mode. The set is closed: new behavior means a
// new code, never an ad hoc string.
type Code string

const (
	CodeNotAuthorized       Code = "NOT_AUTHORIZED"
	CodePatientNotFound     Code = "PATIENT_NOT_FOUND"
	CodeProviderNotFound    Code = "PROVIDER_NOT_FOUND"
	CodeConsentNotFound     Code = "CONSENT_NOT_FOUND"
	CodeInvalidDuration     Code = "INVALID_DURATION"
	CodeAlreadyExists       Code = "ALREADY_EXISTS"
	CodeInvalidPurpose      Code = "INVALID_PURPOSE"
	CodeProviderNotVerified Code = "PROVIDER_NOT_VERIFIED"

	// CodeConsentExpired is reserved. Validity checks report expiry as a
	// false verdict, not an error, so nothing returns it today.
	CodeConsentExpired Code = "CONSENT_EXPIRED"

	CodeBadRequest Code = "BAD_REQUEST"
	CodeTimeout    Code = "TIMEOUT"
	CodeInternal   Code = "INTERNAL"
)

// Error is the one error type services return. Err, when set, is the wrapped
// infrastructure cause and never leaves the process.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an infrastructure error. A nil err
// yields nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		// Already coded upstream; keep the original code.
		return err
	}
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for anything
// uncoded.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its transport status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotAuthorized:
		return http.StatusForbidden
	case CodePatientNotFound, CodeProviderNotFound, CodeConsentNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeInvalidDuration, CodeInvalidPurpose, CodeProviderNotVerified, CodeConsentExpired:
		return http.StatusUnprocessableEntity
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
