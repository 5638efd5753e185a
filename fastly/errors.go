package fastly

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// TransportError is a failure below the application protocol: connection
// refused, timeout, or a response body that could not be read or decoded.
// A timeout is not proof that the remote mutation did or did not apply, so
// retrying a non-idempotent operation (create, clone, activate) after one
// risks duplicate side effects.
type TransportError struct {
	// Op identifies the request, e.g. "PUT /service/x/version/1/clone".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fastly: transport error on %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is any response the server rejected. Msg and Detail carry the
// server's human-readable diagnostics verbatim; they are often the only
// diagnostic available.
type APIError struct {
	StatusCode int
	Msg        string
	Detail     string
}

func (e *APIError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Detail != "" {
		return fmt.Sprintf("fastly: %s (%s)", msg, e.Detail)
	}
	return fmt.Sprintf("fastly: %s", msg)
}

// AuthenticationError indicates a failed login or an expired session.
type AuthenticationError struct {
	APIError
}

// Unwrap exposes the underlying APIError to errors.As.
func (e *AuthenticationError) Unwrap() error {
	return &e.APIError
}

// NotFoundError indicates the referenced service, version, or named
// object does not exist.
type NotFoundError struct {
	APIError
}

// Unwrap exposes the underlying APIError to errors.As.
func (e *NotFoundError) Unwrap() error {
	return &e.APIError
}

// ConflictError indicates a create collided with an existing name, or a
// mutation targeted a locked version.
type ConflictError struct {
	APIError
}

// Unwrap exposes the underlying APIError to errors.As.
func (e *ConflictError) Unwrap() error {
	return &e.APIError
}

// ValidationError indicates server-side configuration validation failed.
// Most relevant to activation.
type ValidationError struct {
	APIError
}

// Unwrap exposes the underlying APIError to errors.As.
func (e *ValidationError) Unwrap() error {
	return &e.APIError
}

// newAPIError maps a non-2xx response to the error taxonomy. The payload
// is usually JSON with msg/detail fields but can be HTML or junk; gjson
// tolerates both and we fall back to the raw body as the message.
func newAPIError(statusCode int, payload []byte) error {
	msg := gjson.GetBytes(payload, "msg").String()
	detail := gjson.GetBytes(payload, "detail").String()
	if msg == "" && !gjson.ValidBytes(payload) {
		msg = string(payload)
	}

	base := APIError{StatusCode: statusCode, Msg: msg, Detail: detail}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{base}
	case http.StatusNotFound:
		return &NotFoundError{base}
	case http.StatusConflict:
		return &ConflictError{base}
	}
	return &base
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsAuthentication reports whether err is an AuthenticationError.
func IsAuthentication(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// statusOf extracts the underlying APIError regardless of which typed
// wrapper it arrived in. The wrappers all unwrap to their APIError, so a
// single errors.As walk suffices.
func statusOf(err error) (*APIError, bool) {
	var api *APIError
	if errors.As(err, &api) {
		return api, true
	}
	return nil, false
}
