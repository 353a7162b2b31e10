// Package apierror provides the error taxonomy shared by all services and the
// standardized response envelopes rendered to clients. Internal details
// (stack traces, SQL errors) never leave this boundary.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a service failure for HTTP mapping and client display.
type Kind int

const (
	KindInternal    Kind = iota
	KindValidation       // malformed input or business-rule violation
	KindNotFound         // referenced row absent
	KindConflict         // duplicate barcode and similar uniqueness clashes
	KindCreditLimit      // credit sale would exceed the entity's credit limit
)

// Error is the typed error returned by every service operation. Detail is a
// user-facing message, safe to render as-is.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func Validation(msg string) *Error  { return &Error{Kind: KindValidation, Detail: msg} }
func NotFound(msg string) *Error    { return &Error{Kind: KindNotFound, Detail: msg} }
func Conflict(msg string) *Error    { return &Error{Kind: KindConflict, Detail: msg} }
func CreditLimit(msg string) *Error { return &Error{Kind: KindCreditLimit, Detail: msg} }

// Status maps an error to its HTTP status code. Untyped errors are internal.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation, KindCreditLimit:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical JSON envelope for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError { return &APIError{Detail: msg} }

// ValidationFields wraps per-field binding errors.
type ValidationFields struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationFields {
	return &ValidationFields{Detail: "Error de validacion", Fields: fields}
}
