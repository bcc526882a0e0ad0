package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure. Every error that crosses a handler
// boundary carries exactly one kind so the HTTP status mapping lives in
// one place.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindDuplicateEmail
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
	KindStorage
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed or missing input. msg names the first
// failing rule.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// DuplicateEmail surfaces a storage-level uniqueness violation on email.
func DuplicateEmail() *Error {
	return &Error{Kind: KindDuplicateEmail, Message: "email already registered"}
}

// InvalidCredentials is returned for both unknown email and wrong
// password; the message must not leak which one failed.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
}

// Unauthenticated reports a missing, malformed or expired bearer token.
func Unauthenticated(msg string) *Error {
	if msg == "" {
		msg = "authentication required"
	}
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

// Forbidden reports an authenticated caller lacking the required role or
// identity.
func Forbidden(msg string) *Error {
	if msg == "" {
		msg = "forbidden"
	}
	return &Error{Kind: KindForbidden, Message: msg}
}

// Storage wraps an underlying data-store failure. The wrapped error is for
// server-side logs only; callers see a generic message.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "internal error", Err: err}
}

// KindOf extracts the kind from err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicateEmail:
		return http.StatusConflict
	case KindInvalidCredentials, KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-facing message for err. Unknown and
// storage failures collapse to a generic message so internals never leak.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != KindStorage && ae.Kind != KindUnknown {
		return ae.Message
	}
	return "internal error"
}
