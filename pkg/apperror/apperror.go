package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure independently of where it happened.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindInvalidCredentials
	KindForbidden
	KindNotFound
	KindConflict
	KindValidation
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation_failed"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "internal"
	}
}

const (
	msgUnauthorized       = "authentication is required to access this resource"
	msgInvalidCredentials = "username or password is incorrect"
	msgForbidden          = "user does not have privilege to access this resource"
	msgValidation         = "unprocessable request has occurred"
	msgInternal           = "unexpected error occurred"
	msgRateLimited        = "rate limit exceeded"
)

// Error is the only error type that crosses the service boundary.
// Err keeps the lower-layer cause for logging and is never rendered.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status class for the error kind.
func (e *Error) Status() int { return Status(e.Kind) }

// Body returns the client-facing field map. Internal causes never appear here.
func (e *Error) Body() map[string][]string {
	if e.Kind == KindValidation && len(e.Fields) > 0 {
		return e.Fields
	}
	msg := e.Message
	if e.Kind == KindInternal {
		msg = msgInternal
	}
	return map[string][]string{"message": {msg}}
}

func Unauthorized() *Error { return &Error{Kind: KindUnauthorized, Message: msgUnauthorized} }

// UnauthorizedCause keeps the rejected cause (bad signature, expired token...) for logs only.
func UnauthorizedCause(err error) *Error {
	return &Error{Kind: KindUnauthorized, Message: msgUnauthorized, Err: err}
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: msgInvalidCredentials}
}

func Forbidden() *Error { return &Error{Kind: KindForbidden, Message: msgForbidden} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: msgValidation, Fields: fields}
}

func RateLimited() *Error { return &Error{Kind: KindRateLimited, Message: msgRateLimited} }

func Internal(err error) *Error { return &Error{Kind: KindInternal, Message: msgInternal, Err: err} }

// From converts any error into the taxonomy. Unknown errors become internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// KindOf reports the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

func Status(k Kind) int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidCredentials, KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
