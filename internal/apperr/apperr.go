// Package apperr defines the error taxonomy surfaced to API clients.
package apperr

import (
	"errors"
	"net/http"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

type Kind string

const (
	KindBadRequest   Kind = "BAD_REQUEST"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindRateLimited  Kind = "RATE_LIMITED"
	KindInternal     Kind = "INTERNAL"
)

// Fixed client-facing messages for failures that carry no designed message.
const (
	MessageBadRequest   = "Invalid request"
	MessageUnauthorized = "Unauthorized"
	MessageNotFound     = "Resource not found"
	MessageConflict     = "Resource already exists"
	MessageRateLimited  = "Too many requests"
	MessageInternal     = "Internal server error"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
	// RetryAfter is advertised to the client on RATE_LIMITED responses.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int { return Status(e.Kind) }

func BadRequest(message string) *Error   { return &Error{Kind: KindBadRequest, Message: message} }
func Unauthorized(message string) *Error { return &Error{Kind: KindUnauthorized, Message: message} }
func NotFound(message string) *Error     { return &Error{Kind: KindNotFound, Message: message} }
func Conflict(message string) *Error     { return &Error{Kind: KindConflict, Message: message} }
func RateLimited(message string, retryAfter time.Duration) *Error {
	return &Error{Kind: KindRateLimited, Message: message, RetryAfter: retryAfter}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MessageInternal, Err: err}
}

func Status(kind Kind) int {
	switch kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
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

// From classifies any error into the taxonomy. Unknown errors collapse to
// INTERNAL and keep the cause for server-side logging only.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return &Error{Kind: KindBadRequest, Message: FirstValidationMessage(verrs), Err: err}
	}
	var verr validation.Error
	if errors.As(err, &verr) {
		return &Error{Kind: KindBadRequest, Message: verr.Message(), Err: err}
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: MessageNotFound, Err: err}
	case errors.Is(err, repository.ErrConflict):
		return &Error{Kind: KindConflict, Message: MessageConflict, Err: err}
	default:
		return Internal(err)
	}
}

// FirstValidationMessage picks the message of the alphabetically first failing
// field so responses stay deterministic.
func FirstValidationMessage(errs validation.Errors) string {
	keys := make([]string, 0, len(errs))
	for k, v := range errs {
		if v != nil {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return MessageBadRequest
	}
	sort.Strings(keys)
	first := errs[keys[0]]
	var nested validation.Errors
	if errors.As(first, &nested) {
		return FirstValidationMessage(nested)
	}
	var verr validation.Error
	if errors.As(first, &verr) {
		return verr.Message()
	}
	return first.Error()
}
