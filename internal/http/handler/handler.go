// Package handler adapts HTTP requests to service calls and renders every
// outcome in the response envelope.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/middleware"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

// Func is a handler that reports failure by returning an error instead of
// writing it.
type Func func(w http.ResponseWriter, r *http.Request) error

// Handle renders any error returned by fn as an error envelope. op names the
// operation in logs.
func Handle(op string, fn Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, r, op, err)
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	appErr := apperr.From(err)
	status := appErr.Status()
	if appErr.RetryAfter > 0 {
		w.Header().Set("Retry-After", middleware.RetryAfterHeader(appErr.RetryAfter))
	}
	attrs := []any{"op", op, "code", string(appErr.Kind), "status", status, "error", err.Error()}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", attrs...)
	} else {
		slog.WarnContext(r.Context(), "request rejected", attrs...)
	}
	response.Error(w, r, status, string(appErr.Kind), appErr.Message, nil)
}

// actor returns the authenticated admin. Routes mounted without the auth gate
// never reach a mutation.
func actor(r *http.Request) (domain.Identity, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return domain.Identity{}, apperr.Unauthorized(middleware.MessageAuthRequired)
	}
	return identity, nil
}

func decodePayload(r *http.Request) (service.Payload, error) {
	var payload service.Payload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, apperr.BadRequest(service.MessageInvalidBody)
	}
	return payload, nil
}

// decodeJSON accepts exactly one JSON value in the body.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperr.BadRequest(service.MessageInvalidBody)
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperr.BadRequest("Request body too large")
		}
		return &apperr.Error{Kind: apperr.KindBadRequest, Message: service.MessageInvalidBody, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperr.BadRequest(service.MessageInvalidBody)
	}
	return nil
}

func audit(r *http.Request, resource, action string, id uint, err error) {
	in := observability.AuditInput{
		EventName:  "catalog." + resource + "." + action,
		TargetType: resource,
		Action:     action,
		Outcome:    "success",
	}
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		in.ActorID = uintString(identity.ID)
	}
	if id != 0 {
		in.TargetID = uintString(id)
	}
	if err != nil {
		in.Outcome = "failure"
		in.Reason = strings.ToLower(string(apperr.From(err).Kind))
	}
	observability.Audit(r, in)
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
