package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
)

func TestFromClassifiesErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		kind    Kind
		message string
		status  int
	}{
		{"not found", fmt.Errorf("lookup: %w", repository.ErrNotFound), KindNotFound, MessageNotFound, http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: unique", repository.ErrConflict), KindConflict, MessageConflict, http.StatusConflict},
		{"validation", validation.Errors{"name": validation.NewError("required", "Category name is required")}, KindBadRequest, "Category name is required", http.StatusBadRequest},
		{"designed", Unauthorized("Authentication required"), KindUnauthorized, "Authentication required", http.StatusUnauthorized},
		{"unknown", errors.New("pq: connection refused"), KindInternal, MessageInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := From(tc.err)
			if got.Kind != tc.kind || got.Message != tc.message || got.Status() != tc.status {
				t.Fatalf("From(%v) = %+v status=%d", tc.err, got, got.Status())
			}
		})
	}
	if From(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestFromKeepsWrappedAppError(t *testing.T) {
	inner := RateLimited("Too many login attempts", 3*time.Second)
	got := From(fmt.Errorf("login: %w", inner))
	if got != inner || got.RetryAfter != 3*time.Second {
		t.Fatalf("expected wrapped app error, got %+v", got)
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: timeout")
	got := Internal(cause)
	if got.Message != MessageInternal {
		t.Fatalf("unexpected message %q", got.Message)
	}
	if !errors.Is(got, cause) {
		t.Fatal("expected cause to be kept for logging")
	}
}

func TestFirstValidationMessageIsDeterministic(t *testing.T) {
	errs := validation.Errors{
		"title":  validation.NewError("required", "Blog title is required"),
		"status": validation.NewError("in", "Blog status must be draft, published or archived"),
		"slug":   nil,
	}
	for i := 0; i < 10; i++ {
		if got := FirstValidationMessage(errs); got != "Blog status must be draft, published or archived" {
			t.Fatalf("unexpected first message %q", got)
		}
	}
	if got := FirstValidationMessage(validation.Errors{}); got != MessageBadRequest {
		t.Fatalf("expected fallback message, got %q", got)
	}
}
