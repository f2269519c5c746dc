package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
)

const (
	MessageAuthRequired = "Authentication required"
	MessageInvalidToken = "Invalid or expired token"
)

type contextKey string

const (
	identityContextKey  contextKey = "identity"
	actorSlotContextKey contextKey = "actor_slot"
)

// actorSlot lets the request logger report the admin that a deeper
// middleware authenticated.
type actorSlot struct {
	id uint
}

func withActorSlot(ctx context.Context, slot *actorSlot) context.Context {
	return context.WithValue(ctx, actorSlotContextKey, slot)
}

// TokenVerifier resolves a bearer credential to the admin it was issued for.
type TokenVerifier interface {
	Verify(raw string) (domain.Identity, error)
}

// RequireAdmin rejects requests without a valid bearer token before the
// wrapped handler runs. The verified identity is attached to the context.
func RequireAdmin(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				observability.RecordTokenValidation(r.Context(), "missing")
				writeUnauthorized(w, r, MessageAuthRequired)
				return
			}
			identity, err := verifier.Verify(raw)
			if err != nil {
				observability.RecordTokenValidation(r.Context(), "invalid")
				writeUnauthorized(w, r, MessageInvalidToken)
				return
			}
			observability.RecordTokenValidation(r.Context(), "valid")
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	if slot, ok := ctx.Value(actorSlotContextKey).(*actorSlot); ok {
		slot.id = identity.ID
	}
	return context.WithValue(ctx, identityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(domain.Identity)
	return identity, ok
}

func bearerToken(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(auth[7:])
	return raw, raw != ""
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	response.Error(w, r, http.StatusUnauthorized, string(apperr.KindUnauthorized), message, nil)
}
