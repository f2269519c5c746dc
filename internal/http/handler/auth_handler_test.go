package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
	servicegomock "github.com/sandeepkv93/storefront-admin-api/internal/service/gomock"
)

func authRouterForTest(svc service.AuthService) http.Handler {
	h := NewAuthHandler(svc)
	return newRouterForTest(func(r chi.Router) {
		r.Post("/auth/login", Handle("auth.login", h.Login))
		r.Get("/admin/me", Handle("auth.me", h.Me))
	})
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockAuthService(ctrl)
	svc.EXPECT().Login(gomock.Any(), "ops@example.com", "correct horse battery", "198.51.100.4").
		Return(&service.LoginResult{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), User: &domain.AdminUser{ID: 7, Email: "ops@example.com"}}, nil)

	rr, env := doRequestForTest(t, authRouterForTest(svc), http.MethodPost, "/auth/login", `{"email":"ops@example.com","password":"correct horse battery"}`)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockAuthService(ctrl)
	router := authRouterForTest(svc)

	svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &apperr.Error{Kind: apperr.KindUnauthorized, Message: service.MessageInvalidCredentials, Err: service.ErrInvalidCredentials})
	rr, env := doRequestForTest(t, router, http.MethodPost, "/auth/login", `{"email":"ops@example.com","password":"nope"}`)
	expectErrorForTest(t, rr, env, http.StatusUnauthorized, "UNAUTHORIZED", service.MessageInvalidCredentials)

	svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperr.RateLimited(service.MessageLoginThrottled, 4*time.Second))
	rr, env = doRequestForTest(t, router, http.MethodPost, "/auth/login", `{"email":"ops@example.com","password":"nope"}`)
	expectErrorForTest(t, rr, env, http.StatusTooManyRequests, "RATE_LIMITED", service.MessageLoginThrottled)
	if got := rr.Header().Get("Retry-After"); got != "4" {
		t.Fatalf("expected Retry-After 4, got %q", got)
	}

	rr, env = doRequestForTest(t, router, http.MethodPost, "/auth/login", `not json`)
	expectErrorForTest(t, rr, env, http.StatusBadRequest, "BAD_REQUEST", service.MessageInvalidBody)
}

func TestAuthHandlerMeTreatsRemovedAdminAsUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockAuthService(ctrl)
	svc.EXPECT().Me(gomock.Any(), adminForTest).Return(nil, repository.ErrNotFound)

	rr, env := doRequestForTest(t, authRouterForTest(svc), http.MethodGet, "/admin/me", "")
	expectErrorForTest(t, rr, env, http.StatusUnauthorized, "UNAUTHORIZED", apperr.MessageUnauthorized)
}
