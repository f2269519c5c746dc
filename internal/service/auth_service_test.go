package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/security"
)

const testAdminPassword = "Correct#Horse9"

func newAuthServiceForTest(t *testing.T, guard LoginGuard) (*AuthServiceImpl, *security.TokenManager, *domain.AdminUser) {
	t.Helper()
	db := newServiceDBForTest(t)
	users := repository.NewAdminUserRepository(db)
	tokens := security.NewTokenManager("storefront", "storefront-admin", "abcdefghijklmnopqrstuvwxyz123456", time.Hour)
	svc := NewAuthService(users, tokens, guard)
	admin, created, err := svc.EnsureAdmin(t.Context(), "Admin@Example.com", "Admin", testAdminPassword)
	if err != nil || !created {
		t.Fatalf("ensure admin: created=%v err=%v", created, err)
	}
	return svc, tokens, admin
}

func TestAuthServiceLoginIssuesVerifiableToken(t *testing.T) {
	svc, tokens, admin := newAuthServiceForTest(t, nil)

	res, err := svc.Login(t.Context(), " admin@example.com ", testAdminPassword, "10.0.0.1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	identity, err := tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if identity.ID != admin.ID || identity.Email != "admin@example.com" || identity.Role != "admin" {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if res.User == nil || res.User.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded, got %+v", res.User)
	}
	me, err := svc.Me(t.Context(), identity)
	if err != nil || me.Email != admin.Email {
		t.Fatalf("me: %+v err=%v", me, err)
	}
}

func TestAuthServiceLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, admin := newAuthServiceForTest(t, nil)
	inactive, _, err := svc.EnsureAdmin(t.Context(), "off@example.com", "Off", testAdminPassword)
	if err != nil {
		t.Fatalf("ensure inactive admin: %v", err)
	}
	inactive.Active = false
	if err := svc.users.Save(t.Context(), inactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: testAdminPassword},
		{name: "wrong password", email: admin.Email, password: "Wrong#Password1"},
		{name: "inactive account", email: "off@example.com", password: testAdminPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Login(t.Context(), tc.email, tc.password, "10.0.0.2")
			if res != nil {
				t.Fatalf("expected no result, got %+v", res)
			}
			appErr := apperr.From(err)
			if appErr.Kind != apperr.KindUnauthorized || appErr.Message != MessageInvalidCredentials {
				t.Fatalf("expected invalid credentials, got %v", err)
			}
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials in chain, got %v", err)
			}
		})
	}
}

func TestAuthServiceLoginRequiresCredentials(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t, nil)
	_, err := svc.Login(t.Context(), "", "", "10.0.0.3")
	if appErr := apperr.From(err); appErr.Kind != apperr.KindBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestAuthServiceLoginThrottlesRepeatedFailures(t *testing.T) {
	guard := NewInMemoryLoginGuard(LoginGuardPolicy{
		FreeAttempts: 1,
		BaseDelay:    time.Minute,
		Multiplier:   2,
		MaxDelay:     time.Hour,
		ResetWindow:  time.Hour,
	})
	svc, _, admin := newAuthServiceForTest(t, guard)

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(t.Context(), admin.Email, "Wrong#Password1", "10.0.0.4"); apperr.From(err).Kind != apperr.KindUnauthorized {
			t.Fatalf("attempt %d: expected unauthorized, got %v", i, err)
		}
	}
	_, err := svc.Login(t.Context(), admin.Email, testAdminPassword, "10.0.0.4")
	appErr := apperr.From(err)
	if appErr.Kind != apperr.KindRateLimited || appErr.RetryAfter <= 0 {
		t.Fatalf("expected throttled login with retry-after, got %v", err)
	}
}

func TestAuthServiceEnsureAdminResetsExistingPassword(t *testing.T) {
	svc, _, admin := newAuthServiceForTest(t, nil)
	const rotated = "Rotated#Secret42"
	again, created, err := svc.EnsureAdmin(t.Context(), admin.Email, "", rotated)
	if err != nil || created {
		t.Fatalf("ensure existing admin: created=%v err=%v", created, err)
	}
	if again.ID != admin.ID || again.Name != "Admin" {
		t.Fatalf("expected same admin, got %+v", again)
	}
	if _, err := svc.Authenticate(t.Context(), admin.Email, rotated); err != nil {
		t.Fatalf("authenticate with rotated password: %v", err)
	}
	if _, _, err := svc.EnsureAdmin(t.Context(), "x@example.com", "", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password error, got %v", err)
	}
}
