package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/domain"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/security"
)

const (
	MessageInvalidCredentials = "Invalid email or password"
	MessageCredentialsMissing = "Email and password are required"
	MessageLoginThrottled     = "Too many failed login attempts, try again later"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 12 characters and mix upper, lower, digit and symbol")
)

var (
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	lowercaseRe = regexp.MustCompile(`[a-z]`)
	digitRe     = regexp.MustCompile(`[0-9]`)
	specialRe   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

type TokenIssuer interface {
	Issue(identity domain.Identity) (security.Token, error)
}

type LoginResult struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      *domain.AdminUser `json:"user"`
}

type AuthServiceImpl struct {
	users  repository.AdminUserRepository
	tokens TokenIssuer
	guard  LoginGuard
	now    func() time.Time
}

func NewAuthService(users repository.AdminUserRepository, tokens TokenIssuer, guard LoginGuard) *AuthServiceImpl {
	if guard == nil {
		guard = NewNoopLoginGuard()
	}
	return &AuthServiceImpl{users: users, tokens: tokens, guard: guard, now: time.Now}
}

// Authenticate resolves an active admin from credentials. Unknown emails,
// inactive accounts and wrong passwords fail identically.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			security.BurnPasswordCheck(password)
			return nil, invalidCredentials()
		}
		return nil, err
	}
	ok, err := security.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("verify password for admin %d: %w", user.ID, err)
	}
	if !ok || !user.Active {
		return nil, invalidCredentials()
	}
	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (*LoginResult, error) {
	outcome := "success"
	defer func() { observability.RecordAuthLogin(ctx, outcome) }()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		outcome = "bad_request"
		return nil, apperr.BadRequest(MessageCredentialsMissing)
	}

	if delay, gerr := s.guard.Check(ctx, email, ip); gerr != nil {
		observability.RecordLoginGuardEvent(ctx, "check", "error")
		slog.WarnContext(ctx, "login guard check failed", "error", gerr)
	} else if delay > 0 {
		observability.RecordLoginGuardEvent(ctx, "check", "blocked")
		outcome = "throttled"
		return nil, apperr.RateLimited(MessageLoginThrottled, delay)
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			outcome = "error"
			return nil, err
		}
		outcome = "invalid_credentials"
		if _, gerr := s.guard.RegisterFailure(ctx, email, ip); gerr != nil {
			observability.RecordLoginGuardEvent(ctx, "register_failure", "error")
			slog.WarnContext(ctx, "login guard register failure failed", "error", gerr)
		} else {
			observability.RecordLoginGuardEvent(ctx, "register_failure", "success")
		}
		return nil, err
	}

	if gerr := s.guard.Reset(ctx, email, ip); gerr != nil {
		slog.WarnContext(ctx, "login guard reset failed", "error", gerr)
	}
	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		outcome = "error"
		return nil, err
	}
	now := s.now().UTC()
	if terr := s.users.TouchLastLogin(ctx, user.ID, now); terr != nil {
		slog.WarnContext(ctx, "record last login failed", "admin_id", user.ID, "error", terr)
	} else {
		user.LastLoginAt = &now
	}
	return &LoginResult{Token: token.Value, ExpiresAt: token.ExpiresAt, User: user}, nil
}

// Me reloads the admin behind an authenticated identity.
func (s *AuthServiceImpl) Me(ctx context.Context, identity domain.Identity) (*domain.AdminUser, error) {
	return s.users.FindByID(ctx, identity.ID)
}

// EnsureAdmin creates the admin or, when it exists, resets its password and
// re-activates it. It reports whether a new account was created.
func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, email, name, password string) (*domain.AdminUser, bool, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validation.Validate(email, validation.Required.Error("Admin email is required"), is.EmailFormat.Error("Admin email is invalid")); err != nil {
		return nil, false, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, false, err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &domain.AdminUser{Email: email, Name: name, Role: "admin", PasswordHash: hash, Active: true}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, false, err
		}
		return user, true, nil
	case err != nil:
		return nil, false, err
	}
	user.PasswordHash = hash
	user.Active = true
	if name != "" {
		user.Name = name
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, false, err
	}
	return user, false, nil
}

func ValidatePassword(password string) error {
	if len(password) < 12 || !uppercaseRe.MatchString(password) ||
		!lowercaseRe.MatchString(password) || !digitRe.MatchString(password) || !specialRe.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}

func invalidCredentials() error {
	return &apperr.Error{Kind: apperr.KindUnauthorized, Message: MessageInvalidCredentials, Err: ErrInvalidCredentials}
}
