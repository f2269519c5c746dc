package handler

import (
	"errors"
	"net"
	"net/http"

	"github.com/sandeepkv93/storefront-admin-api/internal/apperr"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
	"github.com/sandeepkv93/storefront-admin-api/internal/observability"
	"github.com/sandeepkv93/storefront-admin-api/internal/repository"
	"github.com/sandeepkv93/storefront-admin-api/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var body loginRequest
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	result, err := h.svc.Login(r.Context(), body.Email, body.Password, clientIP(r))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			observability.Audit(r, observability.AuditInput{
				EventName:  "auth.login",
				TargetType: "admin_user",
				Action:     "login",
				Outcome:    "failure",
				Reason:     "invalid_credentials",
			})
		}
		return err
	}
	observability.Audit(r, observability.AuditInput{
		EventName:  "auth.login",
		ActorID:    uintString(result.User.ID),
		TargetType: "admin_user",
		TargetID:   uintString(result.User.ID),
		Action:     "login",
		Outcome:    "success",
	})
	response.JSON(w, r, http.StatusOK, result)
	return nil
}

// Me returns the admin behind the bearer token. An admin removed after the
// token was issued is treated as unauthenticated.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) error {
	identity, err := actor(r)
	if err != nil {
		return err
	}
	user, err := h.svc.Me(r.Context(), identity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Unauthorized(apperr.MessageUnauthorized)
		}
		return err
	}
	response.JSON(w, r, http.StatusOK, user)
	return nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
