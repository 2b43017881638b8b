package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/metrics"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/middleware"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

const invalidCredentialsMessage = "Invalid email or password"

type AuthHandler struct {
	authService ports.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(auth ports.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: auth, sessionTTL: sessionTTL}
}

type LoginRequest struct {
	UserType string `json:"user_type" validate:"required,oneof=admin parent vendor"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message  string          `json:"message"`
	Token    string          `json:"token"`
	Identity domain.Identity `json:"user"`
	Redirect string          `json:"redirect"`
}

var dashboards = map[domain.Role]string{
	domain.RoleAdmin:  "/admin-dashboard",
	domain.RoleParent: "/parent-dashboard",
	domain.RoleVendor: "/vendor-dashboard",
}

// Login answers every credential failure with the same 401 message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	role := domain.Role(req.UserType)

	token, identity, err := h.authService.Login(r.Context(), role, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.Logins.WithLabelValues(req.UserType, "invalid").Inc()
			writeError(w, http.StatusUnauthorized, invalidCredentialsMessage)
			return
		}
		metrics.Logins.WithLabelValues(req.UserType, "error").Inc()
		log.Printf("auth handler: login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}
	metrics.Logins.WithLabelValues(req.UserType, "success").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, LoginResponse{
		Message:  "Login successful",
		Token:    token,
		Identity: *identity,
		Redirect: dashboards[identity.Role],
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.LoginRequired(w)
		return
	}

	if err := h.authService.Logout(r.Context(), identity.SessionID); err != nil {
		log.Printf("auth handler: logout failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out", "redirect": middleware.LoginPath})
}

// Session returns the identity behind the current session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.LoginRequired(w)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}
