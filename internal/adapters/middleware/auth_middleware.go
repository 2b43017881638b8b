package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

const (
	LoginPath         = "/login"
	SessionCookieName = "campus_session"
)

type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	sessions  ports.SessionStore
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, sessions ports.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		sessions:  sessions,
	}
}

type contextKey struct{}

var identityKey contextKey

// IdentityFromContext returns the caller attached by RequireRole.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// WithIdentity attaches identity to ctx. Handler tests use it to skip the
// token round trip.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

var (
	errLoginRequired      = errors.New("login required")
	errSessionUnavailable = errors.New("session store unavailable")
)

type loginRequiredResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// LoginRequired is the only answer a protected route gives to a caller
// without a matching session.
func LoginRequired(w http.ResponseWriter) {
	w.Header().Set("Location", LoginPath)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(loginRequiredResponse{Error: "login required", Redirect: LoginPath}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// SessionUnavailable answers a request whose session could not be checked.
// The caller may still be logged in, so it is not sent to the login page.
func SessionUnavailable(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "5")
	w.WriteHeader(http.StatusServiceUnavailable)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": "session service unavailable"}); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// RequireRole lets the request through only with a valid token whose
// session still exists and whose user type is one of roles.
func (m *AuthMiddleware) RequireRole(roles []domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.authenticate(r)
		if errors.Is(err, errSessionUnavailable) {
			SessionUnavailable(w)
			return
		}
		if err != nil {
			LoginRequired(w)
			return
		}

		if !slices.Contains(roles, identity.Role) {
			log.Printf("auth middleware: role mismatch: required one of %v, got %s", roles, identity.Role)
			LoginRequired(w)
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), identity)))
	}
}

// RequireSession accepts any logged-in user type.
func (m *AuthMiddleware) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireRole([]domain.Role{domain.RoleAdmin, domain.RoleParent, domain.RoleVendor}, next)
}

func (m *AuthMiddleware) authenticate(r *http.Request) (domain.Identity, error) {
	tokenString := bearerToken(r)
	if tokenString == "" {
		return domain.Identity{}, errLoginRequired
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return m.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		log.Printf("auth middleware: token rejected: %v", err)
		return domain.Identity{}, errLoginRequired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, errLoginRequired
	}

	identity := domain.Identity{
		SessionID:   stringClaim(claims, "jti"),
		UserID:      stringClaim(claims, "sub"),
		Role:        domain.Role(stringClaim(claims, "role")),
		Email:       stringClaim(claims, "email"),
		DisplayName: stringClaim(claims, "name"),
	}
	if identity.SessionID == "" || identity.UserID == "" || !identity.Role.Valid() {
		log.Printf("auth middleware: token is missing identity claims")
		return domain.Identity{}, errLoginRequired
	}

	exists, err := m.sessions.Exists(r.Context(), identity.SessionID)
	if err != nil {
		log.Printf("auth middleware: session lookup failed: %v", err)
		return domain.Identity{}, errSessionUnavailable
	}
	if !exists {
		return domain.Identity{}, errLoginRequired
	}
	return identity, nil
}

// bearerToken reads the Authorization header, falling back to the session
// cookie set at login.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" {
			return ""
		}
		return strings.TrimSpace(token)
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
