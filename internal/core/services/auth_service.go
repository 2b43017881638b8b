package services

import (
	"context"
	"crypto/rsa"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

type AuthService struct {
	accounts   ports.AccountRepository
	sessions   ports.SessionStore
	privateKey *rsa.PrivateKey
	sessionTTL time.Duration
	now        func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	accounts ports.AccountRepository,
	sessions ports.SessionStore,
	privateKey *rsa.PrivateKey,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		accounts:   accounts,
		sessions:   sessions,
		privateKey: privateKey,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// Login verifies the credentials for the requested user type and opens a
// session. Unknown accounts and wrong passwords both return
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, role domain.Role, email, password string) (string, *domain.Identity, error) {
	if !role.Valid() {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindAccount(ctx, role, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			log.Printf("auth service: account lookup failed: %v", err)
			return "", nil, err
		}
		checkPassword(string(dummyHash), password)
		return "", nil, domain.ErrInvalidCredentials
	}

	if !checkPassword(account.PasswordHash, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	identity := domain.Identity{
		SessionID:   uuid.NewString(),
		UserID:      account.ID,
		Role:        account.Role,
		Email:       account.Email,
		DisplayName: account.DisplayName,
	}

	if err := s.sessions.Save(ctx, identity, s.sessionTTL); err != nil {
		log.Printf("auth service: failed to store session: %v", err)
		return "", nil, err
	}

	now := s.now()
	claims := jwt.MapClaims{
		"sub":   identity.UserID,
		"role":  string(identity.Role),
		"email": identity.Email,
		"name":  identity.DisplayName,
		"jti":   identity.SessionID,
		"iat":   now.Unix(),
		"exp":   now.Add(s.sessionTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
	if err != nil {
		return "", nil, err
	}

	return token, &identity, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
