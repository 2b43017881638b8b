package ports

import (
	"context"
	"time"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

// SessionStore is the single place a session can be invalidated.
type SessionStore interface {
	Save(ctx context.Context, identity domain.Identity, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}
