package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/config"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

const keyPrefix = "session:"

// RedisClient is the subset of *redis.Client the store uses.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps one key per session. Deleting the key is what logs a
// user out; a still-valid token without its key is rejected.
type RedisStore struct {
	client RedisClient
	cb     *gobreaker.CircuitBreaker
}

var _ ports.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client RedisClient) *RedisStore {
	return &RedisStore{
		client: client,
		cb:     config.NewCircuitBreaker(config.BreakerRedisSession),
	}
}

func Key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisStore) Save(ctx context.Context, identity domain.Identity, ttl time.Duration) error {
	body, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, Key(identity.SessionID), body, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.Exists(ctx, Key(sessionID)).Result()
	})
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return res.(int64) > 0, nil
}

// Delete is idempotent; removing a missing session is not an error.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, Key(sessionID)).Err()
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
