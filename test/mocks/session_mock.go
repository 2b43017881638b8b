package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

// MockSessionStore implements ports.SessionStore in memory.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Identity

	SaveCalls   []domain.Identity
	DeleteCalls []string

	SaveError   error
	ExistsError error
	DeleteError error
}

var _ ports.SessionStore = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]domain.Identity),
	}
}

func (m *MockSessionStore) Save(ctx context.Context, identity domain.Identity, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, identity)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.sessions[identity.SessionID] = identity
	return nil
}

func (m *MockSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	_, ok := m.sessions[sessionID]
	return ok, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, sessionID)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.sessions, sessionID)
	return nil
}

// HasSession is a test assertion helper.
func (m *MockSessionStore) HasSession(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[sessionID]
	return ok
}
