package mocks

import (
	"context"
	"sync"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

// MockEventPublisher implements ports.EventPublisher without RabbitMQ.
type MockEventPublisher struct {
	mu sync.RWMutex

	PublishedEvents  []ports.OutboxEvent
	PublishError     error
	PublishCallCount int
}

var _ ports.EventPublisher = (*MockEventPublisher)(nil)

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{
		PublishedEvents: make([]ports.OutboxEvent, 0),
	}
}

func (m *MockEventPublisher) Publish(ctx context.Context, evt ports.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

func (m *MockEventPublisher) GetPublishedEvents() []ports.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.OutboxEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

func (m *MockEventPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}
