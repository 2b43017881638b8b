package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

func newOutboxEvent(eventType string, payload any, at time.Time) (ports.OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ports.OutboxEvent{}, err
	}
	return ports.OutboxEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Payload:   body,
		CreatedAt: at,
	}, nil
}
