package ports

import (
	"context"
	"encoding/json"
	"time"
)

const (
	EventVendorSubmitted = "vendor.submitted"
	EventVendorApproved  = "vendor.approved"
	EventVendorRejected  = "vendor.rejected"
	EventWalletRecharged = "wallet.recharged"
)

// OutboxEvent is written in the same store transaction as the change it
// describes and published later by the relay.
type OutboxEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type VendorStatusEvent struct {
	VendorID        string `json:"vendor_id"`
	BusinessName    string `json:"business_name,omitempty"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

type WalletRechargedEvent struct {
	ParentID      string  `json:"parent_id"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category,omitempty"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt OutboxEvent) error
}
