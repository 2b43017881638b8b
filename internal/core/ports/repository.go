package ports

import (
	"context"
	"time"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

type VendorRepository interface {
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	GetVendor(ctx context.Context, id string) (*domain.Vendor, error)
	CreateVendor(ctx context.Context, vendor domain.Vendor, event OutboxEvent) error
	// UpdateVendorStatus applies a status transition. expectedVersion 0 skips
	// the version check.
	UpdateVendorStatus(ctx context.Context, update VendorStatusUpdate, expectedVersion int64, event OutboxEvent) (*domain.Vendor, error)
}

type VendorStatusUpdate struct {
	VendorID        string
	Status          domain.VendorStatus
	RejectionReason string
	At              time.Time
}

type ParentRepository interface {
	CreateParent(ctx context.Context, parent domain.Parent) error
	GetParent(ctx context.Context, id string) (*domain.Parent, error)
	// ApplyRecharge increments the balance and appends tx in one store
	// transaction and returns the parent as committed.
	ApplyRecharge(ctx context.Context, parentID string, tx domain.WalletTransaction, event OutboxEvent) (*domain.Parent, error)
}

type AccountRepository interface {
	FindAccount(ctx context.Context, role domain.Role, email string) (*domain.Account, error)
	CreateAdmin(ctx context.Context, admin domain.Admin) error
}

// TransactionSource serves the read-only purchase datasets.
type TransactionSource interface {
	Transactions(ctx context.Context, dataset domain.Dataset) ([]domain.Transaction, error)
}
