package ports

import (
	"context"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/analytics"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, role domain.Role, email, password string) (string, *domain.Identity, error)
	Logout(ctx context.Context, sessionID string) error
}

type ParentRegistration struct {
	Email           string
	Password        string
	ConfirmPassword string
	ParentName      string
	StudentName     string
	StudentID       string
	StudentRollNo   string
	ParentPhone     string
}

type VendorRegistration struct {
	Email           string
	Password        string
	ConfirmPassword string
	Draft           domain.VendorDraft
}

type RegistrationService interface {
	RegisterParent(ctx context.Context, req ParentRegistration) (string, error)
	RegisterVendor(ctx context.Context, req VendorRegistration) (string, error)
}

type VendorService interface {
	ListVendors(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, error)
	GetVendor(ctx context.Context, id string) (*domain.Vendor, error)
	CreateVendor(ctx context.Context, draft domain.VendorDraft) (*domain.Vendor, error)
	Approve(ctx context.Context, id string, expectedVersion int64) (*domain.Vendor, error)
	Reject(ctx context.Context, id, reason string, expectedVersion int64) (*domain.Vendor, error)
}

type WalletView struct {
	Parent    domain.Parent `json:"parent"`
	LedgerSum float64       `json:"ledger_sum"`
}

type WalletService interface {
	GetWallet(ctx context.Context, parentID string) (*WalletView, error)
	Recharge(ctx context.Context, parentID, amount, description, category string) (*WalletView, error)
}

type TransactionService interface {
	Query(ctx context.Context, dataset domain.Dataset, q analytics.Query) ([]domain.Transaction, error)
	Report(ctx context.Context, dataset domain.Dataset) (*analytics.Report, error)
	StudentReport(ctx context.Context, dataset domain.Dataset, studentID string) (*analytics.Report, error)
	// StudentQuery pins the student filter to studentID; an empty id matches
	// nothing.
	StudentQuery(ctx context.Context, dataset domain.Dataset, studentID string, q analytics.Query) ([]domain.Transaction, error)
}
