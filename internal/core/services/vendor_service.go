package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

// VendorService runs the admin approval queue. Transitions are not guarded
// by the current status: approving an approved vendor rewrites the same
// state.
type VendorService struct {
	repo ports.VendorRepository
	now  func() time.Time
}

var _ ports.VendorService = (*VendorService)(nil)

func NewVendorService(repo ports.VendorRepository) *VendorService {
	return &VendorService{
		repo: repo,
		now:  time.Now,
	}
}

// ListVendors loads the whole collection and filters it in memory.
func (s *VendorService) ListVendors(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, error) {
	vendors, err := s.repo.ListVendors(ctx)
	if err != nil {
		log.Printf("vendor service: failed to fetch vendors: %v", err)
		return nil, err
	}
	return domain.FilterVendors(vendors, filter), nil
}

func (s *VendorService) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	return s.repo.GetVendor(ctx, id)
}

// CreateVendor stores a pending application. Business id and email are not
// checked for duplicates, except that two vendors with a login cannot share
// an email.
func (s *VendorService) CreateVendor(ctx context.Context, draft domain.VendorDraft) (*domain.Vendor, error) {
	now := s.now()
	vendor := domain.Vendor{
		ID:           uuid.NewString(),
		BusinessName: draft.BusinessName,
		BusinessID:   draft.BusinessID,
		GovID:        draft.GovID,
		Email:        draft.Email,
		Phone:        draft.Phone,
		Address:      draft.Address,
		UPIID:        draft.UPIID,
		Category:     draft.Category,
		Status:       domain.VendorPending,
		Documents:    draft.Documents,
		SubmittedAt:  now,
		Version:      1,
		PasswordHash: draft.PasswordHash,
	}

	event, err := newOutboxEvent(ports.EventVendorSubmitted, ports.VendorStatusEvent{
		VendorID:     vendor.ID,
		BusinessName: vendor.BusinessName,
		Status:       string(vendor.Status),
	}, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateVendor(ctx, vendor, event); err != nil {
		log.Printf("vendor service: failed to add vendor: %v", err)
		return nil, err
	}
	return &vendor, nil
}

func (s *VendorService) Approve(ctx context.Context, id string, expectedVersion int64) (*domain.Vendor, error) {
	return s.transition(ctx, ports.VendorStatusUpdate{
		VendorID: id,
		Status:   domain.VendorApproved,
	}, expectedVersion, ports.EventVendorApproved)
}

// Reject requires a reason with visible text; a blank reason never reaches
// the repository.
func (s *VendorService) Reject(ctx context.Context, id, reason string, expectedVersion int64) (*domain.Vendor, error) {
	if !domain.ValidRejectionReason(reason) {
		return nil, domain.ErrRejectionReasonRequired
	}
	return s.transition(ctx, ports.VendorStatusUpdate{
		VendorID:        id,
		Status:          domain.VendorRejected,
		RejectionReason: reason,
	}, expectedVersion, ports.EventVendorRejected)
}

func (s *VendorService) transition(ctx context.Context, update ports.VendorStatusUpdate, expectedVersion int64, eventType string) (*domain.Vendor, error) {
	update.At = s.now()

	event, err := newOutboxEvent(eventType, ports.VendorStatusEvent{
		VendorID:        update.VendorID,
		Status:          string(update.Status),
		RejectionReason: update.RejectionReason,
	}, update.At)
	if err != nil {
		return nil, err
	}

	vendor, err := s.repo.UpdateVendorStatus(ctx, update, expectedVersion, event)
	if err != nil {
		log.Printf("vendor service: failed to set vendor %s to %s: %v", update.VendorID, update.Status, err)
		return nil, err
	}
	return vendor, nil
}
