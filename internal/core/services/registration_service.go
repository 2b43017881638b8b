package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

type RegistrationService struct {
	parents ports.ParentRepository
	vendors ports.VendorService
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

func NewRegistrationService(
	parents ports.ParentRepository,
	vendors ports.VendorService,
) *RegistrationService {
	return &RegistrationService{
		parents: parents,
		vendors: vendors,
	}
}

func checkPasswords(password, confirm string) (string, error) {
	if password != confirm {
		return "", domain.ErrPasswordMismatch
	}
	return HashPassword(password)
}

func (s *RegistrationService) RegisterParent(ctx context.Context, req ports.ParentRegistration) (string, error) {
	hash, err := checkPasswords(req.Password, req.ConfirmPassword)
	if err != nil {
		return "Registration failed", err
	}

	parent := domain.Parent{
		ID:            uuid.NewString(),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		ParentName:    req.ParentName,
		StudentName:   req.StudentName,
		StudentID:     req.StudentID,
		StudentRollNo: req.StudentRollNo,
		ParentPhone:   req.ParentPhone,
		WalletBalance: 0,
		CreatedAt:     time.Now(),
		PasswordHash:  hash,
	}

	if err := s.parents.CreateParent(ctx, parent); err != nil {
		return "Registration failed", err
	}

	return "Parent registered successfully", nil
}

// RegisterVendor submits a vendor application that can log in once created.
// The application starts pending like one added by an admin.
func (s *RegistrationService) RegisterVendor(ctx context.Context, req ports.VendorRegistration) (string, error) {
	hash, err := checkPasswords(req.Password, req.ConfirmPassword)
	if err != nil {
		return "Registration failed", err
	}

	draft := req.Draft
	draft.Email = strings.ToLower(strings.TrimSpace(req.Email))
	draft.PasswordHash = hash

	if _, err := s.vendors.CreateVendor(ctx, draft); err != nil {
		return "Registration failed", err
	}

	return "Vendor registration submitted for approval", nil
}
