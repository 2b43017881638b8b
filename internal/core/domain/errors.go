package domain

import "errors"

var (
	ErrVendorNotFound          = errors.New("vendor not found")
	ErrParentNotFound          = errors.New("parent not found")
	ErrAccountNotFound         = errors.New("account not found")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrPasswordMismatch        = errors.New("passwords do not match")
	ErrPasswordTooShort        = errors.New("password must be at least 8 characters")
	ErrInvalidAmount           = errors.New("please enter a valid amount")
	ErrInvalidCategory         = errors.New("invalid vendor category")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrVersionConflict         = errors.New("vendor was modified concurrently")
	ErrSessionNotFound         = errors.New("session not found")
	ErrUnsupportedRole         = errors.New("unsupported user type")
	ErrEmailTaken              = errors.New("email already registered")
)
