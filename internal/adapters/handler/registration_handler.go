package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

type RegistrationHandler struct {
	registrationService ports.RegistrationService
}

func NewRegistrationHandler(registration ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registration}
}

type RegistrationRequest struct {
	UserType        string `json:"user_type" validate:"required,oneof=parent vendor"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`

	// parent
	ParentName    string `json:"parent_name" validate:"required_if=UserType parent"`
	StudentName   string `json:"student_name" validate:"required_if=UserType parent"`
	StudentID     string `json:"student_id" validate:"required_if=UserType parent"`
	StudentRollNo string `json:"student_roll_no"`
	ParentPhone   string `json:"parent_phone"`

	// vendor
	BusinessName string `json:"business_name" validate:"required_if=UserType vendor"`
	BusinessID   string `json:"business_id"`
	GovID        string `json:"gov_id"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	UPIID        string `json:"upi_id"`
	Category     string `json:"category" validate:"omitempty,oneof=Bookstore Canteen Xerox Stationery"`
}

type RegistrationResponse struct {
	Message string `json:"message"`
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var message string
	var err error

	switch domain.Role(req.UserType) {
	case domain.RoleParent:
		message, err = h.registrationService.RegisterParent(r.Context(), ports.ParentRegistration{
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			ParentName:      req.ParentName,
			StudentName:     req.StudentName,
			StudentID:       req.StudentID,
			StudentRollNo:   req.StudentRollNo,
			ParentPhone:     req.ParentPhone,
		})
	case domain.RoleVendor:
		message, err = h.registrationService.RegisterVendor(r.Context(), ports.VendorRegistration{
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			Draft: domain.VendorDraft{
				BusinessName: req.BusinessName,
				BusinessID:   req.BusinessID,
				GovID:        req.GovID,
				Phone:        req.Phone,
				Address:      req.Address,
				UPIID:        req.UPIID,
				Category:     domain.Category(req.Category),
			},
		})
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			writeError(w, http.StatusBadRequest, "Passwords do not match")
		case errors.Is(err, domain.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		case errors.Is(err, domain.ErrEmailTaken):
			writeError(w, http.StatusConflict, "Email already registered")
		default:
			log.Printf("registration handler: %v", err)
			writeError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, RegistrationResponse{Message: message})
}
