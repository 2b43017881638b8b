package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/metrics"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/middleware"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

type VendorHandler struct {
	vendorService ports.VendorService
}

func NewVendorHandler(vendors ports.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendors}
}

type CreateVendorRequest struct {
	BusinessName string `json:"business_name" validate:"required"`
	BusinessID   string `json:"business_id"`
	GovID        string `json:"gov_id"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	UPIID        string `json:"upi_id"`
	Category     string `json:"category" validate:"omitempty,oneof=Bookstore Canteen Xerox Stationery"`
	Documents    struct {
		BusinessID string `json:"business_id"`
		GovID      string `json:"gov_id"`
	} `json:"documents"`
}

// DecisionRequest is the optional body of approve and reject. A zero
// expected_version skips the concurrency check.
type DecisionRequest struct {
	Reason          string `json:"reason"`
	ExpectedVersion int64  `json:"expected_version" validate:"gte=0"`
}

type VendorListResponse struct {
	Vendors []domain.Vendor `json:"vendors"`
	Count   int             `json:"count"`
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.VendorFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}
	switch filter.Status {
	case "", "all", string(domain.VendorPending), string(domain.VendorApproved), string(domain.VendorRejected):
	default:
		writeError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	vendors, err := h.vendorService.ListVendors(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch vendors")
		return
	}
	writeJSON(w, http.StatusOK, VendorListResponse{Vendors: vendors, Count: len(vendors)})
}

func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.vendorService.GetVendor(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrVendorNotFound) {
			writeError(w, http.StatusNotFound, "Vendor not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch vendor")
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVendorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	vendor, err := h.vendorService.CreateVendor(r.Context(), domain.VendorDraft{
		BusinessName: req.BusinessName,
		BusinessID:   req.BusinessID,
		GovID:        req.GovID,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		UPIID:        req.UPIID,
		Category:     domain.Category(req.Category),
		Documents: domain.VendorDocuments{
			BusinessID: req.Documents.BusinessID,
			GovID:      req.Documents.GovID,
		},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to add vendor")
		return
	}
	writeJSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDecision(w, r)
	if !ok {
		return
	}

	vendor, err := h.vendorService.Approve(r.Context(), r.PathValue("id"), req.ExpectedVersion)
	if err != nil {
		metrics.VendorDecisions.WithLabelValues("approve", "error").Inc()
		writeDecisionError(w, err, "Failed to approve vendor")
		return
	}
	metrics.VendorDecisions.WithLabelValues("approve", "success").Inc()
	writeJSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeDecision(w, r)
	if !ok {
		return
	}

	vendor, err := h.vendorService.Reject(r.Context(), r.PathValue("id"), req.Reason, req.ExpectedVersion)
	if err != nil {
		metrics.VendorDecisions.WithLabelValues("reject", "error").Inc()
		writeDecisionError(w, err, "Failed to reject vendor")
		return
	}
	metrics.VendorDecisions.WithLabelValues("reject", "success").Inc()
	writeJSON(w, http.StatusOK, vendor)
}

// Profile returns the logged-in vendor's own application, including its
// status and any rejection reason.
func (h *VendorHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.LoginRequired(w)
		return
	}
	vendor, err := h.vendorService.GetVendor(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrVendorNotFound) {
			writeError(w, http.StatusNotFound, "Vendor not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch vendor")
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

// decodeDecision accepts an empty body.
func decodeDecision(w http.ResponseWriter, r *http.Request) (DecisionRequest, bool) {
	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return req, false
	}
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return req, false
	}
	return req, true
}

func writeDecisionError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrRejectionReasonRequired):
		writeError(w, http.StatusBadRequest, "Please provide a reason for rejection")
	case errors.Is(err, domain.ErrVendorNotFound):
		writeError(w, http.StatusNotFound, "Vendor not found")
	case errors.Is(err, domain.ErrVersionConflict):
		writeError(w, http.StatusConflict, "Vendor was changed by someone else, reload and try again")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
