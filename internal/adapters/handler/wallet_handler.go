package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/metrics"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/middleware"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

type WalletHandler struct {
	walletService ports.WalletService
}

func NewWalletHandler(wallets ports.WalletService) *WalletHandler {
	return &WalletHandler{walletService: wallets}
}

// AmountInput keeps the amount as typed. It accepts a JSON string or number.
type AmountInput string

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}
	*a = AmountInput(data)
	return nil
}

type RechargeRequest struct {
	Amount      AmountInput `json:"amount"`
	Description string      `json:"description" validate:"max=200"`
	Category    string      `json:"category"`
}

func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.LoginRequired(w)
		return
	}

	view, err := h.walletService.GetWallet(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrParentNotFound) {
			writeError(w, http.StatusNotFound, "Parent not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch wallet")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Recharge credits the caller's own wallet.
func (h *WalletHandler) Recharge(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.LoginRequired(w)
		return
	}

	var req RechargeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	view, err := h.walletService.Recharge(r.Context(), identity.UserID, string(req.Amount), req.Description, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			metrics.Recharges.WithLabelValues("invalid").Inc()
			writeError(w, http.StatusBadRequest, "Please enter a valid amount")
		case errors.Is(err, domain.ErrInvalidCategory):
			metrics.Recharges.WithLabelValues("invalid").Inc()
			writeError(w, http.StatusBadRequest, "Invalid category")
		case errors.Is(err, domain.ErrParentNotFound):
			metrics.Recharges.WithLabelValues("error").Inc()
			writeError(w, http.StatusNotFound, "Parent not found")
		default:
			metrics.Recharges.WithLabelValues("error").Inc()
			writeError(w, http.StatusInternalServerError, "Failed to recharge wallet")
		}
		return
	}

	metrics.Recharges.WithLabelValues("success").Inc()
	if amount, err := domain.ParseRechargeAmount(string(req.Amount)); err == nil {
		metrics.RechargeAmount.Add(amount)
	}
	writeJSON(w, http.StatusOK, view)
}
