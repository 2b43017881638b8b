package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/middleware"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/analytics"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

type TransactionHandler struct {
	transactions ports.TransactionService
	wallets      ports.WalletService
}

func NewTransactionHandler(transactions ports.TransactionService, wallets ports.WalletService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, wallets: wallets}
}

type TransactionListResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	Categories   []string             `json:"categories"`
}

type DatasetResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Report       *analytics.Report    `json:"report"`
}

// queryFromRequest maps the table controls. ok is false for unknown sort
// settings.
func queryFromRequest(r *http.Request) (analytics.Query, bool) {
	v := r.URL.Query()
	return analytics.Query{
		Search:    v.Get("search"),
		Category:  v.Get("category"),
		StudentID: v.Get("student"),
		SortField: analytics.SortField(v.Get("sort")),
		Direction: analytics.SortDirection(v.Get("direction")),
	}.Normalize()
}

// List serves the admin transactions table over the student dataset.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q, ok := queryFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sort field or direction")
		return
	}

	txs, err := h.transactions.Query(r.Context(), domain.DatasetStudent, q)
	if err != nil {
		log.Printf("transaction handler: query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	writeJSON(w, http.StatusOK, TransactionListResponse{
		Transactions: txs,
		Count:        len(txs),
		Categories:   analytics.UniqueCategories(txs),
	})
}

func (h *TransactionHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	report, err := h.transactions.Report(r.Context(), domain.DatasetStudent)
	if err != nil {
		log.Printf("transaction handler: report failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *TransactionHandler) Students(w http.ResponseWriter, r *http.Request) {
	report, err := h.transactions.Report(r.Context(), domain.DatasetStudent)
	if err != nil {
		log.Printf("transaction handler: report failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch students")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"students": report.Students})
}

// ParentExpenses shows only the purchases of the parent's own student.
func (h *TransactionHandler) ParentExpenses(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		middleware.LoginRequired(w)
		return
	}
	q, ok := queryFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sort field or direction")
		return
	}

	wallet, err := h.wallets.GetWallet(r.Context(), identity.UserID)
	if errors.Is(err, domain.ErrParentNotFound) {
		writeError(w, http.StatusNotFound, "Parent not found")
		return
	}
	if err != nil {
		log.Printf("transaction handler: wallet lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	studentID := wallet.Parent.StudentID

	txs, err := h.transactions.StudentQuery(r.Context(), domain.DatasetStudent, studentID, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	report, err := h.transactions.StudentReport(r.Context(), domain.DatasetStudent, studentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	writeJSON(w, http.StatusOK, DatasetResponse{Transactions: txs, Report: report})
}

// VendorTransactions serves the vendor dashboard over the vendor dataset.
func (h *TransactionHandler) VendorTransactions(w http.ResponseWriter, r *http.Request) {
	q, ok := queryFromRequest(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid sort field or direction")
		return
	}

	txs, err := h.transactions.Query(r.Context(), domain.DatasetVendor, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	report, err := h.transactions.Report(r.Context(), domain.DatasetVendor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	writeJSON(w, http.StatusOK, DatasetResponse{Transactions: txs, Report: report})
}
