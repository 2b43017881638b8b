package handler

import (
	"net/http"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/metrics"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/middleware"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

type Handlers struct {
	Auth         *AuthHandler
	Registration *RegistrationHandler
	Vendors      *VendorHandler
	Transactions *TransactionHandler
	Wallet       *WalletHandler
	Health       *HealthHandler
}

var (
	adminOnly  = []domain.Role{domain.RoleAdmin}
	parentOnly = []domain.Role{domain.RoleParent}
	vendorOnly = []domain.Role{domain.RoleVendor}
)

// NewRouter registers every route. Protected routes are wrapped so that the
// handler never runs without a matching session.
func NewRouter(h Handlers, auth *middleware.AuthMiddleware, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /login", h.Auth.Login)
	mux.HandleFunc("POST /register", h.Registration.Register)
	mux.HandleFunc("POST /logout", auth.RequireSession(h.Auth.Logout))
	mux.HandleFunc("GET /session", auth.RequireSession(h.Auth.Session))

	mux.HandleFunc("GET /admin/vendors", auth.RequireRole(adminOnly, h.Vendors.List))
	mux.HandleFunc("POST /admin/vendors", auth.RequireRole(adminOnly, h.Vendors.Create))
	mux.HandleFunc("GET /admin/vendors/{id}", auth.RequireRole(adminOnly, h.Vendors.Get))
	mux.HandleFunc("POST /admin/vendors/{id}/approve", auth.RequireRole(adminOnly, h.Vendors.Approve))
	mux.HandleFunc("POST /admin/vendors/{id}/reject", auth.RequireRole(adminOnly, h.Vendors.Reject))
	mux.HandleFunc("GET /admin/transactions", auth.RequireRole(adminOnly, h.Transactions.List))
	mux.HandleFunc("GET /admin/analytics", auth.RequireRole(adminOnly, h.Transactions.Analytics))
	mux.HandleFunc("GET /admin/students", auth.RequireRole(adminOnly, h.Transactions.Students))

	mux.HandleFunc("GET /parent/wallet", auth.RequireRole(parentOnly, h.Wallet.Get))
	mux.HandleFunc("POST /parent/wallet/recharge", auth.RequireRole(parentOnly, h.Wallet.Recharge))
	mux.HandleFunc("GET /parent/expenses", auth.RequireRole(parentOnly, h.Transactions.ParentExpenses))

	mux.HandleFunc("GET /vendor/profile", auth.RequireRole(vendorOnly, h.Vendors.Profile))
	mux.HandleFunc("GET /vendor/transactions", auth.RequireRole(vendorOnly, h.Transactions.VendorTransactions))

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.RequestLogger(handler)
	handler = middleware.CORSMiddleware(corsOrigins)(handler)
	return handler
}
