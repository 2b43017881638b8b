package handler_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/handler"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/middleware"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/services"
	"github.com/AchilleasB/smart-campus-pay/campus-service/test/mocks"
)

const testPassword = "correct-horse"

type testEnv struct {
	router   http.Handler
	vendors  *mocks.MockVendorRepository
	parents  *mocks.MockParentRepository
	accounts *mocks.MockAccountRepository
	sessions *mocks.MockSessionStore
	source   *mocks.StaticTransactionSource
	redis    *mocks.MockRedisClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	env := &testEnv{
		vendors:  mocks.NewMockVendorRepository(),
		parents:  mocks.NewMockParentRepository(),
		accounts: mocks.NewMockAccountRepository(),
		sessions: mocks.NewMockSessionStore(),
		source: &mocks.StaticTransactionSource{Data: map[domain.Dataset][]domain.Transaction{
			domain.DatasetStudent: mocks.CreateTestTransactions(),
			domain.DatasetVendor:  mocks.CreateTestTransactions()[1:],
		}},
		redis: mocks.NewMockRedisClient(),
	}

	hash, err := services.HashPassword(testPassword)
	if err != nil {
		t.Fatal(err)
	}
	env.accounts.SeedAccount(domain.Account{ID: "admin-1", Email: "admin@campus.edu", Role: domain.RoleAdmin, DisplayName: "Admin", PasswordHash: hash})
	env.accounts.SeedAccount(domain.Account{ID: "parent-1", Email: "parent@campus.edu", Role: domain.RoleParent, DisplayName: "Parent", PasswordHash: hash})
	env.accounts.SeedAccount(domain.Account{ID: "vendor-1", Email: "vendor@campus.edu", Role: domain.RoleVendor, DisplayName: "Canteen", PasswordHash: hash})

	env.parents.SeedParent(mocks.CreateTestParent("parent-1", "STU001"))
	env.vendors.SeedVendor(mocks.CreateTestVendor("vendor-1", "Campus Canteen"))

	vendorService := services.NewVendorService(env.vendors)
	walletService := services.NewWalletService(env.parents)
	transactionService := services.NewTransactionService(env.source)

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(services.NewAuthService(env.accounts, env.sessions, key, time.Hour), time.Hour),
		Registration: handler.NewRegistrationHandler(services.NewRegistrationService(env.parents, vendorService)),
		Vendors:      handler.NewVendorHandler(vendorService),
		Transactions: handler.NewTransactionHandler(transactionService, walletService),
		Wallet:       handler.NewWalletHandler(walletService),
		Health:       handler.NewHealthHandler(nil, env.redis),
	}
	env.router = handler.NewRouter(handlers, middleware.NewAuthMiddleware(&key.PublicKey, env.sessions), []string{"http://localhost:3000"})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, role domain.Role, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/login", "", map[string]string{
		"user_type": string(role),
		"email":     email,
		"password":  testPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp handler.LoginResponse
	decode(t, rec, &resp)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.ErrorResponse
	decode(t, rec, &resp)
	return resp.Error
}

func assertLoginRedirect(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusUnauthorized || rec.Header().Get("Location") != "/login" {
		t.Errorf("expected login redirect, got %d location=%q", rec.Code, rec.Header().Get("Location"))
	}
}
