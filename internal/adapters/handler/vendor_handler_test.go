package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/handler"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/test/mocks"
)

func TestVendorHandler_List(t *testing.T) {
	env := newTestEnv(t)
	approved := mocks.CreateTestVendor("vendor-2", "Print Hub")
	approved.Status = domain.VendorApproved
	env.vendors.SeedVendor(approved)
	token := env.login(t, domain.RoleAdmin, "admin@campus.edu")

	tests := []struct {
		query    string
		expected int
	}{
		{"", 2},
		{"?status=all", 2},
		{"?status=approved", 1},
		{"?search=print", 1},
		{"?search=print&status=pending", 0},
		{"?search=BIZ-vendor-1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/admin/vendors"+tt.query, token, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			var resp handler.VendorListResponse
			decode(t, rec, &resp)
			if resp.Count != tt.expected || len(resp.Vendors) != tt.expected {
				t.Errorf("expected %d vendors, got %d", tt.expected, resp.Count)
			}
		})
	}

	rec := env.do(t, http.MethodGet, "/admin/vendors?status=archived", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestVendorHandler_ApproveTwice(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, domain.RoleAdmin, "admin@campus.edu")

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/admin/vendors/vendor-1/approve", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("approve %d: expected 200, got %d", i+1, rec.Code)
		}
		var v domain.Vendor
		decode(t, rec, &v)
		if v.Status != domain.VendorApproved || v.ApprovedAt == nil {
			t.Errorf("approve %d: unexpected vendor %+v", i+1, v)
		}
	}
}

func TestVendorHandler_Reject(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		expectedStatus int
		expectedError  string
		expectStore    bool
	}{
		{name: "with_reason", body: map[string]any{"reason": "Documents expired"}, expectedStatus: http.StatusOK, expectStore: true},
		{name: "blank_reason", body: map[string]any{"reason": "   "}, expectedStatus: http.StatusBadRequest, expectedError: "Please provide a reason for rejection"},
		{name: "no_body", body: nil, expectedStatus: http.StatusBadRequest, expectedError: "Please provide a reason for rejection"},
		{name: "negative_version", body: map[string]any{"reason": "x", "expected_version": -1}, expectedStatus: http.StatusBadRequest, expectedError: "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			token := env.login(t, domain.RoleAdmin, "admin@campus.edu")

			rec := env.do(t, http.MethodPost, "/admin/vendors/vendor-1/reject", token, tt.body)
			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedError != "" {
				if msg := errorMessage(t, rec); msg != tt.expectedError {
					t.Errorf("expected %q, got %q", tt.expectedError, msg)
				}
			}
			if stored := len(env.vendors.UpdateCalls) > 0; stored != tt.expectStore {
				t.Errorf("store called = %v, want %v", stored, tt.expectStore)
			}
			if tt.expectStore {
				var v domain.Vendor
				decode(t, rec, &v)
				if v.Status != domain.VendorRejected || v.RejectionReason != "Documents expired" {
					t.Errorf("unexpected vendor %+v", v)
				}
			}
		})
	}
}

func TestVendorHandler_DecisionErrors(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           any
		setup          func(*mocks.MockVendorRepository)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "unknown_vendor",
			path:           "/admin/vendors/missing/approve",
			expectedStatus: http.StatusNotFound,
			expectedError:  "Vendor not found",
		},
		{
			name:           "stale_version",
			path:           "/admin/vendors/vendor-1/approve",
			body:           map[string]any{"expected_version": 7},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "store_failure_on_approve",
			path:           "/admin/vendors/vendor-1/approve",
			setup:          func(m *mocks.MockVendorRepository) { m.UpdateError = errors.New("connection reset") },
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to approve vendor",
		},
		{
			name:           "store_failure_on_reject",
			path:           "/admin/vendors/vendor-1/reject",
			body:           map[string]any{"reason": "incomplete"},
			setup:          func(m *mocks.MockVendorRepository) { m.UpdateError = errors.New("connection reset") },
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Failed to reject vendor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.setup != nil {
				tt.setup(env.vendors)
			}
			token := env.login(t, domain.RoleAdmin, "admin@campus.edu")

			rec := env.do(t, http.MethodPost, tt.path, token, tt.body)
			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedError != "" {
				if msg := errorMessage(t, rec); msg != tt.expectedError {
					t.Errorf("expected %q, got %q", tt.expectedError, msg)
				}
			}
		})
	}
}

func TestVendorHandler_CreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, domain.RoleAdmin, "admin@campus.edu")

	rec := env.do(t, http.MethodPost, "/admin/vendors", token, map[string]any{
		"business_name": "Book Nook",
		"business_id":   "BIZ-300",
		"category":      "Bookstore",
		"documents":     map[string]string{"business_id": "https://docs/b.pdf"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Vendor
	decode(t, rec, &created)
	if created.Status != domain.VendorPending || created.Documents.BusinessID != "https://docs/b.pdf" {
		t.Errorf("unexpected vendor %+v", created)
	}

	rec = env.do(t, http.MethodGet, "/admin/vendors/"+created.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/admin/vendors", token, map[string]any{"business_name": "X", "category": "Pharmacy"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown category, got %d", rec.Code)
	}

	env.vendors.CreateError = errors.New("insert failed")
	rec = env.do(t, http.MethodPost, "/admin/vendors", token, map[string]any{"business_name": "Y"})
	if rec.Code != http.StatusInternalServerError || errorMessage(t, rec) != "Failed to add vendor" {
		t.Errorf("expected generic add failure, got %d", rec.Code)
	}
}

func TestVendorHandler_Profile(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, domain.RoleVendor, "vendor@campus.edu")

	rec := env.do(t, http.MethodGet, "/vendor/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var v domain.Vendor
	decode(t, rec, &v)
	if v.ID != "vendor-1" || v.Status != domain.VendorPending {
		t.Errorf("unexpected profile %+v", v)
	}
}
