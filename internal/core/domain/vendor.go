package domain

import (
	"strings"
	"time"
)

type VendorStatus string

const (
	VendorPending  VendorStatus = "pending"
	VendorApproved VendorStatus = "approved"
	VendorRejected VendorStatus = "rejected"
)

type Category string

const (
	CategoryBookstore  Category = "Bookstore"
	CategoryCanteen    Category = "Canteen"
	CategoryXerox      Category = "Xerox"
	CategoryStationery Category = "Stationery"
)

// Categories lists the vendor categories in dashboard order.
var Categories = []Category{CategoryBookstore, CategoryStationery, CategoryCanteen, CategoryXerox}

func ParseCategory(s string) (Category, error) {
	if s == "" {
		return "", nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

type VendorDocuments struct {
	BusinessID string `json:"business_id"`
	GovID      string `json:"gov_id"`
}

type Vendor struct {
	ID              string          `json:"id"`
	BusinessName    string          `json:"business_name"`
	BusinessID      string          `json:"business_id"`
	GovID           string          `json:"gov_id"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address"`
	UPIID           string          `json:"upi_id,omitempty"`
	Category        Category        `json:"category,omitempty"`
	Status          VendorStatus    `json:"status"`
	Documents       VendorDocuments `json:"documents"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time       `json:"submitted_at"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	Version         int64           `json:"version"`
	PasswordHash    string          `json:"-"`
}

// VendorDraft is the input for a new vendor application.
type VendorDraft struct {
	BusinessName string
	BusinessID   string
	GovID        string
	Email        string
	Phone        string
	Address      string
	UPIID        string
	Category     Category
	Documents    VendorDocuments
	PasswordHash string
}

// VendorFilter selects vendors for the approval queue. An empty Status or
// "all" matches every status.
type VendorFilter struct {
	Search string
	Status string
}

func (f VendorFilter) MatchesSearch(v Vendor) bool {
	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	for _, field := range []string{v.BusinessName, v.BusinessID, v.Email, v.Phone} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (f VendorFilter) MatchesStatus(v Vendor) bool {
	if f.Status == "" || f.Status == "all" {
		return true
	}
	return string(v.Status) == f.Status
}

func (f VendorFilter) Matches(v Vendor) bool {
	return f.MatchesSearch(v) && f.MatchesStatus(v)
}

// FilterVendors keeps the input order.
func FilterVendors(vendors []Vendor, f VendorFilter) []Vendor {
	out := make([]Vendor, 0, len(vendors))
	for _, v := range vendors {
		if f.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// ValidRejectionReason reports whether reason carries any non-blank text.
func ValidRejectionReason(reason string) bool {
	return strings.TrimSpace(reason) != ""
}
