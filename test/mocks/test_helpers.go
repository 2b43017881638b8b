package mocks

import (
	"context"
	"time"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

// StaticTransactionSource serves fixed datasets.
type StaticTransactionSource struct {
	Data  map[domain.Dataset][]domain.Transaction
	Error error
	Calls int
}

var _ ports.TransactionSource = (*StaticTransactionSource)(nil)

func (s *StaticTransactionSource) Transactions(ctx context.Context, dataset domain.Dataset) ([]domain.Transaction, error) {
	s.Calls++
	if s.Error != nil {
		return nil, s.Error
	}
	return s.Data[dataset], nil
}

// CreateTestVendor returns a pending vendor with every field filled.
func CreateTestVendor(id, businessName string) domain.Vendor {
	return domain.Vendor{
		ID:           id,
		BusinessName: businessName,
		BusinessID:   "BIZ-" + id,
		GovID:        "GOV-" + id,
		Email:        id + "@vendors.campus.edu",
		Phone:        "98765" + id,
		Address:      "Block A, Main Campus",
		Category:     domain.CategoryCanteen,
		Status:       domain.VendorPending,
		Documents: domain.VendorDocuments{
			BusinessID: "https://docs.example.com/" + id + "/business.pdf",
			GovID:      "https://docs.example.com/" + id + "/gov.pdf",
		},
		SubmittedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		Version:     1,
	}
}

// CreateTestParent returns a parent with an empty wallet.
func CreateTestParent(id, studentID string) domain.Parent {
	return domain.Parent{
		ID:            id,
		Email:         id + "@parents.campus.edu",
		ParentName:    "Test Parent",
		StudentName:   "Test Student",
		StudentID:     studentID,
		StudentRollNo: "R-" + studentID,
		ParentPhone:   "9000000000",
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CreateTestTransactions returns the three-row example dataset.
func CreateTestTransactions() []domain.Transaction {
	return []domain.Transaction{
		{StudentID: "STU001", Category: "Bookstore", Item: "Notebook Set", Quantity: 2, PricePerUnit: 100, TotalAmount: 200, TransactionDate: "2024-01-15 10:30:00"},
		{StudentID: "STU002", Category: "Canteen", Item: "Lunch Combo", Quantity: 1, PricePerUnit: 150, TotalAmount: 150, TransactionDate: "2024-01-15 13:00:00"},
		{StudentID: "STU001", Category: "Canteen", Item: "Tea", Quantity: 5, PricePerUnit: 10, TotalAmount: 50, TransactionDate: "2024-01-16 16:45:00"},
	}
}
