package services

import (
	"context"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/analytics"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

// TransactionService serves dashboard views over a dataset. Every call loads
// the complete dataset and aggregates it in process.
type TransactionService struct {
	source ports.TransactionSource
}

var _ ports.TransactionService = (*TransactionService)(nil)

func NewTransactionService(source ports.TransactionSource) *TransactionService {
	return &TransactionService{source: source}
}

func (s *TransactionService) Query(ctx context.Context, dataset domain.Dataset, q analytics.Query) ([]domain.Transaction, error) {
	txs, err := s.source.Transactions(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return analytics.Apply(txs, q), nil
}

func (s *TransactionService) Report(ctx context.Context, dataset domain.Dataset) (*analytics.Report, error) {
	txs, err := s.source.Transactions(ctx, dataset)
	if err != nil {
		return nil, err
	}
	report := analytics.BuildReport(txs)
	return &report, nil
}

// StudentReport aggregates one student's purchases. An empty studentID
// matches nothing.
func (s *TransactionService) StudentReport(ctx context.Context, dataset domain.Dataset, studentID string) (*analytics.Report, error) {
	var own []domain.Transaction
	if studentID != "" {
		txs, err := s.source.Transactions(ctx, dataset)
		if err != nil {
			return nil, err
		}
		own = analytics.Filter(txs, analytics.Query{StudentID: studentID})
	}
	report := analytics.BuildReport(own)
	return &report, nil
}

func (s *TransactionService) StudentQuery(ctx context.Context, dataset domain.Dataset, studentID string, q analytics.Query) ([]domain.Transaction, error) {
	if studentID == "" {
		return []domain.Transaction{}, nil
	}
	q.StudentID = studentID
	return s.Query(ctx, dataset, q)
}
