package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

type WalletService struct {
	parents ports.ParentRepository
	now     func() time.Time
}

var _ ports.WalletService = (*WalletService)(nil)

func NewWalletService(parents ports.ParentRepository) *WalletService {
	return &WalletService{
		parents: parents,
		now:     time.Now,
	}
}

func (s *WalletService) GetWallet(ctx context.Context, parentID string) (*ports.WalletView, error) {
	parent, err := s.parents.GetParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return &ports.WalletView{
		Parent:    *parent,
		LedgerSum: domain.LedgerSum(parent.Transactions),
	}, nil
}

// Recharge credits the wallet. Invalid amounts and categories are rejected
// before the repository is called. The balance increment happens in the
// store, so concurrent recharges add up instead of overwriting each other.
func (s *WalletService) Recharge(ctx context.Context, parentID, amount, description, category string) (*ports.WalletView, error) {
	value, err := domain.ParseRechargeAmount(amount)
	if err != nil {
		return nil, err
	}
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = domain.DefaultRechargeDescription
	}

	now := s.now()
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	tx := domain.WalletTransaction{
		ID:          id.String(),
		Amount:      value,
		Type:        domain.WalletTxRecharge,
		Date:        now,
		Description: description,
		Category:    cat,
		Status:      domain.WalletTxCompleted,
	}

	event, err := newOutboxEvent(ports.EventWalletRecharged, ports.WalletRechargedEvent{
		ParentID:      parentID,
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Category:      string(tx.Category),
	}, now)
	if err != nil {
		return nil, err
	}

	parent, err := s.parents.ApplyRecharge(ctx, parentID, tx, event)
	if err != nil {
		log.Printf("wallet service: recharge for parent %s failed: %v", parentID, err)
		return nil, err
	}

	return &ports.WalletView{
		Parent:    *parent,
		LedgerSum: domain.LedgerSum(parent.Transactions),
	}, nil
}
