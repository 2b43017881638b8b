// Package mocks provides in-memory implementations of the port interfaces
// with call tracking and error injection for tests.
package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

// MockVendorRepository implements ports.VendorRepository.
type MockVendorRepository struct {
	mu sync.RWMutex

	vendors map[string]*domain.Vendor
	order   []string
	Events  []ports.OutboxEvent

	// Call tracking
	ListCalls   int
	CreateCalls []domain.Vendor
	UpdateCalls []ports.VendorStatusUpdate

	// Error injection
	ListError   error
	GetError    error
	CreateError error
	UpdateError error
}

var _ ports.VendorRepository = (*MockVendorRepository)(nil)

func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{
		vendors: make(map[string]*domain.Vendor),
	}
}

// SeedVendor adds a vendor for test setup.
func (m *MockVendorRepository) SeedVendor(v domain.Vendor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vendors[v.ID]; !ok {
		m.order = append(m.order, v.ID)
	}
	m.vendors[v.ID] = &v
}

func (m *MockVendorRepository) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}

	out := make([]domain.Vendor, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.vendors[id])
	}
	return out, nil
}

func (m *MockVendorRepository) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	v, ok := m.vendors[id]
	if !ok {
		return nil, domain.ErrVendorNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *MockVendorRepository) CreateVendor(ctx context.Context, vendor domain.Vendor, event ports.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, vendor)
	if m.CreateError != nil {
		return m.CreateError
	}
	if vendor.PasswordHash != "" {
		for _, existing := range m.vendors {
			if existing.PasswordHash != "" && strings.EqualFold(existing.Email, vendor.Email) {
				return domain.ErrEmailTaken
			}
		}
	}

	m.vendors[vendor.ID] = &vendor
	m.order = append(m.order, vendor.ID)
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockVendorRepository) UpdateVendorStatus(ctx context.Context, update ports.VendorStatusUpdate, expectedVersion int64, event ports.OutboxEvent) (*domain.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls = append(m.UpdateCalls, update)
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	v, ok := m.vendors[update.VendorID]
	if !ok {
		return nil, domain.ErrVendorNotFound
	}
	if expectedVersion > 0 && v.Version != expectedVersion {
		return nil, domain.ErrVersionConflict
	}

	at := update.At
	v.Status = update.Status
	switch update.Status {
	case domain.VendorApproved:
		v.ApprovedAt = &at
	case domain.VendorRejected:
		v.RejectedAt = &at
		v.RejectionReason = update.RejectionReason
	}
	v.Version++
	m.Events = append(m.Events, event)

	cp := *v
	return &cp, nil
}

// GetEvents returns a copy of the outbox events written so far.
func (m *MockVendorRepository) GetEvents() []ports.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]ports.OutboxEvent, len(m.Events))
	copy(events, m.Events)
	return events
}

// MockParentRepository implements ports.ParentRepository.
type MockParentRepository struct {
	mu sync.RWMutex

	parents map[string]*domain.Parent
	Events  []ports.OutboxEvent

	CreateCalls   []domain.Parent
	RechargeCalls []domain.WalletTransaction

	CreateError   error
	GetError      error
	RechargeError error
}

var _ ports.ParentRepository = (*MockParentRepository)(nil)

func NewMockParentRepository() *MockParentRepository {
	return &MockParentRepository{
		parents: make(map[string]*domain.Parent),
	}
}

func (m *MockParentRepository) SeedParent(p domain.Parent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parents[p.ID] = &p
}

func (m *MockParentRepository) CreateParent(ctx context.Context, parent domain.Parent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, parent)
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, existing := range m.parents {
		if strings.EqualFold(existing.Email, parent.Email) {
			return domain.ErrEmailTaken
		}
	}
	m.parents[parent.ID] = &parent
	return nil
}

func (m *MockParentRepository) GetParent(ctx context.Context, id string) (*domain.Parent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	p, ok := m.parents[id]
	if !ok {
		return nil, domain.ErrParentNotFound
	}
	cp := *p
	cp.Transactions = append([]domain.WalletTransaction(nil), p.Transactions...)
	return &cp, nil
}

func (m *MockParentRepository) ApplyRecharge(ctx context.Context, parentID string, tx domain.WalletTransaction, event ports.OutboxEvent) (*domain.Parent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RechargeCalls = append(m.RechargeCalls, tx)
	if m.RechargeError != nil {
		return nil, m.RechargeError
	}

	p, ok := m.parents[parentID]
	if !ok {
		return nil, domain.ErrParentNotFound
	}
	p.WalletBalance += tx.Amount
	p.Transactions = append(p.Transactions, tx)
	m.Events = append(m.Events, event)

	cp := *p
	cp.Transactions = append([]domain.WalletTransaction(nil), p.Transactions...)
	return &cp, nil
}

// MockAccountRepository implements ports.AccountRepository.
type MockAccountRepository struct {
	mu sync.RWMutex

	accounts map[string]*domain.Account

	FindCalls        []string
	CreateAdminCalls []domain.Admin

	FindError        error
	CreateAdminError error
}

var _ ports.AccountRepository = (*MockAccountRepository)(nil)

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func accountKey(role domain.Role, email string) string {
	return string(role) + ":" + email
}

func (m *MockAccountRepository) SeedAccount(a domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[accountKey(a.Role, a.Email)] = &a
}

func (m *MockAccountRepository) FindAccount(ctx context.Context, role domain.Role, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindCalls = append(m.FindCalls, email)
	if m.FindError != nil {
		return nil, m.FindError
	}
	a, ok := m.accounts[accountKey(role, email)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAccountRepository) CreateAdmin(ctx context.Context, admin domain.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateAdminCalls = append(m.CreateAdminCalls, admin)
	if m.CreateAdminError != nil {
		return m.CreateAdminError
	}
	m.accounts[accountKey(domain.RoleAdmin, admin.Email)] = &domain.Account{
		ID:           admin.ID,
		Email:        admin.Email,
		Role:         domain.RoleAdmin,
		DisplayName:  admin.Name,
		PasswordHash: admin.PasswordHash,
	}
	return nil
}
