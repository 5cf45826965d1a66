package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"fusiongear-backend/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used when no database is configured
// and in tests. It runs the same model hooks gorm would.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]models.User
	customers map[uuid.UUID]models.CustomerProfile
	invoices  map[string]models.Invoice
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uuid.UUID]models.User),
		customers: make(map[uuid.UUID]models.CustomerProfile),
		invoices:  make(map[string]models.Invoice),
		now:       time.Now,
	}
}

// WithClock replaces the store's clock. It returns s for chaining.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	user.IsActive = true
	if user.Role == "" {
		user.Role = "admin"
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	s.users[id] = u
	return nil
}

func (s *MemoryStore) CreateCustomer(_ context.Context, customer *models.CustomerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := customer.BeforeCreate(nil); err != nil {
		return err
	}
	if _, ok := s.customers[customer.ID]; ok {
		return ErrDuplicate
	}
	now := s.now()
	customer.CreatedAt, customer.UpdatedAt = now, now
	s.customers[customer.ID] = *customer
	return nil
}

func (s *MemoryStore) GetCustomer(_ context.Context, id uuid.UUID) (models.CustomerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return models.CustomerProfile{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) ListCustomers(_ context.Context) ([]models.CustomerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CustomerProfile, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) UpdateCustomer(_ context.Context, customer *models.CustomerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.customers[customer.ID]
	if !ok {
		return ErrNotFound
	}
	customer.CreatedByUserID = existing.CreatedByUserID
	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = s.now()
	s.customers[customer.ID] = *customer
	return nil
}

func (s *MemoryStore) DeleteCustomer(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[id]; !ok {
		return ErrNotFound
	}
	delete(s.customers, id)
	return nil
}

func (s *MemoryStore) FindCustomersByBikeNumber(_ context.Context, bikeNumber string) ([]models.CustomerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want := normalizeBikeNumber(bikeNumber)
	var out []models.CustomerProfile
	for _, c := range s.customers {
		if normalizeBikeNumber(c.BikeNumber) == want {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) CreateInvoice(_ context.Context, record models.ServiceRecord) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if record.CreatedAt == 0 {
		record.CreatedAt = now.UnixNano()
	}
	invoice := models.Invoice{
		ID:            NewInvoiceID(now),
		Status:        models.StatusPending,
		CreatedAt:     record.CreatedAt,
		CustomerID:    record.CustomerID,
		ServiceRecord: record,
	}
	if _, ok := s.invoices[invoice.ID]; ok {
		return models.Invoice{}, fmt.Errorf("create invoice: %w", ErrDuplicate)
	}
	s.invoices[invoice.ID] = invoice
	return invoice, nil
}

func (s *MemoryStore) GetInvoice(_ context.Context, id string) (models.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	if !ok {
		return models.Invoice{}, ErrNotFound
	}
	return inv, nil
}

func (s *MemoryStore) ListInvoices(_ context.Context) ([]models.Invoice, error) {
	return s.filterInvoices(func(models.Invoice) bool { return true }), nil
}

func (s *MemoryStore) ListPendingInvoices(_ context.Context) ([]models.Invoice, error) {
	return s.filterInvoices(func(inv models.Invoice) bool { return !inv.IsPaid() }), nil
}

func (s *MemoryStore) ListInvoicesByCustomers(_ context.Context, customerIDs []uuid.UUID) ([]models.Invoice, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}
	want := make(map[uuid.UUID]bool, len(customerIDs))
	for _, id := range customerIDs {
		want[id] = true
	}
	return s.filterInvoices(func(inv models.Invoice) bool { return want[inv.CustomerID] }), nil
}

func (s *MemoryStore) ListInvoicesSince(_ context.Context, since int64) ([]models.Invoice, error) {
	return s.filterInvoices(func(inv models.Invoice) bool { return inv.CreatedAt >= since }), nil
}

// filterInvoices returns matching invoices newest first.
func (s *MemoryStore) filterInvoices(keep func(models.Invoice) bool) []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Invoice
	for _, inv := range s.invoices {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *MemoryStore) UpdateInvoiceStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return ErrNotFound
	}
	if !models.CanTransition(inv.Status, status) {
		return fmt.Errorf("%w: %s to %s", models.ErrInvalidStatusTransition, inv.Status, status)
	}
	inv.Status = strings.ToLower(status)
	s.invoices[id] = inv
	return nil
}

func (s *MemoryStore) UpdateServiceRecord(_ context.Context, id string, record models.ServiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invoices[id]
	if !ok {
		return ErrNotFound
	}
	inv.CustomerID = record.CustomerID
	inv.ServiceRecord = record
	s.invoices[id] = inv
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*GormStore)(nil)
)
