package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fusiongear-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore implements Store on top of gorm.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// AutoMigrate creates or updates the tables backing the store.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.Invoice{},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", strings.ToLower(user.Email)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	user.Email = strings.ToLower(user.Email)
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error
	return user, translate(err)
}

func (s *GormStore) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return user, translate(err)
}

func (s *GormStore) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return translate(s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).Update("last_login", at).Error)
}

func (s *GormStore) CreateCustomer(ctx context.Context, customer *models.CustomerProfile) error {
	return translate(s.db.WithContext(ctx).Create(customer).Error)
}

func (s *GormStore) GetCustomer(ctx context.Context, id uuid.UUID) (models.CustomerProfile, error) {
	var customer models.CustomerProfile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	return customer, translate(err)
}

func (s *GormStore) ListCustomers(ctx context.Context) ([]models.CustomerProfile, error) {
	var customers []models.CustomerProfile
	err := s.db.WithContext(ctx).Order("name").Find(&customers).Error
	return customers, err
}

func (s *GormStore) UpdateCustomer(ctx context.Context, customer *models.CustomerProfile) error {
	result := s.db.WithContext(ctx).Model(customer).Select(
		"name", "phone", "address", "bike_model", "bike_number", "km_reading", "fuel_level",
	).Updates(customer)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CustomerProfile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FindCustomersByBikeNumber(ctx context.Context, bikeNumber string) ([]models.CustomerProfile, error) {
	var customers []models.CustomerProfile
	err := s.db.WithContext(ctx).
		Where("UPPER(REPLACE(bike_number, ' ', '')) = ?", normalizeBikeNumber(bikeNumber)).
		Find(&customers).Error
	return customers, err
}

func normalizeBikeNumber(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}

func (s *GormStore) CreateInvoice(ctx context.Context, record models.ServiceRecord) (models.Invoice, error) {
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
	if err := s.db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return models.Invoice{}, fmt.Errorf("create invoice: %w", translate(err))
	}
	return invoice, nil
}

func (s *GormStore) GetInvoice(ctx context.Context, id string) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error
	return invoice, translate(err)
}

func (s *GormStore) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (s *GormStore) ListPendingInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).Where("status = ?", models.StatusPending).
		Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (s *GormStore) ListInvoicesByCustomers(ctx context.Context, customerIDs []uuid.UUID) ([]models.Invoice, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).Where("customer_id IN ?", customerIDs).
		Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

func (s *GormStore) ListInvoicesSince(ctx context.Context, since int64) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).Where("created_at >= ?", since).
		Order("created_at DESC").Find(&invoices).Error
	return invoices, err
}

// UpdateInvoiceStatus only ever moves an invoice forward; see
// models.CanTransition.
func (s *GormStore) UpdateInvoiceStatus(ctx context.Context, id, status string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Where("id = ?", id).First(&invoice).Error; err != nil {
			return translate(err)
		}
		if !models.CanTransition(invoice.Status, status) {
			return fmt.Errorf("%w: %s to %s", models.ErrInvalidStatusTransition, invoice.Status, status)
		}
		return tx.Model(&models.Invoice{}).Where("id = ?", id).
			Update("status", strings.ToLower(status)).Error
	})
}

func (s *GormStore) UpdateServiceRecord(ctx context.Context, id string, record models.ServiceRecord) error {
	result := s.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).
		Select("*").Omit("ID", "Status", "CreatedAt").
		Updates(models.Invoice{CustomerID: record.CustomerID, ServiceRecord: record})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
