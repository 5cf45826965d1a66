// Package store persists customers, operators and invoices.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"fusiongear-backend/billing"
	"fusiongear-backend/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store is the persistence surface the HTTP layer and jobs depend on.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	CreateCustomer(ctx context.Context, customer *models.CustomerProfile) error
	GetCustomer(ctx context.Context, id uuid.UUID) (models.CustomerProfile, error)
	ListCustomers(ctx context.Context) ([]models.CustomerProfile, error)
	UpdateCustomer(ctx context.Context, customer *models.CustomerProfile) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	FindCustomersByBikeNumber(ctx context.Context, bikeNumber string) ([]models.CustomerProfile, error)

	// CreateInvoice assigns the invoice ID and persists a pending invoice
	// for record.
	CreateInvoice(ctx context.Context, record models.ServiceRecord) (models.Invoice, error)
	GetInvoice(ctx context.Context, id string) (models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	ListPendingInvoices(ctx context.Context) ([]models.Invoice, error)
	ListInvoicesByCustomers(ctx context.Context, customerIDs []uuid.UUID) ([]models.Invoice, error)
	ListInvoicesSince(ctx context.Context, since int64) ([]models.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id, status string) error
	UpdateServiceRecord(ctx context.Context, id string, record models.ServiceRecord) error
}

// NewInvoiceID returns an invoice number of the form INV-20261019-1A2B3C,
// dated in shop time.
func NewInvoiceID(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:6])
	return "INV-" + now.In(billing.DisplayZone).Format("20060102") + "-" + suffix
}
