package models

import (
	"errors"
	"strings"

	"fusiongear-backend/billing"

	"github.com/google/uuid"
)

// Invoice statuses. An invoice only ever moves from pending to paid.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

var ErrInvalidStatusTransition = errors.New("invalid invoice status transition")

// ServiceRecord is a priced bill as persisted. Amounts are whole rupees.
type ServiceRecord struct {
	CustomerID uuid.UUID                `gorm:"type:uuid;index" json:"customerId"`
	Services   billing.ServiceSelection `gorm:"embedded" json:"serviceType"`
	Concierge  string                   `json:"concierge"`

	Subtotal       int64 `json:"subtotal"`
	SparePartsCost int64 `json:"sparePartsCost"`
	LabourCharges  int64 `json:"labourCharges"`
	Discount       int64 `json:"discount"`
	GSTAmount      int64 `json:"gstAmount"`
	Total          int64 `json:"total"`
	GSTFlag        bool  `json:"gstFlag"`

	CreatedAt int64 `gorm:"autoCreateTime:nano" json:"createdAt"` // Unix nanoseconds
}

// NewServiceRecord builds the record for a calculated bill.
func NewServiceRecord(customerID uuid.UUID, concierge string, in billing.Input, res billing.Result, createdAt int64) ServiceRecord {
	return ServiceRecord{
		CustomerID:     customerID,
		Services:       in.Services,
		Concierge:      concierge,
		Subtotal:       res.Subtotal,
		SparePartsCost: res.SparePartsCost,
		LabourCharges:  res.LabourCharges,
		Discount:       res.Discount,
		GSTAmount:      res.GSTAmount,
		Total:          res.Total,
		GSTFlag:        in.GSTEnabled,
		CreatedAt:      createdAt,
	}
}

// Invoice wraps a service record with its store-assigned identifier and
// payment status.
type Invoice struct {
	ID            string        `gorm:"primaryKey" json:"id"`
	Status        string        `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
	CreatedAt     int64         `gorm:"autoCreateTime:nano;index" json:"createdAt"` // Unix nanoseconds
	CustomerID    uuid.UUID     `gorm:"type:uuid;index;not null" json:"customerId"`
	ServiceRecord ServiceRecord `gorm:"embedded;embeddedPrefix:service_" json:"serviceRecord"`
}

func (inv *Invoice) IsPaid() bool {
	return strings.EqualFold(inv.Status, StatusPaid)
}

// MarkPaid moves a pending invoice to paid. Marking a paid invoice again is
// a no-op.
func (inv *Invoice) MarkPaid() error {
	switch strings.ToLower(inv.Status) {
	case StatusPaid:
		return nil
	case StatusPending, "":
		inv.Status = StatusPaid
		return nil
	default:
		return ErrInvalidStatusTransition
	}
}

// CanTransition reports whether an invoice in status from may be set to to.
func CanTransition(from, to string) bool {
	from, to = strings.ToLower(from), strings.ToLower(to)
	if from == to {
		return to == StatusPending || to == StatusPaid
	}
	return from == StatusPending && to == StatusPaid
}
