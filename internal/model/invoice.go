package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "UNPAID"
	InvoicePaid   InvoiceStatus = "PAID"
)

// Invoice is one contract's share of a room's monthly price. The composite
// unique index makes (contract, month, year) idempotence a storage
// guarantee rather than an application pre-check.
type Invoice struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	ContractID int64           `gorm:"not null;uniqueIndex:idx_invoice_billing_cycle" json:"contract_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Month      int             `gorm:"not null;uniqueIndex:idx_invoice_billing_cycle" json:"month"`
	Year       int             `gorm:"not null;uniqueIndex:idx_invoice_billing_cycle" json:"year"`
	Status     InvoiceStatus   `gorm:"size:16;index;not null;default:UNPAID" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`

	// Associations
	Contract Contract `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
