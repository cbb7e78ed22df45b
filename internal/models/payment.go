package models

import (
	"time"
)

// Payment is an append-only ledger entry applied against an invoice. Payments
// are never edited or deleted once recorded; corrections are made by issuing
// further invoices.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InvoiceID     uint      `gorm:"not null;index" json:"invoice_id"`
	ReceiptNumber string    `gorm:"not null;uniqueIndex" json:"receipt_number"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentDate   time.Time `gorm:"type:date;not null;index" json:"payment_date"`
	PaymentMode   string    `gorm:"not null" json:"payment_mode"`
	Reference     string    `json:"reference"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`

	// Associations
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
