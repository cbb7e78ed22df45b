package models

import (
	"time"
)

// Notification is an in-app message about a domain event
type Notification struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Title            string     `gorm:"not null" json:"title"`
	Message          string     `gorm:"type:text;not null" json:"message"`
	NotificationType *string    `json:"notification_type,omitempty"`
	ReadAt           *time.Time `gorm:"index" json:"read_at,omitempty"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// Notification type constants
const (
	NotificationTypePaymentReceived = "payment_received"
	NotificationTypeInvoiceCreated  = "invoice_created"
	NotificationTypeInvoiceDue      = "invoice_due"
	NotificationTypeInvoiceOverdue  = "invoice_overdue"
	NotificationTypeEstimateStatus  = "estimate_status"
	NotificationTypeMilestoneDone   = "milestone_completed"
)

// IsRead returns true if the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// MarkAsRead sets the read timestamp
func (n *Notification) MarkAsRead() {
	now := time.Now()
	n.ReadAt = &now
}
