package models

import (
	"time"
)

// Invoice is a billing document for a project. DueDate is the invoice date
// plus the project's payment terms in calendar days. Balance is always
// total_amount - paid_amount; an overpayment leaves it negative with status
// Paid rather than being clamped.
type Invoice struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InvoiceNumber string    `gorm:"not null;uniqueIndex" json:"invoice_number"`
	ProjectID     uint      `gorm:"not null;index" json:"project_id"`
	MilestoneID   *uint     `gorm:"index" json:"milestone_id,omitempty"`
	IsAdvance     bool      `gorm:"default:false" json:"is_advance"`
	ClientID      uint      `gorm:"not null;index" json:"client_id"`
	InvoiceDate   time.Time `gorm:"type:date;not null" json:"invoice_date"`
	DueDate       time.Time `gorm:"type:date;not null;index" json:"due_date"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	TaxRate       float64   `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	TaxAmount     float64   `gorm:"type:decimal(15,2);not null" json:"tax_amount"`
	TotalAmount   float64   `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaidAmount    float64   `gorm:"type:decimal(15,2);default:0" json:"paid_amount"`
	Balance       float64   `gorm:"type:decimal(15,2);not null" json:"balance"`
	Status        string    `gorm:"default:Unpaid;not null;index" json:"status"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Project   Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Client    Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Milestone Milestone `gorm:"foreignKey:MilestoneID" json:"milestone,omitempty"`
	Payments  []Payment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// TableName specifies the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}

// Invoice status constants
const (
	InvoiceStatusUnpaid        = "Unpaid"
	InvoiceStatusPartiallyPaid = "Partially Paid"
	InvoiceStatusPaid          = "Paid"
)

// IsPaid returns true if the invoice has been fully settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice is unsettled past its due date
func (i *Invoice) IsOverdue() bool {
	return i.Status != InvoiceStatusPaid && time.Now().After(i.DueDate)
}

// OverdueDays returns the number of days past the due date
func (i *Invoice) OverdueDays() int {
	if !i.IsOverdue() {
		return 0
	}
	return int(time.Since(i.DueDate).Hours() / 24)
}

// InvoiceResponse is the JSON response format for invoices
type InvoiceResponse struct {
	ID            uint      `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	ProjectID     uint      `json:"project_id"`
	ProjectName   string    `json:"project_name,omitempty"`
	MilestoneID   *uint     `json:"milestone_id,omitempty"`
	MilestoneName string    `json:"milestone_name,omitempty"`
	IsAdvance     bool      `json:"is_advance"`
	ClientID      uint      `json:"client_id"`
	ClientName    string    `json:"client_name,omitempty"`
	InvoiceDate   time.Time `json:"invoice_date"`
	DueDate       time.Time `json:"due_date"`
	Amount        float64   `json:"amount"`
	TaxRate       float64   `json:"tax_rate"`
	TaxAmount     float64   `json:"tax_amount"`
	TotalAmount   float64   `json:"total_amount"`
	PaidAmount    float64   `json:"paid_amount"`
	Balance       float64   `json:"balance"`
	Status        string    `json:"status"`
	OverdueDays   int       `json:"overdue_days"`
	IsOverpayment bool      `json:"is_overpayment"`
}

// ToResponse converts Invoice to InvoiceResponse
func (i *Invoice) ToResponse() InvoiceResponse {
	resp := InvoiceResponse{
		ID:            i.ID,
		InvoiceNumber: i.InvoiceNumber,
		ProjectID:     i.ProjectID,
		MilestoneID:   i.MilestoneID,
		IsAdvance:     i.IsAdvance,
		ClientID:      i.ClientID,
		InvoiceDate:   i.InvoiceDate,
		DueDate:       i.DueDate,
		Amount:        i.Amount,
		TaxRate:       i.TaxRate,
		TaxAmount:     i.TaxAmount,
		TotalAmount:   i.TotalAmount,
		PaidAmount:    i.PaidAmount,
		Balance:       i.Balance,
		Status:        i.Status,
		OverdueDays:   i.OverdueDays(),
		IsOverpayment: i.PaidAmount > i.TotalAmount,
	}
	if i.Project.ID != 0 {
		resp.ProjectName = i.Project.ProjectName
	}
	if i.Client.ID != 0 {
		resp.ClientName = i.Client.CompanyName
	}
	if i.Milestone.ID != 0 {
		resp.MilestoneName = i.Milestone.MilestoneName
	}
	return resp
}
