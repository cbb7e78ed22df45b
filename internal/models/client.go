package models

import (
	"time"
)

// Client is a billable customer organisation
type Client struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	CompanyName          string    `gorm:"not null;index" json:"company_name"`
	CompanyContactPerson string    `json:"company_contact_person"`
	Email                string    `gorm:"index" json:"email"`
	Phone                string    `json:"phone"`
	Address              string    `gorm:"type:text" json:"address"`
	TaxNumber            string    `json:"tax_number"`
	IsActive             bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// Associations
	Projects []Project `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "clients"
}
