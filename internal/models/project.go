package models

import (
	"time"
)

// Project represents a client engagement. PaymentTerms is the number of
// calendar days between an invoice date and its due date.
type Project struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ProjectName        string    `gorm:"not null" json:"project_name"`
	ProjectCode        string    `gorm:"not null;uniqueIndex" json:"project_code"`
	ClientID           uint      `gorm:"not null;index" json:"client_id"`
	ProjectManagerID   uint      `json:"project_manager_id"`
	ProjectStatusID    uint      `gorm:"index" json:"project_status_id"`
	StartDate          time.Time `gorm:"type:date" json:"start_date"`
	PlannedEndDate     time.Time `gorm:"type:date" json:"planned_end_date"`
	PaymentTerms       int       `gorm:"not null;default:30" json:"payment_terms"`
	FinalBillingAmount float64   `gorm:"type:decimal(15,2);default:0" json:"final_billing_amount"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Associations
	Client Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status ProjectStatus `gorm:"foreignKey:ProjectStatusID" json:"status,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// ProjectResponse is the JSON response format for projects
type ProjectResponse struct {
	ID                 uint      `json:"id"`
	ProjectName        string    `json:"project_name"`
	ProjectCode        string    `json:"project_code"`
	ClientID           uint      `json:"client_id"`
	ClientName         string    `json:"client_name,omitempty"`
	ProjectManagerID   uint      `json:"project_manager_id"`
	ProjectStatusID    uint      `json:"project_status_id"`
	StatusName         string    `json:"status_name,omitempty"`
	StartDate          time.Time `json:"start_date"`
	PlannedEndDate     time.Time `json:"planned_end_date"`
	PaymentTerms       int       `json:"payment_terms"`
	FinalBillingAmount float64   `json:"final_billing_amount"`
}

// ToResponse converts Project to ProjectResponse
func (p *Project) ToResponse() ProjectResponse {
	resp := ProjectResponse{
		ID:                 p.ID,
		ProjectName:        p.ProjectName,
		ProjectCode:        p.ProjectCode,
		ClientID:           p.ClientID,
		ProjectManagerID:   p.ProjectManagerID,
		ProjectStatusID:    p.ProjectStatusID,
		StartDate:          p.StartDate,
		PlannedEndDate:     p.PlannedEndDate,
		PaymentTerms:       p.PaymentTerms,
		FinalBillingAmount: p.FinalBillingAmount,
	}
	if p.Client.ID != 0 {
		resp.ClientName = p.Client.CompanyName
	}
	if p.Status.ID != 0 {
		resp.StatusName = p.Status.StatusName
	}
	return resp
}
