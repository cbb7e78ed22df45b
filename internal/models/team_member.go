package models

import (
	"time"
)

// TeamMember is a project-employee assignment with the rate and hours used
// for estimate labor costing. TotalCost is hourly_rate * estimated_hours and
// is fixed at assignment time; once an estimate snapshots it, later edits to
// the assignment do not touch the snapshot.
type TeamMember struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProjectID      uint      `gorm:"not null;index:idx_team_project_employee,unique" json:"project_id"`
	EmployeeID     uint      `gorm:"not null;index:idx_team_project_employee,unique" json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	Designation    string    `json:"designation"`
	HourlyRate     float64   `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	EstimatedHours float64   `gorm:"type:decimal(10,2);not null" json:"estimated_hours"`
	TotalCost      float64   `gorm:"type:decimal(15,2);not null" json:"total_cost"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Associations
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// TableName specifies the table name for TeamMember
func (TeamMember) TableName() string {
	return "team_members"
}
