package models

import (
	"time"
)

// Milestone is a contractual payment checkpoint tied to a percentage of a
// project's value. Status is set by staff, except that full payment of a
// linked invoice marks the milestone Completed automatically.
type Milestone struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProjectID         uint      `gorm:"not null;index" json:"project_id"`
	MilestoneName     string    `gorm:"not null" json:"milestone_name"`
	Description       string    `gorm:"type:text" json:"description"`
	PaymentPercentage float64   `gorm:"type:decimal(5,2);default:0" json:"payment_percentage"`
	Amount            float64   `gorm:"type:decimal(15,2);default:0" json:"amount"`
	PlannedDate       time.Time `gorm:"type:date" json:"planned_date"`
	Status            string    `gorm:"default:Pending;not null;index" json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for Milestone
func (Milestone) TableName() string {
	return "milestones"
}

// Milestone status constants
const (
	MilestoneStatusPending    = "Pending"
	MilestoneStatusInProgress = "In Progress"
	MilestoneStatusCompleted  = "Completed"
)

// IsCompleted returns true if the milestone has been completed
func (m *Milestone) IsCompleted() bool {
	return m.Status == MilestoneStatusCompleted
}
