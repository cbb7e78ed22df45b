package models

import (
	"time"
)

// ProjectStatus is a configurable lifecycle stage for projects
type ProjectStatus struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StatusName   string    `gorm:"not null;uniqueIndex" json:"status_name"`
	Description  string    `gorm:"type:text" json:"description"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	StatusColor  string    `json:"status_color"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for ProjectStatus
func (ProjectStatus) TableName() string {
	return "project_statuses"
}
