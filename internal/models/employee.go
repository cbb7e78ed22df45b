package models

import (
	"time"
)

// Employee represents a billable staff member available for project assignment
type Employee struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	FullName          string    `gorm:"not null" json:"full_name"`
	Designation       string    `json:"designation"`
	Email             string    `gorm:"index" json:"email"`
	DefaultHourlyRate float64   `gorm:"type:decimal(10,2);default:0" json:"default_hourly_rate"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
