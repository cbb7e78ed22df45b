package models

import (
	"time"
)

// Estimate is a versioned cost proposal for a project. Estimates are
// append-only: a revision is a new row with version = prior count + 1, never
// an update of an existing one. The labor and cost line items are snapshots
// taken at creation time together with the full derived breakdown.
type Estimate struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	ProjectID     uint    `gorm:"not null;index:idx_estimates_project_version,unique" json:"project_id"`
	Version       int     `gorm:"not null;index:idx_estimates_project_version,unique" json:"version"`
	Status        string  `gorm:"default:Pending;not null;index" json:"status"`
	ChangeComment *string `gorm:"type:text" json:"change_comment,omitempty"`

	ProfitPct float64 `gorm:"type:decimal(5,2);not null" json:"profit_pct"`
	TaxPct    float64 `gorm:"type:decimal(5,2);not null" json:"tax_pct"`

	// Derived breakdown, frozen at creation
	LaborCost      float64 `gorm:"type:decimal(15,2);not null" json:"labor_cost"`
	DirectCost     float64 `gorm:"type:decimal(15,2);not null" json:"direct_cost"`
	IndirectCost   float64 `gorm:"type:decimal(15,2);not null" json:"indirect_cost"`
	AdditionalCost float64 `gorm:"type:decimal(15,2);not null" json:"additional_cost"`
	Subtotal       float64 `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	ProfitAmount   float64 `gorm:"type:decimal(15,2);not null" json:"profit_amount"`
	TaxAmount      float64 `gorm:"type:decimal(15,2);not null" json:"tax_amount"`
	FinalAmount    float64 `gorm:"type:decimal(15,2);not null" json:"final_amount"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Project    Project             `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	LaborItems []EstimateLaborItem `gorm:"foreignKey:EstimateID" json:"labor_items,omitempty"`
	CostItems  []EstimateCostItem  `gorm:"foreignKey:EstimateID" json:"cost_items,omitempty"`
}

// TableName specifies the table name for Estimate
func (Estimate) TableName() string {
	return "estimates"
}

// Estimate status constants
const (
	EstimateStatusPending         = "Pending"
	EstimateStatusApproved        = "Approved"
	EstimateStatusRejected        = "Rejected"
	EstimateStatusChangeRequested = "Change Requested"
)

// MayApprove returns true if the estimate can be approved
func (e *Estimate) MayApprove() bool {
	return e.Status == EstimateStatusPending
}

// MayReject returns true if the estimate can be rejected
func (e *Estimate) MayReject() bool {
	return e.Status == EstimateStatusPending
}

// MayRequestChange returns true if a change can be requested on the estimate
func (e *Estimate) MayRequestChange() bool {
	return e.Status == EstimateStatusPending
}

// IsTerminal returns true once the estimate can no longer change status
func (e *Estimate) IsTerminal() bool {
	return e.Status == EstimateStatusApproved || e.Status == EstimateStatusRejected
}

// EstimateLaborItem is a frozen copy of a team assignment at estimate time
type EstimateLaborItem struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	EstimateID     uint    `gorm:"not null;index" json:"estimate_id"`
	EmployeeID     uint    `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Designation    string  `json:"designation"`
	HourlyRate     float64 `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	EstimatedHours float64 `gorm:"type:decimal(10,2);not null" json:"estimated_hours"`
	TotalCost      float64 `gorm:"type:decimal(15,2);not null" json:"total_cost"`
}

// TableName specifies the table name for EstimateLaborItem
func (EstimateLaborItem) TableName() string {
	return "estimate_labor_items"
}

// Cost item category constants
const (
	CostCategoryDirect     = "direct"
	CostCategoryIndirect   = "indirect"
	CostCategoryAdditional = "additional"
)

// EstimateCostItem is an ad-hoc cost line on an estimate. Direct items carry
// quantity, rate and months (contribution = qty * rate * months); indirect
// and additional items carry a flat amount.
type EstimateCostItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	EstimateID uint    `gorm:"not null;index" json:"estimate_id"`
	Category   string  `gorm:"not null" json:"category"`
	Name       string  `json:"name"`
	Quantity   float64 `gorm:"type:decimal(10,2);default:0" json:"quantity"`
	Rate       float64 `gorm:"type:decimal(15,2);default:0" json:"rate"`
	Months     float64 `gorm:"type:decimal(5,2);default:0" json:"months"`
	Amount     float64 `gorm:"type:decimal(15,2);default:0" json:"amount"`
}

// TableName specifies the table name for EstimateCostItem
func (EstimateCostItem) TableName() string {
	return "estimate_cost_items"
}

// EstimateResponse is the JSON response format for estimates
type EstimateResponse struct {
	ID             uint                `json:"id"`
	ProjectID      uint                `json:"project_id"`
	ProjectName    string              `json:"project_name,omitempty"`
	Version        int                 `json:"version"`
	Status         string              `json:"status"`
	ChangeComment  *string             `json:"change_comment,omitempty"`
	ProfitPct      float64             `json:"profit_pct"`
	TaxPct         float64             `json:"tax_pct"`
	LaborCost      float64             `json:"labor_cost"`
	DirectCost     float64             `json:"direct_cost"`
	IndirectCost   float64             `json:"indirect_cost"`
	AdditionalCost float64             `json:"additional_cost"`
	Subtotal       float64             `json:"subtotal"`
	ProfitAmount   float64             `json:"profit_amount"`
	TaxAmount      float64             `json:"tax_amount"`
	FinalAmount    float64             `json:"final_amount"`
	LaborItems     []EstimateLaborItem `json:"labor_items,omitempty"`
	CostItems      []EstimateCostItem  `json:"cost_items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToResponse converts Estimate to EstimateResponse
func (e *Estimate) ToResponse() EstimateResponse {
	resp := EstimateResponse{
		ID:             e.ID,
		ProjectID:      e.ProjectID,
		Version:        e.Version,
		Status:         e.Status,
		ChangeComment:  e.ChangeComment,
		ProfitPct:      e.ProfitPct,
		TaxPct:         e.TaxPct,
		LaborCost:      e.LaborCost,
		DirectCost:     e.DirectCost,
		IndirectCost:   e.IndirectCost,
		AdditionalCost: e.AdditionalCost,
		Subtotal:       e.Subtotal,
		ProfitAmount:   e.ProfitAmount,
		TaxAmount:      e.TaxAmount,
		FinalAmount:    e.FinalAmount,
		LaborItems:     e.LaborItems,
		CostItems:      e.CostItems,
		CreatedAt:      e.CreatedAt,
	}
	if e.Project.ID != 0 {
		resp.ProjectName = e.Project.ProjectName
	}
	return resp
}
