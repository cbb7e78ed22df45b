package repository

import (
	"context"
	"time"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"gorm.io/gorm"
)

// DashboardSummary aggregates the headline numbers the dashboard shows
type DashboardSummary struct {
	TotalClients     int64   `json:"total_clients"`
	TotalProjects    int64   `json:"total_projects"`
	PendingEstimates int64   `json:"pending_estimates"`
	TotalInvoiced    float64 `json:"total_invoiced"`
	TotalCollected   float64 `json:"total_collected"`
	TotalOutstanding float64 `json:"total_outstanding"`
	OverdueInvoices  int64   `json:"overdue_invoices"`
}

// AnalyticsRepository defines the interface for dashboard aggregate queries
type AnalyticsRepository interface {
	GetDashboardSummary(ctx context.Context) (*DashboardSummary, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetDashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Client{}).Where("is_active = ?", true).Count(&summary.TotalClients).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Count(&summary.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Estimate{}).
		Where("status = ?", models.EstimateStatusPending).
		Count(&summary.PendingEstimates).Error; err != nil {
		return nil, err
	}

	type invoiceTotals struct {
		Invoiced  float64
		Collected float64
	}
	var totals invoiceTotals
	if err := db.Model(&models.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0) AS invoiced, COALESCE(SUM(paid_amount), 0) AS collected").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	summary.TotalInvoiced = totals.Invoiced
	summary.TotalCollected = totals.Collected
	summary.TotalOutstanding = totals.Invoiced - totals.Collected

	if err := db.Model(&models.Invoice{}).
		Where("status <> ? AND due_date < ?", models.InvoiceStatusPaid, time.Now()).
		Count(&summary.OverdueInvoices).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
