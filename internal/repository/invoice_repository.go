package repository

import (
	"context"
	"errors"
	"time"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"gorm.io/gorm"
)

// InvoiceRepository defines the interface for invoice data access
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Invoice, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Invoice, error)
	FindByProject(ctx context.Context, projectID uint) ([]models.Invoice, error)
	FindOverdue(ctx context.Context, asOf time.Time) ([]models.Invoice, error)
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, invoice *models.Invoice) error
	List(ctx context.Context, query *ListQuery) ([]models.Invoice, int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Joins("Project").
		Joins("Client").
		Joins("Milestone").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC")
		}).
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByProject(ctx context.Context, projectID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("invoice_date DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Where("status <> ? AND due_date < ?", models.InvoiceStatusPaid, asOf).
		Order("due_date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		if isDuplicateKeyError(err, "idx_invoices_invoice_number") {
			return errors.New("an invoice with this number already exists")
		}
		return err
	}
	return nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) List(ctx context.Context, query *ListQuery) ([]models.Invoice, int64, error) {
	var invoices []models.Invoice
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Invoice{})

	if status := query.Filters["status"]; status != "" {
		db = db.Where("invoices.status = ?", status)
	}
	if projectID := query.Filters["project_id"]; projectID != "" {
		db = db.Where("invoices.project_id = ?", projectID)
	}
	if clientID := query.Filters["client_id"]; clientID != "" {
		db = db.Where("invoices.client_id = ?", clientID)
	}
	if query.Search != "" {
		db = db.Where("invoices.invoice_number ILIKE ?", "%"+query.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Joins("Project").
		Joins("Client").
		Order("invoices.invoice_date DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&invoices).Error
	return invoices, total, err
}
