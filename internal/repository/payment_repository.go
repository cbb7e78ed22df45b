package repository

import (
	"context"

	"github.com/projectdesk/projectdesk-api/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access. Payments
// are an append-only ledger: once recorded they are never updated or deleted,
// so the interface deliberately offers neither.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByInvoice(ctx context.Context, invoiceID uint) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, query *ListQuery) ([]models.Payment, int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByInvoice(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("payment_date ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) List(ctx context.Context, query *ListQuery) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payment{})

	if invoiceID := query.Filters["invoice_id"]; invoiceID != "" {
		db = db.Where("invoice_id = ?", invoiceID)
	}
	if mode := query.Filters["payment_mode"]; mode != "" {
		db = db.Where("payment_mode = ?", mode)
	}
	if start := query.Filters["start_date"]; start != "" {
		db = db.Where("payment_date >= ?", start)
	}
	if end := query.Filters["end_date"]; end != "" {
		db = db.Where("payment_date <= ?", end)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("payment_date DESC, id DESC").
		Offset(query.Offset()).
		Limit(query.PerPage).
		Find(&payments).Error
	return payments, total, err
}
