package services

import (
	"context"
	"testing"
	"time"

	"github.com/projectdesk/projectdesk-api/internal/jobs"
	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/projectdesk/projectdesk-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Mock PaymentRepository (using embedding to avoid implementing all methods)
type mockPaymentRepository struct {
	repository.PaymentRepository
	mockCreate func(ctx context.Context, payment *models.Payment) error
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, payment)
	}
	return nil
}

// Mock InvoiceRepository
type mockInvoiceRepository struct {
	repository.InvoiceRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Invoice, error)
	mockUpdate   func(ctx context.Context, invoice *models.Invoice) error
}

func (m *mockInvoiceRepository) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, invoice)
	}
	return nil
}

// Mock MilestoneRepository
type mockMilestoneRepository struct {
	repository.MilestoneRepository
	mockUpdateStatus func(ctx context.Context, id uint, status string) error
}

func (m *mockMilestoneRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.mockUpdateStatus != nil {
		return m.mockUpdateStatus(ctx, id, status)
	}
	return nil
}

// Mock NotificationRepository
type mockNotificationRepository struct {
	repository.NotificationRepository
	mockCreate func(ctx context.Context, notification *models.Notification) error
}

func (m *mockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, notification)
	}
	return nil
}

// Mock AnalyticsRepository
type mockAnalyticsRepository struct {
	mockGetDashboardSummary func(ctx context.Context) (*repository.DashboardSummary, error)
}

func (m *mockAnalyticsRepository) GetDashboardSummary(ctx context.Context) (*repository.DashboardSummary, error) {
	if m.mockGetDashboardSummary != nil {
		return m.mockGetDashboardSummary(ctx)
	}
	return &repository.DashboardSummary{}, nil
}

func newPaymentServiceForTest(t *testing.T, invoiceRepo *mockInvoiceRepository, paymentRepo *mockPaymentRepository, milestoneRepo *mockMilestoneRepository) *PaymentService {
	t.Helper()
	logger.Setup("test")

	worker := jobs.NewWorker(0)
	t.Cleanup(worker.Shutdown)

	notifSvc := NewNotificationService(&mockNotificationRepository{})
	analyticsSvc := NewAnalyticsService(&mockAnalyticsRepository{}, nil)

	return NewPaymentService(paymentRepo, invoiceRepo, milestoneRepo, notifSvc, analyticsSvc, worker)
}

func TestRecordPayment_PartialThenFull(t *testing.T) {
	milestoneID := uint(7)
	invoice := &models.Invoice{
		ID:            1,
		InvoiceNumber: "INV-TEST0001",
		MilestoneID:   &milestoneID,
		Amount:        10000,
		TaxRate:       18,
		TaxAmount:     1800,
		TotalAmount:   11800,
		PaidAmount:    0,
		Balance:       11800,
		Status:        models.InvoiceStatusUnpaid,
	}

	var savedInvoice *models.Invoice
	invoiceRepo := &mockInvoiceRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Invoice, error) {
			return invoice, nil
		},
		mockUpdate: func(ctx context.Context, inv *models.Invoice) error {
			savedInvoice = inv
			return nil
		},
	}
	var createdPayments []models.Payment
	paymentRepo := &mockPaymentRepository{
		mockCreate: func(ctx context.Context, p *models.Payment) error {
			createdPayments = append(createdPayments, *p)
			return nil
		},
	}
	milestoneCompletions := 0
	milestoneRepo := &mockMilestoneRepository{
		mockUpdateStatus: func(ctx context.Context, id uint, status string) error {
			milestoneCompletions++
			assert.Equal(t, milestoneID, id)
			assert.Equal(t, models.MilestoneStatusCompleted, status)
			return nil
		},
	}

	service := newPaymentServiceForTest(t, invoiceRepo, paymentRepo, milestoneRepo)

	// First payment covers part of the total
	result, err := service.Record(context.Background(), 1, RecordPaymentInput{
		Amount:      5000,
		PaymentMode: "Bank Transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPartiallyPaid, result.Invoice.Status)
	assert.InDelta(t, 5000, result.Invoice.PaidAmount, 0.001)
	assert.InDelta(t, 6800, result.Invoice.Balance, 0.001)
	assert.False(t, result.MilestoneCompleted)
	assert.Equal(t, 0, milestoneCompletions)
	require.NotNil(t, savedInvoice)

	// Second payment settles the remainder and completes the milestone
	result, err = service.Record(context.Background(), 1, RecordPaymentInput{
		Amount:      6800,
		PaymentMode: "Bank Transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, result.Invoice.Status)
	assert.InDelta(t, 11800, result.Invoice.PaidAmount, 0.001)
	assert.InDelta(t, 0, result.Invoice.Balance, 0.001)
	assert.True(t, result.MilestoneCompleted)
	assert.Equal(t, 1, milestoneCompletions)

	require.Len(t, createdPayments, 2)
	assert.Contains(t, createdPayments[0].ReceiptNumber, "RCPT-")
	assert.NotEqual(t, createdPayments[0].ReceiptNumber, createdPayments[1].ReceiptNumber)
}

func TestRecordPayment_OverpaymentKeepsNegativeBalance(t *testing.T) {
	invoice := &models.Invoice{
		ID:          2,
		TotalAmount: 1000,
		PaidAmount:  0,
		Balance:     1000,
		Status:      models.InvoiceStatusUnpaid,
	}

	invoiceRepo := &mockInvoiceRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Invoice, error) {
			return invoice, nil
		},
	}
	service := newPaymentServiceForTest(t, invoiceRepo, &mockPaymentRepository{}, &mockMilestoneRepository{})

	result, err := service.Record(context.Background(), 2, RecordPaymentInput{
		Amount:      1500,
		PaymentMode: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, result.Invoice.Status)
	assert.InDelta(t, 1500, result.Invoice.PaidAmount, 0.001)
	assert.InDelta(t, -500, result.Invoice.Balance, 0.001)
}

func TestRecordPayment_ValidationRejectsBeforeAnyWrite(t *testing.T) {
	findCalled := false
	invoiceRepo := &mockInvoiceRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Invoice, error) {
			findCalled = true
			return nil, nil
		},
	}
	createCalled := false
	paymentRepo := &mockPaymentRepository{
		mockCreate: func(ctx context.Context, p *models.Payment) error {
			createCalled = true
			return nil
		},
	}
	service := newPaymentServiceForTest(t, invoiceRepo, paymentRepo, &mockMilestoneRepository{})

	_, err := service.Record(context.Background(), 1, RecordPaymentInput{Amount: 0, PaymentMode: "Cash"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Record(context.Background(), 1, RecordPaymentInput{Amount: -50, PaymentMode: "Cash"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Record(context.Background(), 1, RecordPaymentInput{Amount: 100})
	assert.ErrorIs(t, err, ErrValidation)

	assert.False(t, findCalled, "invoice should not be loaded for invalid input")
	assert.False(t, createCalled, "no payment row should be written for invalid input")
}

func TestRecordPayment_AdvanceInvoiceNeverTouchesMilestone(t *testing.T) {
	invoice := &models.Invoice{
		ID:          3,
		IsAdvance:   true,
		MilestoneID: nil,
		TotalAmount: 2000,
		Balance:     2000,
		Status:      models.InvoiceStatusUnpaid,
	}
	invoiceRepo := &mockInvoiceRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Invoice, error) {
			return invoice, nil
		},
	}
	milestoneRepo := &mockMilestoneRepository{
		mockUpdateStatus: func(ctx context.Context, id uint, status string) error {
			t.Fatal("milestone status should not be touched for an advance invoice")
			return nil
		},
	}
	service := newPaymentServiceForTest(t, invoiceRepo, &mockPaymentRepository{}, milestoneRepo)

	result, err := service.Record(context.Background(), 3, RecordPaymentInput{
		Amount:      2000,
		PaymentMode: "UPI",
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, result.Invoice.Status)
	assert.False(t, result.MilestoneCompleted)
}

func TestRecordPayment_DefaultsPaymentDate(t *testing.T) {
	invoice := &models.Invoice{ID: 4, TotalAmount: 500, Balance: 500, Status: models.InvoiceStatusUnpaid}
	invoiceRepo := &mockInvoiceRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Invoice, error) {
			return invoice, nil
		},
	}
	var created *models.Payment
	paymentRepo := &mockPaymentRepository{
		mockCreate: func(ctx context.Context, p *models.Payment) error {
			created = p
			return nil
		},
	}
	service := newPaymentServiceForTest(t, invoiceRepo, paymentRepo, &mockMilestoneRepository{})

	before := time.Now()
	_, err := service.Record(context.Background(), 4, RecordPaymentInput{Amount: 100, PaymentMode: "Cash"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.False(t, created.PaymentDate.Before(before))
}

func TestRecordPayment_MissingInvoiceIsNotFound(t *testing.T) {
	created := false
	invoiceRepo := &mockInvoiceRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Invoice, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	paymentRepo := &mockPaymentRepository{
		mockCreate: func(ctx context.Context, payment *models.Payment) error {
			created = true
			return nil
		},
	}
	service := newPaymentServiceForTest(t, invoiceRepo, paymentRepo, &mockMilestoneRepository{})

	_, err := service.Record(context.Background(), 404, RecordPaymentInput{
		Amount:      100,
		PaymentMode: "Bank Transfer",
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, created)
}
