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
)

// Extends the invoice mock with Create/FindOverdue for invoice service tests
type mockInvoiceRepositoryFull struct {
	repository.InvoiceRepository
	mockCreate      func(ctx context.Context, invoice *models.Invoice) error
	mockFindByID    func(ctx context.Context, id uint) (*models.Invoice, error)
	mockFindOverdue func(ctx context.Context, asOf time.Time) ([]models.Invoice, error)
}

func (m *mockInvoiceRepositoryFull) Create(ctx context.Context, invoice *models.Invoice) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepositoryFull) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func (m *mockInvoiceRepositoryFull) FindOverdue(ctx context.Context, asOf time.Time) ([]models.Invoice, error) {
	if m.mockFindOverdue != nil {
		return m.mockFindOverdue(ctx, asOf)
	}
	return nil, nil
}

type mockMilestoneRepositoryFind struct {
	repository.MilestoneRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Milestone, error)
}

func (m *mockMilestoneRepositoryFind) FindByID(ctx context.Context, id uint) (*models.Milestone, error) {
	if m.mockFindByID != nil {
		return m.mockFindByID(ctx, id)
	}
	return nil, nil
}

func newInvoiceServiceForTest(invoiceRepo *mockInvoiceRepositoryFull, projectRepo *mockProjectRepository, milestoneRepo *mockMilestoneRepositoryFind) *InvoiceService {
	notifSvc := NewNotificationService(&mockNotificationRepository{})
	analyticsSvc := NewAnalyticsService(&mockAnalyticsRepository{}, nil)
	return NewInvoiceService(invoiceRepo, projectRepo, milestoneRepo, notifSvc, analyticsSvc, nil)
}

func TestCreateInvoice_DerivesTotalsAndDueDate(t *testing.T) {
	projectRepo := &mockProjectRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Project, error) {
			return &models.Project{ID: id, ClientID: 42, PaymentTerms: 45}, nil
		},
	}
	var created *models.Invoice
	invoiceRepo := &mockInvoiceRepositoryFull{
		mockCreate: func(ctx context.Context, inv *models.Invoice) error {
			created = inv
			return nil
		},
	}
	service := newInvoiceServiceForTest(invoiceRepo, projectRepo, &mockMilestoneRepositoryFind{})

	invoiceDate := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	invoice, err := service.Create(context.Background(), CreateInvoiceInput{
		ProjectID:   1,
		InvoiceDate: invoiceDate,
		Amount:      10000,
		TaxRate:     18,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.InDelta(t, 1800, invoice.TaxAmount, 0.001)
	assert.InDelta(t, 11800, invoice.TotalAmount, 0.001)
	assert.InDelta(t, 0, invoice.PaidAmount, 0.001)
	assert.InDelta(t, 11800, invoice.Balance, 0.001)
	assert.Equal(t, models.InvoiceStatusUnpaid, invoice.Status)
	assert.Equal(t, uint(42), invoice.ClientID)
	// 45 calendar days from Feb 15 in a leap year
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), invoice.DueDate)
	assert.Contains(t, invoice.InvoiceNumber, "INV-")
}

func TestCreateInvoice_MilestoneMustBelongToProject(t *testing.T) {
	projectRepo := &mockProjectRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Project, error) {
			return &models.Project{ID: id, PaymentTerms: 30}, nil
		},
	}
	milestoneRepo := &mockMilestoneRepositoryFind{
		mockFindByID: func(ctx context.Context, id uint) (*models.Milestone, error) {
			return &models.Milestone{ID: id, ProjectID: 999}, nil
		},
	}
	service := newInvoiceServiceForTest(&mockInvoiceRepositoryFull{}, projectRepo, milestoneRepo)

	milestoneID := uint(3)
	_, err := service.Create(context.Background(), CreateInvoiceInput{
		ProjectID:   1,
		MilestoneID: &milestoneID,
		InvoiceDate: time.Now(),
		Amount:      100,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateInvoice_MilestoneInvoiceClearsAdvanceFlag(t *testing.T) {
	projectRepo := &mockProjectRepository{
		mockFindByID: func(ctx context.Context, id uint) (*models.Project, error) {
			return &models.Project{ID: id, PaymentTerms: 30}, nil
		},
	}
	milestoneRepo := &mockMilestoneRepositoryFind{
		mockFindByID: func(ctx context.Context, id uint) (*models.Milestone, error) {
			return &models.Milestone{ID: id, ProjectID: 1}, nil
		},
	}
	service := newInvoiceServiceForTest(&mockInvoiceRepositoryFull{}, projectRepo, milestoneRepo)

	milestoneID := uint(3)
	invoice, err := service.Create(context.Background(), CreateInvoiceInput{
		ProjectID:   1,
		MilestoneID: &milestoneID,
		IsAdvance:   true,
		InvoiceDate: time.Now(),
		Amount:      100,
	})
	require.NoError(t, err)
	assert.False(t, invoice.IsAdvance)
}

func TestCreateInvoice_Validation(t *testing.T) {
	service := newInvoiceServiceForTest(&mockInvoiceRepositoryFull{}, &mockProjectRepository{}, &mockMilestoneRepositoryFind{})

	_, err := service.Create(context.Background(), CreateInvoiceInput{ProjectID: 1, InvoiceDate: time.Now(), Amount: -1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Create(context.Background(), CreateInvoiceInput{ProjectID: 1, InvoiceDate: time.Now(), Amount: 100, TaxRate: -5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Create(context.Background(), CreateInvoiceInput{ProjectID: 1, Amount: 100})
	assert.ErrorIs(t, err, ErrValidation, "missing invoice date")
}

func TestNotifyOverdue_RaisesOnePerInvoice(t *testing.T) {
	dueDate := time.Now().AddDate(0, 0, -10)
	invoiceRepo := &mockInvoiceRepositoryFull{
		mockFindOverdue: func(ctx context.Context, asOf time.Time) ([]models.Invoice, error) {
			return []models.Invoice{
				{InvoiceNumber: "INV-AAAA0001", DueDate: dueDate, Balance: 500, Status: models.InvoiceStatusUnpaid},
				{InvoiceNumber: "INV-BBBB0002", DueDate: dueDate, Balance: 1200, Status: models.InvoiceStatusPartiallyPaid},
			}, nil
		},
	}

	var notified []models.Notification
	notifRepo := &mockNotificationRepository{
		mockCreate: func(ctx context.Context, n *models.Notification) error {
			notified = append(notified, *n)
			return nil
		},
	}
	service := NewInvoiceService(invoiceRepo, &mockProjectRepository{}, &mockMilestoneRepositoryFind{},
		NewNotificationService(notifRepo), NewAnalyticsService(&mockAnalyticsRepository{}, nil), nil)

	err := service.NotifyOverdue(context.Background())
	require.NoError(t, err)
	require.Len(t, notified, 2)
	assert.Contains(t, notified[0].Message, "INV-AAAA0001")
	assert.Contains(t, notified[1].Message, "1200.00")
}

func TestCreateInvoice_QueuesCreatedAndDueNotifications(t *testing.T) {
	logger.Setup("test")

	notifTypes := make(chan string, 4)
	notifRepo := &mockNotificationRepository{
		mockCreate: func(ctx context.Context, n *models.Notification) error {
			notifTypes <- *n.NotificationType
			return nil
		},
	}
	invoiceRepo := &mockInvoiceRepositoryFull{
		mockCreate: func(ctx context.Context, invoice *models.Invoice) error {
			invoice.ID = 12
			return nil
		},
		mockFindByID: func(ctx context.Context, id uint) (*models.Invoice, error) {
			return &models.Invoice{ID: id, InvoiceNumber: "INV-OPEN", Balance: 500}, nil
		},
	}

	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	notifSvc := NewNotificationService(notifRepo)
	analyticsSvc := NewAnalyticsService(&mockAnalyticsRepository{}, nil)
	service := NewInvoiceService(invoiceRepo, &mockProjectRepository{}, &mockMilestoneRepositoryFind{}, notifSvc, analyticsSvc, worker)

	// Payment terms default to zero days, so the due date is already past and
	// the reminder fires right away
	_, err := service.Create(context.Background(), CreateInvoiceInput{
		ProjectID:   1,
		InvoiceDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Amount:      500,
	})
	require.NoError(t, err)

	received := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case notifType := <-notifTypes:
			received[notifType] = true
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for notifications")
		}
	}
	assert.True(t, received[models.NotificationTypeInvoiceCreated])
	assert.True(t, received[models.NotificationTypeInvoiceDue])
}
