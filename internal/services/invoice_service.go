package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/projectdesk/projectdesk-api/internal/finance"
	"github.com/projectdesk/projectdesk-api/internal/jobs"
	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/repository"
)

type InvoiceService struct {
	repo            repository.InvoiceRepository
	projectRepo     repository.ProjectRepository
	milestoneRepo   repository.MilestoneRepository
	notificationSvc *NotificationService
	analyticsSvc    *AnalyticsService
	worker          *jobs.Worker
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	projectRepo repository.ProjectRepository,
	milestoneRepo repository.MilestoneRepository,
	notificationSvc *NotificationService,
	analyticsSvc *AnalyticsService,
	worker *jobs.Worker,
) *InvoiceService {
	return &InvoiceService{
		repo:            repo,
		projectRepo:     projectRepo,
		milestoneRepo:   milestoneRepo,
		notificationSvc: notificationSvc,
		analyticsSvc:    analyticsSvc,
		worker:          worker,
	}
}

// CreateInvoiceInput is the payload for generating an invoice
type CreateInvoiceInput struct {
	ProjectID   uint      `json:"project_id"`
	MilestoneID *uint     `json:"milestone_id,omitempty"`
	IsAdvance   bool      `json:"is_advance"`
	InvoiceDate time.Time `json:"invoice_date"`
	Amount      float64   `json:"amount"`
	TaxRate     float64   `json:"tax_rate"`
}

func (s *InvoiceService) FindByID(ctx context.Context, id uint) (*models.Invoice, error) {
	return s.repo.FindByIDWithDetails(ctx, id)
}

func (s *InvoiceService) FindByProject(ctx context.Context, projectID uint) ([]models.Invoice, error) {
	return s.repo.FindByProject(ctx, projectID)
}

func (s *InvoiceService) List(ctx context.Context, query *repository.ListQuery) ([]models.Invoice, int64, error) {
	return s.repo.List(ctx, query)
}

// Create turns a billable amount and the owning project's payment terms into
// a fully specified invoice: tax on the amount, due date at invoice date plus
// terms in calendar days, zero paid, full balance, Unpaid.
func (s *InvoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*models.Invoice, error) {
	if input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	}
	if input.TaxRate < 0 {
		return nil, fmt.Errorf("%w: tax_rate cannot be negative", ErrValidation)
	}
	if input.InvoiceDate.IsZero() {
		return nil, fmt.Errorf("%w: invoice_date is required", ErrValidation)
	}

	project, err := s.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: project %d not found", ErrValidation, input.ProjectID)
	}

	if input.MilestoneID != nil {
		milestone, err := s.milestoneRepo.FindByID(ctx, *input.MilestoneID)
		if err != nil {
			return nil, fmt.Errorf("%w: milestone %d not found", ErrValidation, *input.MilestoneID)
		}
		if milestone.ProjectID != input.ProjectID {
			return nil, fmt.Errorf("%w: milestone %d does not belong to project %d", ErrValidation, *input.MilestoneID, input.ProjectID)
		}
		// A milestone invoice is by definition not an advance
		input.IsAdvance = false
	}

	taxAmount, totalAmount := finance.InvoiceTotals(input.Amount, input.TaxRate)

	invoice := &models.Invoice{
		InvoiceNumber: newInvoiceNumber(),
		ProjectID:     input.ProjectID,
		MilestoneID:   input.MilestoneID,
		IsAdvance:     input.IsAdvance,
		ClientID:      project.ClientID,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       finance.DueDate(input.InvoiceDate, project.PaymentTerms),
		Amount:        input.Amount,
		TaxRate:       input.TaxRate,
		TaxAmount:     taxAmount,
		TotalAmount:   totalAmount,
		PaidAmount:    0,
		Balance:       totalAmount,
		Status:        models.InvoiceStatusUnpaid,
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.notifyCreated(invoice)
	s.scheduleDueReminder(invoice)
	s.analyticsSvc.InvalidateSummary(ctx)
	return invoice, nil
}

func (s *InvoiceService) notifyCreated(invoice *models.Invoice) {
	if s.worker == nil {
		return
	}
	s.worker.Enqueue(func(ctx context.Context) error {
		return s.notificationSvc.Notify(ctx,
			"Invoice created",
			fmt.Sprintf("Invoice %s for %.2f is due %s", invoice.InvoiceNumber, invoice.TotalAmount, invoice.DueDate.Format("2006-01-02")),
			models.NotificationTypeInvoiceCreated)
	})
}

// scheduleDueReminder raises a one-shot reminder on the due date if the
// invoice still carries a balance by then.
func (s *InvoiceService) scheduleDueReminder(invoice *models.Invoice) {
	if s.worker == nil {
		return
	}
	id := invoice.ID
	number := invoice.InvoiceNumber
	s.worker.ScheduleAt(invoice.DueDate, func(ctx context.Context) error {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Balance <= 0 {
			return nil
		}
		return s.notificationSvc.Notify(ctx,
			"Invoice due",
			fmt.Sprintf("Invoice %s is due today with balance %.2f", number, current.Balance),
			models.NotificationTypeInvoiceDue)
	})
}

// NotifyOverdue scans for unsettled invoices past their due date and raises
// a notification per invoice. Runs from the scheduled worker.
func (s *InvoiceService) NotifyOverdue(ctx context.Context) error {
	overdue, err := s.repo.FindOverdue(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to load overdue invoices: %w", err)
	}

	for _, inv := range overdue {
		err := s.notificationSvc.Notify(ctx,
			"Invoice overdue",
			fmt.Sprintf("Invoice %s is %d days overdue with balance %.2f", inv.InvoiceNumber, inv.OverdueDays(), inv.Balance),
			models.NotificationTypeInvoiceOverdue)
		if err != nil {
			return err
		}
	}
	return nil
}

// newInvoiceNumber generates a short unique invoice reference
func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}
