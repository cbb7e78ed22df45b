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
	"github.com/projectdesk/projectdesk-api/internal/statemachine"
)

type PaymentService struct {
	repo            repository.PaymentRepository
	invoiceRepo     repository.InvoiceRepository
	milestoneRepo   repository.MilestoneRepository
	notificationSvc *NotificationService
	analyticsSvc    *AnalyticsService
	worker          *jobs.Worker
}

func NewPaymentService(
	repo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	milestoneRepo repository.MilestoneRepository,
	notificationSvc *NotificationService,
	analyticsSvc *AnalyticsService,
	worker *jobs.Worker,
) *PaymentService {
	return &PaymentService{
		repo:            repo,
		invoiceRepo:     invoiceRepo,
		milestoneRepo:   milestoneRepo,
		notificationSvc: notificationSvc,
		analyticsSvc:    analyticsSvc,
		worker:          worker,
	}
}

// RecordPaymentInput is the payload for applying a payment to an invoice
type RecordPaymentInput struct {
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	PaymentMode string    `json:"payment_mode"`
	Reference   string    `json:"reference"`
}

// RecordPaymentResult carries the reconciliation outcome for the caller
type RecordPaymentResult struct {
	Payment            *models.Payment `json:"payment"`
	Invoice            *models.Invoice `json:"invoice"`
	MilestoneCompleted bool            `json:"milestone_completed"`
}

func (s *PaymentService) FindByInvoice(ctx context.Context, invoiceID uint) ([]models.Payment, error) {
	return s.repo.FindByInvoice(ctx, invoiceID)
}

func (s *PaymentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error) {
	return s.repo.List(ctx, query)
}

// Record applies a payment to an invoice: the payment row is appended to the
// ledger, the invoice's paid amount, balance and status are rederived, and
// full settlement of a milestone-linked invoice marks that milestone
// Completed. Validation failures reject the whole operation before anything
// is written. An overpayment is accepted and leaves a negative balance with
// status Paid.
func (s *PaymentService) Record(ctx context.Context, invoiceID uint, input RecordPaymentInput) (*RecordPaymentResult, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if input.PaymentMode == "" {
		return nil, fmt.Errorf("%w: payment_mode is required", ErrValidation)
	}
	if input.PaymentDate.IsZero() {
		input.PaymentDate = time.Now()
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, wrapNotFound(err, "invoice", invoiceID)
	}

	result := finance.ApplyPayment(invoice.TotalAmount, invoice.PaidAmount, input.Amount)

	ifsm := statemachine.NewInvoiceFSM(invoice)
	if err := ifsm.ApplyStatus(ctx, result.Status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	payment := &models.Payment{
		InvoiceID:     invoice.ID,
		ReceiptNumber: newReceiptNumber(),
		Amount:        input.Amount,
		PaymentDate:   input.PaymentDate,
		PaymentMode:   input.PaymentMode,
		Reference:     input.Reference,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	invoice.PaidAmount = result.PaidAmount
	invoice.Balance = result.Balance
	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	milestoneCompleted := false
	if finance.CompletesMilestone(result, invoice.MilestoneID) {
		if err := s.milestoneRepo.UpdateStatus(ctx, *invoice.MilestoneID, models.MilestoneStatusCompleted); err != nil {
			return nil, fmt.Errorf("failed to complete milestone: %w", err)
		}
		milestoneCompleted = true
	}

	s.notifyPayment(invoice, payment, milestoneCompleted)
	s.analyticsSvc.InvalidateSummary(ctx)

	return &RecordPaymentResult{
		Payment:            payment,
		Invoice:            invoice,
		MilestoneCompleted: milestoneCompleted,
	}, nil
}

func (s *PaymentService) notifyPayment(invoice *models.Invoice, payment *models.Payment, milestoneCompleted bool) {
	if s.worker == nil {
		return
	}
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		err := s.notificationSvc.Notify(ctx,
			"Payment received",
			fmt.Sprintf("Payment of %.2f recorded against invoice %s, balance %.2f", payment.Amount, invoice.InvoiceNumber, invoice.Balance),
			models.NotificationTypePaymentReceived)
		if err != nil {
			return err
		}
		if milestoneCompleted {
			return s.notificationSvc.Notify(ctx,
				"Milestone completed",
				fmt.Sprintf("Invoice %s was settled in full and its milestone is complete", invoice.InvoiceNumber),
				models.NotificationTypeMilestoneDone)
		}
		return nil
	})
}

// newReceiptNumber generates a short unique receipt reference
func newReceiptNumber() string {
	return "RCPT-" + strings.ToUpper(uuid.NewString()[:8])
}
