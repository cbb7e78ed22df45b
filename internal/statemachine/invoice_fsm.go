package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/projectdesk/projectdesk-api/internal/models"
)

// InvoiceFSM wraps an invoice with its payment-driven state machine. The
// target state comes from the reconciliation arithmetic, not from the caller;
// the FSM only validates that the move is a legal one. A settled invoice may
// still absorb further payments (overpayment), which keeps it in Paid.
type InvoiceFSM struct {
	invoice *models.Invoice
	fsm     *fsm.FSM
}

// NewInvoiceFSM creates a new invoice state machine
func NewInvoiceFSM(invoice *models.Invoice) *InvoiceFSM {
	ifsm := &InvoiceFSM{
		invoice: invoice,
	}

	allStatuses := []string{
		models.InvoiceStatusUnpaid,
		models.InvoiceStatusPartiallyPaid,
		models.InvoiceStatusPaid,
	}

	ifsm.fsm = fsm.NewFSM(
		invoice.Status,
		fsm.Events{
			// Any state → Paid once the balance reaches zero or below
			{Name: "settle", Src: allStatuses, Dst: models.InvoiceStatusPaid},

			// Unpaid/Partially Paid → Partially Paid while a balance remains
			{Name: "partial_payment", Src: []string{models.InvoiceStatusUnpaid, models.InvoiceStatusPartiallyPaid}, Dst: models.InvoiceStatusPartiallyPaid},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// ApplyStatus transitions the invoice to the status derived by payment
// reconciliation, rejecting regressions such as Paid → Unpaid.
func (i *InvoiceFSM) ApplyStatus(ctx context.Context, newStatus string) error {
	if newStatus == i.invoice.Status {
		return nil
	}

	var event string
	switch newStatus {
	case models.InvoiceStatusPaid:
		event = "settle"
	case models.InvoiceStatusPartiallyPaid:
		event = "partial_payment"
	default:
		return fmt.Errorf("invoice cannot move from %s to %s", i.invoice.Status, newStatus)
	}

	if err := i.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("invalid invoice transition to %s: %w", newStatus, err)
	}

	i.invoice.Status = i.fsm.Current()
	return nil
}
