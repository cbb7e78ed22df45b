// Package finance holds the pure estimate, invoice and payment arithmetic.
// Functions here take and return plain values, perform no I/O and keep no
// state; persistence and validation live with the callers. All amounts are
// float64 (IEEE-754 double), matching the rest of the system.
package finance

import (
	"time"

	"github.com/projectdesk/projectdesk-api/internal/models"
)

// LaborItem is one team assignment contributing hourly_rate * estimated_hours
type LaborItem struct {
	HourlyRate     float64
	EstimatedHours float64
}

// DirectItem contributes quantity * rate * months
type DirectItem struct {
	Quantity float64
	Rate     float64
	Months   float64
}

// FlatItem contributes its amount verbatim (indirect and additional costs)
type FlatItem struct {
	Amount float64
}

// Breakdown carries every derived number of an estimate, not just the final
// amount; callers display the whole thing.
type Breakdown struct {
	LaborCost      float64 `json:"labor_cost"`
	DirectCost     float64 `json:"direct_cost"`
	IndirectCost   float64 `json:"indirect_cost"`
	AdditionalCost float64 `json:"additional_cost"`
	Subtotal       float64 `json:"subtotal"`
	ProfitAmount   float64 `json:"profit_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	FinalAmount    float64 `json:"final_amount"`
}

// EstimateBreakdown computes the full cost breakdown for an estimate.
// Profit is applied to the subtotal, and tax is applied to subtotal plus
// profit, not to the raw subtotal. That ordering is part of the billing
// contract and must not change.
func EstimateBreakdown(labor []LaborItem, direct []DirectItem, indirect, additional []FlatItem, profitPct, taxPct float64) Breakdown {
	var b Breakdown

	for _, item := range labor {
		b.LaborCost += item.HourlyRate * item.EstimatedHours
	}
	for _, item := range direct {
		b.DirectCost += item.Quantity * item.Rate * item.Months
	}
	for _, item := range indirect {
		b.IndirectCost += item.Amount
	}
	for _, item := range additional {
		b.AdditionalCost += item.Amount
	}

	b.Subtotal = b.LaborCost + b.DirectCost + b.IndirectCost + b.AdditionalCost
	b.ProfitAmount = b.Subtotal * profitPct / 100
	b.TaxAmount = (b.Subtotal + b.ProfitAmount) * taxPct / 100
	b.FinalAmount = b.Subtotal + b.ProfitAmount + b.TaxAmount

	return b
}

// InvoiceTotals computes the tax amount and total for a raw billable amount
func InvoiceTotals(amount, taxPct float64) (taxAmount, totalAmount float64) {
	taxAmount = amount * taxPct / 100
	totalAmount = amount + taxAmount
	return taxAmount, totalAmount
}

// DueDate adds a project's payment terms to the invoice date in calendar
// days (not business days).
func DueDate(invoiceDate time.Time, paymentTermsDays int) time.Time {
	return invoiceDate.AddDate(0, 0, paymentTermsDays)
}

// PaymentResult is the outcome of applying one payment to an invoice
type PaymentResult struct {
	PaidAmount float64
	Balance    float64
	Status     string
}

// ApplyPayment derives an invoice's new paid amount, balance and status after
// a payment. A payment that overshoots the balance leaves it negative with
// status Paid; the caller decides whether to allow that. The final Unpaid
// branch is only reachable for a zero payment, which callers reject before
// getting here.
func ApplyPayment(totalAmount, paidAmount, paymentAmount float64) PaymentResult {
	newPaid := paidAmount + paymentAmount
	newBalance := totalAmount - newPaid

	status := models.InvoiceStatusUnpaid
	switch {
	case newBalance <= 0:
		status = models.InvoiceStatusPaid
	case newBalance < totalAmount:
		status = models.InvoiceStatusPartiallyPaid
	}

	return PaymentResult{
		PaidAmount: newPaid,
		Balance:    newBalance,
		Status:     status,
	}
}

// CompletesMilestone reports whether a reconciliation outcome should mark the
// invoice's linked milestone Completed: the balance must have reached zero
// and the invoice must actually reference a milestone. Advance invoices never
// touch milestones.
func CompletesMilestone(result PaymentResult, milestoneID *uint) bool {
	return result.Balance <= 0 && milestoneID != nil
}
