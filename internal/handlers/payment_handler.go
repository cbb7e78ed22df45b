package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectdesk/projectdesk-api/internal/services"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// @Summary List Payments
// @Description Get a paginated list of payments across invoices
// @Tags Payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param invoice_id query int false "Filter by invoice"
// @Param payment_mode query string false "Filter by mode"
// @Success 200 {object} map[string]interface{}
// @Router /payments [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "invoice_id", "payment_mode", "start_date", "end_date")

	payments, total, err := h.paymentService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments, "pagination": paginationBlock(query, total)})
}

// @Summary List Invoice Payments
// @Description Get the payment ledger of one invoice in order of receipt
// @Tags Payments
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Success 200 {object} map[string]interface{}
// @Router /invoices/{invoice_id}/payments [get]
func (h *PaymentHandler) IndexByInvoice(c *gin.Context) {
	invoiceID, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	payments, err := h.paymentService.FindByInvoice(c.Request.Context(), uint(invoiceID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// @Summary Record Payment
// @Description Apply a payment to an invoice and rederive its paid amount, balance and status
// @Tags Payments
// @Accept json
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Param request body services.RecordPaymentInput true "Payment Data"
// @Success 201 {object} services.RecordPaymentResult
// @Failure 422 {object} map[string]string
// @Router /invoices/{invoice_id}/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	invoiceID, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	var input services.RecordPaymentInput
	if err := BindNestedOrFlat(c, "payment", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.paymentService.Record(c.Request.Context(), uint(invoiceID), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":             result.Payment,
		"invoice":             result.Invoice.ToResponse(),
		"milestone_completed": result.MilestoneCompleted,
	})
}
