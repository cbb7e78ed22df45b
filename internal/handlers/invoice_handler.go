package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/projectdesk/projectdesk-api/internal/models"
	"github.com/projectdesk/projectdesk-api/internal/services"
)

type InvoiceHandler struct {
	invoiceService *services.InvoiceService
	exportService  *services.ExportService
}

func NewInvoiceHandler(invoiceService *services.InvoiceService, exportService *services.ExportService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		exportService:  exportService,
	}
}

// @Summary List Invoices
// @Description Get a paginated list of invoices
// @Tags Invoices
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status"
// @Param project_id query int false "Filter by project"
// @Param client_id query int false "Filter by client"
// @Success 200 {object} map[string]interface{}
// @Router /invoices [get]
func (h *InvoiceHandler) Index(c *gin.Context) {
	query := listQueryFromContext(c, "status", "project_id", "client_id")

	invoices, total, err := h.invoiceService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		responses = append(responses, inv.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"invoices": responses, "pagination": paginationBlock(query, total)})
}

// @Summary Get Invoice
// @Description Get an invoice with its project, client, milestone and payment history
// @Tags Invoices
// @Produce json
// @Param invoice_id path int true "Invoice ID"
// @Success 200 {object} models.InvoiceResponse
// @Failure 404 {object} map[string]string
// @Router /invoices/{invoice_id} [get]
func (h *InvoiceHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	invoice, err := h.invoiceService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice.ToResponse(), "payments": invoice.Payments})
}

// @Summary Create Invoice
// @Description Generate an invoice; tax, due date and balance are derived server-side
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body services.CreateInvoiceInput true "Invoice Data"
// @Success 201 {object} models.InvoiceResponse
// @Failure 422 {object} map[string]string
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input services.CreateInvoiceInput
	if err := BindNestedOrFlat(c, "invoice", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invoice": invoice.ToResponse()})
}

// @Summary Export Invoices
// @Description Download the invoice list as CSV or XLSX
// @Tags Invoices
// @Produce application/octet-stream
// @Param format query string true "Report format (csv, xlsx)"
// @Param status query string false "Filter by status"
// @Param project_id query int false "Filter by project"
// @Router /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	format := c.Query("format")
	query := listQueryFromContext(c, "status", "project_id", "client_id")
	// exports are not paginated
	query.PerPage = 10000

	var data []byte
	var filename string
	var err error

	switch format {
	case "csv":
		data, filename, err = h.exportService.ExportInvoicesCSV(c.Request.Context(), query)
	case "xlsx":
		data, filename, err = h.exportService.ExportInvoicesXLSX(c.Request.Context(), query)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format (csv, xlsx)"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to generate %s: %v", format, err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// @Summary Print Invoice
// @Description Download a printable PDF of an invoice with its payment history
// @Tags Invoices
// @Produce application/pdf
// @Param invoice_id path int true "Invoice ID"
// @Router /invoices/{invoice_id}/print [get]
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("invoice_id"), 10, 32)
	data, filename, err := h.exportService.InvoicePDF(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
