package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/projectdesk/projectdesk-api/internal/repository"
	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	invoiceRepo  repository.InvoiceRepository
	estimateRepo repository.EstimateRepository
}

func NewExportService(invoiceRepo repository.InvoiceRepository, estimateRepo repository.EstimateRepository) *ExportService {
	return &ExportService{invoiceRepo: invoiceRepo, estimateRepo: estimateRepo}
}

// ExportInvoicesCSV writes the filtered invoice list as CSV
func (s *ExportService) ExportInvoicesCSV(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	invoices, _, err := s.invoiceRepo.List(ctx, query)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Invoice", "Project", "Client", "Invoice Date", "Due Date", "Amount", "Tax", "Total", "Paid", "Balance", "Status"})
	for _, inv := range invoices {
		_ = writer.Write([]string{
			inv.InvoiceNumber,
			inv.Project.ProjectName,
			inv.Client.CompanyName,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.DueDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", inv.Amount),
			fmt.Sprintf("%.2f", inv.TaxAmount),
			fmt.Sprintf("%.2f", inv.TotalAmount),
			fmt.Sprintf("%.2f", inv.PaidAmount),
			fmt.Sprintf("%.2f", inv.Balance),
			inv.Status,
		})
	}
	writer.Flush()

	filename := fmt.Sprintf("invoices_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportInvoicesXLSX writes the filtered invoice list as a spreadsheet
func (s *ExportService) ExportInvoicesXLSX(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	invoices, _, err := s.invoiceRepo.List(ctx, query)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Invoices"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"Invoice", "Project", "Client", "Invoice Date", "Due Date", "Amount", "Tax", "Total", "Paid", "Balance", "Status"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, inv := range invoices {
		values := []interface{}{
			inv.InvoiceNumber,
			inv.Project.ProjectName,
			inv.Client.CompanyName,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.DueDate.Format("2006-01-02"),
			inv.Amount,
			inv.TaxAmount,
			inv.TotalAmount,
			inv.PaidAmount,
			inv.Balance,
			inv.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("invoices_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// InvoicePDF renders a printable invoice with its payment history
func (s *ExportService) InvoicePDF(ctx context.Context, invoiceID uint) ([]byte, string, error) {
	invoice, err := s.invoiceRepo.FindByIDWithDetails(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, fmt.Sprintf("Invoice %s", invoice.InvoiceNumber))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(95, 7, fmt.Sprintf("Project: %s", invoice.Project.ProjectName))
	pdf.Cell(95, 7, fmt.Sprintf("Client: %s", invoice.Client.CompanyName))
	pdf.Ln(7)
	pdf.Cell(95, 7, fmt.Sprintf("Invoice Date: %s", invoice.InvoiceDate.Format("2006-01-02")))
	pdf.Cell(95, 7, fmt.Sprintf("Due Date: %s", invoice.DueDate.Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(120, 8, "Description")
	pdf.Cell(70, 8, "Amount")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(120, 7, "Amount")
	pdf.Cell(70, 7, fmt.Sprintf("%.2f", invoice.Amount))
	pdf.Ln(7)
	pdf.Cell(120, 7, fmt.Sprintf("Tax (%.2f%%)", invoice.TaxRate))
	pdf.Cell(70, 7, fmt.Sprintf("%.2f", invoice.TaxAmount))
	pdf.Ln(7)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(120, 8, "Total")
	pdf.Cell(70, 8, fmt.Sprintf("%.2f", invoice.TotalAmount))
	pdf.Ln(8)
	pdf.Cell(120, 8, "Balance")
	pdf.Cell(70, 8, fmt.Sprintf("%.2f", invoice.Balance))
	pdf.Ln(12)

	if len(invoice.Payments) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(100, 8, "Payments")
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		for _, p := range invoice.Payments {
			pdf.Cell(50, 6, p.PaymentDate.Format("2006-01-02"))
			pdf.Cell(50, 6, p.PaymentMode)
			pdf.Cell(50, 6, p.ReceiptNumber)
			pdf.Cell(40, 6, fmt.Sprintf("%.2f", p.Amount))
			pdf.Ln(6)
		}
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.Ln(8)
	pdf.Cell(100, 6, fmt.Sprintf("Status: %s", invoice.Status))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("invoice_%s.pdf", invoice.InvoiceNumber)
	return buf.Bytes(), filename, nil
}

// EstimatePDF renders the full cost breakdown of an estimate version
func (s *ExportService) EstimatePDF(ctx context.Context, estimateID uint) ([]byte, string, error) {
	estimate, err := s.estimateRepo.FindByID(ctx, estimateID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(140, 10, fmt.Sprintf("Estimate v%d - %s", estimate.Version, estimate.Project.ProjectName))
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(100, 7, fmt.Sprintf("Status: %s", estimate.Status))
	pdf.Ln(12)

	lines := []struct {
		label string
		value float64
	}{
		{"Labor Cost", estimate.LaborCost},
		{"Direct Cost", estimate.DirectCost},
		{"Indirect Cost", estimate.IndirectCost},
		{"Additional Cost", estimate.AdditionalCost},
		{"Subtotal", estimate.Subtotal},
		{fmt.Sprintf("Profit (%.2f%%)", estimate.ProfitPct), estimate.ProfitAmount},
		{fmt.Sprintf("Tax (%.2f%%)", estimate.TaxPct), estimate.TaxAmount},
	}
	for _, line := range lines {
		pdf.Cell(120, 7, line.label)
		pdf.Cell(70, 7, fmt.Sprintf("%.2f", line.value))
		pdf.Ln(7)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(120, 9, "Final Amount")
	pdf.Cell(70, 9, fmt.Sprintf("%.2f", estimate.FinalAmount))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("estimate_%d_v%d.pdf", estimate.ProjectID, estimate.Version)
	return buf.Bytes(), filename, nil
}
