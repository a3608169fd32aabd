// Package render produces the customer-facing PDF invoice document.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/billforge/billforge/internal/model"
)

const (
	pageMargin  = 15.0
	lineHeight  = 5.0
	tableHeight = 7.0
)

// WritePDF renders the invoice to w.
func WritePDF(inv *model.Invoice, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", inv.Number), true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	header(pdf, inv)
	billTo(pdf, inv)
	if inv.ProjectScope != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, lineHeight, "Project Scope:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, lineHeight, inv.ProjectScope, "", "L", false)
		pdf.Ln(4)
	}
	itemsTable(pdf, inv)
	totalsTable(pdf, inv)
	notes(pdf, inv)

	return pdf.Output(w)
}

// WritePDFFile renders the invoice to path, creating parent directories.
func WritePDFFile(inv *model.Invoice, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PDF file: %w", err)
	}
	if err := WritePDF(inv, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return f.Close()
}

func header(pdf *fpdf.Fpdf, inv *model.Invoice) {
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(110, lineHeight, inv.CompanyName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(110, 4.5, inv.CompanyAddress, "", "L", false)
	pdf.CellFormat(110, 4.5, "Phone: "+inv.CompanyPhone, "", 1, "L", false, 0, "")
	pdf.CellFormat(110, 4.5, "Email: "+inv.CompanyEmail, "", 1, "L", false, 0, "")
	pdf.CellFormat(110, 4.5, "Website: "+inv.CompanyWebsite, "", 1, "L", false, 0, "")
	leftBottom := pdf.GetY()

	pdf.SetXY(pageMargin+120, top)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(46, 134, 171)
	pdf.CellFormat(60, 7, "INVOICE", "", 2, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(pageMargin + 120)
	pdf.CellFormat(60, 4.5, "Invoice #: "+inv.Number, "", 2, "L", false, 0, "")
	pdf.CellFormat(60, 4.5, "Date: "+inv.Date.Format("2006-01-02"), "", 2, "L", false, 0, "")
	pdf.CellFormat(60, 4.5, "Due Date: "+inv.DueDate.Format("2006-01-02"), "", 2, "L", false, 0, "")
	pdf.MultiCell(60, 4.5, "Terms: "+inv.PaymentTerms, "", "L", false)

	if pdf.GetY() < leftBottom {
		pdf.SetY(leftBottom)
	}
	pdf.Ln(6)
}

func billTo(pdf *fpdf.Fpdf, inv *model.Invoice) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, lineHeight, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, lineHeight, inv.ClientName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, inv.ClientCompany, "", 1, "L", false, 0, "")
	pdf.MultiCell(0, lineHeight, inv.ClientAddress, "", "L", false)
	pdf.CellFormat(0, lineHeight, "Email: "+inv.ClientEmail, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, lineHeight, "Project: "+inv.ProjectName, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func itemsTable(pdf *fpdf.Fpdf, inv *model.Invoice) {
	widths := []float64{95, 20, 30, 35}
	headers := []string{"Service Description", "Hours", "Rate ($/hr)", "Amount ($)"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(46, 134, 171)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], tableHeight, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for _, item := range inv.Items {
		pdf.SetFillColor(248, 249, 250)
		desc := item.Description
		if item.Details != "" {
			desc += " - " + item.Details
		}
		pdf.CellFormat(widths[0], tableHeight, desc, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[1], tableHeight, fmt.Sprintf("%d", item.Hours), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[2], tableHeight, model.FormatMoney(item.Rate), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], tableHeight, model.FormatMoney(item.Amount()), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
		fill = !fill
	}
	pdf.Ln(4)
}

func totalsTable(pdf *fpdf.Fpdf, inv *model.Invoice) {
	rows := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal:", "$" + model.FormatMoney(inv.Totals.Subtotal), false},
		{fmt.Sprintf("Discount (%.1f%%):", inv.Discount), "-$" + model.FormatMoney(inv.Totals.DiscountAmount), false},
		{fmt.Sprintf("Tax (%.1f%%):", inv.TaxRate), "$" + model.FormatMoney(inv.Totals.TaxAmount), false},
		{"TOTAL AMOUNT DUE:", "$" + model.FormatMoney(inv.Totals.Total), true},
	}

	for _, row := range rows {
		style := ""
		if row.bold {
			style = "B"
			pdf.SetFillColor(232, 244, 253)
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(130, 6.5, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6.5, row.value, "", 1, "R", row.bold, 0, "")
	}
	pdf.Ln(4)
}

func notes(pdf *fpdf.Fpdf, inv *model.Invoice) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, lineHeight, "Professional Notes:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4.5, inv.Notes, "", "L", false)
	pdf.Ln(2)
	pdf.CellFormat(0, 4.5, "Documentation Level: "+inv.DocComplexity, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4.5, fmt.Sprintf("Total Project Hours: %d hours", inv.Totals.TotalHours), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, lineHeight, "Terms & Conditions:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, "Payment due within 30 days of invoice date. Late payments subject to 1.5% monthly interest. "+
		"All intellectual property remains with service provider until full payment is received. "+
		"Confidentiality of all project information is guaranteed.", "", "L", false)
}
