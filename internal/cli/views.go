package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/billforge/billforge/internal/model"
	"github.com/billforge/billforge/internal/storage"
)

// RenderSuggestion renders a suggestion bundle as a bordered box.
func RenderSuggestion(bundle model.SuggestionBundle) string {
	rows := []string{
		LabelStyle.Render("Discount:") + fmt.Sprintf("%.2f%%", bundle.Discount),
		LabelStyle.Render("Tax Rate:") + fmt.Sprintf("%.2f%%", bundle.TaxRate),
		LabelStyle.Render("Documentation:") + bundle.DocComplexity,
		LabelStyle.Render("Payment Terms:") + bundle.PaymentTerms,
		LabelStyle.Render("Notes:") + bundle.ServiceNotes,
	}
	return RenderBox(RobotIcon+" Suggested Terms", strings.Join(rows, "\n"))
}

// RenderTotals renders computed invoice totals as a bordered box.
func RenderTotals(totals model.Totals) string {
	rows := []string{
		LabelStyle.Render("Subtotal:") + "$" + model.FormatMoney(totals.Subtotal),
		LabelStyle.Render("Discount:") + "-$" + model.FormatMoney(totals.DiscountAmount),
		LabelStyle.Render("Tax:") + "$" + model.FormatMoney(totals.TaxAmount),
		LabelStyle.Render("Total Due:") + "$" + model.FormatMoney(totals.Total),
		LabelStyle.Render("Total Hours:") + fmt.Sprintf("%d", totals.TotalHours),
	}
	return RenderBox(ChartIcon+" Project Totals", strings.Join(rows, "\n"))
}

// RenderInvoiceDetail renders the header fields of a stored invoice.
func RenderInvoiceDetail(inv *model.Invoice) string {
	rows := []string{
		LabelStyle.Render("Date:") + inv.Date.Format("2006-01-02"),
		LabelStyle.Render("Due Date:") + inv.DueDate.Format("2006-01-02"),
		LabelStyle.Render("Client:") + inv.ClientName + " (" + inv.ClientCompany + ")",
		LabelStyle.Render("Project:") + inv.ProjectName,
		LabelStyle.Render("Category:") + inv.ServiceCategory,
		LabelStyle.Render("Terms:") + inv.PaymentTerms,
		LabelStyle.Render("Documentation:") + inv.DocComplexity,
		LabelStyle.Render("Items:") + fmt.Sprintf("%d", len(inv.Items)),
	}
	return RenderBox(InvoiceIcon+" Invoice "+inv.Number, strings.Join(rows, "\n"))
}

// RenderInvoiceList renders stored invoice summaries as a simple table.
func RenderInvoiceList(summaries []storage.InvoiceSummary) string {
	if len(summaries) == 0 {
		return SubtleStyle.Render("No invoices stored yet.")
	}

	headerStyle := lipgloss.NewStyle().Bold(true)
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-18s %-12s %-24s %-28s %12s",
		"Number", "Date", "Client", "Project", "Total")))
	b.WriteString("\n")
	for _, s := range summaries {
		b.WriteString(fmt.Sprintf("%-18s %-12s %-24s %-28s %12s\n",
			s.Number,
			s.Date.Format("2006-01-02"),
			truncate(s.ClientCompany, 24),
			truncate(s.ProjectName, 28),
			"$"+model.FormatMoney(s.Total)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
