package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/model"
)

func sampleInvoice() *model.Invoice {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return &model.Invoice{
		Number:          "IT-20240315-abc123",
		Date:            date,
		DueDate:         date.AddDate(0, 1, 0),
		CompanyName:     "BillForge Consulting",
		CompanyAddress:  "1 Main St, Springfield",
		CompanyPhone:    "+1 555 0100",
		CompanyEmail:    "billing@example.com",
		CompanyWebsite:  "https://example.com",
		ClientName:      "Dana Smith",
		ClientCompany:   "Acme Corp",
		ClientAddress:   "2 Elm St, Shelbyville",
		ClientEmail:     "dana@acme.example",
		ProjectName:     "Cloud Migration Phase 1",
		ServiceCategory: "Cloud Services",
		PaymentTerms:    "50% Advance, 50% on Completion",
		Notes:           "Thank you for your business.",
		Items: []model.LineItem{
			{Description: "Cloud Architecture", Details: "Landing zone design", Hours: 40, Rate: 180},
			{Description: "Migration Execution", Details: "Workload cutover", Hours: 80, Rate: 150},
		},
		Discount: 10,
		TaxRate:  8.5,
		Totals: model.Totals{
			Subtotal:       19200,
			DiscountAmount: 1920,
			TaxAmount:      1468.8,
			Total:          18748.8,
			TotalHours:     120,
		},
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(sampleInvoice(), &buf))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should start with the PDF magic")
	assert.Greater(t, len(out), 1000, "rendered document should not be trivial")
}

func TestWritePDFManyItems(t *testing.T) {
	inv := sampleInvoice()
	for i := 0; i < 60; i++ {
		inv.Items = append(inv.Items, model.LineItem{
			Description: "Ongoing Support", Details: "Monthly retainer", Hours: 10, Rate: 120,
		})
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(inv, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWritePDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "invoice.pdf")
	require.NoError(t, WritePDFFile(sampleInvoice(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
