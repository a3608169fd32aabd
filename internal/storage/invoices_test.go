package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "billforge.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testInvoice(number string, date time.Time) *model.Invoice {
	return &model.Invoice{
		Number:          number,
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
		ProjectScope:    "Lift and shift of two data centers",
		ServiceCategory: "Cloud Services",
		ClientIndustry:  "Finance",
		Country:         "US",
		ProjectType:     "Fixed Price",
		PaymentTerms:    "50% Advance, 50% on Completion",
		DocComplexity:   model.DocHigh,
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

func TestSaveAndGetInvoice(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	want := testInvoice("IT-20240315-abc123", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, s.SaveInvoice(ctx, want))

	got, err := s.GetInvoice(ctx, want.Number)
	require.NoError(t, err)

	assert.WithinDuration(t, want.Date, got.Date, time.Second)
	assert.WithinDuration(t, want.DueDate, got.DueDate, time.Second)

	// Dates round-trip through the driver's text representation; compare
	// the rest of the document exactly.
	got.Date, got.DueDate = want.Date, want.DueDate
	assert.Equal(t, want, got)
}

func TestSaveInvoiceReplacesExisting(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	inv := testInvoice("IT-20240315-abc123", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, s.SaveInvoice(ctx, inv))

	inv.ProjectName = "Cloud Migration Phase 2"
	inv.Items = []model.LineItem{
		{Description: "Optimization", Details: "Right-sizing", Hours: 20, Rate: 175},
	}
	require.NoError(t, s.SaveInvoice(ctx, inv))

	got, err := s.GetInvoice(ctx, inv.Number)
	require.NoError(t, err)
	assert.Equal(t, "Cloud Migration Phase 2", got.ProjectName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Optimization", got.Items[0].Description)
}

func TestGetInvoiceNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetInvoice(context.Background(), "IT-00000000-missing")
	assert.True(t, errors.Is(err, common.ErrNotFound), "got error: %v", err)
}

func TestListInvoicesNewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	older := testInvoice("IT-20240101-aaa111", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := testInvoice("IT-20240315-bbb222", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveInvoice(ctx, older))
	require.NoError(t, s.SaveInvoice(ctx, newer))

	summaries, err := s.ListInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, newer.Number, summaries[0].Number)
	assert.Equal(t, older.Number, summaries[1].Number)
	assert.Equal(t, newer.ClientCompany, summaries[0].ClientCompany)
	assert.InDelta(t, newer.Totals.Total, summaries[0].Total, 1e-9)
}

func TestListInvoicesEmpty(t *testing.T) {
	s := newTestStorage(t)

	summaries, err := s.ListInvoices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSaveInvoiceValidation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		inv  *model.Invoice
	}{
		{name: "nil invoice"},
		{
			name: "empty number",
			inv:  testInvoice("", date),
		},
		{
			name: "no items",
			inv: func() *model.Invoice {
				inv := testInvoice("IT-20240315-ccc333", date)
				inv.Items = nil
				return inv
			}(),
		},
		{
			name: "non-positive hours",
			inv: func() *model.Invoice {
				inv := testInvoice("IT-20240315-ddd444", date)
				inv.Items[0].Hours = 0
				return inv
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, s.SaveInvoice(ctx, tt.inv))
		})
	}
}
