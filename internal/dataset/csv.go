// Package dataset reads and writes the invoice training table as CSV.
// Column names and types are stable across writer and reader.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/model"
)

// Columns is the canonical header of the dataset file, in order.
var Columns = []string{
	"invoice_id",
	"service_category",
	"client_industry",
	"country",
	"project_type",
	"total_amount",
	"total_hours",
	"num_services",
	"discount",
	"tax_rate",
	"documentation_complexity",
	"payment_terms",
	"timestamp",
}

// WriteFile writes records to path as CSV, creating parent directories as
// needed. An existing file is replaced wholesale.
func WriteFile(path string, records []model.InvoiceRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create dataset directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.ServiceCategory,
			r.ClientIndustry,
			r.Country,
			r.ProjectType,
			formatFloat(r.TotalAmount),
			strconv.Itoa(r.TotalHours),
			strconv.Itoa(r.NumServices),
			formatFloat(r.Discount),
			formatFloat(r.TaxRate),
			r.DocComplexity,
			r.PaymentTerms,
			r.Timestamp.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write record %s: %w", r.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush dataset: %w", err)
	}
	return f.Close()
}

// ReadFile loads the dataset from path. Missing files map to
// common.ErrDatasetNotFound; structural problems map to
// common.ErrMalformedDataset.
func ReadFile(path string) ([]model.InvoiceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedDataset, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty file", common.ErrMalformedDataset)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	for _, name := range Columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", common.ErrMalformedDataset, name)
		}
	}

	records := make([]model.InvoiceRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", common.ErrMalformedDataset, n+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, index map[string]int) (model.InvoiceRecord, error) {
	get := func(name string) string { return row[index[name]] }

	totalAmount, err := strconv.ParseFloat(get("total_amount"), 64)
	if err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("total_amount: %v", err)
	}
	totalHours, err := strconv.Atoi(get("total_hours"))
	if err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("total_hours: %v", err)
	}
	numServices, err := strconv.Atoi(get("num_services"))
	if err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("num_services: %v", err)
	}
	discount, err := strconv.ParseFloat(get("discount"), 64)
	if err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("discount: %v", err)
	}
	taxRate, err := strconv.ParseFloat(get("tax_rate"), 64)
	if err != nil {
		return model.InvoiceRecord{}, fmt.Errorf("tax_rate: %v", err)
	}

	// The timestamp is informational only; a bad value does not reject the row.
	ts, _ := time.Parse(time.RFC3339, get("timestamp"))

	return model.InvoiceRecord{
		ID:              get("invoice_id"),
		ServiceCategory: get("service_category"),
		ClientIndustry:  get("client_industry"),
		Country:         get("country"),
		ProjectType:     get("project_type"),
		TotalAmount:     totalAmount,
		TotalHours:      totalHours,
		NumServices:     numServices,
		Discount:        discount,
		TaxRate:         taxRate,
		DocComplexity:   get("documentation_complexity"),
		PaymentTerms:    get("payment_terms"),
		Timestamp:       ts,
	}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
