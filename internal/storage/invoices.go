package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/model"
)

// InvoiceSummary is the list view of a stored invoice.
type InvoiceSummary struct {
	Date          time.Time
	Number        string
	ClientCompany string
	ProjectName   string
	Total         float64
}

// SaveInvoice persists an invoice and its line items in one transaction.
// Saving an existing number replaces it wholesale.
func (s *SQLiteStorage) SaveInvoice(ctx context.Context, inv *model.Invoice) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateInvoice(inv); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO invoices (
			number, date, due_date,
			company_name, company_address, company_phone, company_email, company_website,
			client_name, client_company, client_address, client_email,
			project_name, project_scope,
			service_category, client_industry, country, project_type,
			discount, tax_rate, payment_terms, doc_complexity, notes,
			subtotal, discount_amount, tax_amount, total, total_hours
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.Number, inv.Date, inv.DueDate,
		inv.CompanyName, inv.CompanyAddress, inv.CompanyPhone, inv.CompanyEmail, inv.CompanyWebsite,
		inv.ClientName, inv.ClientCompany, inv.ClientAddress, inv.ClientEmail,
		inv.ProjectName, inv.ProjectScope,
		inv.ServiceCategory, inv.ClientIndustry, inv.Country, inv.ProjectType,
		inv.Discount, inv.TaxRate, inv.PaymentTerms, inv.DocComplexity, inv.Notes,
		inv.Totals.Subtotal, inv.Totals.DiscountAmount, inv.Totals.TaxAmount,
		inv.Totals.Total, inv.Totals.TotalHours,
	); err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", inv.Number, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM invoice_items WHERE invoice_number = ?`, inv.Number); err != nil {
		return fmt.Errorf("failed to clear items for %s: %w", inv.Number, err)
	}

	for i, item := range inv.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items (invoice_number, position, description, details, hours, rate)
			VALUES (?, ?, ?, ?, ?, ?)`,
			inv.Number, i, item.Description, item.Details, item.Hours, item.Rate,
		); err != nil {
			return fmt.Errorf("failed to save item %d for %s: %w", i+1, inv.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice %s: %w", inv.Number, err)
	}
	return nil
}

// GetInvoice loads a stored invoice with its line items.
func (s *SQLiteStorage) GetInvoice(ctx context.Context, number string) (*model.Invoice, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(number, "number"); err != nil {
		return nil, err
	}

	var inv model.Invoice
	err := s.db.QueryRowContext(ctx, `
		SELECT number, date, due_date,
			company_name, company_address, company_phone, company_email, company_website,
			client_name, client_company, client_address, client_email,
			project_name, project_scope,
			service_category, client_industry, country, project_type,
			discount, tax_rate, payment_terms, doc_complexity, notes,
			subtotal, discount_amount, tax_amount, total, total_hours
		FROM invoices WHERE number = ?`, number).Scan(
		&inv.Number, &inv.Date, &inv.DueDate,
		&inv.CompanyName, &inv.CompanyAddress, &inv.CompanyPhone, &inv.CompanyEmail, &inv.CompanyWebsite,
		&inv.ClientName, &inv.ClientCompany, &inv.ClientAddress, &inv.ClientEmail,
		&inv.ProjectName, &inv.ProjectScope,
		&inv.ServiceCategory, &inv.ClientIndustry, &inv.Country, &inv.ProjectType,
		&inv.Discount, &inv.TaxRate, &inv.PaymentTerms, &inv.DocComplexity, &inv.Notes,
		&inv.Totals.Subtotal, &inv.Totals.DiscountAmount, &inv.Totals.TaxAmount,
		&inv.Totals.Total, &inv.Totals.TotalHours,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: invoice %s", common.ErrNotFound, number)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", number, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT description, details, hours, rate
		FROM invoice_items WHERE invoice_number = ? ORDER BY position`, number)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for %s: %w", number, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.Description, &item.Details, &item.Hours, &item.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan item for %s: %w", number, err)
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items for %s: %w", number, err)
	}

	return &inv, nil
}

// ListInvoices returns summaries of all stored invoices, newest first.
func (s *SQLiteStorage) ListInvoices(ctx context.Context) ([]InvoiceSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, date, client_company, project_name, total
		FROM invoices ORDER BY date DESC, number DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var summaries []InvoiceSummary
	for rows.Next() {
		var s InvoiceSummary
		if err := rows.Scan(&s.Number, &s.Date, &s.ClientCompany, &s.ProjectName, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan invoice summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read invoice summaries: %w", err)
	}

	return summaries, nil
}
