package storage

import (
	"database/sql"
	"fmt"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS invoices (
					number TEXT PRIMARY KEY,
					date DATETIME NOT NULL,
					due_date DATETIME NOT NULL,
					company_name TEXT,
					company_address TEXT,
					company_phone TEXT,
					company_email TEXT,
					company_website TEXT,
					client_name TEXT,
					client_company TEXT,
					client_address TEXT,
					client_email TEXT,
					project_name TEXT,
					project_scope TEXT,
					service_category TEXT,
					client_industry TEXT,
					country TEXT,
					project_type TEXT,
					discount REAL NOT NULL DEFAULT 0,
					tax_rate REAL NOT NULL DEFAULT 0,
					payment_terms TEXT,
					doc_complexity TEXT,
					notes TEXT,
					subtotal REAL NOT NULL DEFAULT 0,
					discount_amount REAL NOT NULL DEFAULT 0,
					tax_amount REAL NOT NULL DEFAULT 0,
					total REAL NOT NULL DEFAULT 0,
					total_hours INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_invoices_date ON invoices(date)`,
				`CREATE INDEX idx_invoices_client ON invoices(client_company)`,

				`CREATE TABLE IF NOT EXISTS invoice_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					invoice_number TEXT NOT NULL,
					position INTEGER NOT NULL,
					description TEXT NOT NULL,
					details TEXT,
					hours INTEGER NOT NULL,
					rate REAL NOT NULL,
					FOREIGN KEY (invoice_number) REFERENCES invoices(number)
				)`,
				`CREATE INDEX idx_invoice_items_number ON invoice_items(invoice_number)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}
