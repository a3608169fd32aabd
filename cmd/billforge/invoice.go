package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billforge/billforge/internal/cli"
	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/invoice"
	"github.com/billforge/billforge/internal/model"
	"github.com/billforge/billforge/internal/predict"
	"github.com/billforge/billforge/internal/render"
	"github.com/billforge/billforge/internal/storage"
	"github.com/billforge/billforge/internal/tui"
)

func invoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create and manage invoices",
	}
	cmd.AddCommand(invoiceNewCmd())
	cmd.AddCommand(invoiceCreateCmd())
	cmd.AddCommand(invoiceListCmd())
	cmd.AddCommand(invoiceShowCmd())
	return cmd
}

func invoiceNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create an invoice interactively",
		Long: `Walk through client, project, and service items in an interactive form,
apply the suggested terms, and produce a stored invoice with a PDF.`,
		RunE: runInvoiceNew,
	}

	cmd.Flags().String("pdf", "", "PDF output path (default: <invoice-number>.pdf)")
	_ = viper.BindPFlag("invoice.pdf", cmd.Flags().Lookup("pdf"))

	return cmd
}

func runInvoiceNew(cmd *cobra.Command, _ []string) error {
	service := predict.NewService(artifactPath(), datasetPath())

	inv, err := tui.Run(service)
	if err != nil {
		return err
	}
	if inv == nil {
		slog.Info("Invoice entry canceled")
		return nil
	}

	finalizeInvoice(inv)
	return emitInvoice(cmd.Context(), cmd, inv)
}

func invoiceCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice from a definition file",
		Long: `Create an invoice from a YAML definition file.

The file carries client, project, and line-item fields; discount, tax rate,
payment terms, and notes are filled from the suggestion models unless the
file sets them explicitly.

Example:
  billforge invoice create --input ./acme-migration.yaml --pdf ./acme.pdf`,
		RunE: runInvoiceCreate,
	}

	cmd.Flags().StringP("input", "i", "", "Invoice definition file (required)")
	cmd.Flags().String("pdf", "", "PDF output path (default: <invoice-number>.pdf)")
	_ = cmd.MarkFlagRequired("input")
	_ = viper.BindPFlag("invoice.input", cmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("invoice.pdf", cmd.Flags().Lookup("pdf"))

	return cmd
}

// invoiceDefinition mirrors the YAML invoice definition file.
type invoiceDefinition struct {
	Number          string  `mapstructure:"number"`
	ClientName      string  `mapstructure:"client_name"`
	ClientCompany   string  `mapstructure:"client_company"`
	ClientAddress   string  `mapstructure:"client_address"`
	ClientEmail     string  `mapstructure:"client_email"`
	ProjectName     string  `mapstructure:"project_name"`
	ProjectScope    string  `mapstructure:"project_scope"`
	ServiceCategory string  `mapstructure:"service_category"`
	ClientIndustry  string  `mapstructure:"client_industry"`
	Country         string  `mapstructure:"country"`
	ProjectType     string  `mapstructure:"project_type"`
	PaymentTerms    string  `mapstructure:"payment_terms"`
	Notes           string  `mapstructure:"notes"`
	Discount        float64 `mapstructure:"discount"`
	TaxRate         float64 `mapstructure:"tax_rate"`
	Items           []struct {
		Description string  `mapstructure:"description"`
		Details     string  `mapstructure:"details"`
		Hours       int     `mapstructure:"hours"`
		Rate        float64 `mapstructure:"rate"`
	} `mapstructure:"items"`
}

func runInvoiceCreate(cmd *cobra.Command, _ []string) error {
	input := config.ExpandPath(viper.GetString("invoice.input"))

	v := viper.New()
	v.SetConfigFile(input)
	if err := v.ReadInConfig(); err != nil {
		return common.NewUserError(fmt.Sprintf("cannot read invoice definition %s", input), err)
	}

	var def invoiceDefinition
	if err := v.Unmarshal(&def); err != nil {
		return fmt.Errorf("failed to parse invoice definition: %w", err)
	}
	if len(def.Items) == 0 {
		return fmt.Errorf("invoice definition %s has no items", input)
	}

	inv := &model.Invoice{
		Number:          def.Number,
		ClientName:      def.ClientName,
		ClientCompany:   def.ClientCompany,
		ClientAddress:   def.ClientAddress,
		ClientEmail:     def.ClientEmail,
		ProjectName:     def.ProjectName,
		ProjectScope:    def.ProjectScope,
		ServiceCategory: def.ServiceCategory,
		ClientIndustry:  def.ClientIndustry,
		Country:         def.Country,
		ProjectType:     def.ProjectType,
		PaymentTerms:    def.PaymentTerms,
		Notes:           def.Notes,
		Discount:        def.Discount,
		TaxRate:         def.TaxRate,
	}
	for _, item := range def.Items {
		inv.Items = append(inv.Items, model.LineItem{
			Description: item.Description,
			Details:     item.Details,
			Hours:       item.Hours,
			Rate:        item.Rate,
		})
	}

	applySuggestions(inv)
	finalizeInvoice(inv)
	return emitInvoice(cmd.Context(), cmd, inv)
}

func invoiceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored invoices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := storage.NewSQLiteStorage(databasePath())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() {
				if closeErr := db.Close(); closeErr != nil {
					slog.Error("Failed to close database", "error", closeErr)
				}
			}()

			if err := db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			summaries, err := db.ListInvoices(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderInvoiceList(summaries))
			return nil
		},
	}
}

func invoiceShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show NUMBER",
		Short: "Show a stored invoice",
		Args:  cobra.ExactArgs(1),
		RunE:  runInvoiceShow,
	}

	cmd.Flags().String("pdf", "", "Re-render the PDF to this path")
	_ = viper.BindPFlag("invoice.show_pdf", cmd.Flags().Lookup("pdf"))

	return cmd
}

func runInvoiceShow(cmd *cobra.Command, args []string) error {
	db, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if err := db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	inv, err := db.GetInvoice(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderInvoiceDetail(inv))
	fmt.Fprintln(out, cli.RenderTotals(inv.Totals))

	if pdfPath := viper.GetString("invoice.show_pdf"); pdfPath != "" {
		pdfPath = config.ExpandPath(pdfPath)
		if err := render.WritePDFFile(inv, pdfPath); err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatSuccess("PDF written to "+pdfPath))
	}
	return nil
}

// applySuggestions fills unset pricing fields from the prediction service.
// Explicit values in the definition win.
func applySuggestions(inv *model.Invoice) {
	totals := invoice.CalculateTotals(inv.Items, 0, 0)
	bundle := predict.NewService(artifactPath(), datasetPath()).Predict(predict.Input{
		ServiceCategory: inv.ServiceCategory,
		ClientIndustry:  inv.ClientIndustry,
		Country:         inv.Country,
		ProjectType:     inv.ProjectType,
		TotalAmount:     totals.Subtotal,
		TotalHours:      totals.TotalHours,
		NumServices:     len(inv.Items),
	})

	if inv.Discount == 0 {
		inv.Discount = bundle.Discount
	}
	if inv.TaxRate == 0 {
		inv.TaxRate = bundle.TaxRate
	}
	if inv.PaymentTerms == "" {
		inv.PaymentTerms = bundle.PaymentTerms
	}
	if inv.Notes == "" {
		inv.Notes = bundle.ServiceNotes
	}
	inv.DocComplexity = bundle.DocComplexity
}

// finalizeInvoice stamps number, dates, and company details, then computes
// totals. The invoice is complete afterward.
func finalizeInvoice(inv *model.Invoice) {
	now := time.Now()
	if inv.Number == "" {
		inv.Number = newInvoiceNumber(now)
	}
	if inv.Date.IsZero() {
		inv.Date = now
	}
	if inv.DueDate.IsZero() {
		inv.DueDate = inv.Date.AddDate(0, 0, 30)
	}

	inv.CompanyName = viper.GetString("company.name")
	inv.CompanyAddress = viper.GetString("company.address")
	inv.CompanyPhone = viper.GetString("company.phone")
	inv.CompanyEmail = viper.GetString("company.email")
	inv.CompanyWebsite = viper.GetString("company.website")

	inv.Totals = invoice.CalculateTotals(inv.Items, inv.Discount, inv.TaxRate)
}

func newInvoiceNumber(now time.Time) string {
	short := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("IT-%s-%s", now.Format("20060102"), short)
}

// emitInvoice stores the invoice, renders the PDF, and prints the totals.
func emitInvoice(ctx context.Context, cmd *cobra.Command, inv *model.Invoice) error {
	db, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.SaveInvoice(ctx, inv); err != nil {
		return fmt.Errorf("failed to store invoice: %w", err)
	}

	pdfPath := viper.GetString("invoice.pdf")
	if pdfPath == "" {
		pdfPath = inv.Number + ".pdf"
	} else {
		pdfPath = config.ExpandPath(pdfPath)
	}
	if err := render.WritePDFFile(inv, pdfPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.RenderTotals(inv.Totals))
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Invoice %s saved, PDF written to %s", inv.Number, pdfPath)))
	return nil
}
