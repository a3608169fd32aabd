// Package model defines the core domain types shared across the application.
package model

import "time"

// Known values for the categorical invoice attributes. The synthesizer draws
// from these; the prediction service accepts anything and treats unknown
// values as unseen categories.
var (
	// ServiceCategories lists the supported IT service lines.
	ServiceCategories = []string{
		"Software Development", "Cloud Services", "Cybersecurity",
		"IT Consulting", "System Integration", "Data Analytics",
		"DevOps Services", "AI/ML Solutions", "Mobile Development",
		"Web Development", "Database Management", "Network Infrastructure",
	}

	// ClientIndustries lists the supported client sectors.
	ClientIndustries = []string{
		"Finance", "Healthcare", "E-commerce", "Education", "Manufacturing", "Government",
	}

	// Countries lists the supported billing countries.
	Countries = []string{"US", "UK", "CA", "AU", "DE", "SG"}

	// ProjectTypes lists the supported engagement models.
	ProjectTypes = []string{"Fixed Price", "Time & Materials", "Retainer", "Support Contract"}
)

// Documentation complexity levels.
const (
	DocLow    = "Low"
	DocMedium = "Medium"
	DocHigh   = "High"
)

// LineItem is a single billable service on an invoice.
type LineItem struct {
	Description string
	Details     string
	Hours       int
	Rate        float64
}

// Amount returns the line total before discount and tax.
func (li LineItem) Amount() float64 {
	return float64(li.Hours) * li.Rate
}

// InvoiceRecord is one row of the training table: the categorical and
// aggregate attributes of an invoice plus the rule-derived labels.
type InvoiceRecord struct {
	Timestamp       time.Time
	ID              string
	ServiceCategory string
	ClientIndustry  string
	Country         string
	ProjectType     string
	DocComplexity   string
	PaymentTerms    string
	TotalAmount     float64
	TotalHours      int
	NumServices     int
	Discount        float64
	TaxRate         float64
}

// Totals holds the computed money fields of an invoice.
type Totals struct {
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	Total          float64
	TotalHours     int
}

// Invoice is a complete customer-facing invoice document, ready for
// persistence and PDF rendering.
type Invoice struct {
	Date            time.Time
	DueDate         time.Time
	Number          string
	CompanyName     string
	CompanyAddress  string
	CompanyPhone    string
	CompanyEmail    string
	CompanyWebsite  string
	ClientName      string
	ClientCompany   string
	ClientAddress   string
	ClientEmail     string
	ProjectName     string
	ProjectScope    string
	ServiceCategory string
	ClientIndustry  string
	Country         string
	ProjectType     string
	PaymentTerms    string
	DocComplexity   string
	Notes           string
	Items           []LineItem
	Discount        float64
	TaxRate         float64
	Totals          Totals
}

// IsEnterpriseIndustry reports whether the client industry is treated as an
// enterprise sector for discounting and feature derivation.
func IsEnterpriseIndustry(industry string) bool {
	return industry == "Finance" || industry == "Healthcare"
}
