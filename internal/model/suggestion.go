package model

// SuggestionBundle is the fully-populated output of the prediction service.
// Every code path constructs the same shape; no field is ever left empty.
type SuggestionBundle struct {
	DocComplexity string
	PaymentTerms  string
	ServiceNotes  string
	Discount      float64
	TaxRate       float64
}

// Hard business bounds on suggested percentages. Estimators are clamped to
// these; the defaults path respects them by construction.
const (
	MaxDiscount = 20.0
	MaxTaxRate  = 25.0
)

// DefaultTaxRate is the single-country fallback applied when no trained
// artifact is available. Deliberately not geo-aware.
const DefaultTaxRate = 8.5

var taxRates = map[string]float64{
	"US": 8.5,
	"UK": 20.0,
	"CA": 13.0,
	"AU": 10.0,
	"DE": 19.0,
	"SG": 7.0,
}

// TaxRateForCountry returns the statutory rate for a billing country.
func TaxRateForCountry(country string) (float64, bool) {
	rate, ok := taxRates[country]
	return rate, ok
}

var paymentTerms = map[string]string{
	"Fixed Price":      "50% Advance, 50% on Completion",
	"Time & Materials": "Net 30",
	"Retainer":         "Monthly in Advance",
	"Support Contract": "Quarterly in Advance",
}

// PaymentTermsFor maps a project type to its payment terms. Unknown project
// types fall back to Net 30.
func PaymentTermsFor(projectType string) string {
	if terms, ok := paymentTerms[projectType]; ok {
		return terms
	}
	return "Net 30"
}

var serviceNotes = map[string]string{
	"Software Development": "Includes code documentation, testing, and deployment support.",
	"Cloud Services":       "Includes architecture design, security configuration, and monitoring.",
	"Cybersecurity":        "Includes security assessment, vulnerability scanning, and compliance reports.",
	"IT Consulting":        "Comprehensive analysis, strategy recommendations, and implementation guidance.",
	"System Integration":   "Includes system design and integration testing.",
	"Data Analytics":       "Includes data analysis and visualization reports.",
	"DevOps Services":      "Includes CI/CD pipeline setup and automation.",
	"AI/ML Solutions":      "Includes model development and implementation.",
}

// GenericServiceNotes is used for categories without a tailored note.
const GenericServiceNotes = "Professional IT services delivered to industry standards."

// ServiceNotesFor maps a service category to its boilerplate notes.
func ServiceNotesFor(category string) string {
	if notes, ok := serviceNotes[category]; ok {
		return notes
	}
	return GenericServiceNotes
}
