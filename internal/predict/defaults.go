package predict

import (
	"fmt"

	"github.com/billforge/billforge/internal/model"
)

// Defaults computes the rule-based suggestion bundle used on every failure
// path: cold start, unreadable artifact, or estimator failure. It never
// fails and always returns a fully-populated bundle.
func Defaults(in Input) model.SuggestionBundle {
	return model.SuggestionBundle{
		Discount:      defaultDiscount(in.TotalAmount),
		TaxRate:       model.DefaultTaxRate,
		DocComplexity: defaultDocComplexity(in.TotalAmount),
		PaymentTerms:  model.PaymentTermsFor(in.ProjectType),
		ServiceNotes: fmt.Sprintf("Professional %s services for the %s sector. Total project value: $%s",
			in.ServiceCategory, in.ClientIndustry, model.FormatMoney(in.TotalAmount)),
	}
}

// defaultDiscount scales with project size: 0 below the lowest threshold,
// stepping up through the tiers.
func defaultDiscount(amount float64) float64 {
	switch {
	case amount > 20000:
		return 10.0
	case amount > 10000:
		return 5.0
	case amount > 5000:
		return 2.0
	default:
		return 0
	}
}

// defaultDocComplexity applies the amount tiers of the dataset labeling
// rule. Unlike the inference path, this can suggest Low.
func defaultDocComplexity(amount float64) string {
	switch {
	case amount > 15000:
		return model.DocHigh
	case amount > 8000:
		return model.DocMedium
	default:
		return model.DocLow
	}
}
