// Package features maps raw invoice attributes into the fixed-order numeric
// feature vector shared by training and inference.
package features

import (
	"sort"

	"github.com/billforge/billforge/internal/model"
)

// Count is the length of every feature vector. Training and inference must
// agree on it exactly; a mismatch is a contract violation.
const Count = 10

// Names lists the features in vector order.
var Names = []string{
	"service_category",
	"client_industry",
	"country",
	"project_type",
	"total_amount",
	"total_hours",
	"num_services",
	"amount_per_hour",
	"is_large_project",
	"is_enterprise_client",
}

// LargeProjectThreshold is the total amount above which a project counts as
// large for feature derivation.
const LargeProjectThreshold = 20000.0

// EncoderTable holds one categorical-to-integer mapping per categorical
// attribute. It is fit once during training and read-only afterward.
type EncoderTable struct {
	ServiceCategory map[string]int
	ClientIndustry  map[string]int
	Country         map[string]int
	ProjectType     map[string]int
}

// Fit builds the encoder table over the values observed in the training
// records. Codes are assigned in sorted value order, so a fit over the same
// table is always identical.
func Fit(records []model.InvoiceRecord) EncoderTable {
	var categories, industries, countries, projectTypes []string
	for _, r := range records {
		categories = append(categories, r.ServiceCategory)
		industries = append(industries, r.ClientIndustry)
		countries = append(countries, r.Country)
		projectTypes = append(projectTypes, r.ProjectType)
	}
	return EncoderTable{
		ServiceCategory: fitColumn(categories),
		ClientIndustry:  fitColumn(industries),
		Country:         fitColumn(countries),
		ProjectType:     fitColumn(projectTypes),
	}
}

func fitColumn(values []string) map[string]int {
	distinct := make(map[string]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}
	ordered := make([]string, 0, len(distinct))
	for v := range distinct {
		ordered = append(ordered, v)
	}
	sort.Strings(ordered)

	codes := make(map[string]int, len(ordered))
	for i, v := range ordered {
		codes[v] = i
	}
	return codes
}

// Transform derives the feature vector for a record. It is a pure function
// of the record and the table: categories absent from a map encode to 0
// rather than failing.
func Transform(r model.InvoiceRecord, table EncoderTable) []float64 {
	hours := r.TotalHours
	if hours < 1 {
		hours = 1
	}

	return []float64{
		float64(table.ServiceCategory[r.ServiceCategory]),
		float64(table.ClientIndustry[r.ClientIndustry]),
		float64(table.Country[r.Country]),
		float64(table.ProjectType[r.ProjectType]),
		r.TotalAmount,
		float64(r.TotalHours),
		float64(r.NumServices),
		r.TotalAmount / float64(hours),
		boolFeature(r.TotalAmount > LargeProjectThreshold),
		boolFeature(model.IsEnterpriseIndustry(r.ClientIndustry)),
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
