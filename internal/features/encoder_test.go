package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/model"
)

func sampleRecords() []model.InvoiceRecord {
	return []model.InvoiceRecord{
		{ServiceCategory: "Cloud Services", ClientIndustry: "Finance", Country: "US", ProjectType: "Fixed Price", TotalAmount: 12000, TotalHours: 80, NumServices: 2},
		{ServiceCategory: "Cybersecurity", ClientIndustry: "Healthcare", Country: "UK", ProjectType: "Retainer", TotalAmount: 30000, TotalHours: 120, NumServices: 4},
		{ServiceCategory: "IT Consulting", ClientIndustry: "Education", Country: "US", ProjectType: "Fixed Price", TotalAmount: 4000, TotalHours: 20, NumServices: 1},
	}
}

func TestFitIsDeterministic(t *testing.T) {
	records := sampleRecords()

	first := Fit(records)
	second := Fit(records)
	assert.Equal(t, first, second)

	// Codes are assigned in sorted value order.
	assert.Equal(t, map[string]int{"Cloud Services": 0, "Cybersecurity": 1, "IT Consulting": 2}, first.ServiceCategory)
	assert.Equal(t, map[string]int{"UK": 0, "US": 1}, first.Country)
}

func TestFitIsOrderIndependent(t *testing.T) {
	records := sampleRecords()
	reversed := []model.InvoiceRecord{records[2], records[1], records[0]}

	assert.Equal(t, Fit(records), Fit(reversed))
}

func TestTransformVector(t *testing.T) {
	table := Fit(sampleRecords())

	vec := Transform(model.InvoiceRecord{
		ServiceCategory: "Cybersecurity",
		ClientIndustry:  "Finance",
		Country:         "UK",
		ProjectType:     "Retainer",
		TotalAmount:     25000,
		TotalHours:      100,
		NumServices:     3,
	}, table)

	require.Len(t, vec, Count)
	assert.InDelta(t, float64(table.ServiceCategory["Cybersecurity"]), vec[0], 1e-9)
	assert.InDelta(t, float64(table.ClientIndustry["Finance"]), vec[1], 1e-9)
	assert.InDelta(t, float64(table.Country["UK"]), vec[2], 1e-9)
	assert.InDelta(t, float64(table.ProjectType["Retainer"]), vec[3], 1e-9)
	assert.InDelta(t, 25000, vec[4], 1e-9)
	assert.InDelta(t, 100, vec[5], 1e-9)
	assert.InDelta(t, 3, vec[6], 1e-9)
	assert.InDelta(t, 250, vec[7], 1e-9) // amount per hour
	assert.InDelta(t, 1, vec[8], 1e-9)   // large project
	assert.InDelta(t, 1, vec[9], 1e-9)   // enterprise client
}

func TestTransformUnseenCategoryEncodesToZero(t *testing.T) {
	table := Fit(sampleRecords())

	vec := Transform(model.InvoiceRecord{
		ServiceCategory: "Quantum Computing",
		ClientIndustry:  "Agriculture",
		Country:         "FR",
		ProjectType:     "Barter",
		TotalAmount:     1000,
		TotalHours:      10,
	}, table)

	require.Len(t, vec, Count)
	for i := 0; i < 4; i++ {
		assert.Zero(t, vec[i], "categorical feature %d should fall back to code 0", i)
	}
}

func TestTransformDerivedFields(t *testing.T) {
	table := Fit(sampleRecords())

	tests := []struct {
		name           string
		record         model.InvoiceRecord
		wantPerHour    float64
		wantLarge      float64
		wantEnterprise float64
	}{
		{
			name:        "zero hours guarded",
			record:      model.InvoiceRecord{TotalAmount: 500, TotalHours: 0},
			wantPerHour: 500,
		},
		{
			name:        "at large threshold is not large",
			record:      model.InvoiceRecord{TotalAmount: 20000, TotalHours: 100},
			wantPerHour: 200,
		},
		{
			name:           "healthcare is enterprise",
			record:         model.InvoiceRecord{ClientIndustry: "Healthcare", TotalAmount: 20001, TotalHours: 100},
			wantPerHour:    200.01,
			wantLarge:      1,
			wantEnterprise: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := Transform(tt.record, table)
			assert.InDelta(t, tt.wantPerHour, vec[7], 1e-9)
			assert.InDelta(t, tt.wantLarge, vec[8], 1e-9)
			assert.InDelta(t, tt.wantEnterprise, vec[9], 1e-9)
		})
	}
}
