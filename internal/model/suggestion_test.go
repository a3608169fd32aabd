package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentTermsFor(t *testing.T) {
	tests := []struct {
		projectType string
		want        string
	}{
		{"Fixed Price", "50% Advance, 50% on Completion"},
		{"Time & Materials", "Net 30"},
		{"Retainer", "Monthly in Advance"},
		{"Support Contract", "Quarterly in Advance"},
		{"Something Else", "Net 30"},
		{"", "Net 30"},
	}

	for _, tt := range tests {
		t.Run(tt.projectType, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentTermsFor(tt.projectType))
		})
	}
}

func TestPaymentTermsCoverAllProjectTypes(t *testing.T) {
	for _, pt := range ProjectTypes {
		assert.NotEmpty(t, PaymentTermsFor(pt), "project type %s has no terms", pt)
	}
}

func TestServiceNotesFor(t *testing.T) {
	// Every known category yields non-empty notes.
	for _, cat := range ServiceCategories {
		assert.NotEmpty(t, ServiceNotesFor(cat))
	}

	// Unknown categories fall back to the generic text.
	assert.Equal(t, GenericServiceNotes, ServiceNotesFor("Quantum Computing"))
}

func TestTaxRateForCountry(t *testing.T) {
	tests := []struct {
		country string
		want    float64
		ok      bool
	}{
		{"US", 8.5, true},
		{"UK", 20.0, true},
		{"CA", 13.0, true},
		{"AU", 10.0, true},
		{"DE", 19.0, true},
		{"SG", 7.0, true},
		{"FR", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			rate, ok := TaxRateForCountry(tt.country)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, rate, 1e-9)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"small", 150, "150.00"},
		{"thousands", 2500, "2,500.00"},
		{"millions", 1234567.891, "1,234,567.89"},
		{"exact grouping", 100000, "100,000.00"},
		{"zero", 0, "0.00"},
		{"negative", -25000, "-25,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(tt.value))
		})
	}
}
