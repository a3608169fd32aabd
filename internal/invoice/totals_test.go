package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billforge/billforge/internal/model"
)

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name     string
		items    []model.LineItem
		discount float64
		taxRate  float64
		want     model.Totals
	}{
		{
			name: "discount and tax applied in order",
			items: []model.LineItem{
				{Description: "Custom API Development", Hours: 10, Rate: 150},
				{Description: "Frontend Development", Hours: 5, Rate: 200},
			},
			discount: 10,
			taxRate:  8.5,
			want: model.Totals{
				Subtotal:       2500,
				DiscountAmount: 250,
				TaxAmount:      191.25,
				Total:          2441.25,
				TotalHours:     15,
			},
		},
		{
			name: "no discount no tax",
			items: []model.LineItem{
				{Description: "Security Audit", Hours: 8, Rate: 250},
			},
			want: model.Totals{
				Subtotal:   2000,
				Total:      2000,
				TotalHours: 8,
			},
		},
		{
			name: "empty item list",
			want: model.Totals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.items, tt.discount, tt.taxRate)
			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.DiscountAmount, got.DiscountAmount, 1e-9)
			assert.InDelta(t, tt.want.TaxAmount, got.TaxAmount, 1e-9)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
			assert.Equal(t, tt.want.TotalHours, got.TotalHours)
		})
	}
}
