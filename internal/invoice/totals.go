// Package invoice computes invoice totals from line items.
package invoice

import "github.com/billforge/billforge/internal/model"

// CalculateTotals applies the fixed billing formula: subtotal is the sum of
// hours times rate over all items, the discount comes off the subtotal, and
// tax applies to the discounted amount.
func CalculateTotals(items []model.LineItem, discount, taxRate float64) model.Totals {
	var totals model.Totals
	for _, item := range items {
		totals.Subtotal += item.Amount()
		totals.TotalHours += item.Hours
	}
	totals.DiscountAmount = totals.Subtotal * discount / 100
	taxable := totals.Subtotal - totals.DiscountAmount
	totals.TaxAmount = taxable * taxRate / 100
	totals.Total = taxable + totals.TaxAmount
	return totals
}
