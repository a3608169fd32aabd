package storage

import (
	"context"
	"fmt"

	"github.com/billforge/billforge/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

func validateInvoice(inv *model.Invoice) error {
	if inv == nil {
		return fmt.Errorf("invoice cannot be nil")
	}
	if err := validateString(inv.Number, "invoice number"); err != nil {
		return err
	}
	if len(inv.Items) == 0 {
		return fmt.Errorf("invoice %s has no line items", inv.Number)
	}
	for i, item := range inv.Items {
		if item.Description == "" {
			return fmt.Errorf("invoice %s item %d has no description", inv.Number, i+1)
		}
		if item.Hours <= 0 {
			return fmt.Errorf("invoice %s item %d has non-positive hours", inv.Number, i+1)
		}
		if item.Rate <= 0 {
			return fmt.Errorf("invoice %s item %d has non-positive rate", inv.Number, i+1)
		}
	}
	return nil
}
