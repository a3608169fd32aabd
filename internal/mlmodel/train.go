package mlmodel

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/features"
	"github.com/billforge/billforge/internal/model"
)

// MinTrainingRows is the smallest table the trainer accepts. Below this the
// forests degenerate to memorized noise and defaults serve better.
const MinTrainingRows = 10

// Train fits the encoder and the three estimators over the training table
// and returns a fresh artifact. Discount and tax rate are regression
// targets; documentation is reduced to a binary needs-detailed-docs flag.
func Train(records []model.InvoiceRecord) (*Artifact, error) {
	if len(records) < MinTrainingRows {
		return nil, fmt.Errorf("%w: %d rows, need at least %d",
			common.ErrInsufficientData, len(records), MinTrainingRows)
	}

	table := features.Fit(records)

	x := make([][]float64, len(records))
	discount := make([]float64, len(records))
	taxRate := make([]float64, len(records))
	detailedDocs := make([]bool, len(records))
	for i, r := range records {
		x[i] = features.Transform(r, table)
		discount[i] = r.Discount
		taxRate[i] = r.TaxRate
		detailedDocs[i] = r.DocComplexity == model.DocHigh
	}

	params := DefaultForestParams()
	started := time.Now()

	artifact := &Artifact{
		Version:       ArtifactVersion,
		TrainedAt:     time.Now().UTC(),
		Rows:          len(records),
		DiscountModel: FitForest(x, discount, params),
		TaxModel:      FitForest(x, taxRate, params),
		DocsModel:     FitClassifier(x, detailedDocs, params),
		Encoders:      table,
	}

	slog.Info("Trained suggestion models",
		"rows", len(records),
		"trees", params.Trees,
		"duration", time.Since(started))

	return artifact, nil
}
