package mlmodel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/features"
	"github.com/billforge/billforge/internal/model"
	"github.com/billforge/billforge/internal/synth"
)

func trainingRecords(t *testing.T, n int) []model.InvoiceRecord {
	t.Helper()
	return synth.New(42).Generate(n)
}

func TestTrainRejectsSmallTables(t *testing.T) {
	tests := []struct {
		name    string
		records []model.InvoiceRecord
	}{
		{name: "empty table"},
		{name: "below minimum", records: synth.New(1).Generate(MinTrainingRows - 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Train(tt.records)
			assert.True(t, errors.Is(err, common.ErrInsufficientData), "got error: %v", err)
		})
	}
}

func TestTrainProducesCompleteArtifact(t *testing.T) {
	records := trainingRecords(t, 200)

	artifact, err := Train(records)
	require.NoError(t, err)

	assert.Equal(t, ArtifactVersion, artifact.Version)
	assert.Equal(t, len(records), artifact.Rows)
	require.NotNil(t, artifact.DiscountModel)
	require.NotNil(t, artifact.TaxModel)
	require.NotNil(t, artifact.DocsModel)
	assert.Len(t, artifact.DiscountModel.Trees, DefaultForestParams().Trees)
	assert.NotEmpty(t, artifact.Encoders.ServiceCategory)
	assert.NotEmpty(t, artifact.Encoders.Country)
}

func TestTrainIsDeterministic(t *testing.T) {
	records := trainingRecords(t, 150)

	first, err := Train(records)
	require.NoError(t, err)
	second, err := Train(records)
	require.NoError(t, err)

	for _, r := range records[:20] {
		vec := features.Transform(r, first.Encoders)
		assert.InDelta(t, first.DiscountModel.Predict(vec), second.DiscountModel.Predict(vec), 1e-12)
		assert.InDelta(t, first.TaxModel.Predict(vec), second.TaxModel.Predict(vec), 1e-12)
		assert.Equal(t, first.DocsModel.PredictFlag(vec), second.DocsModel.PredictFlag(vec))
	}
}

func TestTrainedModelsTrackLabels(t *testing.T) {
	records := trainingRecords(t, 400)

	artifact, err := Train(records)
	require.NoError(t, err)

	// Tax rate is a pure per-country lookup, which forests recover closely
	// for training-distribution inputs.
	for _, r := range records[:50] {
		vec := features.Transform(r, artifact.Encoders)
		assert.InDelta(t, r.TaxRate, artifact.TaxModel.Predict(vec), 2.0,
			"country %s", r.Country)
	}
}

func TestForestPredictEmpty(t *testing.T) {
	var f Forest
	assert.Zero(t, f.Predict(make([]float64, features.Count)))
}
