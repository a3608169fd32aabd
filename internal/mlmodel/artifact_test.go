package mlmodel

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/features"
)

func TestArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "models.gob")
	records := trainingRecords(t, 120)

	want, err := Train(records)
	require.NoError(t, err)
	require.NoError(t, SaveArtifact(path, want))

	got, err := LoadArtifact(path)
	require.NoError(t, err)

	assert.Equal(t, want.Version, got.Version)
	assert.Equal(t, want.Rows, got.Rows)
	assert.Equal(t, want.Encoders, got.Encoders)

	// A reloaded artifact must predict identically.
	for _, r := range records[:20] {
		vec := features.Transform(r, got.Encoders)
		assert.InDelta(t, want.DiscountModel.Predict(vec), got.DiscountModel.Predict(vec), 1e-9)
		assert.InDelta(t, want.TaxModel.Predict(vec), got.TaxModel.Predict(vec), 1e-9)
		assert.Equal(t, want.DocsModel.PredictFlag(vec), got.DocsModel.PredictFlag(vec))
	}
}

func TestLoadArtifactMissing(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.gob"))
	assert.True(t, errors.Is(err, common.ErrArtifactNotFound), "got error: %v", err)
}

func TestLoadArtifactCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o600))

	_, err := LoadArtifact(path)
	assert.True(t, errors.Is(err, common.ErrArtifactCorrupt), "got error: %v", err)
}

func TestLoadArtifactVersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.gob")

	artifact, err := Train(trainingRecords(t, 50))
	require.NoError(t, err)
	artifact.Version = ArtifactVersion + 1
	require.NoError(t, SaveArtifact(path, artifact))

	_, err = LoadArtifact(path)
	assert.True(t, errors.Is(err, common.ErrArtifactVersion), "got error: %v", err)
}
