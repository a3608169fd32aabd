package mlmodel

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/billforge/billforge/internal/common"
	"github.com/billforge/billforge/internal/features"
)

// ArtifactVersion is bumped whenever the serialized layout changes. A loaded
// artifact with a different version is rejected as schema-incompatible.
const ArtifactVersion = 1

// Artifact bundles the three fitted estimators with the encoder table they
// were trained against. It is persisted and loaded as a single unit and is
// immutable once published: retraining always builds a fresh artifact.
type Artifact struct {
	TrainedAt     time.Time
	DiscountModel *Forest
	TaxModel      *Forest
	DocsModel     *Classifier
	Encoders      features.EncoderTable
	Version       int
	Rows          int
}

// SaveArtifact writes the artifact to path as a single gob blob. The write
// goes to a temporary file first and is renamed into place, so readers only
// ever observe a complete artifact.
func SaveArtifact(path string, artifact *Artifact) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := gob.NewEncoder(tmp).Encode(artifact); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to publish artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads an artifact back as a single unit. Missing files map to
// common.ErrArtifactNotFound, undecodable files to common.ErrArtifactCorrupt,
// and version drift to common.ErrArtifactVersion.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var artifact Artifact
	if err := gob.NewDecoder(f).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrArtifactCorrupt, err)
	}
	if artifact.Version != ArtifactVersion {
		return nil, fmt.Errorf("%w: got version %d, want %d",
			common.ErrArtifactVersion, artifact.Version, ArtifactVersion)
	}
	if artifact.DiscountModel == nil || artifact.TaxModel == nil || artifact.DocsModel == nil {
		return nil, fmt.Errorf("%w: missing estimator", common.ErrArtifactCorrupt)
	}
	return &artifact, nil
}
