// Package predict implements the suggestion service: trained estimators when
// an artifact is available, rule-based defaults on every failure path. A
// Predict call never fails outward.
package predict

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/billforge/billforge/internal/dataset"
	"github.com/billforge/billforge/internal/features"
	"github.com/billforge/billforge/internal/mlmodel"
	"github.com/billforge/billforge/internal/model"
)

// Input holds the seven invoice attributes a suggestion is computed from.
type Input struct {
	ServiceCategory string
	ClientIndustry  string
	Country         string
	ProjectType     string
	TotalAmount     float64
	TotalHours      int
	NumServices     int
}

func (in Input) record() model.InvoiceRecord {
	return model.InvoiceRecord{
		ServiceCategory: in.ServiceCategory,
		ClientIndustry:  in.ClientIndustry,
		Country:         in.Country,
		ProjectType:     in.ProjectType,
		TotalAmount:     in.TotalAmount,
		TotalHours:      in.TotalHours,
		NumServices:     in.NumServices,
	}
}

// Service serves invoice suggestions. An artifact, once loaded or trained,
// is retained for the lifetime of the service and treated as immutable; the
// mutex only guards the lazy load-or-train step, so concurrent Predict
// calls are safe.
type Service struct {
	artifact     *mlmodel.Artifact
	artifactPath string
	datasetPath  string
	mu           sync.Mutex
}

// NewService creates a service that lazily loads its artifact from
// artifactPath, retrains from the dataset at datasetPath when loading
// fails, and falls back to rule-based defaults when both are unavailable.
func NewService(artifactPath, datasetPath string) *Service {
	return &Service{
		artifactPath: artifactPath,
		datasetPath:  datasetPath,
	}
}

// NewServiceWithArtifact creates a service around an already-built artifact.
func NewServiceWithArtifact(artifact *mlmodel.Artifact) *Service {
	return &Service{artifact: artifact}
}

// Invalidate drops the retained artifact so the next Predict call reloads.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = nil
}

// Predict returns a fully-populated suggestion bundle for the given invoice
// attributes. Every failure inside the service resolves to the rule-based
// defaults; nothing propagates to the caller.
//
// The inference path maps the binary needs-detailed-docs estimate to Medium
// or High; only the defaults path can suggest Low.
func (s *Service) Predict(in Input) model.SuggestionBundle {
	artifact := s.ensureArtifact()
	if artifact == nil {
		return Defaults(in)
	}

	bundle, ok := s.infer(artifact, in)
	if !ok {
		return Defaults(in)
	}
	return bundle
}

// ensureArtifact returns the retained artifact, attempting the one-shot
// load-then-train chain when none is held. Both steps failing is the
// expected cold-start path, not an error.
func (s *Service) ensureArtifact() *mlmodel.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifact != nil {
		return s.artifact
	}
	if s.artifactPath == "" {
		return nil
	}

	artifact, err := mlmodel.LoadArtifact(s.artifactPath)
	if err == nil {
		slog.Info("Loaded model artifact", "path", s.artifactPath, "rows", artifact.Rows)
		s.artifact = artifact
		return artifact
	}
	slog.Info("Model artifact unavailable, attempting to train", "error", err)

	records, err := dataset.ReadFile(s.datasetPath)
	if err != nil {
		slog.Info("No dataset available, serving rule-based defaults", "error", err)
		return nil
	}

	artifact, err = mlmodel.Train(records)
	if err != nil {
		slog.Warn("Training failed, serving rule-based defaults", "error", err)
		return nil
	}

	s.artifact = artifact
	return artifact
}

// infer runs the three estimators. Any failure, including a panicking
// estimator, reports ok=false and sends the caller to the defaults path.
func (s *Service) infer(artifact *mlmodel.Artifact, in Input) (bundle model.SuggestionBundle, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Estimator failure", "panic", fmt.Sprint(r))
			ok = false
		}
	}()

	vec := features.Transform(in.record(), artifact.Encoders)
	if len(vec) != features.Count {
		slog.Error("Feature vector size mismatch", "got", len(vec), "want", features.Count)
		return model.SuggestionBundle{}, false
	}

	discount := clamp(artifact.DiscountModel.Predict(vec), 0, model.MaxDiscount)
	taxRate := clamp(artifact.TaxModel.Predict(vec), 0, model.MaxTaxRate)

	docComplexity := model.DocMedium
	if artifact.DocsModel.PredictFlag(vec) {
		docComplexity = model.DocHigh
	}

	return model.SuggestionBundle{
		Discount:      round2(discount),
		TaxRate:       round2(taxRate),
		DocComplexity: docComplexity,
		PaymentTerms:  model.PaymentTermsFor(in.ProjectType),
		ServiceNotes:  model.ServiceNotesFor(in.ServiceCategory),
	}, true
}

func clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
