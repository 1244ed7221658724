package engine

import (
	"time"

	"github.com/platformbuilds/loan-approval/internal/features"
	"github.com/platformbuilds/loan-approval/internal/metrics"
)

// Classifier produces the class-1 probability for a row matching its training schema.
type Classifier interface {
	PredictProba(row features.Row) (float64, error)
}

// ModelLoader builds a Classifier from an artifact path.
type ModelLoader func(path string) (Classifier, error)

// Model is a read-only inference surface over one loaded artifact.
type Model struct {
	name     string
	path     string
	pipeline *logisticPipeline
}

// LoadModel reads the artifact at path eagerly; a missing file fails here rather
// than on first prediction.
func LoadModel(path string) (*Model, error) {
	start := time.Now()
	artifact, err := LoadArtifact(path)
	if err != nil {
		metrics.ObserveModelLoad(time.Since(start), metrics.OutcomeError)
		return nil, err
	}
	metrics.ObserveModelLoad(time.Since(start), metrics.OutcomeSuccess)
	return &Model{
		name:     artifact.Name,
		path:     path,
		pipeline: artifact.compile(),
	}, nil
}

// LoadClassifier adapts LoadModel to ModelLoader.
func LoadClassifier(path string) (Classifier, error) {
	m, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// PredictProba returns the class-1 probability. The row must match the artifact's
// frozen columns exactly.
func (m *Model) PredictProba(row features.Row) (float64, error) {
	return m.pipeline.probability(row)
}

// Name returns the artifact name.
func (m *Model) Name() string { return m.name }

// Path returns the file the model was loaded from.
func (m *Model) Path() string { return m.path }

// Columns returns the frozen training-time columns.
func (m *Model) Columns() []string { return append([]string(nil), m.pipeline.columns...) }
