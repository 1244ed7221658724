package engine

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ArtifactPaths locates the two persisted classifiers.
type ArtifactPaths struct {
	WithCreditHistory    string
	WithoutCreditHistory string
}

// LoadEnsemble loads both artifacts with load and wires them into an Ensemble.
func LoadEnsemble(paths ArtifactPaths, load ModelLoader) (*Ensemble, error) {
	if load == nil {
		load = LoadClassifier
	}
	withCredit, err := load(paths.WithCreditHistory)
	if err != nil {
		return nil, fmt.Errorf("load model with credit history: %w", err)
	}
	withoutCredit, err := load(paths.WithoutCreditHistory)
	if err != nil {
		return nil, fmt.Errorf("load model without credit history: %w", err)
	}
	return NewEnsemble(withCredit, withoutCredit), nil
}

// Accessor lazily builds the process-wide Ensemble on first use. Initialization runs
// under a mutex so concurrent first callers load artifacts once and share the result.
// A failed initialization is not cached; the next Get retries. Once built, the
// Ensemble is never reloaded.
type Accessor struct {
	mu       sync.Mutex
	paths    ArtifactPaths
	load     ModelLoader
	logger   *zap.Logger
	ensemble *Ensemble
}

// NewAccessor constructs an Accessor. A nil load uses LoadClassifier.
func NewAccessor(paths ArtifactPaths, load ModelLoader, logger *zap.Logger) *Accessor {
	if load == nil {
		load = LoadClassifier
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accessor{paths: paths, load: load, logger: logger}
}

// Get returns the shared Ensemble, loading artifacts on the first successful call.
func (a *Accessor) Get() (*Ensemble, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ensemble != nil {
		return a.ensemble, nil
	}

	start := time.Now()
	ensemble, err := LoadEnsemble(a.paths, a.load)
	if err != nil {
		a.logger.Error("ensemble initialization failed",
			zap.String("with_credit_history", a.paths.WithCreditHistory),
			zap.String("without_credit_history", a.paths.WithoutCreditHistory),
			zap.Error(err))
		return nil, err
	}
	a.ensemble = ensemble
	a.logger.Info("ensemble initialized",
		zap.String("with_credit_history", a.paths.WithCreditHistory),
		zap.String("without_credit_history", a.paths.WithoutCreditHistory),
		zap.Duration("elapsed", time.Since(start)))
	return ensemble, nil
}

// SetPaths replaces the artifact locations used by the next initialization attempt.
// It returns false, leaving paths untouched, once the Ensemble has been built.
func (a *Accessor) SetPaths(paths ArtifactPaths) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ensemble != nil {
		return false
	}
	a.paths = paths
	return true
}

// Loaded reports whether the Ensemble has been built.
func (a *Accessor) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ensemble != nil
}
