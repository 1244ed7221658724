package engine

import (
	"fmt"
	"math"

	"github.com/platformbuilds/loan-approval/internal/features"
	"github.com/platformbuilds/loan-approval/internal/models"
)

// Decision thresholds per mode. The reduced-model threshold is lower to offset its
// bias against approval when credit history is unavailable.
const (
	CreditHistoryThreshold        = 0.50
	WithoutCreditHistoryThreshold = 0.35
	EnsembleThreshold             = 0.50
)

// Ensemble combines the model trained with credit history and the reduced model
// trained without it. It holds no state beyond the two classifiers and is safe for
// concurrent use when they are.
type Ensemble struct {
	withCredit    Classifier
	withoutCredit Classifier
}

// NewEnsemble wires the two classifiers.
func NewEnsemble(withCredit, withoutCredit Classifier) *Ensemble {
	return &Ensemble{withCredit: withCredit, withoutCredit: withoutCredit}
}

// Predict returns 1 for approval and 0 for rejection.
func (e *Ensemble) Predict(raw map[string]any, mode models.Mode) (int, error) {
	outcome, err := e.Evaluate(raw, mode)
	if err != nil {
		return 0, err
	}
	return outcome.Decision, nil
}

// Evaluate maps raw application fields into both feature schemas, queries the
// model(s) selected by mode and applies the mode's threshold.
func (e *Ensemble) Evaluate(raw map[string]any, mode models.Mode) (models.Outcome, error) {
	if !mode.Valid() {
		return models.Outcome{}, fmt.Errorf("%w: %q", models.ErrInvalidMode, mode)
	}

	mapped := features.Transform(raw)
	outcome := models.Outcome{Mode: mode}

	switch mode {
	case models.ModeWithCreditHistory:
		p, err := e.probabilityWithCredit(mapped)
		if err != nil {
			return models.Outcome{}, err
		}
		outcome.WithCreditHistory = &p
		outcome.Probability = p
		outcome.Threshold = CreditHistoryThreshold

	case models.ModeWithoutCreditHistory:
		p, err := e.probabilityWithoutCredit(mapped)
		if err != nil {
			return models.Outcome{}, err
		}
		outcome.WithoutCreditHistory = &p
		outcome.Probability = p
		outcome.Threshold = WithoutCreditHistoryThreshold

	case models.ModeEnsemble:
		pA, err := e.probabilityWithoutCredit(mapped)
		if err != nil {
			return models.Outcome{}, err
		}
		pB, err := e.probabilityWithCredit(mapped)
		if err != nil {
			return models.Outcome{}, err
		}
		outcome.WithoutCreditHistory = &pA
		outcome.WithCreditHistory = &pB
		outcome.Probability = (pA + pB) / 2
		outcome.Threshold = EnsembleThreshold
	}

	if outcome.Probability >= outcome.Threshold {
		outcome.Decision = 1
	}
	return outcome, nil
}

func (e *Ensemble) probabilityWithCredit(mapped map[string]any) (float64, error) {
	if e.withCredit == nil {
		return 0, fmt.Errorf("credit-history model not configured")
	}
	rec, err := features.BuildCreditRecord(mapped)
	if err != nil {
		return 0, err
	}
	p, err := e.withCredit.PredictProba(rec.Row())
	if err != nil {
		return 0, fmt.Errorf("credit-history model: %w", err)
	}
	return checkProbability(p)
}

func (e *Ensemble) probabilityWithoutCredit(mapped map[string]any) (float64, error) {
	if e.withoutCredit == nil {
		return 0, fmt.Errorf("reduced model not configured")
	}
	rec, err := features.Augment(mapped)
	if err != nil {
		return 0, err
	}
	p, err := e.withoutCredit.PredictProba(rec.Row())
	if err != nil {
		return 0, fmt.Errorf("reduced model: %w", err)
	}
	return checkProbability(p)
}

func checkProbability(p float64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return p, nil
}
