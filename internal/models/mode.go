package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned when a prediction mode is outside the supported set.
var ErrInvalidMode = errors.New("invalid prediction mode")

// Mode selects which trained model(s) contribute to a decision and which threshold applies.
type Mode string

const (
	// ModeWithCreditHistory queries only the model trained with Credit_History.
	ModeWithCreditHistory Mode = "mode1"
	// ModeWithoutCreditHistory queries only the reduced model trained without Credit_History.
	ModeWithoutCreditHistory Mode = "mode2"
	// ModeEnsemble averages both models.
	ModeEnsemble Mode = "mode3"
)

// Modes lists the supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeWithCreditHistory, ModeWithoutCreditHistory, ModeEnsemble}
}

// ParseMode converts free-form configuration input into a Mode.
func ParseMode(value string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(value)))
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q (expected one of mode1, mode2, mode3)", ErrInvalidMode, value)
	}
	return mode, nil
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeWithCreditHistory, ModeWithoutCreditHistory, ModeEnsemble:
		return true
	default:
		return false
	}
}

// RequiresCreditHistory reports whether the mode queries the credit-history model.
func (m Mode) RequiresCreditHistory() bool {
	return m == ModeWithCreditHistory || m == ModeEnsemble
}

// Description returns the label shown to administrators.
func (m Mode) Description() string {
	switch m {
	case ModeWithCreditHistory:
		return "model with credit history"
	case ModeWithoutCreditHistory:
		return "model without credit history"
	case ModeEnsemble:
		return "ensemble of both models"
	default:
		return "unknown"
	}
}

func (m Mode) String() string { return string(m) }
