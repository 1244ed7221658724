package models

import "time"

// Outcome is the result of evaluating one application under one mode.
type Outcome struct {
	Mode     Mode
	Decision int
	// Probability is the value compared against Threshold: the single model's
	// class-1 probability for mode1/mode2 or the mean of both for mode3.
	Probability float64
	Threshold   float64
	// WithCreditHistory and WithoutCreditHistory are the per-model probabilities.
	// Nil means the model was not queried.
	WithCreditHistory    *float64
	WithoutCreditHistory *float64
}

// Approved reports whether the outcome is a positive decision.
func (o Outcome) Approved() bool { return o.Decision == 1 }

// Decision is an Outcome stamped with an identifier and time.
type Decision struct {
	Outcome
	ID        string
	DecidedAt time.Time
}
