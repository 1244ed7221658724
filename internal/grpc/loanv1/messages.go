// Package loanv1 carries the loan.v1.LoanApproval service contract. Messages are plain
// structs exchanged with the JSON codec registered in codec.go.
package loanv1

import "google.golang.org/protobuf/types/known/timestamppb"

// PredictRequest asks for a decision on one application. An empty Mode selects the
// operator-configured active mode.
type PredictRequest struct {
	Application map[string]any `json:"application"`
	Mode        string         `json:"mode,omitempty"`
}

// PredictResponse carries the decision. Prediction is 1 for approval and 0 for rejection.
type PredictResponse struct {
	DecisionId                      string                 `json:"decision_id"`
	Prediction                      int32                  `json:"prediction"`
	Mode                            string                 `json:"mode"`
	Probability                     float64                `json:"probability"`
	Threshold                       float64                `json:"threshold"`
	ProbabilityWithCreditHistory    *float64               `json:"probability_with_credit_history,omitempty"`
	ProbabilityWithoutCreditHistory *float64               `json:"probability_without_credit_history,omitempty"`
	DecidedAt                       *timestamppb.Timestamp `json:"decided_at,omitempty"`
}

// GetModeRequest reads the active prediction mode.
type GetModeRequest struct{}

// SetModeRequest changes the active prediction mode.
type SetModeRequest struct {
	Mode string `json:"mode"`
}

// ModeResponse describes a prediction mode.
type ModeResponse struct {
	Mode        string `json:"mode"`
	Description string `json:"description"`
}

// HealthCheckRequest is empty.
type HealthCheckRequest struct{}

// HealthCheckResponse reports service readiness.
type HealthCheckResponse struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
	ActiveMode   string `json:"active_mode"`
}
