package api

import (
	"fmt"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/platformbuilds/loan-approval/internal/grpc/loanv1"
	"github.com/platformbuilds/loan-approval/internal/models"
)

// FromPredictRequest maps the gRPC request into a domain application and the requested
// mode. An empty mode defers to the active mode.
func FromPredictRequest(req *loanv1.PredictRequest) (models.Application, string, error) {
	if req == nil {
		return nil, "", fmt.Errorf("request is nil")
	}
	if len(req.Application) == 0 {
		return nil, "", fmt.Errorf("application is required")
	}
	return models.Application(req.Application).Clone(), req.Mode, nil
}

// ToPredictResponse converts a domain decision into the wire representation.
func ToPredictResponse(d models.Decision) *loanv1.PredictResponse {
	resp := &loanv1.PredictResponse{
		DecisionId:  d.ID,
		Prediction:  int32(d.Decision),
		Mode:        d.Mode.String(),
		Probability: d.Probability,
		Threshold:   d.Threshold,
	}
	if d.WithCreditHistory != nil {
		p := *d.WithCreditHistory
		resp.ProbabilityWithCreditHistory = &p
	}
	if d.WithoutCreditHistory != nil {
		p := *d.WithoutCreditHistory
		resp.ProbabilityWithoutCreditHistory = &p
	}
	if !d.DecidedAt.IsZero() {
		resp.DecidedAt = timestamppb.New(d.DecidedAt)
	}
	return resp
}

// ToModeResponse describes a prediction mode.
func ToModeResponse(mode models.Mode) *loanv1.ModeResponse {
	return &loanv1.ModeResponse{Mode: mode.String(), Description: mode.Description()}
}
