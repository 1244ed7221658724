package api

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platformbuilds/loan-approval/internal/engine"
	"github.com/platformbuilds/loan-approval/internal/grpc/loanv1"
	"github.com/platformbuilds/loan-approval/internal/models"
	"github.com/platformbuilds/loan-approval/internal/repo"
	"github.com/platformbuilds/loan-approval/internal/validation"
)

func TestFromPredictRequest(t *testing.T) {
	_, _, err := FromPredictRequest(nil)
	require.Error(t, err)

	_, _, err = FromPredictRequest(&loanv1.PredictRequest{})
	require.Error(t, err)

	req := &loanv1.PredictRequest{Application: map[string]any{"gender": "Male"}, Mode: "mode2"}
	app, mode, err := FromPredictRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "mode2", mode)
	app["gender"] = "Female"
	assert.Equal(t, "Male", req.Application["gender"], "application is copied")
}

func TestToPredictResponse(t *testing.T) {
	pA, pB := 0.4, 0.7
	decidedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	resp := ToPredictResponse(models.Decision{
		Outcome: models.Outcome{
			Mode:                 models.ModeEnsemble,
			Decision:             1,
			Probability:          0.55,
			Threshold:            0.5,
			WithCreditHistory:    &pB,
			WithoutCreditHistory: &pA,
		},
		ID:        "d-1",
		DecidedAt: decidedAt,
	})

	assert.Equal(t, "d-1", resp.DecisionId)
	assert.Equal(t, int32(1), resp.Prediction)
	assert.Equal(t, "mode3", resp.Mode)
	assert.Equal(t, 0.55, resp.Probability)
	require.NotNil(t, resp.ProbabilityWithCreditHistory)
	assert.Equal(t, 0.7, *resp.ProbabilityWithCreditHistory)
	assert.Equal(t, 0.4, *resp.ProbabilityWithoutCreditHistory)
	assert.True(t, resp.DecidedAt.AsTime().Equal(decidedAt))

	pB = 0
	assert.Equal(t, 0.7, *resp.ProbabilityWithCreditHistory, "probabilities are copied")

	empty := ToPredictResponse(models.Decision{Outcome: models.Outcome{Mode: models.ModeWithCreditHistory}})
	assert.Nil(t, empty.DecidedAt)
	assert.Nil(t, empty.ProbabilityWithoutCreditHistory)
}

func TestToModeResponse(t *testing.T) {
	resp := ToModeResponse(models.ModeWithoutCreditHistory)
	assert.Equal(t, "mode2", resp.Mode)
	assert.Equal(t, models.ModeWithoutCreditHistory.Description(), resp.Description)
}

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("wrap: %w", models.ErrInvalidMode), codes.InvalidArgument},
		{fmt.Errorf("wrap: %w", engine.ErrSchemaMismatch), codes.InvalidArgument},
		{fmt.Errorf("load: %w", engine.ErrArtifactNotFound), codes.FailedPrecondition},
		{fmt.Errorf("read: %w", repo.ErrCorruptMode), codes.FailedPrecondition},
		{fmt.Errorf("load: %w", engine.ErrInvalidArtifact), codes.FailedPrecondition},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{errors.New("boom"), codes.Internal},
		{status.Error(codes.Unavailable, "down"), codes.Unavailable},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, status.Code(StatusFromError(tc.err)), tc.err.Error())
	}
	assert.NoError(t, StatusFromError(nil))
}

func TestStatusFromValidationErrorCarriesFieldViolations(t *testing.T) {
	err := StatusFromError(&validation.Error{Result: &validation.Result{
		Mode: models.ModeWithCreditHistory,
		Errors: []validation.FieldError{
			{Field: "gender", Message: "This field is required."},
			{Field: "loan_amount", Message: "A valid number is required."},
		},
	}})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, map[string][]string{
		"gender":      {"This field is required."},
		"loan_amount": {"A valid number is required."},
	}, FieldViolations(err))
	assert.Nil(t, FieldViolations(errors.New("plain")))
}
