package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platformbuilds/loan-approval/internal/api"
	"github.com/platformbuilds/loan-approval/internal/engine"
	"github.com/platformbuilds/loan-approval/internal/grpc/loanv1"
	"github.com/platformbuilds/loan-approval/internal/metrics"
	"github.com/platformbuilds/loan-approval/internal/models"
	"github.com/platformbuilds/loan-approval/internal/utils"
	"github.com/platformbuilds/loan-approval/internal/validation"
)

const (
	tracerName       = "github.com/platformbuilds/loan-approval/internal/services"
	latencyLogEvery  = 20
	latencyWindow    = 1024
	statusServing    = "SERVING"
	reasonMode       = "invalid_mode"
	reasonModeStore  = "mode_store"
	reasonValidation = "validation"
	reasonModels     = "models_unavailable"
	reasonSchema     = "schema_mismatch"
	reasonInternal   = "internal"
)

// EnsembleSource hands out the shared, lazily built Ensemble.
type EnsembleSource interface {
	Get() (*engine.Ensemble, error)
	Loaded() bool
}

// ModeRepository stores the operator-selected prediction mode.
type ModeRepository interface {
	Active(ctx context.Context) (models.Mode, error)
	SetActive(ctx context.Context, mode models.Mode) error
}

// DecisionRequest is one application to score. An empty Mode uses the active mode.
type DecisionRequest struct {
	Application models.Application
	Mode        string
}

// ApprovalService implements the gRPC LoanApproval service.
type ApprovalService struct {
	loanv1.UnimplementedLoanApprovalServer

	logger    *zap.Logger
	ensembles EnsembleSource
	modes     ModeRepository
	tracer    trace.Tracer
	latencies *utils.LatencyTracker
	now       func() time.Time
	newID     func() string
}

// NewApprovalService constructs the decision service facade.
func NewApprovalService(logger *zap.Logger, ensembles EnsembleSource, modes ModeRepository) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{
		logger:    logger,
		ensembles: ensembles,
		modes:     modes,
		tracer:    otel.Tracer(tracerName),
		latencies: utils.NewLatencyTracker(latencyWindow),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Decide validates, normalises and scores one application.
func (s *ApprovalService) Decide(ctx context.Context, req DecisionRequest) (models.Decision, error) {
	ctx, span := s.tracer.Start(ctx, "ApprovalService.Decide")
	defer span.End()

	start := time.Now()
	decision, reason, err := s.decide(ctx, req)
	if err != nil {
		metrics.ObserveDecisionError(reason)
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, reason)
		if reason == reasonInternal || reason == reasonModels || reason == reasonModeStore {
			s.logger.Error("decision failed", zap.String("reason", reason), zap.Error(err))
		} else {
			s.logger.Debug("decision rejected", zap.String("reason", reason), zap.Error(err))
		}
		return models.Decision{}, err
	}

	duration := time.Since(start)
	metrics.ObserveDecision(duration, decision.Mode.String(), decision.Decision, decision.Probability)
	span.SetAttributes(
		attribute.String("loan.decision_id", decision.ID),
		attribute.String("loan.mode", decision.Mode.String()),
		attribute.Int("loan.decision", decision.Decision),
		attribute.Float64("loan.probability", decision.Probability),
	)
	s.logger.Debug("decision made",
		zap.String("decision_id", decision.ID),
		zap.String("mode", decision.Mode.String()),
		zap.Int("decision", decision.Decision),
		zap.Float64("probability", decision.Probability))

	if count := s.latencies.Observe(duration); count%latencyLogEvery == 0 {
		s.logger.Info("decision latency",
			zap.Duration("p95", s.latencies.Percentile(95)),
			zap.Uint64("decisions", count))
	}
	return decision, nil
}

func (s *ApprovalService) decide(ctx context.Context, req DecisionRequest) (models.Decision, string, error) {
	mode, err := s.resolveMode(ctx, req.Mode)
	if err != nil {
		// Only a mode named by the caller is the caller's mistake.
		if req.Mode != "" && errors.Is(err, models.ErrInvalidMode) {
			return models.Decision{}, reasonMode, err
		}
		return models.Decision{}, reasonModeStore, err
	}

	result, err := validation.ValidateApplication(req.Application, mode)
	if err != nil {
		return models.Decision{}, reasonInternal, err
	}
	if !result.Valid() {
		return models.Decision{}, reasonValidation, &validation.Error{Result: result}
	}

	if s.ensembles == nil {
		return models.Decision{}, reasonModels, fmt.Errorf("%w: no model source configured", engine.ErrArtifactNotFound)
	}
	ensemble, err := s.ensembles.Get()
	if err != nil {
		return models.Decision{}, reasonModels, err
	}

	outcome, err := ensemble.Evaluate(normalizeApplication(req.Application), mode)
	if err != nil {
		if errors.Is(err, engine.ErrSchemaMismatch) {
			return models.Decision{}, reasonSchema, err
		}
		return models.Decision{}, reasonInternal, err
	}

	return models.Decision{
		Outcome:   outcome,
		ID:        s.newID(),
		DecidedAt: s.now().UTC(),
	}, "", nil
}

func (s *ApprovalService) resolveMode(ctx context.Context, requested string) (models.Mode, error) {
	if requested != "" {
		return models.ParseMode(requested)
	}
	if s.modes == nil {
		return models.ModeWithCreditHistory, nil
	}
	return s.modes.Active(ctx)
}

// Predict scores the application in the request.
func (s *ApprovalService) Predict(ctx context.Context, req *loanv1.PredictRequest) (*loanv1.PredictResponse, error) {
	app, mode, err := api.FromPredictRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	decision, err := s.Decide(ctx, DecisionRequest{Application: app, Mode: mode})
	if err != nil {
		return nil, api.StatusFromError(err)
	}
	return api.ToPredictResponse(decision), nil
}

// GetMode returns the active prediction mode.
func (s *ApprovalService) GetMode(ctx context.Context, _ *loanv1.GetModeRequest) (*loanv1.ModeResponse, error) {
	mode, err := s.resolveMode(ctx, "")
	if err != nil {
		s.logger.Error("read active mode failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to read active mode")
	}
	return api.ToModeResponse(mode), nil
}

// SetMode changes the active prediction mode for every replica sharing the store.
func (s *ApprovalService) SetMode(ctx context.Context, req *loanv1.SetModeRequest) (*loanv1.ModeResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request cannot be nil")
	}
	if s.modes == nil {
		return nil, status.Error(codes.FailedPrecondition, "mode store not configured")
	}
	mode, err := models.ParseMode(req.Mode)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.modes.SetActive(ctx, mode); err != nil {
		s.logger.Error("store active mode failed", zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to store active mode")
	}
	return api.ToModeResponse(mode), nil
}

// HealthCheck returns the current health state.
func (s *ApprovalService) HealthCheck(ctx context.Context, _ *loanv1.HealthCheckRequest) (*loanv1.HealthCheckResponse, error) {
	resp := &loanv1.HealthCheckResponse{Status: statusServing}
	if s.ensembles != nil {
		resp.ModelsLoaded = s.ensembles.Loaded()
	}
	if mode, err := s.resolveMode(ctx, ""); err == nil {
		resp.ActiveMode = mode.String()
	}
	return resp, nil
}

// LatencyP95 returns the current p95 decision latency.
func (s *ApprovalService) LatencyP95() time.Duration {
	if s.latencies == nil {
		return 0
	}
	return s.latencies.Percentile(95)
}
