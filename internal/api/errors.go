package api

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/platformbuilds/loan-approval/internal/engine"
	"github.com/platformbuilds/loan-approval/internal/models"
	"github.com/platformbuilds/loan-approval/internal/repo"
	"github.com/platformbuilds/loan-approval/internal/validation"
)

// StatusFromError maps domain failures onto gRPC status codes. Rejected applications
// carry their field violations as a BadRequest detail.
func StatusFromError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var invalid *validation.Error
	switch {
	case errors.As(err, &invalid):
		st := status.New(codes.InvalidArgument, invalid.Error())
		if invalid.Result != nil {
			br := &errdetails.BadRequest{}
			for _, fe := range invalid.Result.Errors {
				br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
					Field:       fe.Field,
					Description: fe.Message,
				})
			}
			if detailed, derr := st.WithDetails(br); derr == nil {
				st = detailed
			}
		}
		return st.Err()
	case errors.Is(err, models.ErrInvalidMode), errors.Is(err, engine.ErrSchemaMismatch):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, repo.ErrCorruptMode):
		return status.Error(codes.FailedPrecondition, "active prediction mode unavailable: "+err.Error())
	case errors.Is(err, engine.ErrArtifactNotFound), errors.Is(err, engine.ErrInvalidArtifact):
		return status.Error(codes.FailedPrecondition, "prediction models unavailable: "+err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "decision failed")
	}
}

// FieldViolations extracts BadRequest field violations from a status error as
// {"field": ["message", ...]}.
func FieldViolations(err error) map[string][]string {
	st, ok := status.FromError(err)
	if !ok {
		return nil
	}
	var out map[string][]string
	for _, detail := range st.Details() {
		br, ok := detail.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string][]string)
		}
		for _, v := range br.GetFieldViolations() {
			out[v.GetField()] = append(out[v.GetField()], v.GetDescription())
		}
	}
	return out
}
