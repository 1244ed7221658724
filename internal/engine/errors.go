package engine

import (
	"errors"

	"github.com/platformbuilds/loan-approval/internal/features"
	"github.com/platformbuilds/loan-approval/internal/models"
)

var (
	// ErrArtifactNotFound is returned when a model artifact path does not exist.
	ErrArtifactNotFound = errors.New("model artifact not found")
	// ErrInvalidArtifact is returned when an artifact exists but cannot be decoded or is inconsistent.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrInvalidProbability is returned when a classifier reports a value outside [0,1].
	ErrInvalidProbability = errors.New("classifier returned invalid probability")

	// ErrSchemaMismatch is re-exported so callers of the engine need not import features.
	ErrSchemaMismatch = features.ErrSchemaMismatch
	// ErrInvalidMode is re-exported from models.
	ErrInvalidMode = models.ErrInvalidMode
)
