package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/platformbuilds/loan-approval/internal/cache"
	"github.com/platformbuilds/loan-approval/internal/models"
)

const activeModeKey = "active-mode"

// ErrCorruptMode is returned when the shared store holds a value that is not a mode.
var ErrCorruptMode = errors.New("stored prediction mode is corrupt")

// ModeStore persists the operator-selected prediction mode in a shared cache so every
// replica serves the same mode.
type ModeStore struct {
	provider cache.Provider
	key      string
	fallback models.Mode
	logger   *zap.Logger
}

// NewModeStore constructs a store. A nil provider keeps nothing and always reports
// fallback.
func NewModeStore(provider cache.Provider, keyPrefix string, fallback models.Mode, logger *zap.Logger) *ModeStore {
	if provider == nil {
		provider = cache.NoopProvider{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if !fallback.Valid() {
		fallback = models.ModeWithCreditHistory
	}
	key := activeModeKey
	if prefix := strings.TrimSuffix(keyPrefix, ":"); prefix != "" {
		key = prefix + ":" + activeModeKey
	}
	return &ModeStore{provider: provider, key: key, fallback: fallback, logger: logger}
}

// Key returns the cache key holding the active mode.
func (s *ModeStore) Key() string { return s.key }

// Fallback returns the mode reported when nothing is stored.
func (s *ModeStore) Fallback() models.Mode { return s.fallback }

// Active returns the stored mode, or the fallback when none is stored.
func (s *ModeStore) Active(ctx context.Context) (models.Mode, error) {
	data, err := s.provider.Get(ctx, s.key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return s.fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read active mode: %w", err)
	}
	mode, err := models.ParseMode(string(data))
	if err != nil {
		return "", fmt.Errorf("%w: key %s holds %q", ErrCorruptMode, s.key, data)
	}
	return mode, nil
}

// SetActive validates and stores mode without expiry.
func (s *ModeStore) SetActive(ctx context.Context, mode models.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidMode, mode)
	}
	if err := s.provider.Set(ctx, s.key, []byte(mode), 0); err != nil {
		return fmt.Errorf("store active mode: %w", err)
	}
	s.logger.Info("active prediction mode changed", zap.String("mode", mode.String()), zap.String("key", s.key))
	return nil
}

// Seed stores the fallback unless another instance already initialised the key.
func (s *ModeStore) Seed(ctx context.Context) (bool, error) {
	stored, err := s.provider.SetNX(ctx, s.key, []byte(s.fallback), 0)
	if err != nil {
		return false, fmt.Errorf("seed active mode: %w", err)
	}
	if stored {
		s.logger.Info("active prediction mode seeded", zap.String("mode", s.fallback.String()))
	}
	return stored, nil
}
