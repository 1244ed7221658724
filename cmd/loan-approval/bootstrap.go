package main

import (
	"go.uber.org/zap"

	"github.com/platformbuilds/loan-approval/internal/cache"
	"github.com/platformbuilds/loan-approval/internal/config"
	"github.com/platformbuilds/loan-approval/internal/engine"
	"github.com/platformbuilds/loan-approval/internal/repo"
)

// newCacheProvider connects to the shared cache when enabled. Without it, or when the
// cache is unreachable, the active mode lives in process memory only.
func newCacheProvider(c *config.Config, logger *zap.Logger) cache.Provider {
	if !c.Cache.Enabled {
		return cache.NewMemoryProvider()
	}
	provider, err := cache.NewRedisProvider(cache.RedisConfig{
		Addr:         c.Cache.Addr,
		Username:     c.Cache.Username,
		Password:     c.Cache.Password,
		DB:           c.Cache.DB,
		DialTimeout:  c.Cache.DialTimeout,
		ReadTimeout:  c.Cache.ReadTimeout,
		WriteTimeout: c.Cache.WriteTimeout,
		MaxRetries:   c.Cache.MaxRetries,
		TLS:          c.Cache.TLS,
	})
	if err != nil {
		logger.Warn("shared cache unavailable, keeping active mode in memory", zap.String("addr", c.Cache.Addr), zap.Error(err))
		return cache.NewMemoryProvider()
	}
	return provider
}

func newModeStore(c *config.Config, provider cache.Provider, logger *zap.Logger) (*repo.ModeStore, error) {
	fallback, err := c.DefaultMode()
	if err != nil {
		return nil, err
	}
	return repo.NewModeStore(provider, c.Cache.KeyPrefix, fallback, logger), nil
}

func newAccessor(c *config.Config, logger *zap.Logger) *engine.Accessor {
	return engine.NewAccessor(c.Models.Paths(), engine.LoadClassifier, logger)
}
