package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platformbuilds/loan-approval/internal/cache"
	"github.com/platformbuilds/loan-approval/internal/models"
)

func TestModeStoreFallsBackOnMiss(t *testing.T) {
	store := NewModeStore(newStubCache(), "loan-approval", models.ModeEnsemble, nil)

	mode, err := store.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ModeEnsemble, mode)
	assert.Equal(t, "loan-approval:active-mode", store.Key())
}

func TestModeStoreSetActive(t *testing.T) {
	stub := newStubCache()
	store := NewModeStore(stub, "svc:", models.ModeWithCreditHistory, nil)
	ctx := context.Background()

	require.NoError(t, store.SetActive(ctx, models.ModeWithoutCreditHistory))
	mode, err := store.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ModeWithoutCreditHistory, mode)
	assert.Equal(t, []byte("mode2"), stub.store["svc:active-mode"])

	err = store.SetActive(ctx, models.Mode("mode4"))
	require.ErrorIs(t, err, models.ErrInvalidMode)
	assert.Equal(t, 1, stub.sets)
}

func TestModeStoreRejectsCorruptValue(t *testing.T) {
	stub := newStubCache()
	stub.store["loan-approval:active-mode"] = []byte("turbo")
	store := NewModeStore(stub, "loan-approval", models.ModeWithCreditHistory, nil)

	_, err := store.Active(context.Background())
	require.ErrorIs(t, err, ErrCorruptMode)
	assert.NotErrorIs(t, err, models.ErrInvalidMode)
}

func TestModeStorePropagatesCacheFailures(t *testing.T) {
	stub := newStubCache()
	stub.err = errors.New("connection refused")
	store := NewModeStore(stub, "", models.ModeWithCreditHistory, nil)

	_, err := store.Active(context.Background())
	require.ErrorContains(t, err, "connection refused")
	_, err = store.Seed(context.Background())
	require.Error(t, err)
	assert.Equal(t, "active-mode", store.Key())
}

func TestModeStoreSeedOnlyOnce(t *testing.T) {
	srv := miniredis.RunT(t)
	provider, err := cache.NewRedisProvider(cache.RedisConfig{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })
	ctx := context.Background()

	first := NewModeStore(provider, "loan-approval", models.ModeEnsemble, nil)
	stored, err := first.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, stored)

	require.NoError(t, first.SetActive(ctx, models.ModeWithoutCreditHistory))

	second := NewModeStore(provider, "loan-approval", models.ModeWithCreditHistory, nil)
	stored, err = second.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, stored)

	mode, err := second.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ModeWithoutCreditHistory, mode)

	value, err := srv.Get("loan-approval:active-mode")
	require.NoError(t, err)
	assert.Equal(t, "mode2", value)
}

func TestModeStoreInvalidFallbackDefaultsToCreditHistory(t *testing.T) {
	store := NewModeStore(nil, "x", models.Mode("bogus"), nil)
	assert.Equal(t, models.ModeWithCreditHistory, store.Fallback())
	mode, err := store.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ModeWithCreditHistory, mode)
}
