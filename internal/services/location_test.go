package services

import (
	"context"
	"testing"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/pkg/config"
	"hospital-maintenance/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLocationService() (*LocationService, *fakeLocationRepo, *fakeCacheRepo) {
	repo := &fakeLocationRepo{locations: []dto.LocationDTO{
		{ID: "loc-1", Name: "City General Hospital", IsActive: true},
		{ID: "loc-2", Name: "St. Mary's Medical Center", IsActive: true},
	}}
	cache := newFakeCacheRepo()
	service := NewLocationService(repo, cache, &config.Config{}, zap.NewNop())
	return service, repo, cache
}

func TestGetLocationsCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("second dictionary read is served from cache", func(t *testing.T) {
		service, repo, _ := newLocationService()

		first, total, err := service.GetLocations(ctx, types.Filter{Limit: 25})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Equal(t, 1, repo.listCalls)

		second, total, err := service.GetLocations(ctx, types.Filter{Limit: 25})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Equal(t, 1, repo.listCalls, "repository must not be hit again")
		assert.Equal(t, first, second)
	})

	t.Run("searches bypass the cache", func(t *testing.T) {
		service, repo, _ := newLocationService()

		_, _, err := service.GetLocations(ctx, types.Filter{Limit: 25, Search: "city"})
		require.NoError(t, err)
		_, _, err = service.GetLocations(ctx, types.Filter{Limit: 25, Search: "city"})
		require.NoError(t, err)
		assert.Equal(t, 2, repo.listCalls)
	})

	t.Run("paginated reads bypass the cache", func(t *testing.T) {
		service, repo, _ := newLocationService()

		_, _, err := service.GetLocations(ctx, types.Filter{Limit: 25, Offset: 25})
		require.NoError(t, err)
		assert.Equal(t, 1, repo.listCalls)

		_, _, err = service.GetLocations(ctx, types.Filter{Limit: 25, Offset: 25})
		require.NoError(t, err)
		assert.Equal(t, 2, repo.listCalls)
	})

	t.Run("mutations invalidate the cached dictionary", func(t *testing.T) {
		service, repo, cache := newLocationService()

		_, _, err := service.GetLocations(ctx, types.Filter{Limit: 25})
		require.NoError(t, err)
		assert.Contains(t, cache.store, "dictionary:locations")

		_, err = service.CreateLocation(ctx, dto.CreateLocationDTO{Name: "Regional Clinic"})
		require.NoError(t, err)
		assert.NotContains(t, cache.store, "dictionary:locations")

		_, _, err = service.GetLocations(ctx, types.Filter{Limit: 25})
		require.NoError(t, err)
		assert.Equal(t, 2, repo.listCalls, "fresh list fetched after invalidation")
	})
}
