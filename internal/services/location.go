package services

import (
	"context"
	"encoding/json"

	"hospital-maintenance/internal/dto"
	"hospital-maintenance/internal/repositories"
	"hospital-maintenance/pkg/config"
	"hospital-maintenance/pkg/types"

	"go.uber.org/zap"
)

const locationsCacheKey = "dictionary:locations"

// LocationService manages hospitals. The full active list is a dictionary:
// it changes rarely, so it is cached in Redis for a short TTL.
type LocationService struct {
	locationRepository repositories.LocationRepositoryInterface
	cacheRepository    repositories.CacheRepositoryInterface
	cfg                *config.Config
	logger             *zap.Logger
}

func NewLocationService(
	locationRepository repositories.LocationRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *LocationService {
	return &LocationService{
		locationRepository: locationRepository,
		cacheRepository:    cacheRepository,
		cfg:                cfg,
		logger:             logger,
	}
}

func (s *LocationService) GetLocations(ctx context.Context, filter types.Filter) ([]dto.LocationDTO, uint64, error) {
	cacheable := filter.Offset == 0 && len(filter.Filter) == 0 && filter.Search == ""
	if cacheable {
		if cached, err := s.cacheRepository.Get(ctx, locationsCacheKey); err == nil {
			var locations []dto.LocationDTO
			if err := json.Unmarshal([]byte(cached), &locations); err == nil {
				return locations, uint64(len(locations)), nil
			}
		}
	}

	locations, total, err := s.locationRepository.GetLocations(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if encoded, err := json.Marshal(locations); err == nil {
			if err := s.cacheRepository.Set(ctx, locationsCacheKey, encoded, s.cfg.Cache.DictionaryTTL); err != nil {
				s.logger.Warn("failed to cache locations", zap.Error(err))
			}
		}
	}
	return locations, total, nil
}

func (s *LocationService) FindLocation(ctx context.Context, id string) (*dto.LocationDTO, error) {
	return s.locationRepository.FindLocation(ctx, id)
}

func (s *LocationService) CreateLocation(ctx context.Context, payload dto.CreateLocationDTO) (*dto.LocationDTO, error) {
	created, err := s.locationRepository.CreateLocation(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create location", zap.Error(err))
		return nil, err
	}
	s.invalidateCache(ctx)
	s.logger.Info("location created", zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *LocationService) UpdateLocation(ctx context.Context, id string, payload dto.UpdateLocationDTO) (*dto.LocationDTO, error) {
	updated, err := s.locationRepository.UpdateLocation(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return updated, nil
}

func (s *LocationService) DeleteLocation(ctx context.Context, id string) error {
	if err := s.locationRepository.SoftDeleteLocation(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *LocationService) invalidateCache(ctx context.Context) {
	if err := s.cacheRepository.Del(ctx, locationsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate locations cache", zap.Error(err))
	}
}
