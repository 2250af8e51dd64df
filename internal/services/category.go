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

const categoriesCacheKey = "dictionary:categories"

type CategoryService struct {
	categoryRepository repositories.CategoryRepositoryInterface
	cacheRepository    repositories.CacheRepositoryInterface
	cfg                *config.Config
	logger             *zap.Logger
}

func NewCategoryService(
	categoryRepository repositories.CategoryRepositoryInterface,
	cacheRepository repositories.CacheRepositoryInterface,
	cfg *config.Config,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepository: categoryRepository,
		cacheRepository:    cacheRepository,
		cfg:                cfg,
		logger:             logger,
	}
}

func (s *CategoryService) GetCategories(ctx context.Context, filter types.Filter) ([]dto.CategoryDTO, uint64, error) {
	cacheable := filter.Offset == 0 && len(filter.Filter) == 0 && filter.Search == ""
	if cacheable {
		if cached, err := s.cacheRepository.Get(ctx, categoriesCacheKey); err == nil {
			var categories []dto.CategoryDTO
			if err := json.Unmarshal([]byte(cached), &categories); err == nil {
				return categories, uint64(len(categories)), nil
			}
		}
	}

	categories, total, err := s.categoryRepository.GetCategories(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if cacheable {
		if encoded, err := json.Marshal(categories); err == nil {
			if err := s.cacheRepository.Set(ctx, categoriesCacheKey, encoded, s.cfg.Cache.DictionaryTTL); err != nil {
				s.logger.Warn("failed to cache categories", zap.Error(err))
			}
		}
	}
	return categories, total, nil
}

func (s *CategoryService) FindCategory(ctx context.Context, id string) (*dto.CategoryDTO, error) {
	return s.categoryRepository.FindCategory(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	created, err := s.categoryRepository.CreateCategory(ctx, payload)
	if err != nil {
		s.logger.Error("failed to create category", zap.Error(err))
		return nil, err
	}
	s.invalidateCache(ctx)
	s.logger.Info("category created", zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error) {
	updated, err := s.categoryRepository.UpdateCategory(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepository.SoftDeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	if err := s.cacheRepository.Del(ctx, categoriesCacheKey); err != nil {
		s.logger.Warn("failed to invalidate categories cache", zap.Error(err))
	}
}
