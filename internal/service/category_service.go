package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/repository"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	now := time.Now()
	category := &model.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID.String()).Str("name", category.Name).Msg("category created")
	return category, nil
}

func (s *categoryService) GetAll(ctx context.Context, page, limit int) (*model.CategoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	categories, total, err := s.categoryRepo.GetAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	return &model.CategoryPage{
		Categories:      categories,
		TotalPages:      totalPages(total, limit),
		CurrentPage:     page,
		TotalCategories: total,
	}, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.NewNotFound("Category")
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Description = req.Description
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.categoryRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return model.NewNotFound("Category")
	}

	s.logger.Info().Str("category_id", id.String()).Msg("category soft-deleted")
	return nil
}

// totalPages computes a page count, rounding up.
func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
