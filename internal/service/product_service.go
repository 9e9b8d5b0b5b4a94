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

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) Create(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.NewNotFound("Category")
	}

	now := time.Now()
	product := &model.Product{
		ID:           uuid.New(),
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Stock:        input.Stock,
		CategoryID:   input.CategoryID,
		CategoryName: category.Name,
		ImageURL:     input.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("name", product.Name).
		Int("stock", product.Stock).
		Msg("product created")

	return product, nil
}

func (s *productService) GetAll(ctx context.Context, filter model.ProductFilter, page, limit int) (*model.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	products, total, err := s.productRepo.GetAll(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	return &model.ProductPage{
		Products:      products,
		TotalPages:    totalPages(total, limit),
		CurrentPage:   page,
		TotalProducts: total,
	}, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.NewNotFound("Product")
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input *model.ProductInput) (*model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.NewNotFound("Category")
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.CategoryID = input.CategoryID
	product.CategoryName = category.Name
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return model.NewNotFound("Product")
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product soft-deleted")
	return nil
}
