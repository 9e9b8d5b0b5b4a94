package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// sortColumns whitelists the sortable fields of the product listing.
var sortColumns = map[string]string{
	"name":      "p.name",
	"price":     "p.price",
	"createdAt": "p.created_at",
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, category_id, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Stock,
		product.CategoryID, product.ImageURL, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetAll retrieves a filtered page of non-deleted products with their
// category names.
func (r *productRepository) GetAll(ctx context.Context, filter model.ProductFilter, page, limit int) ([]model.Product, int, error) {
	where := []string{"p.is_deleted = FALSE", "c.is_deleted = FALSE"}
	args := []any{}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		where = append(where, fmt.Sprintf("p.name ILIKE $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		where = append(where, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		where = append(where, fmt.Sprintf("p.price <= $%d", len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE ` + whereClause

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy := "p.created_at DESC"
	if col, ok := sortColumns[filter.SortField]; ok {
		direction := "ASC"
		if strings.EqualFold(filter.SortDirection, "desc") {
			direction = "DESC"
		}
		orderBy = col + " " + direction
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id, c.name,
		       p.image_url, p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderBy, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.CategoryID, &p.CategoryName, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a non-deleted product with its category name.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id, c.name,
		       p.image_url, p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1 AND p.is_deleted = FALSE
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.CategoryName, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Update updates a product's mutable fields.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, category_id = $6,
		    image_url = $7, updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock, product.CategoryID, product.ImageURL)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// SoftDelete flips the product's lifecycle flags.
func (r *productRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	return softDelete(ctx, r.pool, "products", id)
}

// GetForUpdate loads a product row under FOR UPDATE within the transaction.
// Soft-deleted rows are returned so the caller can report the product as
// unavailable by name.
func (r *productRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Product, error) {
	query := `
		SELECT id, name, description, price, stock, category_id, image_url,
		       is_deleted, deleted_at, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var p model.Product
	err := tx.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID,
		&p.ImageURL, &p.IsDeleted, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to lock product row")
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	return &p, nil
}

// DecrementStock subtracts quantity from the product's stock within the
// transaction. The row is already locked by GetForUpdate.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	return nil
}
