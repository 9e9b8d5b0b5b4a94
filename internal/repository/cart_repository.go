package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetActiveCart retrieves the user's active cart.
func (r *cartRepository) GetActiveCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, user_id, status, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND status = 'active'
	`

	var c model.Cart
	err := r.pool.QueryRow(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query active cart")
		return nil, fmt.Errorf("failed to query active cart: %w", err)
	}

	return &c, nil
}

// CreateCart inserts a fresh active cart for the user. The partial unique
// index on (user_id) where status='active' makes the losing side of a
// concurrent create fail with a unique violation.
func (r *cartRepository) CreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	now := time.Now()
	cart := &model.Cart{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    model.CartStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO carts (id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, cart.ID, cart.UserID, cart.Status, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, err
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return cart, nil
}

const cartItemDetailColumns = `
	ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price, ci.created_at, ci.updated_at,
	p.name, p.price, p.stock
`

func scanCartItemDetail(row pgx.Row) (*model.CartItemDetail, error) {
	var d model.CartItemDetail
	err := row.Scan(
		&d.ID, &d.CartID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.CreatedAt, &d.UpdatedAt,
		&d.ProductName, &d.ProductPrice, &d.ProductStock)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListItems retrieves the cart's lines with product detail, in creation order.
func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItemDetail, error) {
	return r.listItems(ctx, r.pool, cartID)
}

// listItems runs against either the pool or a transaction.
func (r *cartRepository) listItems(ctx context.Context, q querier, cartID uuid.UUID) ([]model.CartItemDetail, error) {
	query := `
		SELECT ` + cartItemDetailColumns + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id
	`

	rows, err := q.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItemDetail
	for rows.Next() {
		d, err := scanCartItemDetail(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// GetItem retrieves one line of the cart with product detail.
func (r *cartRepository) GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*model.CartItemDetail, error) {
	query := `
		SELECT ` + cartItemDetailColumns + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.id = $1 AND ci.cart_id = $2
	`

	d, err := scanCartItemDetail(r.pool.QueryRow(ctx, query, itemID, cartID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return d, nil
}

// GetItemByProduct retrieves the cart's line for a product, if any.
func (r *cartRepository) GetItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (*model.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, cartID, productID).Scan(
		&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
		&item.UnitPrice, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart item by product")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// CreateItem inserts a new cart line with its snapshot price.
func (r *cartRepository) CreateItem(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.UnitPrice, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", item.CartID.String()).Msg("failed to create cart item")
		return fmt.Errorf("failed to create cart item: %w", err)
	}

	return nil
}

// UpdateItemQuantity sets a cart line's quantity. The snapshot price is
// deliberately left untouched.
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $2, updated_at = now()
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, itemID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to update cart item")
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	return nil
}

// DeleteItem removes a cart line.
func (r *cartRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

// ClearItems removes all lines of the cart.
func (r *cartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart items")
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	return nil
}

// GetActiveCartWithItems loads the user's active cart and its lines within
// the transaction. The cart row is locked so two checkouts of the same cart
// serialise.
func (r *cartRepository) GetActiveCartWithItems(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, []model.CartItemDetail, error) {
	query := `
		SELECT id, user_id, status, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND status = 'active'
		FOR UPDATE
	`

	var c model.Cart
	err := tx.QueryRow(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to lock active cart")
		return nil, nil, fmt.Errorf("failed to lock active cart: %w", err)
	}

	items, err := r.listItems(ctx, tx, c.ID)
	if err != nil {
		return nil, nil, err
	}

	return &c, items, nil
}

// MarkConverted flips the cart's status to converted within the transaction.
func (r *cartRepository) MarkConverted(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	query := `
		UPDATE carts
		SET status = 'converted', updated_at = now()
		WHERE id = $1 AND status = 'active'
	`

	_, err := tx.Exec(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to mark cart converted")
		return fmt.Errorf("failed to mark cart converted: %w", err)
	}

	return nil
}
