package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as a unique
	// violation, detectable with IsUniqueViolation.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by id. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error

	// GetAll retrieves a page of non-deleted categories, newest first,
	// together with the total count.
	GetAll(ctx context.Context, page, limit int) ([]model.Category, int, error)

	// GetByID retrieves a non-deleted category. Returns nil when absent or
	// soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	Update(ctx context.Context, category *model.Category) error

	// SoftDelete flips the lifecycle flags. Returns false when no live row
	// matched.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error

	// GetAll retrieves a filtered page of non-deleted products with their
	// category names, together with the total count.
	GetAll(ctx context.Context, filter model.ProductFilter, page, limit int) ([]model.Product, int, error)

	// GetByID retrieves a non-deleted product with its category name.
	// Returns nil when absent or soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	Update(ctx context.Context, product *model.Product) error

	// SoftDelete flips the lifecycle flags. Returns false when no live row
	// matched.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// GetForUpdate loads a product row within the transaction, taking a row
	// lock so concurrent checkouts serialise on it. Soft-deleted rows are
	// returned (the caller inspects IsDeleted); absent rows return nil.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Product, error)

	// DecrementStock subtracts quantity from the product's stock within the
	// transaction.
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// GetActiveCart retrieves the user's active cart. Returns nil when none
	// exists.
	GetActiveCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// CreateCart inserts a fresh active cart. A concurrent create for the
	// same user loses with a unique violation on the partial index.
	CreateCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// ListItems retrieves the cart's lines joined with current product
	// detail, in creation order.
	ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItemDetail, error)

	// GetItem retrieves one line of the cart with product detail. Returns
	// nil when the line does not belong to the cart.
	GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*model.CartItemDetail, error)

	// GetItemByProduct retrieves the cart's line for a product, if any.
	GetItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (*model.CartItem, error)

	CreateItem(ctx context.Context, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	ClearItems(ctx context.Context, cartID uuid.UUID) error

	// GetActiveCartWithItems loads the user's active cart and its lines
	// within the transaction, locking the cart row. Returns a nil cart when
	// none exists.
	GetActiveCartWithItems(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, []model.CartItemDetail, error)

	// MarkConverted flips the cart's status to converted within the
	// transaction.
	MarkConverted(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts the database transaction the order conversion engine
	// runs in.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateItems inserts the order's lines within the provided transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetUserOrders retrieves all of a user's orders with items, newest first.
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// GetByIDForUser retrieves an order with items only if it belongs to the
	// user. Returns nil otherwise.
	GetByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error)

	// UpdateStatus sets the order's status. Returns nil when the order does
	// not exist.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error)
}

// querier is the subset of pgx operations shared by pgxpool.Pool and
// pgx.Tx, letting a read run either standalone or inside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (duplicate email, duplicate active cart).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// softDelete flips is_deleted and deleted_at in one statement. Every
// soft-deletable table goes through this helper so the two fields cannot
// drift apart.
func softDelete(ctx context.Context, pool *pgxpool.Pool, table string, id uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_deleted = TRUE, deleted_at = now(), updated_at = now()
		WHERE id = $1 AND is_deleted = FALSE
	`, table)

	tag, err := pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to soft delete from %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}
