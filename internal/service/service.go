package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
)

// AuthService defines operations for registration and token issuance.
type AuthService interface {
	// Register creates a user and returns it with a fresh token pair.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns the user with a fresh token pair.
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)

	// Refresh exchanges a valid refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
}

// CategoryService defines operations for category management.
type CategoryService interface {
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)
	GetAll(ctx context.Context, page, limit int) (*model.CategoryPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)

	// Delete soft-deletes the category.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductService defines operations for product management.
type ProductService interface {
	Create(ctx context.Context, input *model.ProductInput) (*model.Product, error)
	GetAll(ctx context.Context, filter model.ProductFilter, page, limit int) (*model.ProductPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, input *model.ProductInput) (*model.Product, error)

	// Delete soft-deletes the product.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartService defines operations on a user's active cart. Every mutator
// returns the recomputed cart view.
type CartService interface {
	// GetCart returns the user's active cart view, creating the cart if none
	// exists.
	GetCart(ctx context.Context, userID uuid.UUID) (*model.CartView, error)

	// AddItem adds quantity of a product to the cart, incrementing an
	// existing line without refreshing its snapshot price.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartView, error)

	// UpdateItem sets a line's quantity; zero deletes the line.
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartView, error)

	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.CartView, error)
	Clear(ctx context.Context, userID uuid.UUID) (*model.CartView, error)
}

// OrderService defines order conversion and order management operations.
type OrderService interface {
	// CreateOrderFromCart atomically converts the user's active cart into a
	// placed order: it re-validates availability and stock at commit time,
	// decrements stock, freezes price and name snapshots into order lines,
	// and retires the cart. Any violation aborts the whole conversion with
	// no side effects.
	CreateOrderFromCart(ctx context.Context, userID uuid.UUID) (*model.Order, error)

	// GetUserOrders returns the user's orders with items, newest first.
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// GetOrderByID returns the order only if it belongs to the user.
	GetOrderByID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error)

	// UpdateOrderStatus sets the order's status (admin operation).
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error)
}
