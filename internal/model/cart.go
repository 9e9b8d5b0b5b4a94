package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart statuses. A cart moves from active to converted exactly once, at
// order creation, and is never reactivated.
const (
	CartStatusActive    = "active"
	CartStatusConverted = "converted"
)

// Cart is a user's in-progress basket. At most one active cart exists per
// user, enforced by a partial unique index on (user_id) where status='active'.
type Cart struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CartItem is one line of a cart. UnitPrice is a snapshot taken when the
// line was first added; it does not track later product price changes.
type CartItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CartID    uuid.UUID       `json:"cartId" db:"cart_id"`
	ProductID uuid.UUID       `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// CartItemDetail is a cart line joined with the current state of its
// product. ProductPrice and ProductStock reflect the catalogue now, as
// opposed to the frozen UnitPrice.
type CartItemDetail struct {
	CartItem
	ProductName  string          `json:"-"`
	ProductPrice decimal.Decimal `json:"-"`
	ProductStock int             `json:"-"`
}

// ProductRef is the slim product view embedded in a cart line.
type ProductRef struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CartItemView is a cart line as returned to clients.
type CartItemView struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Product   ProductRef      `json:"product"`
}

// CartView is the cart-with-items-and-total shape every cart mutator
// returns. TotalPrice is Σ(unitPrice × quantity) rounded to 2dp.
type CartView struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	Status     string          `json:"status"`
	Items      []CartItemView  `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// AddItemRequest is the payload for POST /api/cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest is the payload for PUT /api/cart/items/:id. A quantity
// of zero deletes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}
