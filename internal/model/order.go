package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Any status may move to any other via the admin update;
// no transition graph is enforced.
const (
	OrderStatusPlaced    = "placed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// IsValidOrderStatus reports whether s is one of the four order statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPlaced, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable record of a converted cart. TotalPrice is computed
// once at creation and never changes; only the status is mutable.
type Order struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     uuid.UUID       `json:"userId" db:"user_id"`
	TotalPrice decimal.Decimal `json:"totalPrice" db:"total_price"`
	Status     string          `json:"status" db:"status"`
	Items      []OrderItem     `json:"items,omitempty" db:"-"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is one line of an order. UnitPrice and ProductName are frozen
// snapshots taken at order creation; renaming, repricing or soft-deleting
// the product later does not touch them.
type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"orderId" db:"order_id"`
	ProductID   uuid.UUID       `json:"productId" db:"product_id"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
	ProductName string          `json:"productName" db:"product_name"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// UpdateOrderStatusRequest is the payload for PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=placed shipped delivered cancelled"`
}
