package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/repository"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrderFromCart converts the user's active cart into a placed order.
//
// The whole conversion runs in one transaction opened here: cart load,
// per-line stock validation, stock decrements, order and order-item
// inserts, and the cart-status flip commit together or not at all. Product
// rows are locked as they are validated, so two checkouts racing on the
// same product serialise and the loser sees the winner's decrement.
func (s *orderService) CreateOrderFromCart(ctx context.Context, userID uuid.UUID) (*model.Order, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure the transaction is rolled back on any failure path.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	cart, lines, err := s.cartRepo.GetActiveCartWithItems(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(lines) == 0 {
		err = model.ErrEmptyCart
		return nil, err
	}

	now := time.Now()
	totalPrice := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(lines))

	// Validate in line-creation order and fail on the first violation; the
	// deferred rollback undoes any decrements already applied.
	for _, line := range lines {
		var product *model.Product
		product, err = s.productRepo.GetForUpdate(ctx, tx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.IsDeleted {
			s.logger.Warn().
				Str("cart_id", cart.ID.String()).
				Str("product_id", line.ProductID.String()).
				Msg("checkout rejected: product unavailable")
			err = model.NewProductUnavailable(line.ProductName)
			return nil, err
		}
		if product.Stock < line.Quantity {
			s.logger.Warn().
				Str("cart_id", cart.ID.String()).
				Str("product_id", product.ID.String()).
				Int("stock", product.Stock).
				Int("requested", line.Quantity).
				Msg("checkout rejected: insufficient stock")
			err = model.NewInsufficientStock(product.Name)
			return nil, err
		}

		if err = s.productRepo.DecrementStock(ctx, tx, product.ID, line.Quantity); err != nil {
			return nil, err
		}

		totalPrice = totalPrice.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))

		// UnitPrice is the cart line's add-time snapshot; the name is frozen
		// from the product as it is now.
		orderItems = append(orderItems, model.OrderItem{
			ID:          uuid.New(),
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			ProductName: product.Name,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	order := &model.Order{
		ID:         uuid.New(),
		UserID:     userID,
		TotalPrice: totalPrice.Round(2),
		Status:     model.OrderStatusPlaced,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, err
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}
	if err = s.orderRepo.CreateItems(ctx, tx, orderItems); err != nil {
		return nil, err
	}

	// The cart's lines are left behind as historical residue; only the
	// status flips, so the next get-or-create yields a fresh cart.
	if err = s.cartRepo.MarkConverted(ctx, tx, cart.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	order.Items = orderItems

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Str("cart_id", cart.ID.String()).
		Int("item_count", len(orderItems)).
		Str("total_price", order.TotalPrice.String()).
		Msg("order created from cart")

	return order, nil
}

// GetUserOrders retrieves the user's orders with items, newest first.
func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrderByID retrieves the order only if it belongs to the user. An order
// owned by someone else reports the same NotFound as a missing one.
func (s *orderService) GetOrderByID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.NewNotFound("Order")
	}
	return order, nil
}

// UpdateOrderStatus sets the order's status. No transition graph is
// enforced: any status may move to any other.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (*model.Order, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, model.NewInvalidStatus(status)
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.NewNotFound("Order")
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", status).
		Msg("order status updated")

	return order, nil
}
