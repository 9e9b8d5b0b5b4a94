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

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// getOrCreateActiveCart returns the user's active cart, creating one if
// none exists. When two first-use requests race, the partial unique index
// rejects the losing insert and we retry as a fetch.
func (s *cartService) getOrCreateActiveCart(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart, err = s.cartRepo.CreateCart(ctx, userID)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			s.logger.Debug().Str("user_id", userID.String()).Msg("lost cart-create race, refetching")
			cart, err = s.cartRepo.GetActiveCart(ctx, userID)
			if err != nil {
				return nil, err
			}
			if cart == nil {
				return nil, fmt.Errorf("active cart vanished after create race")
			}
			return cart, nil
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", userID.String()).Str("cart_id", cart.ID.String()).Msg("active cart created")
	return cart, nil
}

// GetCart returns the user's active cart view.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.CartView, error) {
	cart, err := s.getOrCreateActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// AddItem adds quantity of a product to the user's active cart.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*model.CartView, error) {
	cart, err := s.getOrCreateActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.NewNotFound("Product")
	}

	// Point-in-time check only; stock is not reserved and is re-validated
	// at checkout.
	if product.Stock < quantity {
		return nil, model.NewInsufficientStock(product.Name)
	}

	existing, err := s.cartRepo.GetItemByProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// The existing line keeps its original snapshot price.
		if err := s.cartRepo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return nil, err
		}
	} else {
		now := time.Now()
		item := &model.CartItem{
			ID:        uuid.New(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.cartRepo.CreateItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.buildView(ctx, cart)
}

// UpdateItem sets a line's quantity; zero (or less) deletes the line.
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartView, error) {
	cart, err := s.getOrCreateActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.NewNotFound("Cart item")
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
			return nil, err
		}
		return s.buildView(ctx, cart)
	}

	if item.ProductStock < quantity {
		return nil, model.NewInsufficientStock(item.ProductName)
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}

	return s.buildView(ctx, cart)
}

// RemoveItem deletes one line of the user's active cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.CartView, error) {
	cart, err := s.getOrCreateActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.NewNotFound("Cart item")
	}

	if err := s.cartRepo.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}

	return s.buildView(ctx, cart)
}

// Clear deletes all lines of the user's active cart.
func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) (*model.CartView, error) {
	cart, err := s.getOrCreateActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.ClearItems(ctx, cart.ID); err != nil {
		return nil, err
	}

	return s.buildView(ctx, cart)
}

// buildView materialises the cart-with-items-and-total view. The total is
// recomputed from the lines on every call, never stored.
func (s *cartService) buildView(ctx context.Context, cart *model.Cart) (*model.CartView, error) {
	details, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	items := make([]model.CartItemView, 0, len(details))
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Quantity))))
		items = append(items, model.CartItemView{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Product: model.ProductRef{
				ID:    d.ProductID,
				Name:  d.ProductName,
				Price: d.ProductPrice,
			},
		})
	}

	return &model.CartView{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Status:     cart.Status,
		Items:      items,
		TotalPrice: total.Round(2),
	}, nil
}
