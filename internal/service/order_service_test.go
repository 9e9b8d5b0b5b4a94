package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
)

func TestOrderService_CreateOrderFromCart_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	userID := uuid.New()
	cartID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	cart := &model.Cart{ID: cartID, UserID: userID, Status: model.CartStatusActive}
	lines := []model.CartItemDetail{
		{
			CartItem: model.CartItem{
				ID:        uuid.New(),
				CartID:    cartID,
				ProductID: productA,
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("10.00"),
			},
			ProductName: "Widget",
		},
		{
			CartItem: model.CartItem{
				ID:        uuid.New(),
				CartID:    cartID,
				ProductID: productB,
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("5.50"),
			},
			ProductName: "Gadget",
		},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockCartRepo, mockProductRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("GetActiveCartWithItems", ctx, mockTx, userID).Return(cart, lines, nil)
	mockProductRepo.On("GetForUpdate", ctx, mockTx, productA).
		Return(&model.Product{ID: productA, Name: "Widget", Stock: 5, Price: decimal.RequireFromString("10.00")}, nil)
	mockProductRepo.On("GetForUpdate", ctx, mockTx, productB).
		Return(&model.Product{ID: productB, Name: "Gadget", Stock: 1, Price: decimal.RequireFromString("5.50")}, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, productA, 2).Return(nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, productB, 1).Return(nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockOrderRepo.On("CreateItems", ctx, mockTx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	mockCartRepo.On("MarkConverted", ctx, mockTx, cartID).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := service.CreateOrderFromCart(ctx, userID)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, model.OrderStatusPlaced, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("25.50")),
		"expected 25.50, got %s", order.TotalPrice)
	require.Len(t, order.Items, 2)
	assert.Equal(t, order.ID, order.Items[0].OrderID)
	assert.Equal(t, "Widget", order.Items[0].ProductName)
	assert.True(t, mockTx.committed)

	mockOrderRepo.AssertExpectations(t)
	mockCartRepo.AssertExpectations(t)
	mockProductRepo.AssertExpectations(t)
	mockTx.AssertExpectations(t)
}

func TestOrderService_CreateOrderFromCart_UsesSnapshotPrice(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()

	cart := &model.Cart{ID: cartID, UserID: userID, Status: model.CartStatusActive}
	lines := []model.CartItemDetail{
		{
			CartItem: model.CartItem{
				ID:        uuid.New(),
				CartID:    cartID,
				ProductID: productID,
				Quantity:  3,
				UnitPrice: decimal.RequireFromString("10.00"),
			},
			ProductName: "Widget",
		},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockCartRepo, mockProductRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("GetActiveCartWithItems", ctx, mockTx, userID).Return(cart, lines, nil)
	// The product was repriced after the line was added.
	mockProductRepo.On("GetForUpdate", ctx, mockTx, productID).
		Return(&model.Product{ID: productID, Name: "Widget Deluxe", Stock: 10, Price: decimal.RequireFromString("99.99")}, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, productID, 3).Return(nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).Return(nil)
	mockOrderRepo.On("CreateItems", ctx, mockTx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	mockCartRepo.On("MarkConverted", ctx, mockTx, cartID).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)

	order, err := service.CreateOrderFromCart(ctx, userID)

	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")),
		"order line must keep the add-time price, got %s", order.Items[0].UnitPrice)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("30.00")))
	// The name, by contrast, is frozen from the product as it is now.
	assert.Equal(t, "Widget Deluxe", order.Items[0].ProductName)
}

func TestOrderService_CreateOrderFromCart_EmptyCart(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name  string
		cart  *model.Cart
		lines []model.CartItemDetail
	}{
		{name: "No active cart", cart: nil, lines: nil},
		{name: "Cart with no lines", cart: &model.Cart{ID: uuid.New(), UserID: userID}, lines: []model.CartItemDetail{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := new(MockOrderRepository)
			mockCartRepo := new(MockCartRepository)
			mockProductRepo := new(MockProductRepository)
			mockTx := new(MockTx)

			service := NewOrderService(mockOrderRepo, mockCartRepo, mockProductRepo, logger)

			mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
			mockCartRepo.On("GetActiveCartWithItems", ctx, mockTx, userID).Return(tt.cart, tt.lines, nil)
			mockTx.On("Rollback", ctx).Return(nil)

			order, err := service.CreateOrderFromCart(ctx, userID)

			require.Error(t, err)
			assert.Equal(t, model.ErrEmptyCart, err)
			assert.Nil(t, order)
			assert.True(t, mockTx.rolledBack)
			mockOrderRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestOrderService_CreateOrderFromCart_InsufficientStock(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	userID := uuid.New()
	cartID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	cart := &model.Cart{ID: cartID, UserID: userID, Status: model.CartStatusActive}
	lines := []model.CartItemDetail{
		{
			CartItem:    model.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productA, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
			ProductName: "Widget",
		},
		{
			CartItem:    model.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productB, Quantity: 5, UnitPrice: decimal.RequireFromString("2.00")},
			ProductName: "Gadget",
		},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockCartRepo, mockProductRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("GetActiveCartWithItems", ctx, mockTx, userID).Return(cart, lines, nil)
	mockProductRepo.On("GetForUpdate", ctx, mockTx, productA).
		Return(&model.Product{ID: productA, Name: "Widget", Stock: 1, Price: decimal.RequireFromString("10.00")}, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, productA, 1).Return(nil)
	// The second line fails; the first line's decrement must be rolled back.
	mockProductRepo.On("GetForUpdate", ctx, mockTx, productB).
		Return(&model.Product{ID: productB, Name: "Gadget", Stock: 3, Price: decimal.RequireFromString("2.00")}, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	order, err := service.CreateOrderFromCart(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, order)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)
	assert.Equal(t, "Insufficient stock for Gadget", domainErr.Message)

	assert.True(t, mockTx.rolledBack)
	assert.False(t, mockTx.committed)
	mockOrderRepo.AssertNotCalled(t, "Create")
	mockCartRepo.AssertNotCalled(t, "MarkConverted")
	mockProductRepo.AssertNotCalled(t, "DecrementStock", ctx, mockTx, productB, 5)
}

func TestOrderService_CreateOrderFromCart_ProductUnavailable(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()

	cart := &model.Cart{ID: cartID, UserID: userID, Status: model.CartStatusActive}
	lines := []model.CartItemDetail{
		{
			CartItem:    model.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
			ProductName: "Widget",
		},
	}

	tests := []struct {
		name    string
		product *model.Product
	}{
		{name: "Row gone", product: nil},
		{name: "Soft deleted", product: &model.Product{ID: productID, Name: "Widget", Stock: 5, IsDeleted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := new(MockOrderRepository)
			mockCartRepo := new(MockCartRepository)
			mockProductRepo := new(MockProductRepository)
			mockTx := new(MockTx)

			service := NewOrderService(mockOrderRepo, mockCartRepo, mockProductRepo, logger)

			mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
			mockCartRepo.On("GetActiveCartWithItems", ctx, mockTx, userID).Return(cart, lines, nil)
			mockProductRepo.On("GetForUpdate", ctx, mockTx, productID).Return(tt.product, nil)
			mockTx.On("Rollback", ctx).Return(nil)

			order, err := service.CreateOrderFromCart(ctx, userID)

			require.Error(t, err)
			assert.Nil(t, order)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeProductUnavailable, domainErr.Code)
			assert.Equal(t, "Product Widget is no longer available", domainErr.Message)
			assert.True(t, mockTx.rolledBack)
		})
	}
}

func TestOrderService_CreateOrderFromCart_InsertFailureRollsBack(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	userID := uuid.New()
	cartID := uuid.New()
	productID := uuid.New()

	cart := &model.Cart{ID: cartID, UserID: userID, Status: model.CartStatusActive}
	lines := []model.CartItemDetail{
		{
			CartItem:    model.CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00")},
			ProductName: "Widget",
		},
	}

	mockOrderRepo := new(MockOrderRepository)
	mockCartRepo := new(MockCartRepository)
	mockProductRepo := new(MockProductRepository)
	mockTx := new(MockTx)

	service := NewOrderService(mockOrderRepo, mockCartRepo, mockProductRepo, logger)

	mockOrderRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockCartRepo.On("GetActiveCartWithItems", ctx, mockTx, userID).Return(cart, lines, nil)
	mockProductRepo.On("GetForUpdate", ctx, mockTx, productID).
		Return(&model.Product{ID: productID, Name: "Widget", Stock: 5, Price: decimal.RequireFromString("10.00")}, nil)
	mockProductRepo.On("DecrementStock", ctx, mockTx, productID, 1).Return(nil)
	mockOrderRepo.On("Create", ctx, mockTx, mock.AnythingOfType("*model.Order")).
		Return(errors.New("database error"))
	mockTx.On("Rollback", ctx).Return(nil)

	order, err := service.CreateOrderFromCart(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, mockTx.rolledBack)
	assert.False(t, mockTx.committed)
	mockCartRepo.AssertNotCalled(t, "MarkConverted")
}

func TestOrderService_GetOrderByID(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	userID := uuid.New()
	orderID := uuid.New()
	order := &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPlaced}

	tests := []struct {
		name      string
		mockOrder *model.Order
		mockErr   error
		wantErr   string
	}{
		{name: "Success", mockOrder: order},
		{name: "Not found or not owned", mockOrder: nil, wantErr: "Order not found"},
		{name: "Repository error", mockErr: errors.New("database error"), wantErr: "database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockOrderRepo := new(MockOrderRepository)
			service := NewOrderService(mockOrderRepo, new(MockCartRepository), new(MockProductRepository), logger)

			mockOrderRepo.On("GetByIDForUser", ctx, orderID, userID).Return(tt.mockOrder, tt.mockErr)

			got, err := service.GetOrderByID(ctx, orderID, userID)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, order, got)
			}
			mockOrderRepo.AssertExpectations(t)
		})
	}
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("Valid transition", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		service := NewOrderService(mockOrderRepo, new(MockCartRepository), new(MockProductRepository), logger)

		updated := &model.Order{ID: orderID, Status: model.OrderStatusShipped}
		mockOrderRepo.On("UpdateStatus", ctx, orderID, model.OrderStatusShipped).Return(updated, nil)

		got, err := service.UpdateOrderStatus(ctx, orderID, model.OrderStatusShipped)

		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, got.Status)
		mockOrderRepo.AssertExpectations(t)
	})

	t.Run("Unknown status", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		service := NewOrderService(mockOrderRepo, new(MockCartRepository), new(MockProductRepository), logger)

		got, err := service.UpdateOrderStatus(ctx, orderID, "refunded")

		require.Error(t, err)
		assert.Nil(t, got)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeInvalidStatus, domainErr.Code)
		assert.Equal(t, "Invalid order status: refunded", domainErr.Message)
		mockOrderRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Order not found", func(t *testing.T) {
		mockOrderRepo := new(MockOrderRepository)
		service := NewOrderService(mockOrderRepo, new(MockCartRepository), new(MockProductRepository), logger)

		mockOrderRepo.On("UpdateStatus", ctx, orderID, model.OrderStatusCancelled).Return(nil, nil)

		got, err := service.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled)

		require.Error(t, err)
		assert.Nil(t, got)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)
	})
}
