package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/middleware"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests, converting the caller's active
// cart into an order.
func (h *OrderHandler) Create(c *gin.Context) {
	order, err := h.service.CreateOrderFromCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetAll handles GET /api/orders requests, listing the caller's orders.
func (h *OrderHandler) GetAll(c *gin.Context) {
	orders, err := h.service.GetUserOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetByID handles GET /api/orders/:id requests.
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetOrderByID(c.Request.Context(), orderID, middleware.UserID(c))
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PUT /api/orders/:id/status requests (admin only).
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, order)
}
