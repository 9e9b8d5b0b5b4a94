package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/middleware"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/service"
)

// CartHandler handles the caller's active cart endpoints.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.service.GetCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondInvalid(c, "Invalid productId format")
		return
	}

	view, err := h.service.AddItem(c.Request.Context(), middleware.UserID(c), productID, req.Quantity)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// UpdateItem handles PUT /api/cart/items/:id requests.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	view, err := h.service.UpdateItem(c.Request.Context(), middleware.UserID(c), itemID, *req.Quantity)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/items/:id requests.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.RemoveItem(c.Request.Context(), middleware.UserID(c), itemID)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Clear handles DELETE /api/cart/clear requests.
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.service.Clear(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, view)
}
