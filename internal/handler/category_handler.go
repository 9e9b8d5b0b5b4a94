package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/service"
)

// CategoryHandler handles category management endpoints.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// Create handles POST /api/categories requests.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	category, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetAll handles GET /api/categories requests.
func (h *CategoryHandler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.service.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByID handles GET /api/categories/:id requests.
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	category, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Update handles PUT /api/categories/:id requests.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err.Error())
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/categories/:id requests.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
