package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/model"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/service"
	"github.com/mohammedanwarabbas/ailoitte-ecommerce-api/internal/storage"
)

// ProductHandler handles product management endpoints. Creates and updates
// arrive as multipart forms so an image can travel with the fields; the
// image is optional and requires a configured store.
type ProductHandler struct {
	service service.ProductService
	images  storage.ImageStore
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler. images may be nil when
// no object store is configured.
func NewProductHandler(service service.ProductService, images storage.ImageStore, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		images:  images,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	product, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GetAll handles GET /api/products requests with filtering and sorting.
func (h *ProductHandler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := model.ProductFilter{
		Name:          c.Query("search"),
		SortField:     c.DefaultQuery("sortBy", "createdAt"),
		SortDirection: c.DefaultQuery("order", "desc"),
	}

	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondInvalid(c, "Invalid categoryId format")
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("minPrice"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			respondInvalid(c, "Invalid minPrice")
			return
		}
		filter.MinPrice = &p
	}
	if raw := c.Query("maxPrice"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			respondInvalid(c, "Invalid maxPrice")
			return
		}
		filter.MaxPrice = &p
	}

	result, err := h.service.GetAll(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetByID handles GET /api/products/:id requests.
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, product)
}

// Update handles PUT /api/products/:id requests.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/products/:id requests.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// bindInput parses the multipart form into a typed ProductInput,
// uploading the image part if one was sent.
func (h *ProductHandler) bindInput(c *gin.Context) (*model.ProductInput, bool) {
	var req model.ProductRequest
	if err := c.ShouldBind(&req); err != nil {
		respondInvalid(c, err.Error())
		return nil, false
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondInvalid(c, "Invalid price")
		return nil, false
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		respondInvalid(c, "Invalid categoryId format")
		return nil, false
	}

	input := &model.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		CategoryID:  categoryID,
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		url, uploadErr := h.uploadImage(c, file)
		if uploadErr != nil {
			respondError(c, uploadErr, h.logger)
			return nil, false
		}
		input.ImageURL = &url
	}

	return input, true
}

func (h *ProductHandler) uploadImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if h.images == nil {
		return "", model.NewDomainError(model.ErrCodeInvalidJSON, "Image uploads are not enabled")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded image: %w", err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	return h.images.Upload(c.Request.Context(), name, contentType, src)
}
