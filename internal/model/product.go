package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalogue item. Price is a fixed-point decimal with
// two fractional digits; stock is only ever decremented by the order
// conversion path (or set outright by an admin update).
type Product struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Stock        int             `json:"stock" db:"stock"`
	CategoryID   uuid.UUID       `json:"categoryId" db:"category_id"`
	CategoryName string          `json:"categoryName,omitempty" db:"-"`
	ImageURL     *string         `json:"imageUrl,omitempty" db:"image_url"`
	IsDeleted    bool            `json:"-" db:"is_deleted"`
	DeletedAt    *time.Time      `json:"-" db:"deleted_at"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductRequest is the parsed form payload for creating or updating a
// product. The image itself travels as a separate multipart part.
type ProductRequest struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Price       string `form:"price" binding:"required"`
	Stock       int    `form:"stock" binding:"min=0"`
	CategoryID  string `form:"categoryId" binding:"required,uuid"`
}

// ProductInput is the validated, typed product payload the service layer
// consumes. Handlers build it from the multipart form, parsing price and
// category id and uploading the image first.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  uuid.UUID
	ImageURL    *string
}

// ProductFilter narrows the product listing.
type ProductFilter struct {
	CategoryID    *uuid.UUID
	Name          string
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	SortField     string
	SortDirection string
}

// ProductPage is one page of the product listing.
type ProductPage struct {
	Products      []Product `json:"products"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
	TotalProducts int       `json:"totalProducts"`
}
