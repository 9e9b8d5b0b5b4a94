package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Deletion is a soft-delete flag flip; deleted
// categories are filtered out of every read path.
type Category struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	IsDeleted   bool       `json:"-" db:"is_deleted"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryPage is one page of the category listing.
type CategoryPage struct {
	Categories      []Category `json:"categories"`
	TotalPages      int        `json:"totalPages"`
	CurrentPage     int        `json:"currentPage"`
	TotalCategories int        `json:"totalCategories"`
}
