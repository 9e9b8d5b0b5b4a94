// Package storage provides object storage for product images.
package storage

import (
	"context"
	"io"
)

// ImageStore persists uploaded product images and yields their public URLs.
type ImageStore interface {
	// Upload stores the image under a key derived from name and returns the
	// URL to serve it from.
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}
