package repository

import (
	"context"

	"github.com/google/uuid"

	"commission-backend/internal/domains/gallery/model"
)

// =====================================================
// GALLERY REPOSITORY INTERFACE
// =====================================================
type GalleryRepository interface {
	Create(ctx context.Context, item *model.GalleryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.GalleryItem, error)
	Update(ctx context.Context, item *model.GalleryItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListAll returns every item for the admin panel
	ListAll(ctx context.Context) ([]model.GalleryItem, error)
	// ListVisible returns only public items, optionally filtered by category
	ListVisible(ctx context.Context, category string) ([]model.GalleryItem, error)
}
