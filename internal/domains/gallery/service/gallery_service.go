package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"commission-backend/internal/domains/gallery/model"
	"commission-backend/internal/domains/gallery/repository"
)

// =====================================================
// GALLERY SERVICE INTERFACE
// =====================================================
type GalleryService interface {
	Create(ctx context.Context, req *model.CreateGalleryItemRequest) (*model.GalleryItem, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateGalleryItemRequest) (*model.GalleryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]model.GalleryItem, error)
	ListVisible(ctx context.Context, category string) ([]model.GalleryItem, error)
}

type galleryService struct {
	repo repository.GalleryRepository
}

// NewGalleryService creates a new gallery service
func NewGalleryService(repo repository.GalleryRepository) GalleryService {
	return &galleryService{repo: repo}
}

func (s *galleryService) Create(ctx context.Context, req *model.CreateGalleryItemRequest) (*model.GalleryItem, error) {
	// New items are visible unless explicitly hidden
	visible := true
	if req.IsVisible != nil {
		visible = *req.IsVisible
	}

	item := &model.GalleryItem{
		ID:        uuid.New(),
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		Category:  req.Category,
		IsVisible: visible,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	log.Info().
		Str("item_id", item.ID.String()).
		Str("title", item.Title).
		Msg("[GalleryService] Gallery item created")

	return item, nil
}

func (s *galleryService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateGalleryItemRequest) (*model.GalleryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.IsVisible != nil {
		item.IsVisible = *req.IsVisible
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *galleryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().
		Str("item_id", id.String()).
		Msg("[GalleryService] Gallery item deleted")

	return nil
}

func (s *galleryService) ListAll(ctx context.Context) ([]model.GalleryItem, error) {
	return s.repo.ListAll(ctx)
}

func (s *galleryService) ListVisible(ctx context.Context, category string) ([]model.GalleryItem, error) {
	return s.repo.ListVisible(ctx, category)
}
