package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// GalleryItem is one portfolio entry. Images live at external URLs.
type GalleryItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Category  string    `json:"category,omitempty"`
	IsVisible bool      `json:"is_visible"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrGalleryItemNotFound = errors.New("gallery item not found")

// =====================================================
// DTOs
// =====================================================

type CreateGalleryItemRequest struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	Category  string `json:"category"`
	IsVisible *bool  `json:"is_visible"`
}

func (r CreateGalleryItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.ImageURL, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

type UpdateGalleryItemRequest struct {
	Title     *string `json:"title"`
	ImageURL  *string `json:"image_url"`
	Category  *string `json:"category"`
	IsVisible *bool   `json:"is_visible"`
}

func (r UpdateGalleryItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 200)),
		validation.Field(&r.ImageURL, validation.Length(1, 500)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}
