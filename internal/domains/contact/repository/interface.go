package repository

import (
	"context"

	"github.com/google/uuid"

	"commission-backend/internal/domains/contact/model"
)

// =====================================================
// CONTACT REPOSITORY INTERFACE
// =====================================================
type ContactRepository interface {
	Create(ctx context.Context, message *model.ContactMessage) error
	List(ctx context.Context, page, limit int) ([]model.ContactMessage, int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int, error)
}
