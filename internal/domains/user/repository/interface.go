package repository

import (
	"context"

	"github.com/google/uuid"

	"commission-backend/internal/domains/user/model"
)

// =====================================================
// USER REPOSITORY INTERFACE
// =====================================================
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername matches case-insensitively
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListClients(ctx context.Context, page, limit int) ([]model.User, int, error)
	ListPublicArtists(ctx context.Context) ([]model.User, error)
}
