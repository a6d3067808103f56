package repository

import (
	"context"

	"github.com/google/uuid"

	"commission-backend/internal/domains/notification/model"
)

// =====================================================
// NOTIFICATION REPOSITORY INTERFACE
// =====================================================
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error

	// ListForAdmins returns admin-broadcast rows (user_id IS NULL)
	ListForAdmins(ctx context.Context, page, limit int) ([]model.Notification, int, error)
	ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]model.Notification, int, error)

	CountUnreadForAdmins(ctx context.Context) (int, error)
	CountUnreadForUser(ctx context.Context, userID uuid.UUID) (int, error)

	MarkAllReadForAdmins(ctx context.Context) error
	MarkAllReadForUser(ctx context.Context, userID uuid.UUID) error

	// DeleteReadOlderThan removes read rows past the retention window,
	// returning the number of rows removed
	DeleteReadOlderThan(ctx context.Context, days int) (int64, error)
}
