package repository

import (
	"context"

	"commission-backend/internal/domains/settings/model"
)

// =====================================================
// SETTINGS REPOSITORY INTERFACE
// =====================================================
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	GetAll(ctx context.Context) ([]model.Setting, error)
	Upsert(ctx context.Context, setting *model.Setting) error

	// UpsertAll writes several settings atomically
	UpsertAll(ctx context.Context, settings []model.Setting) error
}
