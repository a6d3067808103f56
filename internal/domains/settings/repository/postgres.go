package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commission-backend/internal/domains/settings/model"
	"commission-backend/pkg/database"
)

// =====================================================
// POSTGRES IMPLEMENTATION
// =====================================================
type postgresSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new postgres settings repository
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &postgresSettingsRepository{pool: pool}
}

func (r *postgresSettingsRepository) Get(ctx context.Context, key string) (*model.Setting, error) {
	query := `SELECT key, value FROM settings WHERE key = $1`

	var setting model.Setting
	var value string
	err := r.pool.QueryRow(ctx, query, key).Scan(&setting.Key, &value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	setting.Value = []byte(value)
	return &setting, nil
}

func (r *postgresSettingsRepository) GetAll(ctx context.Context) ([]model.Setting, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []model.Setting
	for rows.Next() {
		var setting model.Setting
		var value string
		if err := rows.Scan(&setting.Key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		setting.Value = []byte(value)
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *postgresSettingsRepository) Upsert(ctx context.Context, setting *model.Setting) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	_, err := r.pool.Exec(ctx, query, setting.Key, string(setting.Value))
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}

// UpsertAll applies a batch of settings in one transaction so a partial
// update never becomes visible
func (r *postgresSettingsRepository) UpsertAll(ctx context.Context, settings []model.Setting) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		for i := range settings {
			if _, err := tx.Exec(ctx, query, settings[i].Key, string(settings[i].Value)); err != nil {
				return fmt.Errorf("failed to upsert setting %q: %w", settings[i].Key, err)
			}
		}
		return nil
	})
}
