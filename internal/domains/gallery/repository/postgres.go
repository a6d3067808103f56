package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commission-backend/internal/domains/gallery/model"
)

// =====================================================
// POSTGRES IMPLEMENTATION
// =====================================================
type postgresGalleryRepository struct {
	pool *pgxpool.Pool
}

// NewGalleryRepository creates a new postgres gallery repository
func NewGalleryRepository(pool *pgxpool.Pool) GalleryRepository {
	return &postgresGalleryRepository{pool: pool}
}

func (r *postgresGalleryRepository) Create(ctx context.Context, item *model.GalleryItem) error {
	query := `
		INSERT INTO gallery (id, title, image_url, category, is_visible, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.Title, item.ImageURL, item.Category, item.IsVisible, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert gallery item: %w", err)
	}
	return nil
}

func (r *postgresGalleryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.GalleryItem, error) {
	query := `
		SELECT id, title, image_url, category, is_visible, created_at
		FROM gallery WHERE id = $1`

	var item model.GalleryItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.Title, &item.ImageURL, &item.Category, &item.IsVisible, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGalleryItemNotFound
		}
		return nil, fmt.Errorf("failed to get gallery item: %w", err)
	}
	return &item, nil
}

func (r *postgresGalleryRepository) Update(ctx context.Context, item *model.GalleryItem) error {
	query := `
		UPDATE gallery SET title = $2, image_url = $3, category = $4, is_visible = $5
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		item.ID, item.Title, item.ImageURL, item.Category, item.IsVisible)
	if err != nil {
		return fmt.Errorf("failed to update gallery item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGalleryItemNotFound
	}
	return nil
}

func (r *postgresGalleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gallery WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrGalleryItemNotFound
	}
	return nil
}

func (r *postgresGalleryRepository) ListAll(ctx context.Context) ([]model.GalleryItem, error) {
	query := `
		SELECT id, title, image_url, category, is_visible, created_at
		FROM gallery ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *postgresGalleryRepository) ListVisible(ctx context.Context, category string) ([]model.GalleryItem, error) {
	query := `
		SELECT id, title, image_url, category, is_visible, created_at
		FROM gallery WHERE is_visible = true`
	args := []interface{}{}

	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible gallery items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]model.GalleryItem, error) {
	var items []model.GalleryItem
	for rows.Next() {
		var item model.GalleryItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.ImageURL, &item.Category, &item.IsVisible, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan gallery row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
