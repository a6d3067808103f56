package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"commission-backend/internal/domains/contact/model"
)

// =====================================================
// POSTGRES IMPLEMENTATION
// =====================================================
type postgresContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a new postgres contact repository
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &postgresContactRepository{pool: pool}
}

func (r *postgresContactRepository) Create(ctx context.Context, message *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		message.ID, message.Name, message.Email, message.Message, message.IsRead, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

func (r *postgresContactRepository) List(ctx context.Context, page, limit int) ([]model.ContactMessage, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	query := `
		SELECT id, name, email, message, is_read, created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *postgresContactRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_messages SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContactMessageNotFound
	}
	return nil
}

func (r *postgresContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContactMessageNotFound
	}
	return nil
}

func (r *postgresContactRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE is_read = false`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread contact messages: %w", err)
	}
	return count, nil
}
