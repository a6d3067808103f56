package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commission-backend/internal/domains/faq/model"
)

// =====================================================
// POSTGRES IMPLEMENTATION
// =====================================================
type postgresFaqRepository struct {
	pool *pgxpool.Pool
}

// NewFaqRepository creates a new postgres faq repository
func NewFaqRepository(pool *pgxpool.Pool) FaqRepository {
	return &postgresFaqRepository{pool: pool}
}

func (r *postgresFaqRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *postgresFaqRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresFaqRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func (r *postgresFaqRepository) ListOrdered(ctx context.Context) ([]model.Faq, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question, answer, position FROM faqs ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	defer rows.Close()

	return collectFaqs(rows)
}

func (r *postgresFaqRepository) ListOrderedWithTx(ctx context.Context, tx pgx.Tx) ([]model.Faq, error) {
	rows, err := tx.Query(ctx,
		`SELECT id, question, answer, position FROM faqs ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	defer rows.Close()

	return collectFaqs(rows)
}

func (r *postgresFaqRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, faq *model.Faq) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO faqs (id, question, answer, position) VALUES ($1, $2, $3, $4)`,
		faq.ID, faq.Question, faq.Answer, faq.Position)
	if err != nil {
		return fmt.Errorf("failed to insert faq: %w", err)
	}
	return nil
}

func (r *postgresFaqRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, faq *model.Faq) error {
	tag, err := tx.Exec(ctx,
		`UPDATE faqs SET question = $2, answer = $3, position = $4 WHERE id = $1`,
		faq.ID, faq.Question, faq.Answer, faq.Position)
	if err != nil {
		return fmt.Errorf("failed to update faq: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrFaqNotFound
	}
	return nil
}

func (r *postgresFaqRepository) DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
	}
	return nil
}

func collectFaqs(rows pgx.Rows) ([]model.Faq, error) {
	var faqs []model.Faq
	for rows.Next() {
		var f model.Faq
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Position); err != nil {
			return nil, fmt.Errorf("failed to scan faq row: %w", err)
		}
		faqs = append(faqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return faqs, nil
}
