package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"commission-backend/internal/domains/faq/model"
)

// =====================================================
// FAQ REPOSITORY INTERFACE
// =====================================================
type FaqRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	ListOrdered(ctx context.Context) ([]model.Faq, error)
	ListOrderedWithTx(ctx context.Context, tx pgx.Tx) ([]model.Faq, error)

	CreateWithTx(ctx context.Context, tx pgx.Tx, faq *model.Faq) error
	UpdateWithTx(ctx context.Context, tx pgx.Tx, faq *model.Faq) error
	DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
}
