package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"commission-backend/internal/domains/commission/model"
)

// =====================================================
// COMMISSION REPOSITORY INTERFACE
// =====================================================
type CommissionRepository interface {
	// Transaction management
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CommitTx(ctx context.Context, tx pgx.Tx) error
	RollbackTx(ctx context.Context, tx pgx.Tx) error

	// Commission operations
	CreateWithTx(ctx context.Context, tx pgx.Tx, commission *model.Commission) error
	GetByID(ctx context.Context, id string) (*model.Commission, error)

	// GetForUpdateWithTx loads the row under SELECT ... FOR UPDATE so
	// concurrent lifecycle operations on the same commission serialize.
	GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, id string) (*model.Commission, error)

	UpdateWithTx(ctx context.Context, tx pgx.Tx, commission *model.Commission) error
	DeleteWithTx(ctx context.Context, tx pgx.Tx, id string) error

	// List operations
	List(ctx context.Context, status string, page, limit int) ([]model.Commission, int, error)
	ListByClientID(ctx context.Context, clientID uuid.UUID, page, limit int) ([]model.Commission, int, error)
}
