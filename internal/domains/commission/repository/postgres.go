package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commission-backend/internal/domains/commission/model"
)

// =====================================================
// POSTGRES IMPLEMENTATION
// =====================================================
type postgresCommissionRepository struct {
	pool *pgxpool.Pool
}

// NewCommissionRepository creates a new postgres commission repository
func NewCommissionRepository(pool *pgxpool.Pool) CommissionRepository {
	return &postgresCommissionRepository{pool: pool}
}

const commissionColumns = `
	id, client_name, type, price, description, created_at, deadline,
	status, payment_status, phases, current_phase_index, revisions_used,
	comments, previews, current_preview, event_log, client_id, assigned_artist_ids`

// =====================================================
// TRANSACTION MANAGEMENT
// =====================================================

func (r *postgresCommissionRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *postgresCommissionRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

func (r *postgresCommissionRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	// Rollback after commit returns pgx.ErrTxClosed, safe to ignore
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// =====================================================
// ROW <-> ENTITY MAPPING
// =====================================================

// encodedCollections holds the JSON text representation of the
// collection columns for one commission row
type encodedCollections struct {
	phases    string
	comments  string
	previews  string
	eventLog  string
	artistIDs string
}

func encodeCollections(c *model.Commission) (*encodedCollections, error) {
	phases, err := model.EncodeList(c.Phases)
	if err != nil {
		return nil, err
	}
	comments, err := model.EncodeList(c.Comments)
	if err != nil {
		return nil, err
	}
	previews, err := model.EncodeList(c.Previews)
	if err != nil {
		return nil, err
	}
	eventLog, err := model.EncodeList(c.EventLog)
	if err != nil {
		return nil, err
	}
	artistIDs, err := model.EncodeList(c.AssignedArtistIDs)
	if err != nil {
		return nil, err
	}

	return &encodedCollections{
		phases:    phases,
		comments:  comments,
		previews:  previews,
		eventLog:  eventLog,
		artistIDs: artistIDs,
	}, nil
}

func scanCommission(row pgx.Row) (*model.Commission, error) {
	var c model.Commission
	var enc encodedCollections

	err := row.Scan(
		&c.ID,
		&c.ClientName,
		&c.Type,
		&c.Price,
		&c.Description,
		&c.CreatedAt,
		&c.Deadline,
		&c.Status,
		&c.PaymentStatus,
		&enc.phases,
		&c.CurrentPhaseIndex,
		&c.RevisionsUsed,
		&enc.comments,
		&enc.previews,
		&c.CurrentPreview,
		&enc.eventLog,
		&c.ClientID,
		&enc.artistIDs,
	)
	if err != nil {
		return nil, err
	}

	if c.Phases, err = model.DecodeList[model.Phase](enc.phases); err != nil {
		return nil, fmt.Errorf("failed to decode phases: %w", err)
	}
	if c.Comments, err = model.DecodeList[model.Comment](enc.comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	if c.Previews, err = model.DecodeList[model.Preview](enc.previews); err != nil {
		return nil, fmt.Errorf("failed to decode previews: %w", err)
	}
	if c.EventLog, err = model.DecodeList[model.LogEntry](enc.eventLog); err != nil {
		return nil, fmt.Errorf("failed to decode event log: %w", err)
	}
	if c.AssignedArtistIDs, err = model.DecodeList[uuid.UUID](enc.artistIDs); err != nil {
		return nil, fmt.Errorf("failed to decode assigned artist ids: %w", err)
	}

	return &c, nil
}

// =====================================================
// COMMISSION OPERATIONS
// =====================================================

func (r *postgresCommissionRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, commission *model.Commission) error {
	enc, err := encodeCollections(commission)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO comissoes (
			id, client_name, type, price, description, created_at, deadline,
			status, payment_status, phases, current_phase_index, revisions_used,
			comments, previews, current_preview, event_log, client_id, assigned_artist_ids
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)`

	_, err = tx.Exec(ctx, query,
		commission.ID,
		commission.ClientName,
		commission.Type,
		commission.Price,
		commission.Description,
		commission.CreatedAt,
		commission.Deadline,
		commission.Status,
		commission.PaymentStatus,
		enc.phases,
		commission.CurrentPhaseIndex,
		commission.RevisionsUsed,
		enc.comments,
		enc.previews,
		commission.CurrentPreview,
		enc.eventLog,
		commission.ClientID,
		enc.artistIDs,
	)
	if err != nil {
		return fmt.Errorf("failed to insert commission: %w", err)
	}

	return nil
}

func (r *postgresCommissionRepository) GetByID(ctx context.Context, id string) (*model.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM comissoes WHERE id = $1`

	commission, err := scanCommission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get commission: %w", err)
	}

	return commission, nil
}

func (r *postgresCommissionRepository) GetForUpdateWithTx(ctx context.Context, tx pgx.Tx, id string) (*model.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM comissoes WHERE id = $1 FOR UPDATE`

	commission, err := scanCommission(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock commission: %w", err)
	}

	return commission, nil
}

func (r *postgresCommissionRepository) UpdateWithTx(ctx context.Context, tx pgx.Tx, commission *model.Commission) error {
	enc, err := encodeCollections(commission)
	if err != nil {
		return err
	}

	query := `
		UPDATE comissoes SET
			client_name = $2,
			type = $3,
			price = $4,
			description = $5,
			deadline = $6,
			status = $7,
			payment_status = $8,
			phases = $9,
			current_phase_index = $10,
			revisions_used = $11,
			comments = $12,
			previews = $13,
			current_preview = $14,
			event_log = $15
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		commission.ID,
		commission.ClientName,
		commission.Type,
		commission.Price,
		commission.Description,
		commission.Deadline,
		commission.Status,
		commission.PaymentStatus,
		enc.phases,
		commission.CurrentPhaseIndex,
		commission.RevisionsUsed,
		enc.comments,
		enc.previews,
		commission.CurrentPreview,
		enc.eventLog,
	)
	if err != nil {
		return fmt.Errorf("failed to update commission: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *postgresCommissionRepository) DeleteWithTx(ctx context.Context, tx pgx.Tx, id string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM comissoes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete commission: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// =====================================================
// LIST OPERATIONS
// =====================================================

func (r *postgresCommissionRepository) List(ctx context.Context, status string, page, limit int) ([]model.Commission, int, error) {
	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*) FROM comissoes WHERE ($1 = '' OR status = $1)`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count commissions: %w", err)
	}

	query := `SELECT ` + commissionColumns + `
		FROM comissoes
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list commissions: %w", err)
	}
	defer rows.Close()

	commissions, err := collectCommissions(rows)
	if err != nil {
		return nil, 0, err
	}

	return commissions, total, nil
}

func (r *postgresCommissionRepository) ListByClientID(ctx context.Context, clientID uuid.UUID, page, limit int) ([]model.Commission, int, error) {
	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*) FROM comissoes WHERE client_id = $1`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, clientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count commissions: %w", err)
	}

	query := `SELECT ` + commissionColumns + `
		FROM comissoes
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list client commissions: %w", err)
	}
	defer rows.Close()

	commissions, err := collectCommissions(rows)
	if err != nil {
		return nil, 0, err
	}

	return commissions, total, nil
}

func collectCommissions(rows pgx.Rows) ([]model.Commission, error) {
	var commissions []model.Commission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission row: %w", err)
		}
		commissions = append(commissions, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return commissions, nil
}
