package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commission-backend/internal/domains/user/model"
)

const userColumns = `
	id, username, password_hash, is_admin, is_blocked, is_banned,
	notifications_enabled, avatar_url, bio, specialties, social_links,
	portfolio_description, is_public_artist, created_at, updated_at`

// =====================================================
// POSTGRES IMPLEMENTATION
// =====================================================
type postgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new postgres user repository
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, username, password_hash, is_admin, is_blocked, is_banned,
			notifications_enabled, avatar_url, bio, specialties, social_links,
			portfolio_description, is_public_artist, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.IsAdmin,
		user.IsBlocked,
		user.IsBanned,
		user.NotificationsEnabled,
		user.AvatarURL,
		user.Bio,
		user.Specialties,
		user.SocialLinks,
		user.PortfolioDescription,
		user.IsPublicArtist,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`

	user, err := r.scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *postgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			username = $2,
			password_hash = $3,
			is_admin = $4,
			is_blocked = $5,
			is_banned = $6,
			notifications_enabled = $7,
			avatar_url = $8,
			bio = $9,
			specialties = $10,
			social_links = $11,
			portfolio_description = $12,
			is_public_artist = $13,
			updated_at = $14
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.IsAdmin,
		user.IsBlocked,
		user.IsBanned,
		user.NotificationsEnabled,
		user.AvatarURL,
		user.Bio,
		user.Specialties,
		user.SocialLinks,
		user.PortfolioDescription,
		user.IsPublicArtist,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (r *postgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) ListClients(ctx context.Context, page, limit int) ([]model.User, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE is_admin = false`,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query := `SELECT ` + userColumns + `
		FROM users
		WHERE is_admin = false
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	users, err := r.collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *postgresUserRepository) ListPublicArtists(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE is_admin = true AND is_public_artist = true
		ORDER BY username ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list public artists: %w", err)
	}
	defer rows.Close()

	return r.collectUsers(rows)
}

func (r *postgresUserRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.IsBlocked,
		&u.IsBanned,
		&u.NotificationsEnabled,
		&u.AvatarURL,
		&u.Bio,
		&u.Specialties,
		&u.SocialLinks,
		&u.PortfolioDescription,
		&u.IsPublicArtist,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresUserRepository) collectUsers(rows pgx.Rows) ([]model.User, error) {
	var users []model.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
