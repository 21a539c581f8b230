package repository

import (
	"context"
	"errors"
	"fmt"

	"restaurant-ordering/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, name, phone, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Phone, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// CreateIfAbsent is safe under concurrent first requests for the same id: the
// losing insert is a no-op and both callers read the same row.
func (r *userRepository) CreateIfAbsent(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, name, phone, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, user.ID, user.Name, user.Phone, user.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if tag.RowsAffected() == 1 {
		r.logger.Info().Str("user_id", user.ID).Msg("user created")
		stored := *user
		return &stored, nil
	}

	stored, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("user %s vanished after conflicting insert", user.ID)
	}
	return stored, nil
}
