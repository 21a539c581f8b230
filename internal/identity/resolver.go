package identity

import (
	"context"
	"time"

	"restaurant-ordering/internal/model"
	"restaurant-ordering/internal/repository"

	"github.com/rs/zerolog"
)

// Resolver maps a verified principal to its local user record, creating the
// record on first sight.
type Resolver struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(users repository.UserRepository, logger zerolog.Logger) *Resolver {
	return &Resolver{
		users:  users,
		logger: logger.With().Str("component", "identity-resolver").Logger(),
	}
}

// Resolve returns the local user for p. Profile data is copied from the
// principal only when the record is created.
func (r *Resolver) Resolve(ctx context.Context, p *model.Principal) (*model.User, error) {
	if p == nil || p.ID == "" {
		return nil, model.ErrUnauthenticated
	}

	user, err := r.users.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = r.users.CreateIfAbsent(ctx, &model.User{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	})
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", p.ID).Msg("failed to create local user")
		return nil, err
	}

	return user, nil
}
