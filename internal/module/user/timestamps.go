package user

import (
	"context"
	"time"

	"github.com/sabasm/user/internal/domain"
)

// timestampedRepository stamps UpdatedAt on every write before delegating.
type timestampedRepository struct {
	next domain.UserRepository
	now  func() time.Time
}

// TimestampOption configures WithTimestamps.
type TimestampOption func(*timestampedRepository)

// WithClock overrides the time source used for stamping.
func WithClock(now func() time.Time) TimestampOption {
	return func(r *timestampedRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithTimestamps wraps repo so that Create refreshes the entity's UpdatedAt and
// Update carries a fresh UpdatedAt to the backend.
func WithTimestamps(repo domain.UserRepository, opts ...TimestampOption) domain.UserRepository {
	r := &timestampedRepository{next: repo, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *timestampedRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.UpdatedAt = domain.NextTimestamp(user.UpdatedAt, r.now())
	return r.next.Create(ctx, user)
}

func (r *timestampedRepository) Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error) {
	now := r.now()
	if update.UpdatedAt != nil {
		now = domain.NextTimestamp(*update.UpdatedAt, now)
	}
	update.UpdatedAt = &now
	return r.next.Update(ctx, id, update)
}

func (r *timestampedRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.next.FindByID(ctx, id)
}

func (r *timestampedRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.next.Delete(ctx, id)
}

func (r *timestampedRepository) FindAll(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	return r.next.FindAll(ctx, filter)
}
