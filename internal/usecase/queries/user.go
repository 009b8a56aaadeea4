package queries

import (
	"context"

	"rentease/internal/infra"
	"rentease/internal/infra/cache"
	"rentease/internal/pkg/config"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type UserSnapshotStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error)
}

type UserQueries interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*UserProfile, error)
}

type userQueriesImpl struct {
	store UserSnapshotStore
	cache *cache.SnapshotCache
	cfg   config.RedisConfig
}

func NewUserQueries(store UserSnapshotStore, snapCache *cache.SnapshotCache, cfg config.RedisConfig) UserQueries {
	return &userQueriesImpl{store: store, cache: snapCache, cfg: cfg}
}

func (q *userQueriesImpl) GetProfile(ctx context.Context, id uuid.UUID) (*UserProfile, error) {
	profile, err := cache.GetOrLoad(ctx, q.cache, cache.UserKey(id.String()), q.cfg.UserTTL,
		func(ctx context.Context) (*UserProfile, error) {
			snap, err := q.store.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			return &UserProfile{
				ID:        snap.ID,
				Email:     snap.Email,
				FirstName: snap.FirstName,
				LastName:  snap.LastName,
			}, nil
		})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}
