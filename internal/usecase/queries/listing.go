package queries

import (
	"context"

	"rentease/internal/domain/listing"
	"rentease/internal/infra"
	"rentease/internal/infra/cache"
	"rentease/internal/pkg/config"
	"rentease/internal/pkg/errs"

	"github.com/google/uuid"
)

type ListingSummary struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Title            string    `json:"title"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	DepositCents     int64     `json:"deposit_cents"`
	IsAvailable      bool      `json:"is_available"`
	TotalReviews     int64     `json:"total_reviews"`
	AverageRating    float64   `json:"average_rating"`
}

type ListingSnapshotStore interface {
	FindSnapshot(ctx context.Context, id uuid.UUID) (*listing.Snapshot, error)
}

type ListingQueries interface {
	GetSummary(ctx context.Context, id uuid.UUID) (*ListingSummary, error)
}

type listingQueriesImpl struct {
	store   ListingSnapshotStore
	reviews ReviewReadStore
	cache   *cache.SnapshotCache
	cfg     config.RedisConfig
}

func NewListingQueries(store ListingSnapshotStore, reviews ReviewReadStore, snapCache *cache.SnapshotCache, cfg config.RedisConfig) ListingQueries {
	return &listingQueriesImpl{store: store, reviews: reviews, cache: snapCache, cfg: cfg}
}

// GetSummary serves the public listing card through the read-through
// cache. Review writes invalidate the key, so a stale average never
// outlives a new review.
func (q *listingQueriesImpl) GetSummary(ctx context.Context, id uuid.UUID) (*ListingSummary, error) {
	summary, err := cache.GetOrLoad(ctx, q.cache, cache.ListingKey(id.String()), q.cfg.ListingTTL,
		func(ctx context.Context) (*ListingSummary, error) {
			return q.loadSummary(ctx, id)
		})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrListingNotFound
		}
		return nil, err
	}
	return summary, nil
}

func (q *listingQueriesImpl) loadSummary(ctx context.Context, id uuid.UUID) (*ListingSummary, error) {
	snap, err := q.store.FindSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if !snap.IsActive {
		return nil, errs.ErrListingNotFound
	}

	stats, err := q.reviews.RatingStats(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ListingSummary{
		ID:               snap.ID,
		OwnerID:          snap.OwnerID,
		Title:            snap.Title,
		PricePerDayCents: snap.PricePerDayCents,
		DepositCents:     snap.DepositCents,
		IsAvailable:      snap.IsAvailable,
		TotalReviews:     stats.TotalReviews,
		AverageRating:    stats.AverageRating,
	}, nil
}
