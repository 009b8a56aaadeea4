package queries

import (
	"context"

	"rentease/internal/infra"
	"rentease/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReviewReadStore interface {
	FindView(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]*ReviewView, error)
	CountByListing(ctx context.Context, listingID uuid.UUID) (int64, error)
	RatingStats(ctx context.Context, listingID uuid.UUID) (*ListingRatingStats, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByListing(ctx context.Context, listingID uuid.UUID, page, size int) (Page[*ReviewView], error)
	GetListingRatingStats(ctx context.Context, listingID uuid.UUID) (*ListingRatingStats, error)
}

type reviewQueriesImpl struct {
	store ReviewReadStore
}

func NewReviewQueries(store ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{store: store}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	view, err := q.store.FindView(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrReviewNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *reviewQueriesImpl) ListByListing(ctx context.Context, listingID uuid.UUID, page, size int) (Page[*ReviewView], error) {
	page, size = NormalizePage(page, size)

	items, err := q.store.ListByListing(ctx, listingID, int32(size), int32(page*size))
	if err != nil {
		return Page[*ReviewView]{}, err
	}
	total, err := q.store.CountByListing(ctx, listingID)
	if err != nil {
		return Page[*ReviewView]{}, err
	}
	return NewPage(items, page, size, total), nil
}

func (q *reviewQueriesImpl) GetListingRatingStats(ctx context.Context, listingID uuid.UUID) (*ListingRatingStats, error) {
	return q.store.RatingStats(ctx, listingID)
}
