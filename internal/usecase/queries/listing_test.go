//go:build unit

package queries_test

import (
	"context"
	"testing"

	"rentease/internal/domain/listing"
	"rentease/internal/infra"
	"rentease/internal/pkg/config"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/queries"
	"rentease/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubListingStore struct {
	snap *listing.Snapshot
	err  error
}

func (s *stubListingStore) FindSnapshot(_ context.Context, _ uuid.UUID) (*listing.Snapshot, error) {
	return s.snap, s.err
}

type stubReviewStore struct {
	stats *queries.ListingRatingStats
	err   error
}

func (s *stubReviewStore) FindView(_ context.Context, _ uuid.UUID) (*queries.ReviewView, error) {
	return nil, nil
}

func (s *stubReviewStore) ListByListing(_ context.Context, _ uuid.UUID, _, _ int32) ([]*queries.ReviewView, error) {
	return nil, nil
}

func (s *stubReviewStore) CountByListing(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubReviewStore) RatingStats(_ context.Context, listingID uuid.UUID) (*queries.ListingRatingStats, error) {
	if s.stats != nil {
		return s.stats, s.err
	}
	return &queries.ListingRatingStats{ListingID: listingID}, s.err
}

func TestListingQueries_GetSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("merges the snapshot with rating stats", func(t *testing.T) {
		snap := builder.NewListingBuilder().BuildSnapshot()
		reviews := &stubReviewStore{stats: &queries.ListingRatingStats{
			ListingID:     snap.ID,
			TotalReviews:  12,
			AverageRating: 4.5,
		}}

		// nil cache falls straight through to the loader
		q := queries.NewListingQueries(&stubListingStore{snap: snap}, reviews, nil, config.RedisConfig{})

		summary, err := q.GetSummary(ctx, snap.ID)
		require.NoError(t, err)

		assert.Equal(t, snap.ID, summary.ID)
		assert.Equal(t, snap.Title, summary.Title)
		assert.Equal(t, snap.PricePerDayCents, summary.PricePerDayCents)
		assert.Equal(t, int64(12), summary.TotalReviews)
		assert.Equal(t, 4.5, summary.AverageRating)
	})

	t.Run("inactive listing reads as missing", func(t *testing.T) {
		snap := builder.NewListingBuilder().BuildSnapshot()
		snap.IsActive = false

		q := queries.NewListingQueries(&stubListingStore{snap: snap}, &stubReviewStore{}, nil, config.RedisConfig{})

		_, err := q.GetSummary(ctx, snap.ID)
		assert.ErrorIs(t, err, errs.ErrListingNotFound)
	})

	t.Run("unknown listing", func(t *testing.T) {
		store := &stubListingStore{err: infra.WrapRepoErr("no rows", nil, infra.KindNotFound)}
		q := queries.NewListingQueries(store, &stubReviewStore{}, nil, config.RedisConfig{})

		_, err := q.GetSummary(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrListingNotFound)
	})
}
