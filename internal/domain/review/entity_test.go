//go:build unit

package review_test

import (
	"strings"
	"testing"
	"time"

	"rentease/internal/domain/review"
	"rentease/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewReviewBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.BookingID, actual.BookingID())
		assert.Equal(t, b.ReviewerID, actual.ReviewerID())
		assert.Equal(t, b.RevieweeID, actual.RevieweeID())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.Nil(t, actual.OwnerResponse())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("rating validation", func(t *testing.T) {
		cases := []struct {
			rating int
			errIs  error
		}{
			{0, review.ErrInvalidRating},
			{1, nil},
			{5, nil},
			{6, review.ErrInvalidRating},
			{-1, review.ErrInvalidRating},
		}
		for _, c := range cases {
			_, err := review.NewRating(c.rating)
			if c.errIs != nil {
				assert.ErrorIs(t, err, c.errIs)
			} else {
				assert.NoError(t, err)
			}
		}
	})

	t.Run("comment validation", func(t *testing.T) {
		_, err := review.NewComment("")
		assert.ErrorIs(t, err, review.ErrEmptyComment)

		_, err = review.NewComment("   ")
		assert.ErrorIs(t, err, review.ErrEmptyComment)

		_, err = review.NewComment(strings.Repeat("a", review.MaxCommentLength))
		assert.NoError(t, err)

		_, err = review.NewComment(strings.Repeat("a", review.MaxCommentLength+1))
		assert.ErrorIs(t, err, review.ErrCommentTooLong)
	})

	t.Run("comment trimming", func(t *testing.T) {
		c, err := review.NewComment("  tidy  ")
		require.NoError(t, err)
		assert.Equal(t, "tidy", c.String())
	})
}

func TestReview_Respond(t *testing.T) {
	respondAt := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)

	t.Run("reviewee responds once", func(t *testing.T) {
		b := builder.NewReviewBuilder()
		r, err := b.BuildDomain()
		require.NoError(t, err)

		err = r.Respond(b.RevieweeID, "Thanks for renting!", respondAt)
		require.NoError(t, err)

		require.NotNil(t, r.OwnerResponse())
		assert.Equal(t, "Thanks for renting!", *r.OwnerResponse())
		assert.Equal(t, respondAt, *r.OwnerRespondedAt())
		assert.Equal(t, respondAt, r.UpdatedAt())
	})

	t.Run("second response is rejected", func(t *testing.T) {
		b := builder.NewReviewBuilder()
		r, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, r.Respond(b.RevieweeID, "first", respondAt))
		err = r.Respond(b.RevieweeID, "second", respondAt.Add(time.Hour))
		assert.ErrorIs(t, err, review.ErrAlreadyResponded)
		assert.Equal(t, "first", *r.OwnerResponse())
	})

	t.Run("only the reviewee may respond", func(t *testing.T) {
		b := builder.NewReviewBuilder()
		r, err := b.BuildDomain()
		require.NoError(t, err)

		err = r.Respond(b.ReviewerID, "nope", respondAt)
		assert.ErrorIs(t, err, review.ErrNotReviewee)
		assert.Nil(t, r.OwnerResponse())
	})

	t.Run("over-long response is rejected", func(t *testing.T) {
		b := builder.NewReviewBuilder()
		r, err := b.BuildDomain()
		require.NoError(t, err)

		err = r.Respond(b.RevieweeID, strings.Repeat("a", review.MaxResponseLength+1), respondAt)
		assert.ErrorIs(t, err, review.ErrResponseTooLong)
	})

	t.Run("response is trimmed", func(t *testing.T) {
		b := builder.NewReviewBuilder()
		r, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, r.Respond(b.RevieweeID, "  spaced  ", respondAt))
		assert.Equal(t, "spaced", *r.OwnerResponse())
	})
}
