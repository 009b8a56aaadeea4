//go:build unit

package builder

import (
	"time"

	"rentease/internal/domain/review"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	ListingID  uuid.UUID
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		ID:         uuid.New(),
		BookingID:  uuid.New(),
		ListingID:  uuid.New(),
		ReviewerID: uuid.New(),
		RevieweeID: uuid.New(),
		Rating:     5,
		Comment:    "Great item, smooth handover",
		CreatedAt:  time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	}
}

func (r *ReviewBuilder) BuildDomain() (*review.Review, error) {
	rating, err := review.NewRating(r.Rating)
	if err != nil {
		return nil, err
	}
	comment, err := review.NewComment(r.Comment)
	if err != nil {
		return nil, err
	}
	return review.NewReview(r.BookingID, r.ListingID, r.ReviewerID, r.RevieweeID, rating, comment, r.CreatedAt), nil
}

func (r *ReviewBuilder) BuildSnapshot() *shared.ReviewSnapshot {
	return &shared.ReviewSnapshot{
		ID:         r.ID,
		BookingID:  r.BookingID,
		ListingID:  r.ListingID,
		ReviewerID: r.ReviewerID,
		RevieweeID: r.RevieweeID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.CreatedAt,
	}
}
