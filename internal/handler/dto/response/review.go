package response

import (
	"time"

	"rentease/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewResponse struct {
	ID               uuid.UUID  `json:"id"`
	BookingID        uuid.UUID  `json:"bookingId"`
	ListingID        uuid.UUID  `json:"listingId"`
	ReviewerID       uuid.UUID  `json:"reviewerId"`
	ReviewerName     string     `json:"reviewerName"`
	Rating           int        `json:"rating"`
	Comment          string     `json:"comment"`
	OwnerResponse    *string    `json:"ownerResponse,omitempty"`
	OwnerRespondedAt *time.Time `json:"ownerRespondedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type ListingRatingStatsResponse struct {
	ListingID     uuid.UUID `json:"listingId"`
	TotalReviews  int64     `json:"totalReviews"`
	AverageRating float64   `json:"averageRating"`
}

type ReviewableResponse struct {
	Reviewable bool `json:"reviewable"`
}

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:               v.ID,
		BookingID:        v.BookingID,
		ListingID:        v.ListingID,
		ReviewerID:       v.ReviewerID,
		ReviewerName:     v.ReviewerName,
		Rating:           v.Rating,
		Comment:          v.Comment,
		OwnerResponse:    v.OwnerResponse,
		OwnerRespondedAt: v.OwnerRespondedAt,
		CreatedAt:        v.CreatedAt,
	}
}

func FromRatingStats(s *queries.ListingRatingStats) *ListingRatingStatsResponse {
	return &ListingRatingStatsResponse{
		ListingID:     s.ListingID,
		TotalReviews:  s.TotalReviews,
		AverageRating: s.AverageRating,
	}
}
