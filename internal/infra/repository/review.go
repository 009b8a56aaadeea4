package repository

import (
	"context"

	"rentease/internal/domain/review"
	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"
	"rentease/internal/usecase/shared"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

const createReviewQuery = `
INSERT INTO reviews (
    id, booking_id, listing_id, reviewer_id, reviewee_id,
    rating, comment, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *ReviewRepository) Create(ctx context.Context, dbtx db.DBTX, rev *review.Review) error {
	_, err := dbtx.Exec(ctx, createReviewQuery,
		rev.ID(), rev.BookingID(), rev.ListingID(), rev.ReviewerID(), rev.RevieweeID(),
		rev.Rating().Value(), rev.Comment().String(),
		pgconv.TimeToPgtype(rev.CreatedAt()), pgconv.TimeToPgtype(rev.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create review", err, classifyPgErr(err))
	}
	return nil
}

const updateReviewResponseQuery = `
UPDATE reviews SET
    owner_response = $1,
    owner_responded_at = $2,
    updated_at = $3
WHERE id = $4`

func (r *ReviewRepository) UpdateResponse(ctx context.Context, dbtx db.DBTX, rev *review.Review) error {
	var response string
	if rev.OwnerResponse() != nil {
		response = *rev.OwnerResponse()
	}
	_, err := dbtx.Exec(ctx, updateReviewResponseQuery,
		pgconv.StringToPgtype(response),
		pgconv.TimePtrToPgtype(rev.OwnerRespondedAt()),
		pgconv.TimeToPgtype(rev.UpdatedAt()),
		rev.ID(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update review response", err)
	}
	return nil
}

var _ shared.ReviewRepository = (*ReviewRepository)(nil)
