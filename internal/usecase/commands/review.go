package commands

import (
	"context"

	"rentease/internal/domain/booking"
	"rentease/internal/domain/review"
	"rentease/internal/infra"
	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type ReviewCommands interface {
	CreateReview(ctx context.Context, reviewerID uuid.UUID, req CreateReviewRequest) (uuid.UUID, error)
	RespondToReview(ctx context.Context, ownerID, reviewID uuid.UUID, response string) error
}

// ListingCacheInvalidator drops cached listing summaries after a write
// that changes what the summary shows.
type ListingCacheInvalidator interface {
	InvalidateListing(ctx context.Context, listingID uuid.UUID)
}

type reviewCommandsImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	invalidator ListingCacheInvalidator
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock, invalidator ListingCacheInvalidator) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk, invalidator: invalidator}
}

func (c *reviewCommandsImpl) CreateReview(ctx context.Context, reviewerID uuid.UUID, req CreateReviewRequest) (uuid.UUID, error) {
	rating, err := review.NewRating(req.Rating)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}
	comment, err := review.NewComment(req.Comment)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	var (
		reviewID  uuid.UUID
		listingID uuid.UUID
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, req.BookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		// Only the renter reviews, and only a completed rental.
		if snap.RenterID != reviewerID {
			return errs.Mark(review.ErrBookingNotEligible, errs.ErrForbidden)
		}
		if snap.Status != booking.StatusCompleted {
			return errs.Mark(review.ErrBookingNotEligible, errs.ErrValidation)
		}

		exists, derr := tx.Reads().ReviewExists(ctx, req.BookingID, reviewerID)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		if exists {
			return errs.Mark(review.ErrAlreadyReviewed, errs.ErrAlreadyReviewed)
		}

		now := c.clock.Now()
		entity := review.NewReview(snap.ID, snap.ListingID, reviewerID, snap.OwnerID, rating, comment, now)

		if derr = tx.Reviews().Create(ctx, tx.DB(), entity); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				// Unique (booking_id, reviewer_id) lost a race.
				return errs.Mark(derr, errs.ErrAlreadyReviewed)
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		effects := []booking.Effect{
			booking.NotificationEffect{
				Type:        booking.NotificationReviewReceived,
				RecipientID: snap.OwnerID,
				ActorID:     reviewerID,
				BookingID:   snap.ID,
				ListingID:   snap.ListingID,
			},
		}
		if derr = enqueueEffects(ctx, tx, effects, now); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		reviewID = entity.ID()
		listingID = snap.ListingID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	if c.invalidator != nil {
		c.invalidator.InvalidateListing(ctx, listingID)
	}

	return reviewID, nil
}

func (c *reviewCommandsImpl) RespondToReview(ctx context.Context, ownerID, reviewID uuid.UUID, response string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReviewByID(ctx, reviewID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.ErrReviewNotFound
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		rating, _ := review.NewRating(snap.Rating)
		comment, _ := review.NewComment(snap.Comment)
		entity := review.ReconstructReview(
			snap.ID, snap.BookingID, snap.ListingID, snap.ReviewerID, snap.RevieweeID,
			rating, comment,
			snap.OwnerResponse, snap.OwnerRespondedAt,
			snap.CreatedAt, snap.UpdatedAt,
		)

		if derr = entity.Respond(ownerID, response, c.clock.Now()); derr != nil {
			switch derr {
			case review.ErrNotReviewee:
				return errs.Mark(derr, errs.ErrForbidden)
			default:
				return errs.Mark(derr, errs.ErrValidation)
			}
		}

		if derr = tx.Reviews().UpdateResponse(ctx, tx.DB(), entity); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}
