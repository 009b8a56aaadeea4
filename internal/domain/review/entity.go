package review

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrBookingNotEligible = errors.New("booking is not eligible for review")
	ErrAlreadyReviewed    = errors.New("booking already reviewed by this user")
	ErrAlreadyResponded   = errors.New("owner has already responded to this review")
	ErrNotReviewee        = errors.New("only the reviewed owner can respond")
	ErrResponseTooLong    = errors.New("response exceeds maximum length")
)

const MaxResponseLength = 500

// Review is keyed uniquely by (bookingID, reviewerID); the renter
// reviews the owner after the booking completes.
type Review struct {
	id              uuid.UUID
	bookingID       uuid.UUID
	listingID       uuid.UUID
	reviewerID      uuid.UUID
	revieweeID      uuid.UUID
	rating          Rating
	comment         Comment
	ownerResponse   *string
	ownerRespondedAt *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

func NewReview(bookingID, listingID, reviewerID, revieweeID uuid.UUID, rating Rating, comment Comment, now time.Time) *Review {
	return &Review{
		id:         uuid.New(),
		bookingID:  bookingID,
		listingID:  listingID,
		reviewerID: reviewerID,
		revieweeID: revieweeID,
		rating:     rating,
		comment:    comment,
		createdAt:  now,
		updatedAt:  now,
	}
}

func ReconstructReview(
	id, bookingID, listingID, reviewerID, revieweeID uuid.UUID,
	rating Rating,
	comment Comment,
	ownerResponse *string,
	ownerRespondedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Review {
	return &Review{
		id:               id,
		bookingID:        bookingID,
		listingID:        listingID,
		reviewerID:       reviewerID,
		revieweeID:       revieweeID,
		rating:           rating,
		comment:          comment,
		ownerResponse:    ownerResponse,
		ownerRespondedAt: ownerRespondedAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (r *Review) ID() uuid.UUID               { return r.id }
func (r *Review) BookingID() uuid.UUID        { return r.bookingID }
func (r *Review) ListingID() uuid.UUID        { return r.listingID }
func (r *Review) ReviewerID() uuid.UUID       { return r.reviewerID }
func (r *Review) RevieweeID() uuid.UUID       { return r.revieweeID }
func (r *Review) Rating() Rating              { return r.rating }
func (r *Review) Comment() Comment            { return r.comment }
func (r *Review) OwnerResponse() *string      { return r.ownerResponse }
func (r *Review) OwnerRespondedAt() *time.Time { return r.ownerRespondedAt }
func (r *Review) CreatedAt() time.Time        { return r.createdAt }
func (r *Review) UpdatedAt() time.Time        { return r.updatedAt }

// Respond records the reviewed owner's one-shot reply.
func (r *Review) Respond(actorID uuid.UUID, response string, now time.Time) error {
	if r.revieweeID != actorID {
		return ErrNotReviewee
	}
	if r.ownerResponse != nil {
		return ErrAlreadyResponded
	}
	trimmed := strings.TrimSpace(response)
	if len(trimmed) > MaxResponseLength {
		return ErrResponseTooLong
	}
	r.ownerResponse = &trimmed
	r.ownerRespondedAt = &now
	r.updatedAt = now
	return nil
}
