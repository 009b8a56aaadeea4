package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition  = errors.New("action not valid from current status")
	ErrNotOwner           = errors.New("only the listing owner can perform this action")
	ErrNotParticipant     = errors.New("user is not a participant of this booking")
	ErrOwnListing         = errors.New("cannot book your own listing")
	ErrListingUnavailable = errors.New("listing is not available for booking")
)

// Booking is the central aggregate. It exclusively owns the status field
// and the per-transition timestamps; every mutation goes through a
// transition method that validates the acting party and the current
// state, stamps the transition and returns the effects to dispatch.
type Booking struct {
	id        uuid.UUID
	listingID uuid.UUID
	renterID  uuid.UUID
	ownerID   uuid.UUID

	dates DateRange
	quote Quote
	// dailyRateCents is locked at request time.
	dailyRateCents int64

	status Status
	policy Policy

	renterMessage      Message
	ownerResponse      Message
	cancellationReason Message
	cancelledBy        *uuid.UUID

	createdAt   time.Time
	updatedAt   time.Time
	approvedAt  *time.Time
	startedAt   *time.Time
	completedAt *time.Time
	cancelledAt *time.Time
}

func ReconstructBooking(
	id, listingID, renterID, ownerID uuid.UUID,
	dates DateRange,
	dailyRateCents int64,
	quote Quote,
	status Status,
	policy Policy,
	renterMessage, ownerResponse, cancellationReason Message,
	cancelledBy *uuid.UUID,
	createdAt, updatedAt time.Time,
	approvedAt, startedAt, completedAt, cancelledAt *time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		listingID:          listingID,
		renterID:           renterID,
		ownerID:            ownerID,
		dates:              dates,
		dailyRateCents:     dailyRateCents,
		quote:              quote,
		status:             status,
		policy:             policy,
		renterMessage:      renterMessage,
		ownerResponse:      ownerResponse,
		cancellationReason: cancellationReason,
		cancelledBy:        cancelledBy,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		approvedAt:         approvedAt,
		startedAt:          startedAt,
		completedAt:        completedAt,
		cancelledAt:        cancelledAt,
	}
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) ListingID() uuid.UUID       { return b.listingID }
func (b *Booking) RenterID() uuid.UUID        { return b.renterID }
func (b *Booking) OwnerID() uuid.UUID         { return b.ownerID }
func (b *Booking) Dates() DateRange           { return b.dates }
func (b *Booking) DailyRateCents() int64      { return b.dailyRateCents }
func (b *Booking) Quote() Quote               { return b.quote }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) RenterMessage() Message     { return b.renterMessage }
func (b *Booking) OwnerResponse() Message     { return b.ownerResponse }
func (b *Booking) CancellationReason() Message { return b.cancellationReason }
func (b *Booking) CancelledBy() *uuid.UUID    { return b.cancelledBy }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
func (b *Booking) ApprovedAt() *time.Time     { return b.approvedAt }
func (b *Booking) StartedAt() *time.Time      { return b.startedAt }
func (b *Booking) CompletedAt() *time.Time    { return b.completedAt }
func (b *Booking) CancelledAt() *time.Time    { return b.cancelledAt }

func (b *Booking) IsOwner(userID uuid.UUID) bool {
	return b.ownerID == userID
}

func (b *Booking) IsRenter(userID uuid.UUID) bool {
	return b.renterID == userID
}

func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.IsOwner(userID) || b.IsRenter(userID)
}

// Apply dispatches a named lifecycle action. The actor's role is taken
// from the booking's stored owner/renter ids, never from the caller.
func (b *Booking) Apply(action Action, actorID uuid.UUID, message Message, now time.Time) ([]Effect, error) {
	switch action {
	case ActionApprove:
		return b.Approve(actorID, message, now)
	case ActionReject:
		return b.Reject(actorID, message, now)
	case ActionCancel:
		return b.Cancel(actorID, message, now)
	case ActionStart:
		return b.Start(actorID, now)
	case ActionComplete:
		return b.Complete(actorID, now)
	default:
		return nil, ErrInvalidTransition
	}
}

func (b *Booking) Approve(actorID uuid.UUID, response Message, now time.Time) ([]Effect, error) {
	if !b.IsOwner(actorID) {
		return nil, ErrNotOwner
	}
	if b.status != StatusRequested {
		return nil, ErrInvalidTransition
	}

	b.status = StatusApproved
	b.ownerResponse = response
	b.approvedAt = &now
	b.updatedAt = now

	return []Effect{
		NotificationEffect{
			Type:        NotificationBookingApproved,
			RecipientID: b.renterID,
			ActorID:     b.ownerID,
			BookingID:   b.id,
			ListingID:   b.listingID,
		},
		EmailEffect{
			Template:    EmailBookingApproved,
			RecipientID: b.renterID,
			BookingID:   b.id,
		},
	}, nil
}

func (b *Booking) Reject(actorID uuid.UUID, response Message, now time.Time) ([]Effect, error) {
	if !b.IsOwner(actorID) {
		return nil, ErrNotOwner
	}
	if b.status != StatusRequested {
		return nil, ErrInvalidTransition
	}

	b.status = StatusRejected
	b.ownerResponse = response
	b.updatedAt = now

	return []Effect{
		NotificationEffect{
			Type:        NotificationBookingRejected,
			RecipientID: b.renterID,
			ActorID:     b.ownerID,
			BookingID:   b.id,
			ListingID:   b.listingID,
		},
		EmailEffect{
			Template:    EmailBookingDeclined,
			RecipientID: b.renterID,
			BookingID:   b.id,
		},
	}, nil
}

func (b *Booking) Cancel(actorID uuid.UUID, reason Message, now time.Time) ([]Effect, error) {
	if !b.IsParticipant(actorID) {
		return nil, ErrNotParticipant
	}
	if !b.policy.isCancellable(b.status) {
		return nil, ErrInvalidTransition
	}

	actor := actorID
	b.status = StatusCancelled
	b.cancellationReason = reason
	b.cancelledBy = &actor
	b.cancelledAt = &now
	b.updatedAt = now

	// The other participant is notified, never the canceller.
	recipient := b.ownerID
	if actorID == b.ownerID {
		recipient = b.renterID
	}

	return []Effect{
		NotificationEffect{
			Type:        NotificationBookingCancelled,
			RecipientID: recipient,
			ActorID:     actorID,
			BookingID:   b.id,
			ListingID:   b.listingID,
		},
		EmailEffect{
			Template:    EmailBookingCancelled,
			RecipientID: recipient,
			BookingID:   b.id,
		},
	}, nil
}

func (b *Booking) Start(actorID uuid.UUID, now time.Time) ([]Effect, error) {
	if !b.IsOwner(actorID) {
		return nil, ErrNotOwner
	}
	if !b.policy.isStartable(b.status) {
		return nil, ErrInvalidTransition
	}

	b.status = StatusActive
	b.startedAt = &now
	b.updatedAt = now

	return []Effect{
		NotificationEffect{
			Type:        NotificationBookingStarted,
			RecipientID: b.renterID,
			ActorID:     b.ownerID,
			BookingID:   b.id,
			ListingID:   b.listingID,
		},
	}, nil
}

func (b *Booking) Complete(actorID uuid.UUID, now time.Time) ([]Effect, error) {
	if !b.IsOwner(actorID) {
		return nil, ErrNotOwner
	}
	if b.status != StatusActive {
		return nil, ErrInvalidTransition
	}

	b.status = StatusCompleted
	b.completedAt = &now
	b.updatedAt = now

	return []Effect{
		NotificationEffect{
			Type:        NotificationBookingCompleted,
			RecipientID: b.renterID,
			ActorID:     b.ownerID,
			BookingID:   b.id,
			ListingID:   b.listingID,
		},
		// Review prompt.
		EmailEffect{
			Template:    EmailBookingCompleted,
			RecipientID: b.renterID,
			BookingID:   b.id,
		},
	}, nil
}
