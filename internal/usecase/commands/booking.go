package commands

import (
	"context"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/infra"
	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Message   string
}

type BookingActionRequest struct {
	// Response is the owner's message on approve/reject; Reason is the
	// cancellation reason. Both are optional and capped at 500 chars.
	Response string
	Reason   string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, renterID uuid.UUID, req CreateBookingRequest) (uuid.UUID, error)
	Transition(ctx context.Context, actorID, bookingID uuid.UUID, action booking.Action, req BookingActionRequest) (uuid.UUID, error)
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *booking.Factory
	policy  booking.Policy
	clock   clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, factory *booking.Factory, policy booking.Policy, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		factory: factory,
		policy:  policy,
		clock:   clk,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, renterID uuid.UUID, req CreateBookingRequest) (uuid.UUID, error) {
	dates, err := booking.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidDateRange)
	}

	message, err := booking.NewMessage(req.Message)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ListingByID(ctx, req.ListingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.ErrListingNotFound
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		entity, effects, derr := c.factory.CreateBooking(snap, renterID, dates, message)
		if derr != nil {
			return markFactoryError(derr)
		}

		// The listing lock serializes admissions: without it two
		// transactions under ReadCommitted each miss the other's
		// uncommitted booking and both pass the overlap check.
		if derr = tx.Bookings().LockListing(ctx, tx.DB(), snap.ID); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		overlap, derr := tx.Bookings().HasOverlap(ctx, tx.DB(),
			snap.ID, dates.Start(), dates.End(), c.policy.BlockingStatuses(), uuid.Nil)
		if derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}
		if overlap {
			return errs.ErrDatesOverlap
		}

		if derr = tx.Bookings().Create(ctx, tx.DB(), entity); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		if derr = enqueueEffects(ctx, tx, effects, c.clock.Now()); derr != nil {
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		bookingID = entity.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return bookingID, nil
}

func (c *bookingCommandsImpl) Transition(ctx context.Context, actorID, bookingID uuid.UUID, action booking.Action, req BookingActionRequest) (uuid.UUID, error) {
	message, err := transitionMessage(action, req)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		entity := reconstructBooking(snap, c.policy)
		expected := entity.Status()

		effects, derr := entity.Apply(action, actorID, message, c.clock.Now())
		if derr != nil {
			return markTransitionError(derr)
		}

		// Overlap freedom among blocking bookings is enforced at approval
		// time too: REQUESTED rows never block, so two requests for the
		// same dates may coexist until one of them is approved. The
		// listing lock keeps two concurrent approvals from both passing
		// the re-check before either commits.
		if action == booking.ActionApprove {
			if oerr := tx.Bookings().LockListing(ctx, tx.DB(), entity.ListingID()); oerr != nil {
				return errs.Mark(oerr, errs.ErrDatabaseOperationFailed)
			}

			overlap, oerr := tx.Bookings().HasOverlap(ctx, tx.DB(),
				entity.ListingID(), entity.Dates().Start(), entity.Dates().End(),
				c.policy.BlockingStatuses(), entity.ID())
			if oerr != nil {
				return errs.Mark(oerr, errs.ErrDatabaseOperationFailed)
			}
			if overlap {
				return errs.ErrDatesOverlap
			}
		}

		if derr = tx.Bookings().ApplyTransition(ctx, tx.DB(), entity, expected); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				// A concurrent transition won the compare-and-set.
				return errs.ErrInvalidTransition
			}
			return errs.Mark(derr, errs.ErrDatabaseOperationFailed)
		}

		return enqueueEffects(ctx, tx, effects, c.clock.Now())
	})
	if err != nil {
		return uuid.Nil, err
	}

	return bookingID, nil
}

func transitionMessage(action booking.Action, req BookingActionRequest) (booking.Message, error) {
	switch action {
	case booking.ActionCancel:
		return booking.NewMessage(req.Reason)
	case booking.ActionApprove, booking.ActionReject:
		return booking.NewMessage(req.Response)
	default:
		return booking.Message{}, nil
	}
}

func markFactoryError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrListingNotFound
	}
	switch err {
	case booking.ErrListingUnavailable:
		return errs.Mark(err, errs.ErrListingUnavailable)
	case booking.ErrOwnListing:
		return errs.Mark(err, errs.ErrSelfBooking)
	case booking.ErrInvalidDateRange:
		return errs.Mark(err, errs.ErrInvalidDateRange)
	default:
		return errs.Mark(err, errs.ErrValidation)
	}
}

func markTransitionError(err error) error {
	switch err {
	case booking.ErrNotOwner, booking.ErrNotParticipant:
		return errs.Mark(err, errs.ErrForbidden)
	case booking.ErrInvalidTransition:
		return errs.Mark(err, errs.ErrInvalidTransition)
	default:
		return errs.Mark(err, errs.ErrValidation)
	}
}

func reconstructBooking(snap *shared.BookingSnapshot, policy booking.Policy) *booking.Booking {
	dates, _ := booking.NewDateRange(snap.StartDate, snap.EndDate)
	return booking.ReconstructBooking(
		snap.ID, snap.ListingID, snap.RenterID, snap.OwnerID,
		dates,
		snap.DailyRateCents,
		booking.Quote{
			TotalDays:       snap.TotalDays,
			TotalPriceCents: snap.TotalPriceCents,
			DepositCents:    snap.DepositCents,
			ServiceFeeCents: snap.ServiceFeeCents,
		},
		snap.Status,
		policy,
		booking.ReconstructMessage(snap.RenterMessage),
		booking.ReconstructMessage(snap.OwnerResponse),
		booking.ReconstructMessage(snap.CancellationReason),
		snap.CancelledBy,
		snap.CreatedAt, snap.UpdatedAt,
		snap.ApprovedAt, snap.StartedAt, snap.CompletedAt, snap.CancelledAt,
	)
}
