//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/infra"
	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/commands"
	"rentease/tests/common/builder"
	"rentease/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func newBookingCommands(uow *fake.UnitOfWork, policy booking.Policy) commands.BookingCommands {
	clk := clock.NewMockClock(fixedNow)
	factory := booking.NewFactory(clk, booking.NewStandardPriceCalculator(policy), policy)
	return commands.NewBookingCommands(uow, factory, policy, clk)
}

func TestBookingCommands_CreateBooking(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()

	validRequest := func(listingID uuid.UUID) commands.CreateBookingRequest {
		return commands.CreateBookingRequest{
			ListingID: listingID,
			StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			Message:   "hello",
		}
	}

	t.Run("success enqueues booking and effects", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := builder.NewListingBuilder().BuildSnapshot()
		uow.Tx.ReadsStub.Listings[snap.ID] = snap

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		id, err := cmds.CreateBooking(ctx, renterID, validRequest(snap.ID))
		require.NoError(t, err)

		require.Len(t, uow.Tx.BookingRepo.Created, 1)
		created := uow.Tx.BookingRepo.Created[0]
		assert.Equal(t, created.ID(), id)
		assert.Equal(t, booking.StatusRequested, created.Status())
		assert.Equal(t, int64(3000), created.Quote().TotalPriceCents)

		jobs := uow.Tx.OutboxRepo.Jobs
		require.Len(t, jobs, 2)
		assert.Equal(t, commands.JobKindNotification, jobs[0].Kind)
		assert.Equal(t, string(booking.NotificationBookingRequested), jobs[0].Topic)
		assert.Equal(t, commands.JobKindEmail, jobs[1].Kind)
		assert.Equal(t, string(booking.EmailBookingRequested), jobs[1].Topic)

		var payload commands.NotificationPayload
		require.NoError(t, json.Unmarshal(jobs[0].Payload, &payload))
		assert.Equal(t, snap.OwnerID, payload.RecipientID)
		assert.Equal(t, renterID, payload.ActorID)
		assert.Equal(t, created.ID(), payload.BookingID)
	})

	t.Run("overlap query uses the blocking statuses", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := builder.NewListingBuilder().BuildSnapshot()
		uow.Tx.ReadsStub.Listings[snap.ID] = snap

		policy := booking.Policy{RequestedBlocks: true}
		cmds := newBookingCommands(uow, policy)

		_, err := cmds.CreateBooking(ctx, renterID, validRequest(snap.ID))
		require.NoError(t, err)

		require.Len(t, uow.Tx.BookingRepo.OverlapCalls, 1)
		call := uow.Tx.BookingRepo.OverlapCalls[0]
		assert.Equal(t, snap.ID, call.ListingID)
		assert.ElementsMatch(t,
			[]booking.Status{booking.StatusRequested, booking.StatusApproved, booking.StatusActive},
			call.Statuses)
		assert.Equal(t, uuid.Nil, call.ExcludeID)
	})

	t.Run("locks the listing before checking availability", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := builder.NewListingBuilder().BuildSnapshot()
		uow.Tx.ReadsStub.Listings[snap.ID] = snap

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.CreateBooking(ctx, renterID, validRequest(snap.ID))
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{snap.ID}, uow.Tx.BookingRepo.LockedListings)
	})

	t.Run("lock failure aborts the admission", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := builder.NewListingBuilder().BuildSnapshot()
		uow.Tx.ReadsStub.Listings[snap.ID] = snap
		uow.Tx.BookingRepo.LockListingErr = infra.WrapRepoErr("lock timeout", nil)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.CreateBooking(ctx, renterID, validRequest(snap.ID))
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed), "got %v", err)
		assert.Empty(t, uow.Tx.BookingRepo.OverlapCalls)
		assert.Empty(t, uow.Tx.BookingRepo.Created)
	})

	t.Run("overlapping dates are refused", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := builder.NewListingBuilder().BuildSnapshot()
		uow.Tx.ReadsStub.Listings[snap.ID] = snap
		uow.Tx.BookingRepo.OverlapResult = true

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.CreateBooking(ctx, renterID, validRequest(snap.ID))
		assert.ErrorIs(t, err, errs.ErrDatesOverlap)
		assert.Empty(t, uow.Tx.BookingRepo.Created)
		assert.Empty(t, uow.Tx.OutboxRepo.Jobs)
	})

	t.Run("end before start", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		req := validRequest(uuid.New())
		req.StartDate, req.EndDate = req.EndDate, req.StartDate

		_, err := cmds.CreateBooking(ctx, renterID, req)
		assert.True(t, errs.Is(err, errs.ErrInvalidDateRange), "got %v", err)
	})

	t.Run("unknown listing", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.CreateBooking(ctx, renterID, validRequest(uuid.New()))
		assert.ErrorIs(t, err, errs.ErrListingNotFound)
	})

	t.Run("own listing", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := builder.NewListingBuilder().WithOwner(renterID).BuildSnapshot()
		uow.Tx.ReadsStub.Listings[snap.ID] = snap

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.CreateBooking(ctx, renterID, validRequest(snap.ID))
		assert.True(t, errs.Is(err, errs.ErrSelfBooking), "got %v", err)
	})

	t.Run("unavailable listing", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		snap := builder.NewListingBuilder().Unavailable().BuildSnapshot()
		uow.Tx.ReadsStub.Listings[snap.ID] = snap

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.CreateBooking(ctx, renterID, validRequest(snap.ID))
		assert.True(t, errs.Is(err, errs.ErrListingUnavailable), "got %v", err)
	})
}

func TestBookingCommands_Transition(t *testing.T) {
	ctx := context.Background()

	seed := func(uow *fake.UnitOfWork, status booking.Status) *builder.BookingBuilder {
		b := builder.NewBookingBuilder().WithStatus(status)
		uow.Tx.ReadsStub.Bookings[b.ID] = b.BuildSnapshot()
		return b
	}

	t.Run("approve persists the transition and its effects", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusRequested)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		id, err := cmds.Transition(ctx, b.OwnerID, b.ID, booking.ActionApprove,
			commands.BookingActionRequest{Response: "Enjoy!"})
		require.NoError(t, err)
		assert.Equal(t, b.ID, id)

		require.Len(t, uow.Tx.BookingRepo.Applied, 1)
		applied := uow.Tx.BookingRepo.Applied[0]
		assert.Equal(t, booking.StatusApproved, applied.Status())
		assert.Equal(t, "Enjoy!", applied.OwnerResponse().String())
		assert.Equal(t, fixedNow, *applied.ApprovedAt())

		jobs := uow.Tx.OutboxRepo.Jobs
		require.Len(t, jobs, 2)
		assert.Equal(t, string(booking.NotificationBookingApproved), jobs[0].Topic)
		assert.Equal(t, string(booking.EmailBookingApproved), jobs[1].Topic)
	})

	t.Run("approve re-checks availability excluding itself", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusRequested)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, b.OwnerID, b.ID, booking.ActionApprove, commands.BookingActionRequest{})
		require.NoError(t, err)

		require.Len(t, uow.Tx.BookingRepo.OverlapCalls, 1)
		assert.Equal(t, b.ID, uow.Tx.BookingRepo.OverlapCalls[0].ExcludeID)
	})

	t.Run("approve locks the listing before the re-check", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusRequested)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, b.OwnerID, b.ID, booking.ActionApprove, commands.BookingActionRequest{})
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{b.ListingID}, uow.Tx.BookingRepo.LockedListings)
	})

	t.Run("approve loses to an already approved neighbour", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusRequested)
		uow.Tx.BookingRepo.OverlapResult = true

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, b.OwnerID, b.ID, booking.ActionApprove, commands.BookingActionRequest{})
		assert.ErrorIs(t, err, errs.ErrDatesOverlap)
		assert.Empty(t, uow.Tx.BookingRepo.Applied)
	})

	t.Run("non-approve actions skip the overlap check", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusRequested)
		uow.Tx.BookingRepo.OverlapResult = true

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, b.OwnerID, b.ID, booking.ActionReject, commands.BookingActionRequest{})
		require.NoError(t, err)
		assert.Empty(t, uow.Tx.BookingRepo.OverlapCalls)
		assert.Empty(t, uow.Tx.BookingRepo.LockedListings)
	})

	t.Run("concurrent transition surfaces as invalid transition", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusRequested)
		uow.Tx.BookingRepo.ApplyTransitionErr = infra.WrapRepoErr(
			"booking status changed concurrently", nil, infra.KindConflict)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, b.OwnerID, b.ID, booking.ActionReject, commands.BookingActionRequest{})
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Empty(t, uow.Tx.OutboxRepo.Jobs)
	})

	t.Run("renter cannot approve", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusRequested)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, b.RenterID, b.ID, booking.ActionApprove, commands.BookingActionRequest{})
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusRequested)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, uuid.New(), b.ID, booking.ActionCancel, commands.BookingActionRequest{})
		assert.True(t, errs.Is(err, errs.ErrForbidden), "got %v", err)
	})

	t.Run("terminal status rejects further actions", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusCompleted)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, b.OwnerID, b.ID, booking.ActionCancel, commands.BookingActionRequest{})
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition), "got %v", err)
	})

	t.Run("unknown booking", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, uuid.New(), uuid.New(), booking.ActionApprove, commands.BookingActionRequest{})
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})

	t.Run("cancel records the reason and notifies the other side", func(t *testing.T) {
		uow := fake.NewUnitOfWork()
		b := seed(uow, booking.StatusApproved)

		cmds := newBookingCommands(uow, booking.DefaultPolicy())

		_, err := cmds.Transition(ctx, b.RenterID, b.ID, booking.ActionCancel,
			commands.BookingActionRequest{Reason: "found a better deal"})
		require.NoError(t, err)

		applied := uow.Tx.BookingRepo.Applied[0]
		assert.Equal(t, booking.StatusCancelled, applied.Status())
		assert.Equal(t, "found a better deal", applied.CancellationReason().String())

		var payload commands.NotificationPayload
		require.NoError(t, json.Unmarshal(uow.Tx.OutboxRepo.Jobs[0].Payload, &payload))
		assert.Equal(t, b.OwnerID, payload.RecipientID)
	})
}
