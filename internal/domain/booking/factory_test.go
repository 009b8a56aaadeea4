//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/pkg/clock"
	"rentease/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(policy booking.Policy, now time.Time) *booking.Factory {
	return booking.NewFactory(
		clock.NewMockClock(now),
		booking.NewStandardPriceCalculator(policy),
		policy,
	)
}

func TestFactory_CreateBooking(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	renter := builder.NewBookingBuilder().RenterID
	dates := mustRange(t, date(2024, 6, 1), date(2024, 6, 3))

	t.Run("creates a REQUESTED booking with a locked quote", func(t *testing.T) {
		snap := builder.NewListingBuilder().BuildSnapshot()
		f := newFactory(booking.DefaultPolicy(), now)

		b, effects, err := f.CreateBooking(snap, renter, dates, booking.Message{})
		require.NoError(t, err)

		assert.Equal(t, booking.StatusRequested, b.Status())
		assert.Equal(t, snap.ID, b.ListingID())
		assert.Equal(t, snap.OwnerID, b.OwnerID())
		assert.Equal(t, renter, b.RenterID())
		assert.Equal(t, snap.PricePerDayCents, b.DailyRateCents())
		assert.Equal(t, booking.Quote{
			TotalDays:       3,
			TotalPriceCents: 3000,
			DepositCents:    5000,
		}, b.Quote())
		assert.Equal(t, now, b.CreatedAt())

		require.Len(t, effects, 2)
		notif := effects[0].(booking.NotificationEffect)
		assert.Equal(t, booking.NotificationBookingRequested, notif.Type)
		assert.Equal(t, snap.OwnerID, notif.RecipientID)
		assert.Equal(t, renter, notif.ActorID)

		email := effects[1].(booking.EmailEffect)
		assert.Equal(t, booking.EmailBookingRequested, email.Template)
		assert.Equal(t, snap.OwnerID, email.RecipientID)
	})

	t.Run("service fee is locked at request time", func(t *testing.T) {
		snap := builder.NewListingBuilder().BuildSnapshot()
		f := newFactory(booking.Policy{PaymentEnabled: true, ServiceFeeBps: 1500}, now)

		b, _, err := f.CreateBooking(snap, renter, dates, booking.Message{})
		require.NoError(t, err)
		assert.Equal(t, int64(450), b.Quote().ServiceFeeCents)
	})

	t.Run("own listing is rejected", func(t *testing.T) {
		snap := builder.NewListingBuilder().BuildSnapshot()
		f := newFactory(booking.DefaultPolicy(), now)

		_, _, err := f.CreateBooking(snap, snap.OwnerID, dates, booking.Message{})
		assert.ErrorIs(t, err, booking.ErrOwnListing)
	})

	t.Run("unavailable listing is rejected", func(t *testing.T) {
		snap := builder.NewListingBuilder().Unavailable().BuildSnapshot()
		f := newFactory(booking.DefaultPolicy(), now)

		_, _, err := f.CreateBooking(snap, renter, dates, booking.Message{})
		assert.ErrorIs(t, err, booking.ErrListingUnavailable)
	})

	t.Run("inactive listing is rejected", func(t *testing.T) {
		snap := builder.NewListingBuilder().BuildSnapshot()
		snap.IsActive = false
		f := newFactory(booking.DefaultPolicy(), now)

		_, _, err := f.CreateBooking(snap, renter, dates, booking.Message{})
		assert.ErrorIs(t, err, booking.ErrListingUnavailable)
	})
}
