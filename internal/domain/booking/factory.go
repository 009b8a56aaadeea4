package booking

import (
	"rentease/internal/domain/listing"
	"rentease/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
	Policy          Policy
}

func NewFactory(clk clock.Clock, calc PriceCalculator, policy Policy) *Factory {
	return &Factory{
		Clock:           clk,
		PriceCalculator: calc,
		Policy:          policy,
	}
}

// CreateBooking builds a new REQUESTED booking against a listing
// snapshot, locking the price breakdown at request time. The overlap
// check runs in the same transaction as the insert, outside the factory.
func (f *Factory) CreateBooking(
	snap *listing.Snapshot,
	renterID uuid.UUID,
	dates DateRange,
	message Message,
) (*Booking, []Effect, error) {
	if !snap.IsBookable() {
		return nil, nil, ErrListingUnavailable
	}
	if snap.OwnerID == renterID {
		return nil, nil, ErrOwnListing
	}

	quote, err := f.PriceCalculator.Quote(snap.PricePerDayCents, dates, snap.DepositCents)
	if err != nil {
		return nil, nil, err
	}

	now := f.Clock.Now()
	b := &Booking{
		id:             uuid.New(),
		listingID:      snap.ID,
		renterID:       renterID,
		ownerID:        snap.OwnerID,
		dates:          dates,
		dailyRateCents: snap.PricePerDayCents,
		quote:          quote,
		status:         StatusRequested,
		policy:         f.Policy,
		renterMessage:  message,
		createdAt:      now,
		updatedAt:      now,
	}

	effects := []Effect{
		NotificationEffect{
			Type:        NotificationBookingRequested,
			RecipientID: b.ownerID,
			ActorID:     renterID,
			BookingID:   b.id,
			ListingID:   b.listingID,
		},
		EmailEffect{
			Template:    EmailBookingRequested,
			RecipientID: b.ownerID,
			BookingID:   b.id,
		},
	}

	return b, effects, nil
}
