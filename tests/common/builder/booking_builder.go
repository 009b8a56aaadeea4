//go:build unit

package builder

import (
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID             uuid.UUID
	ListingID      uuid.UUID
	RenterID       uuid.UUID
	OwnerID        uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	DailyRateCents int64
	DepositCents   int64
	Status         booking.Status
	Policy         booking.Policy
	RenterMessage  string
	CreatedAt      time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:             uuid.New(),
		ListingID:      uuid.New(),
		RenterID:       uuid.New(),
		OwnerID:        uuid.New(),
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		DailyRateCents: 1000,
		DepositCents:   5000,
		Status:         booking.StatusRequested,
		Policy:         booking.DefaultPolicy(),
		RenterMessage:  "Looking forward to it",
		CreatedAt:      time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithPolicy(p booking.Policy) *BookingBuilder {
	b.Policy = p
	return b
}

func (b *BookingBuilder) WithDates(start, end time.Time) *BookingBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *BookingBuilder) BuildDomain() *booking.Booking {
	dates, _ := booking.NewDateRange(b.StartDate, b.EndDate)
	quote := booking.Quote{
		TotalDays:       dates.TotalDays(),
		TotalPriceCents: b.DailyRateCents * int64(dates.TotalDays()),
		DepositCents:    b.DepositCents,
	}
	return booking.ReconstructBooking(
		b.ID, b.ListingID, b.RenterID, b.OwnerID,
		dates, b.DailyRateCents, quote,
		b.Status, b.Policy,
		booking.ReconstructMessage(b.RenterMessage),
		booking.ReconstructMessage(""),
		booking.ReconstructMessage(""),
		nil,
		b.CreatedAt, b.CreatedAt,
		nil, nil, nil, nil,
	)
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	dates, _ := booking.NewDateRange(b.StartDate, b.EndDate)
	return &shared.BookingSnapshot{
		ID:              b.ID,
		ListingID:       b.ListingID,
		RenterID:        b.RenterID,
		OwnerID:         b.OwnerID,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		TotalDays:       dates.TotalDays(),
		DailyRateCents:  b.DailyRateCents,
		TotalPriceCents: b.DailyRateCents * int64(dates.TotalDays()),
		DepositCents:    b.DepositCents,
		Status:          b.Status,
		RenterMessage:   b.RenterMessage,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}
