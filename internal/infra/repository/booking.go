package repository

import (
	"context"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingQuery = `
INSERT INTO bookings (
    id, listing_id, renter_id, owner_id,
    start_date, end_date, total_days,
    daily_rate_cents, total_price_cents, deposit_cents, service_fee_cents,
    status, renter_message,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7,
    $8, $9, $10, $11,
    $12, $13,
    $14, $15
)`

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	quote := b.Quote()
	_, err := dbtx.Exec(ctx, createBookingQuery,
		b.ID(), b.ListingID(), b.RenterID(), b.OwnerID(),
		pgconv.DateToPgtype(b.Dates().Start()), pgconv.DateToPgtype(b.Dates().End()), quote.TotalDays,
		b.DailyRateCents(), quote.TotalPriceCents, quote.DepositCents, quote.ServiceFeeCents,
		string(b.Status()), b.RenterMessage().String(),
		pgconv.TimeToPgtype(b.CreatedAt()), pgconv.TimeToPgtype(b.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err, classifyPgErr(err))
	}
	return nil
}

const applyTransitionQuery = `
UPDATE bookings SET
    status = $1,
    owner_response = $2,
    cancellation_reason = $3,
    cancelled_by = $4,
    approved_at = $5,
    started_at = $6,
    completed_at = $7,
    cancelled_at = $8,
    updated_at = $9
WHERE id = $10 AND status = $11`

// ApplyTransition is the compare-and-set write for the state machine.
// The WHERE clause pins the status observed when the aggregate was
// loaded; zero rows updated means a concurrent transition won.
func (r *BookingRepository) ApplyTransition(ctx context.Context, dbtx db.DBTX, b *booking.Booking, expected booking.Status) error {
	tag, err := dbtx.Exec(ctx, applyTransitionQuery,
		string(b.Status()),
		b.OwnerResponse().String(),
		b.CancellationReason().String(),
		pgconv.UUIDPtrToPgtype(b.CancelledBy()),
		pgconv.TimePtrToPgtype(b.ApprovedAt()),
		pgconv.TimePtrToPgtype(b.StartedAt()),
		pgconv.TimePtrToPgtype(b.CompletedAt()),
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		pgconv.TimeToPgtype(b.UpdatedAt()),
		b.ID(), string(expected),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to apply booking transition", err, classifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

const hasOverlapQuery = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE listing_id = $1
      AND start_date <= $2
      AND end_date >= $3
      AND status = ANY($4)
      AND id <> $5
)`

// HasOverlap applies the inclusive-range rule: two bookings overlap
// when each starts no later than the other ends. A shared boundary day
// counts as a conflict.
func (r *BookingRepository) HasOverlap(ctx context.Context, dbtx db.DBTX, listingID uuid.UUID, start, end time.Time, statuses []booking.Status, excludeID uuid.UUID) (bool, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	var exists bool
	err := dbtx.QueryRow(ctx, hasOverlapQuery,
		listingID, pgconv.DateToPgtype(end), pgconv.DateToPgtype(start), names, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

const lockListingQuery = `SELECT id FROM listings WHERE id = $1 FOR UPDATE`

func (r *BookingRepository) LockListing(ctx context.Context, dbtx db.DBTX, listingID uuid.UUID) error {
	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, lockListingQuery, listingID).Scan(&id); err != nil {
		return infra.WrapRepoErr("failed to lock listing", err)
	}
	return nil
}

var _ shared.BookingRepository = (*BookingRepository)(nil)
