package readstore

import (
	"context"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"
	"rentease/internal/usecase/queries"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingSnapshotQuery = `
SELECT id, listing_id, renter_id, owner_id,
       start_date, end_date, total_days,
       daily_rate_cents, total_price_cents, deposit_cents, service_fee_cents,
       status, renter_message, owner_response, cancellation_reason, cancelled_by,
       created_at, updated_at, approved_at, started_at, completed_at, cancelled_at
FROM bookings
WHERE id = $1`

// FindSnapshot loads the full persisted state for aggregate
// reconstruction on the command side.
func (r *BookingReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap                                           shared.BookingSnapshot
		startDate, endDate                             pgtype.Date
		status                                         string
		renterMessage, ownerResponse, cancelReason     pgtype.Text
		cancelledBy                                    pgtype.UUID
		createdAt, updatedAt                           pgtype.Timestamptz
		approvedAt, startedAt, completedAt, cancelledAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, bookingSnapshotQuery, id).Scan(
		&snap.ID, &snap.ListingID, &snap.RenterID, &snap.OwnerID,
		&startDate, &endDate, &snap.TotalDays,
		&snap.DailyRateCents, &snap.TotalPriceCents, &snap.DepositCents, &snap.ServiceFeeCents,
		&status, &renterMessage, &ownerResponse, &cancelReason, &cancelledBy,
		&createdAt, &updatedAt, &approvedAt, &startedAt, &completedAt, &cancelledAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	snap.StartDate = pgconv.DateFromPgtype(startDate)
	snap.EndDate = pgconv.DateFromPgtype(endDate)
	snap.Status = booking.Status(status)
	snap.RenterMessage = textOrEmpty(renterMessage)
	snap.OwnerResponse = textOrEmpty(ownerResponse)
	snap.CancellationReason = textOrEmpty(cancelReason)
	snap.CancelledBy = pgconv.UUIDPtrFromPgtype(cancelledBy)
	snap.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	snap.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	snap.ApprovedAt = pgconv.TimePtrFromPgtype(approvedAt)
	snap.StartedAt = pgconv.TimePtrFromPgtype(startedAt)
	snap.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	snap.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &snap, nil
}

const bookingViewQuery = `
SELECT b.id, b.listing_id, l.title,
       b.renter_id, ru.first_name || ' ' || ru.last_name,
       b.owner_id, ou.first_name || ' ' || ou.last_name,
       b.start_date, b.end_date, b.total_days,
       b.daily_rate_cents, b.total_price_cents, b.deposit_cents, b.service_fee_cents,
       b.status, b.renter_message, b.owner_response, b.cancellation_reason, b.cancelled_by,
       b.created_at, b.approved_at, b.started_at, b.completed_at, b.cancelled_at
FROM bookings b
JOIN listings l ON l.id = b.listing_id
JOIN users ru ON ru.id = b.renter_id
JOIN users ou ON ou.id = b.owner_id
WHERE b.id = $1`

func (r *BookingReadStore) FindView(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		v                                              queries.BookingView
		startDate, endDate                             pgtype.Date
		renterMessage, ownerResponse, cancelReason     pgtype.Text
		cancelledBy                                    pgtype.UUID
		createdAt                                      pgtype.Timestamptz
		approvedAt, startedAt, completedAt, cancelledAt pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx, bookingViewQuery, id).Scan(
		&v.ID, &v.ListingID, &v.ListingTitle,
		&v.RenterID, &v.RenterName,
		&v.OwnerID, &v.OwnerName,
		&startDate, &endDate, &v.TotalDays,
		&v.DailyRateCents, &v.TotalPriceCents, &v.DepositCents, &v.ServiceFeeCents,
		&v.Status, &renterMessage, &ownerResponse, &cancelReason, &cancelledBy,
		&createdAt, &approvedAt, &startedAt, &completedAt, &cancelledAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}

	v.StartDate = pgconv.DateFromPgtype(startDate)
	v.EndDate = pgconv.DateFromPgtype(endDate)
	v.RenterMessage = pgconv.StringPtrFromPgtype(renterMessage)
	v.OwnerResponse = pgconv.StringPtrFromPgtype(ownerResponse)
	v.CancellationReason = pgconv.StringPtrFromPgtype(cancelReason)
	v.CancelledBy = pgconv.UUIDPtrFromPgtype(cancelledBy)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.ApprovedAt = pgconv.TimePtrFromPgtype(approvedAt)
	v.StartedAt = pgconv.TimePtrFromPgtype(startedAt)
	v.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	v.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	return &v, nil
}

const bookingListByRenterQuery = `
SELECT b.id, b.listing_id, l.title, b.start_date, b.end_date,
       b.total_price_cents, b.status, b.created_at
FROM bookings b
JOIN listings l ON l.id = b.listing_id
WHERE b.renter_id = $1 AND ($2 = '' OR b.status = $2)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $3 OFFSET $4`

const bookingCountByRenterQuery = `
SELECT count(*) FROM bookings
WHERE renter_id = $1 AND ($2 = '' OR status = $2)`

func (r *BookingReadStore) ListByRenter(ctx context.Context, renterID uuid.UUID, status string, limit, offset int32) ([]*queries.BookingListItem, error) {
	return r.listBookings(ctx, bookingListByRenterQuery, renterID, status, limit, offset)
}

func (r *BookingReadStore) CountByRenter(ctx context.Context, renterID uuid.UUID, status string) (int64, error) {
	return r.countBookings(ctx, bookingCountByRenterQuery, renterID, status)
}

const bookingListByOwnerQuery = `
SELECT b.id, b.listing_id, l.title, b.start_date, b.end_date,
       b.total_price_cents, b.status, b.created_at
FROM bookings b
JOIN listings l ON l.id = b.listing_id
WHERE b.owner_id = $1 AND ($2 = '' OR b.status = $2)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $3 OFFSET $4`

const bookingCountByOwnerQuery = `
SELECT count(*) FROM bookings
WHERE owner_id = $1 AND ($2 = '' OR status = $2)`

func (r *BookingReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, status string, limit, offset int32) ([]*queries.BookingListItem, error) {
	return r.listBookings(ctx, bookingListByOwnerQuery, ownerID, status, limit, offset)
}

func (r *BookingReadStore) CountByOwner(ctx context.Context, ownerID uuid.UUID, status string) (int64, error) {
	return r.countBookings(ctx, bookingCountByOwnerQuery, ownerID, status)
}

func (r *BookingReadStore) listBookings(ctx context.Context, query string, userID uuid.UUID, status string, limit, offset int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item               queries.BookingListItem
			startDate, endDate pgtype.Date
			createdAt          pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.ListingID, &item.ListingTitle, &startDate, &endDate,
			&item.TotalPriceCents, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.StartDate = pgconv.DateFromPgtype(startDate)
		item.EndDate = pgconv.DateFromPgtype(endDate)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}

func (r *BookingReadStore) countBookings(ctx context.Context, query string, userID uuid.UUID, status string) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, query, userID, status).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to count bookings", err)
	}
	return total, nil
}

const bookedDateRangesQuery = `
SELECT start_date, end_date
FROM bookings
WHERE listing_id = $1 AND status = ANY($2) AND end_date >= $3
ORDER BY start_date`

// BookedDateRanges returns the calendar-blocking ranges for a listing,
// restricted to bookings that have not already ended before the given
// day.
func (r *BookingReadStore) BookedDateRanges(ctx context.Context, listingID uuid.UUID, statuses []booking.Status, from time.Time) ([]*queries.BookedDateRange, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	rows, err := r.db.Query(ctx, bookedDateRangesQuery, listingID, names, pgconv.DateToPgtype(from))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked date ranges", err)
	}
	defer rows.Close()

	var ranges []*queries.BookedDateRange
	for rows.Next() {
		var startDate, endDate pgtype.Date
		if err := rows.Scan(&startDate, &endDate); err != nil {
			return nil, infra.WrapRepoErr("failed to scan date range", err)
		}
		ranges = append(ranges, &queries.BookedDateRange{
			StartDate: pgconv.DateFromPgtype(startDate),
			EndDate:   pgconv.DateFromPgtype(endDate),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read date ranges", err)
	}
	return ranges, nil
}

const pendingRequestCountQuery = `
SELECT count(*) FROM bookings
WHERE owner_id = $1 AND status = $2`

func (r *BookingReadStore) CountPendingRequests(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, pendingRequestCountQuery, ownerID, string(booking.StatusRequested)).Scan(&total)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count pending requests", err)
	}
	return total, nil
}

func textOrEmpty(pt pgtype.Text) string {
	if !pt.Valid {
		return ""
	}
	return pt.String
}
