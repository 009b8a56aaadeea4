package queries

import (
	"context"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/infra"
	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindView(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, status string, limit, offset int32) ([]*BookingListItem, error)
	CountByRenter(ctx context.Context, renterID uuid.UUID, status string) (int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status string, limit, offset int32) ([]*BookingListItem, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID, status string) (int64, error)
	BookedDateRanges(ctx context.Context, listingID uuid.UUID, statuses []booking.Status, from time.Time) ([]*BookedDateRange, error)
	CountPendingRequests(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type ReviewExistenceStore interface {
	Exists(ctx context.Context, bookingID, reviewerID uuid.UUID) (bool, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingView, error)
	ListByRenter(ctx context.Context, renterID uuid.UUID, status string, page, size int) (Page[*BookingListItem], error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status string, page, size int) (Page[*BookingListItem], error)
	GetBookedDateRanges(ctx context.Context, listingID uuid.UUID) ([]*BookedDateRange, error)
	IsReviewable(ctx context.Context, bookingID, userID uuid.UUID) (bool, error)
	CountPendingRequests(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type bookingQueriesImpl struct {
	store   BookingReadStore
	reviews ReviewExistenceStore
	policy  booking.Policy
	clock   clock.Clock
}

func NewBookingQueries(store BookingReadStore, reviews ReviewExistenceStore, policy booking.Policy, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{store: store, reviews: reviews, policy: policy, clock: clk}
}

// GetByID checks participation after the row is loaded, so a missing
// booking and a foreign one report distinct errors.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, bookingID, actorID uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindView(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, err
	}
	if view.RenterID != actorID && view.OwnerID != actorID {
		return nil, errs.ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByRenter(ctx context.Context, renterID uuid.UUID, status string, page, size int) (Page[*BookingListItem], error) {
	if err := validateStatusFilter(status); err != nil {
		return Page[*BookingListItem]{}, err
	}
	page, size = NormalizePage(page, size)

	items, err := q.store.ListByRenter(ctx, renterID, status, int32(size), int32(page*size))
	if err != nil {
		return Page[*BookingListItem]{}, err
	}
	total, err := q.store.CountByRenter(ctx, renterID, status)
	if err != nil {
		return Page[*BookingListItem]{}, err
	}
	return NewPage(items, page, size, total), nil
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, status string, page, size int) (Page[*BookingListItem], error) {
	if err := validateStatusFilter(status); err != nil {
		return Page[*BookingListItem]{}, err
	}
	page, size = NormalizePage(page, size)

	items, err := q.store.ListByOwner(ctx, ownerID, status, int32(size), int32(page*size))
	if err != nil {
		return Page[*BookingListItem]{}, err
	}
	total, err := q.store.CountByOwner(ctx, ownerID, status)
	if err != nil {
		return Page[*BookingListItem]{}, err
	}
	return NewPage(items, page, size, total), nil
}

// GetBookedDateRanges feeds the listing calendar. Only ranges in a
// blocking status count, and bookings that ended before today are
// skipped.
func (q *bookingQueriesImpl) GetBookedDateRanges(ctx context.Context, listingID uuid.UUID) ([]*BookedDateRange, error) {
	today := q.clock.Now().UTC().Truncate(24 * time.Hour)
	ranges, err := q.store.BookedDateRanges(ctx, listingID, q.policy.BlockingStatuses(), today)
	if err != nil {
		return nil, err
	}
	if ranges == nil {
		ranges = []*BookedDateRange{}
	}
	return ranges, nil
}

// IsReviewable: the renter of a completed booking who has not reviewed
// it yet.
func (q *bookingQueriesImpl) IsReviewable(ctx context.Context, bookingID, userID uuid.UUID) (bool, error) {
	view, err := q.store.FindView(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, errs.ErrBookingNotFound
		}
		return false, err
	}
	if view.RenterID != userID || view.Status != string(booking.StatusCompleted) {
		return false, nil
	}
	reviewed, err := q.reviews.Exists(ctx, bookingID, userID)
	if err != nil {
		return false, err
	}
	return !reviewed, nil
}

func (q *bookingQueriesImpl) CountPendingRequests(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return q.store.CountPendingRequests(ctx, ownerID)
}

func validateStatusFilter(status string) error {
	if status == "" {
		return nil
	}
	if !booking.Status(status).IsValid() {
		return errs.Mark(errs.New("unknown booking status: "+status), errs.ErrValidation)
	}
	return nil
}
