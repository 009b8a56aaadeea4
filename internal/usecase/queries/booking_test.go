//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/infra"
	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingStore struct {
	view    *queries.BookingView
	viewErr error

	items    []*queries.BookingListItem
	total    int64
	listErr  error
	countErr error

	ranges    []*queries.BookedDateRange
	rangesErr error

	pending int64

	// captured arguments
	gotStatus   string
	gotLimit    int32
	gotOffset   int32
	gotStatuses []booking.Status
	gotFrom     time.Time
}

func (s *stubBookingStore) FindView(_ context.Context, _ uuid.UUID) (*queries.BookingView, error) {
	return s.view, s.viewErr
}

func (s *stubBookingStore) ListByRenter(_ context.Context, _ uuid.UUID, status string, limit, offset int32) ([]*queries.BookingListItem, error) {
	s.gotStatus, s.gotLimit, s.gotOffset = status, limit, offset
	return s.items, s.listErr
}

func (s *stubBookingStore) CountByRenter(_ context.Context, _ uuid.UUID, _ string) (int64, error) {
	return s.total, s.countErr
}

func (s *stubBookingStore) ListByOwner(_ context.Context, _ uuid.UUID, status string, limit, offset int32) ([]*queries.BookingListItem, error) {
	s.gotStatus, s.gotLimit, s.gotOffset = status, limit, offset
	return s.items, s.listErr
}

func (s *stubBookingStore) CountByOwner(_ context.Context, _ uuid.UUID, _ string) (int64, error) {
	return s.total, s.countErr
}

func (s *stubBookingStore) BookedDateRanges(_ context.Context, _ uuid.UUID, statuses []booking.Status, from time.Time) ([]*queries.BookedDateRange, error) {
	s.gotStatuses, s.gotFrom = statuses, from
	return s.ranges, s.rangesErr
}

func (s *stubBookingStore) CountPendingRequests(_ context.Context, _ uuid.UUID) (int64, error) {
	return s.pending, nil
}

type stubReviewExistence struct {
	exists bool
	err    error
}

func (s *stubReviewExistence) Exists(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return s.exists, s.err
}

var queryNow = time.Date(2024, 6, 5, 15, 30, 0, 0, time.UTC)

func newBookingQueries(store *stubBookingStore, reviews *stubReviewExistence, policy booking.Policy) queries.BookingQueries {
	return queries.NewBookingQueries(store, reviews, policy, clock.NewMockClock(queryNow))
}

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()
	ownerID := uuid.New()

	view := &queries.BookingView{ID: uuid.New(), RenterID: renterID, OwnerID: ownerID}

	t.Run("participants can read", func(t *testing.T) {
		q := newBookingQueries(&stubBookingStore{view: view}, &stubReviewExistence{}, booking.DefaultPolicy())

		got, err := q.GetByID(ctx, view.ID, renterID)
		require.NoError(t, err)
		assert.Equal(t, view, got)

		got, err = q.GetByID(ctx, view.ID, ownerID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("outsiders are forbidden", func(t *testing.T) {
		q := newBookingQueries(&stubBookingStore{view: view}, &stubReviewExistence{}, booking.DefaultPolicy())

		_, err := q.GetByID(ctx, view.ID, uuid.New())
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("missing booking", func(t *testing.T) {
		store := &stubBookingStore{viewErr: infra.WrapRepoErr("no rows", nil, infra.KindNotFound)}
		q := newBookingQueries(store, &stubReviewExistence{}, booking.DefaultPolicy())

		_, err := q.GetByID(ctx, uuid.New(), renterID)
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestBookingQueries_Lists(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("envelope carries totals", func(t *testing.T) {
		store := &stubBookingStore{
			items: []*queries.BookingListItem{{ID: uuid.New()}, {ID: uuid.New()}},
			total: 45,
		}
		q := newBookingQueries(store, &stubReviewExistence{}, booking.DefaultPolicy())

		page, err := q.ListByRenter(ctx, userID, "", 1, 20)
		require.NoError(t, err)

		assert.Len(t, page.Data, 2)
		assert.Equal(t, 1, page.Pagination.Page)
		assert.Equal(t, 20, page.Pagination.Size)
		assert.Equal(t, int64(45), page.Pagination.TotalElements)
		assert.Equal(t, 3, page.Pagination.TotalPages)
		assert.Equal(t, int32(20), store.gotLimit)
		assert.Equal(t, int32(20), store.gotOffset)
	})

	t.Run("page params are normalized", func(t *testing.T) {
		store := &stubBookingStore{}
		q := newBookingQueries(store, &stubReviewExistence{}, booking.DefaultPolicy())

		page, err := q.ListByOwner(ctx, userID, "", -3, 1000)
		require.NoError(t, err)

		assert.Equal(t, 0, page.Pagination.Page)
		assert.Equal(t, queries.MaxPageSize, page.Pagination.Size)
		assert.Equal(t, int32(0), store.gotOffset)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		q := newBookingQueries(&stubBookingStore{}, &stubReviewExistence{}, booking.DefaultPolicy())

		page, err := q.ListByRenter(ctx, userID, "", 0, 20)
		require.NoError(t, err)
		assert.NotNil(t, page.Data)
		assert.Empty(t, page.Data)
	})

	t.Run("status filter is passed through", func(t *testing.T) {
		store := &stubBookingStore{}
		q := newBookingQueries(store, &stubReviewExistence{}, booking.DefaultPolicy())

		_, err := q.ListByRenter(ctx, userID, "APPROVED", 0, 20)
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", store.gotStatus)
	})

	t.Run("unknown status filter is rejected", func(t *testing.T) {
		q := newBookingQueries(&stubBookingStore{}, &stubReviewExistence{}, booking.DefaultPolicy())

		_, err := q.ListByRenter(ctx, userID, "WAITING", 0, 20)
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
	})
}

func TestBookingQueries_GetBookedDateRanges(t *testing.T) {
	ctx := context.Background()
	listingID := uuid.New()

	t.Run("queries blocking statuses from today", func(t *testing.T) {
		booked := []*queries.BookedDateRange{
			{StartDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)},
		}
		store := &stubBookingStore{ranges: booked}
		q := newBookingQueries(store, &stubReviewExistence{}, booking.DefaultPolicy())

		ranges, err := q.GetBookedDateRanges(ctx, listingID)
		require.NoError(t, err)
		if diff := cmp.Diff(booked, ranges); diff != "" {
			t.Errorf("booked ranges mismatch (-want +got):\n%s", diff)
		}

		assert.ElementsMatch(t,
			[]booking.Status{booking.StatusApproved, booking.StatusActive},
			store.gotStatuses)
		assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), store.gotFrom,
			"lower bound is today at midnight UTC")
	})

	t.Run("no bookings yields an empty slice", func(t *testing.T) {
		q := newBookingQueries(&stubBookingStore{}, &stubReviewExistence{}, booking.DefaultPolicy())

		ranges, err := q.GetBookedDateRanges(ctx, listingID)
		require.NoError(t, err)
		assert.NotNil(t, ranges)
		assert.Empty(t, ranges)
	})

	t.Run("requested blocks policy widens the status set", func(t *testing.T) {
		store := &stubBookingStore{}
		q := newBookingQueries(store, &stubReviewExistence{}, booking.Policy{RequestedBlocks: true})

		_, err := q.GetBookedDateRanges(ctx, listingID)
		require.NoError(t, err)
		assert.Contains(t, store.gotStatuses, booking.StatusRequested)
	})
}

func TestBookingQueries_IsReviewable(t *testing.T) {
	ctx := context.Background()
	renterID := uuid.New()

	completedView := func() *queries.BookingView {
		return &queries.BookingView{
			ID:       uuid.New(),
			RenterID: renterID,
			OwnerID:  uuid.New(),
			Status:   string(booking.StatusCompleted),
		}
	}

	t.Run("renter of a completed unreviewed booking", func(t *testing.T) {
		q := newBookingQueries(&stubBookingStore{view: completedView()}, &stubReviewExistence{}, booking.DefaultPolicy())

		ok, err := q.IsReviewable(ctx, uuid.New(), renterID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("already reviewed", func(t *testing.T) {
		q := newBookingQueries(&stubBookingStore{view: completedView()}, &stubReviewExistence{exists: true}, booking.DefaultPolicy())

		ok, err := q.IsReviewable(ctx, uuid.New(), renterID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("owner is never the reviewer", func(t *testing.T) {
		view := completedView()
		q := newBookingQueries(&stubBookingStore{view: view}, &stubReviewExistence{}, booking.DefaultPolicy())

		ok, err := q.IsReviewable(ctx, uuid.New(), view.OwnerID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("only completed bookings", func(t *testing.T) {
		view := completedView()
		view.Status = string(booking.StatusActive)
		q := newBookingQueries(&stubBookingStore{view: view}, &stubReviewExistence{}, booking.DefaultPolicy())

		ok, err := q.IsReviewable(ctx, uuid.New(), renterID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing booking", func(t *testing.T) {
		store := &stubBookingStore{viewErr: infra.WrapRepoErr("no rows", nil, infra.KindNotFound)}
		q := newBookingQueries(store, &stubReviewExistence{}, booking.DefaultPolicy())

		_, err := q.IsReviewable(ctx, uuid.New(), renterID)
		assert.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}
