//go:build unit

// Package fake provides hand-written in-memory doubles for the
// unit-of-work surface, so command tests run without a database.
package fake

import (
	"context"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/domain/listing"
	"rentease/internal/domain/review"
	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	Tx *Tx

	// WithinErr short-circuits Within without invoking the callback.
	WithinErr error
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{Tx: NewTx()}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.WithinErr != nil {
		return u.WithinErr
	}
	return fn(ctx, u.Tx)
}

func (u *UnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return u.Tx.ReadsStub
}

type Tx struct {
	BookingRepo      *BookingRepository
	ReviewRepo       *ReviewRepository
	OutboxRepo       *OutboxRepository
	NotificationRepo *NotificationRepository
	UserRepo         *UserRepository
	ReadsStub        *CommandReads
}

func NewTx() *Tx {
	return &Tx{
		BookingRepo:      &BookingRepository{},
		ReviewRepo:       &ReviewRepository{},
		OutboxRepo:       &OutboxRepository{},
		NotificationRepo: &NotificationRepository{},
		UserRepo:         &UserRepository{},
		ReadsStub:        NewCommandReads(),
	}
}

func (t *Tx) Bookings() shared.BookingRepository              { return t.BookingRepo }
func (t *Tx) Reviews() shared.ReviewRepository                { return t.ReviewRepo }
func (t *Tx) Outbox() shared.OutboxRepository                 { return t.OutboxRepo }
func (t *Tx) Notifications() shared.NotificationRepository    { return t.NotificationRepo }
func (t *Tx) Users() shared.UserRepository                    { return t.UserRepo }
func (t *Tx) Reads() shared.CommandReads                      { return t.ReadsStub }
func (t *Tx) DB() db.DBTX                                     { return nil }

// CommandReads serves seeded snapshots and reports KindNotFound for
// anything missing.
type CommandReads struct {
	Listings     map[uuid.UUID]*listing.Snapshot
	Bookings     map[uuid.UUID]*shared.BookingSnapshot
	Reviews      map[uuid.UUID]*shared.ReviewSnapshot
	UsersByEmail map[string]*shared.UserSnapshot

	ReviewExistsResult bool
	ReviewExistsErr    error
}

func NewCommandReads() *CommandReads {
	return &CommandReads{
		Listings:     map[uuid.UUID]*listing.Snapshot{},
		Bookings:     map[uuid.UUID]*shared.BookingSnapshot{},
		Reviews:      map[uuid.UUID]*shared.ReviewSnapshot{},
		UsersByEmail: map[string]*shared.UserSnapshot{},
	}
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func (r *CommandReads) ListingByID(_ context.Context, id uuid.UUID) (*listing.Snapshot, error) {
	if snap, ok := r.Listings[id]; ok {
		return snap, nil
	}
	return nil, notFound("listing")
}

func (r *CommandReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if snap, ok := r.Bookings[id]; ok {
		return snap, nil
	}
	return nil, notFound("booking")
}

func (r *CommandReads) ReviewByID(_ context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	if snap, ok := r.Reviews[id]; ok {
		return snap, nil
	}
	return nil, notFound("review")
}

func (r *CommandReads) ReviewExists(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return r.ReviewExistsResult, r.ReviewExistsErr
}

func (r *CommandReads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	if snap, ok := r.UsersByEmail[email]; ok {
		return snap, nil
	}
	return nil, notFound("user")
}

type BookingRepository struct {
	Created []*booking.Booking
	Applied []*booking.Booking

	CreateErr          error
	ApplyTransitionErr error

	OverlapResult bool
	OverlapErr    error
	// OverlapCalls records (start, end, statuses, excludeID) per call.
	OverlapCalls []OverlapCall

	LockListingErr error
	// LockedListings records listing locks in acquisition order; the
	// lock for a listing must precede its overlap check.
	LockedListings []uuid.UUID
}

type OverlapCall struct {
	ListingID uuid.UUID
	Start     time.Time
	End       time.Time
	Statuses  []booking.Status
	ExcludeID uuid.UUID
}

func (r *BookingRepository) Create(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.Created = append(r.Created, b)
	return nil
}

func (r *BookingRepository) ApplyTransition(_ context.Context, _ db.DBTX, b *booking.Booking, _ booking.Status) error {
	if r.ApplyTransitionErr != nil {
		return r.ApplyTransitionErr
	}
	r.Applied = append(r.Applied, b)
	return nil
}

func (r *BookingRepository) HasOverlap(_ context.Context, _ db.DBTX, listingID uuid.UUID, start, end time.Time, statuses []booking.Status, excludeID uuid.UUID) (bool, error) {
	r.OverlapCalls = append(r.OverlapCalls, OverlapCall{
		ListingID: listingID,
		Start:     start,
		End:       end,
		Statuses:  statuses,
		ExcludeID: excludeID,
	})
	return r.OverlapResult, r.OverlapErr
}

func (r *BookingRepository) LockListing(_ context.Context, _ db.DBTX, listingID uuid.UUID) error {
	if r.LockListingErr != nil {
		return r.LockListingErr
	}
	r.LockedListings = append(r.LockedListings, listingID)
	return nil
}

type ReviewRepository struct {
	Created   []*review.Review
	Responded []*review.Review

	CreateErr         error
	UpdateResponseErr error
}

func (r *ReviewRepository) Create(_ context.Context, _ db.DBTX, rev *review.Review) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.Created = append(r.Created, rev)
	return nil
}

func (r *ReviewRepository) UpdateResponse(_ context.Context, _ db.DBTX, rev *review.Review) error {
	if r.UpdateResponseErr != nil {
		return r.UpdateResponseErr
	}
	r.Responded = append(r.Responded, rev)
	return nil
}

// OutboxRepository records enqueued jobs in call order.
type OutboxRepository struct {
	Jobs      []OutboxJob
	CreateErr error
}

type OutboxJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

func (r *OutboxRepository) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.Jobs = append(r.Jobs, OutboxJob{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type NotificationRepository struct {
	MarkReadCalls    []uuid.UUID
	MarkAllReadCalls []uuid.UUID

	MarkReadErr    error
	MarkAllReadErr error
}

func (r *NotificationRepository) MarkRead(_ context.Context, _ db.DBTX, notificationID, _ uuid.UUID) error {
	if r.MarkReadErr != nil {
		return r.MarkReadErr
	}
	r.MarkReadCalls = append(r.MarkReadCalls, notificationID)
	return nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, _ db.DBTX, recipientID uuid.UUID) error {
	if r.MarkAllReadErr != nil {
		return r.MarkAllReadErr
	}
	r.MarkAllReadCalls = append(r.MarkAllReadCalls, recipientID)
	return nil
}

type UserRepository struct {
	LastLoginCalls []uuid.UUID
	UpdateErr      error
}

func (r *UserRepository) UpdateLastLogin(_ context.Context, _ db.DBTX, userID uuid.UUID, _ time.Time) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.LastLoginCalls = append(r.LastLoginCalls, userID)
	return nil
}
