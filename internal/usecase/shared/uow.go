package shared

import (
	"context"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/domain/listing"
	"rentease/internal/domain/review"
	"rentease/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Reviews() ReviewRepository
	Outbox() OutboxRepository
	Notifications() NotificationRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ListingByID(ctx context.Context, id uuid.UUID) (*listing.Snapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	ReviewByID(ctx context.Context, id uuid.UUID) (*ReviewSnapshot, error)
	ReviewExists(ctx context.Context, bookingID, reviewerID uuid.UUID) (bool, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

// BookingSnapshot carries every persisted booking field so commands can
// reconstruct the aggregate before running a transition.
type BookingSnapshot struct {
	ID                 uuid.UUID
	ListingID          uuid.UUID
	RenterID           uuid.UUID
	OwnerID            uuid.UUID
	StartDate          time.Time
	EndDate            time.Time
	TotalDays          int
	DailyRateCents     int64
	TotalPriceCents    int64
	DepositCents       int64
	ServiceFeeCents    int64
	Status             booking.Status
	RenterMessage      string
	OwnerResponse      string
	CancellationReason string
	CancelledBy        *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ApprovedAt         *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
}

type ReviewSnapshot struct {
	ID               uuid.UUID
	BookingID        uuid.UUID
	ListingID        uuid.UUID
	ReviewerID       uuid.UUID
	RevieweeID       uuid.UUID
	Rating           int
	Comment          string
	OwnerResponse    *string
	OwnerRespondedAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	// ApplyTransition persists a completed transition guarded by a
	// compare-and-set on the previously observed status. Zero rows
	// updated surfaces as KindConflict.
	ApplyTransition(ctx context.Context, dbtx db.DBTX, b *booking.Booking, expected booking.Status) error
	// HasOverlap runs the inclusive-range overlap query against bookings
	// in the given statuses, optionally excluding one booking id.
	HasOverlap(ctx context.Context, dbtx db.DBTX, listingID uuid.UUID, start, end time.Time, statuses []booking.Status, excludeID uuid.UUID) (bool, error)
	// LockListing takes a row lock on the listing for the duration of
	// the transaction, serializing admissions per listing. Under
	// ReadCommitted two concurrent overlap checks would otherwise each
	// miss the other's uncommitted write.
	LockListing(ctx context.Context, dbtx db.DBTX, listingID uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, rev *review.Review) error
	UpdateResponse(ctx context.Context, dbtx db.DBTX, rev *review.Review) error
}

type OutboxRepository interface {
	CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

type NotificationRepository interface {
	MarkRead(ctx context.Context, dbtx db.DBTX, notificationID, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, dbtx db.DBTX, recipientID uuid.UUID) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, at time.Time) error
}
