package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	ListingID          uuid.UUID  `json:"listing_id"`
	ListingTitle       string     `json:"listing_title"`
	RenterID           uuid.UUID  `json:"renter_id"`
	RenterName         string     `json:"renter_name"`
	OwnerID            uuid.UUID  `json:"owner_id"`
	OwnerName          string     `json:"owner_name"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            time.Time  `json:"end_date"`
	TotalDays          int        `json:"total_days"`
	DailyRateCents     int64      `json:"daily_rate_cents"`
	TotalPriceCents    int64      `json:"total_price_cents"`
	DepositCents       int64      `json:"deposit_cents"`
	ServiceFeeCents    int64      `json:"service_fee_cents"`
	Status             string     `json:"status"`
	RenterMessage      *string    `json:"renter_message,omitempty"`
	OwnerResponse      *string    `json:"owner_response,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	ListingID       uuid.UUID `json:"listing_id"`
	ListingTitle    string    `json:"listing_title"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookedDateRange feeds the listing calendar: only blocking-status
// ranges from today forward.
type BookedDateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type ReviewView struct {
	ID               uuid.UUID  `json:"id"`
	BookingID        uuid.UUID  `json:"booking_id"`
	ListingID        uuid.UUID  `json:"listing_id"`
	ReviewerID       uuid.UUID  `json:"reviewer_id"`
	ReviewerName     string     `json:"reviewer_name"`
	Rating           int        `json:"rating"`
	Comment          string     `json:"comment"`
	OwnerResponse    *string    `json:"owner_response,omitempty"`
	OwnerRespondedAt *time.Time `json:"owner_responded_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ListingRatingStats struct {
	ListingID     uuid.UUID `json:"listing_id"`
	TotalReviews  int64     `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
}

type NotificationView struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL string    `json:"action_url"`
	ActorID   uuid.UUID `json:"actor_id"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// Pagination is the response envelope every list surface carries.
type Pagination struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func NormalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func NewPage[T any](data []T, page, size int, total int64) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data: data,
		Pagination: Pagination{
			Page:          page,
			Size:          size,
			TotalElements: total,
			TotalPages:    totalPages,
		},
	}
}
