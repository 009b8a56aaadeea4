package response

import (
	"time"

	"rentease/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ListingID          uuid.UUID  `json:"listingId"`
	ListingTitle       string     `json:"listingTitle"`
	RenterID           uuid.UUID  `json:"renterId"`
	RenterName         string     `json:"renterName"`
	OwnerID            uuid.UUID  `json:"ownerId"`
	OwnerName          string     `json:"ownerName"`
	StartDate          string     `json:"startDate"`
	EndDate            string     `json:"endDate"`
	TotalDays          int        `json:"totalDays"`
	DailyRateCents     int64      `json:"dailyRateCents"`
	TotalPriceCents    int64      `json:"totalPriceCents"`
	DepositCents       int64      `json:"depositCents"`
	ServiceFeeCents    int64      `json:"serviceFeeCents"`
	Status             string     `json:"status"`
	RenterMessage      *string    `json:"renterMessage,omitempty"`
	OwnerResponse      *string    `json:"ownerResponse,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelledBy,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	ApprovedAt         *time.Time `json:"approvedAt,omitempty"`
	StartedAt          *time.Time `json:"startedAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	ListingID       uuid.UUID `json:"listingId"`
	ListingTitle    string    `json:"listingTitle"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

type BookedDateRangeResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type PaginationResponse struct {
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

type PagedResponse[T any] struct {
	Data       []T                `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

const dateLayout = "2006-01-02"

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 v.ID,
		ListingID:          v.ListingID,
		ListingTitle:       v.ListingTitle,
		RenterID:           v.RenterID,
		RenterName:         v.RenterName,
		OwnerID:            v.OwnerID,
		OwnerName:          v.OwnerName,
		StartDate:          v.StartDate.Format(dateLayout),
		EndDate:            v.EndDate.Format(dateLayout),
		TotalDays:          v.TotalDays,
		DailyRateCents:     v.DailyRateCents,
		TotalPriceCents:    v.TotalPriceCents,
		DepositCents:       v.DepositCents,
		ServiceFeeCents:    v.ServiceFeeCents,
		Status:             v.Status,
		RenterMessage:      v.RenterMessage,
		OwnerResponse:      v.OwnerResponse,
		CancellationReason: v.CancellationReason,
		CancelledBy:        v.CancelledBy,
		CreatedAt:          v.CreatedAt,
		ApprovedAt:         v.ApprovedAt,
		StartedAt:          v.StartedAt,
		CompletedAt:        v.CompletedAt,
		CancelledAt:        v.CancelledAt,
	}
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              item.ID,
		ListingID:       item.ListingID,
		ListingTitle:    item.ListingTitle,
		StartDate:       item.StartDate.Format(dateLayout),
		EndDate:         item.EndDate.Format(dateLayout),
		TotalPriceCents: item.TotalPriceCents,
		Status:          item.Status,
		CreatedAt:       item.CreatedAt,
	}
}

func FromBookedDateRange(r *queries.BookedDateRange) *BookedDateRangeResponse {
	return &BookedDateRangeResponse{
		StartDate: r.StartDate.Format(dateLayout),
		EndDate:   r.EndDate.Format(dateLayout),
	}
}

func FromPage[T, U any](page queries.Page[T], convert func(T) U) PagedResponse[U] {
	data := make([]U, len(page.Data))
	for i, item := range page.Data {
		data[i] = convert(item)
	}
	return PagedResponse[U]{
		Data: data,
		Pagination: PaginationResponse{
			Page:          page.Pagination.Page,
			Size:          page.Pagination.Size,
			TotalElements: page.Pagination.TotalElements,
			TotalPages:    page.Pagination.TotalPages,
		},
	}
}
