package request

import (
	"strings"
	"time"

	"rentease/internal/usecase/commands"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required"`
	EndDate   string    `json:"end_date" binding:"required"`
	Message   string    `json:"message,omitempty"`
}

// ToCommand parses the calendar dates. Field-level validation errors
// are returned per field name for the 400 detail payload.
func (r CreateBookingRequest) ToCommand() (commands.CreateBookingRequest, map[string]string) {
	fieldErrors := map[string]string{}

	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		fieldErrors["start_date"] = "must be a date in YYYY-MM-DD format"
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		fieldErrors["end_date"] = "must be a date in YYYY-MM-DD format"
	}
	if len(fieldErrors) > 0 {
		return commands.CreateBookingRequest{}, fieldErrors
	}

	return commands.CreateBookingRequest{
		ListingID: r.ListingID,
		StartDate: start,
		EndDate:   end,
		Message:   strings.TrimSpace(r.Message),
	}, nil
}

type BookingActionRequest struct {
	Response string `json:"response,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func (r BookingActionRequest) ToCommand() commands.BookingActionRequest {
	return commands.BookingActionRequest{
		Response: strings.TrimSpace(r.Response),
		Reason:   strings.TrimSpace(r.Reason),
	}
}
