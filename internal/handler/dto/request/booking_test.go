//go:build unit

package request_test

import (
	"testing"
	"time"

	"rentease/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingRequest_ToCommand(t *testing.T) {
	listingID := uuid.New()

	t.Run("parses calendar dates", func(t *testing.T) {
		req := request.CreateBookingRequest{
			ListingID: listingID,
			StartDate: "2024-06-01",
			EndDate:   "2024-06-03",
			Message:   "  hi there  ",
		}

		cmd, fieldErrors := req.ToCommand()
		require.Nil(t, fieldErrors)

		assert.Equal(t, listingID, cmd.ListingID)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), cmd.StartDate)
		assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), cmd.EndDate)
		assert.Equal(t, "hi there", cmd.Message)
	})

	t.Run("reports each malformed date by field", func(t *testing.T) {
		req := request.CreateBookingRequest{
			ListingID: listingID,
			StartDate: "06/01/2024",
			EndDate:   "not-a-date",
		}

		_, fieldErrors := req.ToCommand()
		require.Len(t, fieldErrors, 2)
		assert.Contains(t, fieldErrors, "start_date")
		assert.Contains(t, fieldErrors, "end_date")
	})

	t.Run("partial failure names only the bad field", func(t *testing.T) {
		req := request.CreateBookingRequest{
			ListingID: listingID,
			StartDate: "2024-06-01",
			EndDate:   "2024-6-3",
		}

		_, fieldErrors := req.ToCommand()
		require.Len(t, fieldErrors, 1)
		assert.Contains(t, fieldErrors, "end_date")
	})
}

func TestBookingActionRequest_ToCommand(t *testing.T) {
	cmd := request.BookingActionRequest{
		Response: "  ok  ",
		Reason:   "  changed plans  ",
	}.ToCommand()

	assert.Equal(t, "ok", cmd.Response)
	assert.Equal(t, "changed plans", cmd.Reason)
}
