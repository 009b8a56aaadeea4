//go:build unit

package worker

import (
	"testing"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/pkg/config"
	"rentease/internal/usecase/commands"
	"rentease/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationText(t *testing.T) {
	cases := []struct {
		kind        booking.NotificationType
		wantTitle   string
		wantMessage string
	}{
		{booking.NotificationBookingRequested, "New Booking Request", `Alice wants to rent your "Cordless Drill"`},
		{booking.NotificationBookingApproved, "Booking Approved", `Your booking for "Cordless Drill" has been approved!`},
		{booking.NotificationBookingRejected, "Booking Declined", `Your booking for "Cordless Drill" was declined.`},
		{booking.NotificationBookingCancelled, "Booking Cancelled", `The booking for "Cordless Drill" has been cancelled.`},
		{booking.NotificationBookingStarted, "Rental Started", `Your rental of "Cordless Drill" has started.`},
		{booking.NotificationBookingCompleted, "Rental Completed", `The rental of "Cordless Drill" has been completed.`},
		{booking.NotificationReviewReceived, "New Review", `Alice left a review on "Cordless Drill"`},
	}
	for _, c := range cases {
		t.Run(string(c.kind), func(t *testing.T) {
			title, message := notificationText(c.kind, "Alice", "Cordless Drill")
			assert.Equal(t, c.wantTitle, title)
			assert.Equal(t, c.wantMessage, message)
		})
	}

	t.Run("unknown kind falls back", func(t *testing.T) {
		title, _ := notificationText(booking.NotificationType("SOMETHING_ELSE"), "Alice", "x")
		assert.Equal(t, "Notification", title)
	})
}

func TestActionURL(t *testing.T) {
	payload := commands.NotificationPayload{
		BookingID: uuid.New(),
		ListingID: uuid.New(),
	}

	assert.Equal(t, "/bookings/"+payload.BookingID.String(),
		actionURL(booking.NotificationBookingApproved, payload))
	assert.Equal(t, "/listings/"+payload.ListingID.String(),
		actionURL(booking.NotificationReviewReceived, payload))
}

func TestEmailContent(t *testing.T) {
	view := &queries.BookingView{
		ListingTitle:    "Cordless Drill",
		RenterName:      "Alice Smith",
		StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		TotalPriceCents: 3000,
	}

	t.Run("request email goes to the owner", func(t *testing.T) {
		subject, body := emailContent(booking.EmailBookingRequested, "Bob", view)
		assert.Equal(t, "New Booking Request for Cordless Drill", subject)
		assert.Contains(t, body, "Hi Bob,")
		assert.Contains(t, body, "Alice Smith")
		assert.Contains(t, body, "Jun 1, 2024 - Jun 3, 2024")
		assert.Contains(t, body, "$30.00")
	})

	t.Run("approval email", func(t *testing.T) {
		subject, body := emailContent(booking.EmailBookingApproved, "Alice", view)
		assert.Equal(t, "Your Booking Request was Approved!", subject)
		assert.Contains(t, body, "Cordless Drill")
	})

	t.Run("decline email", func(t *testing.T) {
		subject, _ := emailContent(booking.EmailBookingDeclined, "Alice", view)
		assert.Equal(t, "Your Booking Request was Declined", subject)
	})

	t.Run("completion email prompts for a review", func(t *testing.T) {
		subject, body := emailContent(booking.EmailBookingCompleted, "Alice", view)
		assert.Equal(t, "Rental Completed", subject)
		assert.Contains(t, body, "Leave a review")
	})
}

func TestRetryDelay(t *testing.T) {
	d := &Dispatcher{cfg: config.WorkerConfig{PollInterval: 5 * time.Second}}

	assert.Equal(t, 5*time.Second, d.retryDelay(0))
	assert.Equal(t, 10*time.Second, d.retryDelay(1))
	assert.Equal(t, 25*time.Second, d.retryDelay(4))
	assert.Equal(t, 5*time.Minute, d.retryDelay(100), "delay is capped")
}
