package booking

import "github.com/google/uuid"

// NotificationType mirrors the persisted notification enum.
type NotificationType string

const (
	NotificationBookingRequested NotificationType = "BOOKING_REQUESTED"
	NotificationBookingApproved  NotificationType = "BOOKING_APPROVED"
	NotificationBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationBookingStarted   NotificationType = "BOOKING_STARTED"
	NotificationBookingCompleted NotificationType = "BOOKING_COMPLETED"
	NotificationReviewReceived   NotificationType = "REVIEW_RECEIVED"
)

type EmailTemplate string

const (
	EmailBookingRequested EmailTemplate = "booking_requested"
	EmailBookingApproved  EmailTemplate = "booking_approved"
	EmailBookingDeclined  EmailTemplate = "booking_declined"
	EmailBookingCancelled EmailTemplate = "booking_cancelled"
	EmailBookingCompleted EmailTemplate = "booking_completed"
)

// Effect is a side effect a committed transition must dispatch. Effects
// are enqueued in transition order and executed at-least-once after the
// state write commits; their failure never rolls a transition back.
type Effect interface {
	effect()
}

type NotificationEffect struct {
	Type        NotificationType
	RecipientID uuid.UUID
	ActorID     uuid.UUID
	BookingID   uuid.UUID
	ListingID   uuid.UUID
}

func (NotificationEffect) effect() {}

type EmailEffect struct {
	Template    EmailTemplate
	RecipientID uuid.UUID
	BookingID   uuid.UUID
}

func (EmailEffect) effect() {}
