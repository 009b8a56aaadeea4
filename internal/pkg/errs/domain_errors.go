package errs

import "errors"

// Sentinel errors shared across the usecase layers. Handlers map these
// onto the HTTP taxonomy: not-found, bad-request, forbidden and
// invalid-transition (a state-machine violation distinguished from
// input validation).
var (
	// Not found
	ErrListingNotFound = errors.New("listing not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrReviewNotFound  = errors.New("review not found")
	ErrUserNotFound    = errors.New("user not found")

	ErrNotificationNotFound = errors.New("notification not found")

	// Bad request
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrListingUnavailable = errors.New("listing is not available for booking")
	ErrSelfBooking        = errors.New("cannot book your own listing")
	ErrDatesOverlap       = errors.New("dates overlap with an existing booking")
	ErrAlreadyReviewed    = errors.New("booking already reviewed")
	ErrValidation         = errors.New("validation failed")

	// Forbidden
	ErrForbidden = errors.New("actor is not permitted to perform this action")

	// State machine
	ErrInvalidTransition = errors.New("invalid booking transition")

	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
