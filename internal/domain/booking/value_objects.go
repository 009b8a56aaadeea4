package booking

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrMessageTooLong   = errors.New("message exceeds maximum length")
)

const MaxMessageLength = 500

const dayDuration = 24 * time.Hour

// DateRange is an inclusive calendar-date range: both endpoints are
// occupied days, so a range where end == start spans one day.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s := truncateToDate(start)
	e := truncateToDate(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: s, end: e}, nil
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

// TotalDays counts both endpoints: (end - start in days) + 1.
func (r DateRange) TotalDays() int {
	return int(r.end.Sub(r.start)/dayDuration) + 1
}

// Overlaps uses the inclusive predicate s1 <= e2 && s2 <= e1, so a
// same-day checkout/checkin boundary counts as an overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Message is an optional free-text field capped at 500 characters
// (renter message, owner response, cancellation reason).
type Message struct {
	value string
}

func NewMessage(value string) (Message, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxMessageLength {
		return Message{}, ErrMessageTooLong
	}
	return Message{value: trimmed}, nil
}

// ReconstructMessage rehydrates a stored value without re-validating.
func ReconstructMessage(value string) Message {
	return Message{value: value}
}

func (m Message) String() string {
	return m.value
}

func (m Message) IsEmpty() bool {
	return m.value == ""
}
