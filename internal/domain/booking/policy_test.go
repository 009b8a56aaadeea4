//go:build unit

package booking_test

import (
	"testing"

	"rentease/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_StatusSets(t *testing.T) {
	t.Run("default policy", func(t *testing.T) {
		p := booking.DefaultPolicy()

		assert.ElementsMatch(t,
			[]booking.Status{booking.StatusApproved, booking.StatusActive},
			p.BlockingStatuses())
		assert.ElementsMatch(t,
			[]booking.Status{booking.StatusRequested, booking.StatusApproved},
			p.CancellableStatuses())
		assert.ElementsMatch(t,
			[]booking.Status{booking.StatusApproved},
			p.StartableStatuses())
	})

	t.Run("payment enabled adds PAID everywhere", func(t *testing.T) {
		p := booking.Policy{PaymentEnabled: true}

		assert.Contains(t, p.BlockingStatuses(), booking.StatusPaid)
		assert.Contains(t, p.CancellableStatuses(), booking.StatusPaid)
		assert.ElementsMatch(t,
			[]booking.Status{booking.StatusApproved, booking.StatusPaid},
			p.StartableStatuses())
	})

	t.Run("requested blocks adds REQUESTED to the calendar only", func(t *testing.T) {
		p := booking.Policy{RequestedBlocks: true}

		assert.Contains(t, p.BlockingStatuses(), booking.StatusRequested)
		assert.NotContains(t, p.StartableStatuses(), booking.StatusRequested)
	})
}
