//go:build unit

package booking_test

import (
	"testing"

	"rentease/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardPriceCalculator(t *testing.T) {
	dates := mustRange(t, date(2024, 6, 1), date(2024, 6, 3))

	t.Run("total is rate times inclusive days", func(t *testing.T) {
		calc := booking.NewStandardPriceCalculator(booking.DefaultPolicy())

		quote, err := calc.Quote(1000, dates, 5000)
		require.NoError(t, err)

		assert.Equal(t, 3, quote.TotalDays)
		assert.Equal(t, int64(3000), quote.TotalPriceCents)
		assert.Equal(t, int64(5000), quote.DepositCents)
		assert.Equal(t, int64(0), quote.ServiceFeeCents)
	})

	t.Run("no fee while payments are disabled", func(t *testing.T) {
		calc := booking.NewStandardPriceCalculator(booking.Policy{ServiceFeeBps: 1000})

		quote, err := calc.Quote(1000, dates, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), quote.ServiceFeeCents)
	})

	t.Run("fee is floor of basis points", func(t *testing.T) {
		cases := []struct {
			name      string
			rateCents int64
			feeBps    int64
			wantFee   int64
		}{
			{"10 percent of 3000", 1000, 1000, 300},
			{"rounds down", 333, 1000, 99},   // 999 * 0.10 = 99.9
			{"tiny total", 34, 100, 1},       // 102 * 0.01 = 1.02
			{"fee under one cent", 33, 10, 0}, // 99 * 0.001 = 0.099
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				calc := booking.NewStandardPriceCalculator(booking.Policy{
					PaymentEnabled: true,
					ServiceFeeBps:  c.feeBps,
				})
				quote, err := calc.Quote(c.rateCents, dates, 0)
				require.NoError(t, err)
				assert.Equal(t, c.wantFee, quote.ServiceFeeCents)
			})
		}
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		calc := booking.NewStandardPriceCalculator(booking.DefaultPolicy())
		_, err := calc.Quote(-1, dates, 0)
		assert.ErrorIs(t, err, booking.ErrNegativeRate)
	})

	t.Run("negative deposit is rejected", func(t *testing.T) {
		calc := booking.NewStandardPriceCalculator(booking.DefaultPolicy())
		_, err := calc.Quote(1000, dates, -1)
		assert.ErrorIs(t, err, booking.ErrNegativeRate)
	})
}
