package booking

import "errors"

var ErrNegativeRate = errors.New("daily rate cannot be negative")

// Quote is the authoritative price breakdown captured at booking time.
// All amounts are integer minor units; nothing here is ever recomputed
// after creation even if the listing's price changes.
type Quote struct {
	TotalDays       int
	TotalPriceCents int64
	DepositCents    int64
	ServiceFeeCents int64
}

type PriceCalculator interface {
	Quote(dailyRateCents int64, dates DateRange, depositCents int64) (Quote, error)
}

type StandardPriceCalculator struct {
	policy Policy
}

func NewStandardPriceCalculator(policy Policy) *StandardPriceCalculator {
	return &StandardPriceCalculator{policy: policy}
}

func (c *StandardPriceCalculator) Quote(dailyRateCents int64, dates DateRange, depositCents int64) (Quote, error) {
	if dailyRateCents < 0 || depositCents < 0 {
		return Quote{}, ErrNegativeRate
	}
	days := dates.TotalDays()
	if days < 1 {
		// Caller validates the range first; refuse anyway.
		return Quote{}, ErrInvalidDateRange
	}

	total := dailyRateCents * int64(days)

	var fee int64
	if c.policy.PaymentEnabled && c.policy.ServiceFeeBps > 0 {
		// Integer floor division keeps money out of floating point.
		fee = total * c.policy.ServiceFeeBps / 10000
	}

	return Quote{
		TotalDays:       days,
		TotalPriceCents: total,
		DepositCents:    depositCents,
		ServiceFeeCents: fee,
	}, nil
}
