package booking

// Policy is the deployment-level lifecycle configuration. A single value
// feeds the blocking-status set, the fee computation and the transition
// table so the payment-enabled and payment-free variants cannot be mixed.
type Policy struct {
	// PaymentEnabled inserts the PAID stage between APPROVED and ACTIVE
	// and turns on the service fee.
	PaymentEnabled bool

	// ServiceFeeBps is the platform commission in basis points of the
	// total rental price. Applied only when PaymentEnabled is set.
	ServiceFeeBps int64

	// RequestedBlocks makes unapproved requests block the calendar.
	// Default is false: renters may race to request the same dates and
	// only the first approval wins.
	RequestedBlocks bool
}

func DefaultPolicy() Policy {
	return Policy{}
}

// BlockingStatuses lists the statuses whose date ranges make a listing
// unavailable for new requests.
func (p Policy) BlockingStatuses() []Status {
	statuses := []Status{StatusApproved, StatusActive}
	if p.PaymentEnabled {
		statuses = append(statuses, StatusPaid)
	}
	if p.RequestedBlocks {
		statuses = append(statuses, StatusRequested)
	}
	return statuses
}

// CancellableStatuses lists the statuses either participant may cancel from.
func (p Policy) CancellableStatuses() []Status {
	statuses := []Status{StatusRequested, StatusApproved}
	if p.PaymentEnabled {
		statuses = append(statuses, StatusPaid)
	}
	return statuses
}

// StartableStatuses lists valid sources for the start transition.
func (p Policy) StartableStatuses() []Status {
	if p.PaymentEnabled {
		return []Status{StatusApproved, StatusPaid}
	}
	return []Status{StatusApproved}
}

func (p Policy) isCancellable(s Status) bool {
	return containsStatus(p.CancellableStatuses(), s)
}

func (p Policy) isStartable(s Status) bool {
	return containsStatus(p.StartableStatuses(), s)
}

func containsStatus(set []Status, s Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
