// Package listing exposes the read-only view of a listing the booking
// core needs at request time. Listing CRUD lives outside the core; only
// the snapshot crosses the boundary.
package listing

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidDailyRate = errors.New("price per day must be at least 100 cents")

const MinPricePerDayCents = 100

// Snapshot captures a listing's bookable state at a single moment.
// The owner id is denormalized onto bookings so later ownership changes
// never affect historical records.
type Snapshot struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Title            string
	PricePerDayCents int64
	DepositCents     int64
	IsAvailable      bool
	IsActive         bool
}

func NewSnapshot(id, ownerID uuid.UUID, title string, pricePerDayCents, depositCents int64, isAvailable, isActive bool) (*Snapshot, error) {
	if pricePerDayCents < MinPricePerDayCents {
		return nil, ErrInvalidDailyRate
	}
	if depositCents < 0 {
		return nil, errors.New("deposit cannot be negative")
	}
	return &Snapshot{
		ID:               id,
		OwnerID:          ownerID,
		Title:            title,
		PricePerDayCents: pricePerDayCents,
		DepositCents:     depositCents,
		IsAvailable:      isAvailable,
		IsActive:         isActive,
	}, nil
}

func (s *Snapshot) IsBookable() bool {
	return s.IsAvailable && s.IsActive
}
