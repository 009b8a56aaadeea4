//go:build unit

package builder

import (
	"rentease/internal/domain/listing"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Title            string
	PricePerDayCents int64
	DepositCents     int64
	IsAvailable      bool
	IsActive         bool
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		ID:               uuid.New(),
		OwnerID:          uuid.New(),
		Title:            "Cordless Drill",
		PricePerDayCents: 1000,
		DepositCents:     5000,
		IsAvailable:      true,
		IsActive:         true,
	}
}

func (l *ListingBuilder) WithOwner(ownerID uuid.UUID) *ListingBuilder {
	l.OwnerID = ownerID
	return l
}

func (l *ListingBuilder) Unavailable() *ListingBuilder {
	l.IsAvailable = false
	return l
}

func (l *ListingBuilder) BuildSnapshot() *listing.Snapshot {
	return &listing.Snapshot{
		ID:               l.ID,
		OwnerID:          l.OwnerID,
		Title:            l.Title,
		PricePerDayCents: l.PricePerDayCents,
		DepositCents:     l.DepositCents,
		IsAvailable:      l.IsAvailable,
		IsActive:         l.IsActive,
	}
}
