package readstore

import (
	"context"

	"rentease/internal/domain/listing"
	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(dbtx db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: dbtx}
}

const listingSnapshotQuery = `
SELECT id, owner_id, title, price_per_day_cents, deposit_cents, is_available, is_active
FROM listings
WHERE id = $1`

func (r *ListingReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*listing.Snapshot, error) {
	var snap listing.Snapshot
	err := r.db.QueryRow(ctx, listingSnapshotQuery, id).Scan(
		&snap.ID, &snap.OwnerID, &snap.Title,
		&snap.PricePerDayCents, &snap.DepositCents,
		&snap.IsAvailable, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing by ID", err)
	}
	return &snap, nil
}
