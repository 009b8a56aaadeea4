package readstore

import (
	"context"

	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"
	"rentease/internal/usecase/queries"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReviewReadStore struct {
	db db.DBTX
}

func NewReviewReadStore(dbtx db.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx}
}

const reviewSnapshotQuery = `
SELECT id, booking_id, listing_id, reviewer_id, reviewee_id,
       rating, comment, owner_response, owner_responded_at,
       created_at, updated_at
FROM reviews
WHERE id = $1`

func (r *ReviewReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	var (
		snap             shared.ReviewSnapshot
		ownerResponse    pgtype.Text
		ownerRespondedAt pgtype.Timestamptz
		createdAt        pgtype.Timestamptz
		updatedAt        pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, reviewSnapshotQuery, id).Scan(
		&snap.ID, &snap.BookingID, &snap.ListingID, &snap.ReviewerID, &snap.RevieweeID,
		&snap.Rating, &snap.Comment, &ownerResponse, &ownerRespondedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review by ID", err)
	}
	snap.OwnerResponse = pgconv.StringPtrFromPgtype(ownerResponse)
	snap.OwnerRespondedAt = pgconv.TimePtrFromPgtype(ownerRespondedAt)
	snap.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	snap.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &snap, nil
}

const reviewViewQuery = `
SELECT r.id, r.booking_id, r.listing_id, r.reviewer_id,
       u.first_name || ' ' || u.last_name,
       r.rating, r.comment, r.owner_response, r.owner_responded_at, r.created_at
FROM reviews r
JOIN users u ON u.id = r.reviewer_id
WHERE r.id = $1`

func (r *ReviewReadStore) FindView(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	var (
		v                queries.ReviewView
		ownerResponse    pgtype.Text
		ownerRespondedAt pgtype.Timestamptz
		createdAt        pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, reviewViewQuery, id).Scan(
		&v.ID, &v.BookingID, &v.ListingID, &v.ReviewerID, &v.ReviewerName,
		&v.Rating, &v.Comment, &ownerResponse, &ownerRespondedAt, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find review view", err)
	}
	v.OwnerResponse = pgconv.StringPtrFromPgtype(ownerResponse)
	v.OwnerRespondedAt = pgconv.TimePtrFromPgtype(ownerRespondedAt)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &v, nil
}

const reviewExistsQuery = `
SELECT EXISTS (
    SELECT 1 FROM reviews WHERE booking_id = $1 AND reviewer_id = $2
)`

func (r *ReviewReadStore) Exists(ctx context.Context, bookingID, reviewerID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, reviewExistsQuery, bookingID, reviewerID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check review existence", err)
	}
	return exists, nil
}

const reviewListByListingQuery = `
SELECT r.id, r.booking_id, r.listing_id, r.reviewer_id,
       u.first_name || ' ' || u.last_name,
       r.rating, r.comment, r.owner_response, r.owner_responded_at, r.created_at
FROM reviews r
JOIN users u ON u.id = r.reviewer_id
WHERE r.listing_id = $1
ORDER BY r.created_at DESC, r.id DESC
LIMIT $2 OFFSET $3`

const reviewCountByListingQuery = `
SELECT count(*) FROM reviews WHERE listing_id = $1`

func (r *ReviewReadStore) ListByListing(ctx context.Context, listingID uuid.UUID, limit, offset int32) ([]*queries.ReviewView, error) {
	rows, err := r.db.Query(ctx, reviewListByListingQuery, listingID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	defer rows.Close()

	var items []*queries.ReviewView
	for rows.Next() {
		var (
			v                queries.ReviewView
			ownerResponse    pgtype.Text
			ownerRespondedAt pgtype.Timestamptz
			createdAt        pgtype.Timestamptz
		)
		if err := rows.Scan(
			&v.ID, &v.BookingID, &v.ListingID, &v.ReviewerID, &v.ReviewerName,
			&v.Rating, &v.Comment, &ownerResponse, &ownerRespondedAt, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review row", err)
		}
		v.OwnerResponse = pgconv.StringPtrFromPgtype(ownerResponse)
		v.OwnerRespondedAt = pgconv.TimePtrFromPgtype(ownerRespondedAt)
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read review rows", err)
	}
	return items, nil
}

func (r *ReviewReadStore) CountByListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, reviewCountByListingQuery, listingID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to count reviews", err)
	}
	return total, nil
}

const listingRatingStatsQuery = `
SELECT count(*), coalesce(avg(rating), 0)
FROM reviews
WHERE listing_id = $1`

func (r *ReviewReadStore) RatingStats(ctx context.Context, listingID uuid.UUID) (*queries.ListingRatingStats, error) {
	stats := &queries.ListingRatingStats{ListingID: listingID}
	err := r.db.QueryRow(ctx, listingRatingStatsQuery, listingID).Scan(&stats.TotalReviews, &stats.AverageRating)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load rating stats", err)
	}
	return stats, nil
}
