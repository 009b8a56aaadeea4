package repository

import (
	"context"
	"time"

	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// CreateNotificationParams carries one materialized in-app notification.
type CreateNotificationParams struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	ActorID     uuid.UUID
	Type        string
	Title       string
	Message     string
	ActionURL   string
	BookingID   uuid.UUID
	ListingID   uuid.UUID
	CreatedAt   time.Time
}

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const createNotificationQuery = `
INSERT INTO notifications (
    id, recipient_id, actor_id, type, title, message, action_url,
    booking_id, listing_id, is_read, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10)`

func (r *NotificationRepository) Create(ctx context.Context, dbtx db.DBTX, params CreateNotificationParams) error {
	_, err := dbtx.Exec(ctx, createNotificationQuery,
		params.ID, params.RecipientID, params.ActorID,
		params.Type, params.Title, params.Message, pgconv.StringToPgtype(params.ActionURL),
		params.BookingID, params.ListingID,
		pgconv.TimeToPgtype(params.CreatedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification", err, classifyPgErr(err))
	}
	return nil
}

const markReadQuery = `
UPDATE notifications SET is_read = true
WHERE id = $1 AND recipient_id = $2`

func (r *NotificationRepository) MarkRead(ctx context.Context, dbtx db.DBTX, notificationID, recipientID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, markReadQuery, notificationID, recipientID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification not found", nil, infra.KindNotFound)
	}
	return nil
}

const markAllReadQuery = `
UPDATE notifications SET is_read = true
WHERE recipient_id = $1 AND is_read = false`

func (r *NotificationRepository) MarkAllRead(ctx context.Context, dbtx db.DBTX, recipientID uuid.UUID) error {
	_, err := dbtx.Exec(ctx, markAllReadQuery, recipientID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notifications read", err)
	}
	return nil
}
