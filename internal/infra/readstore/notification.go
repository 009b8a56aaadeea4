package readstore

import (
	"context"

	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"
	"rentease/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(dbtx db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: dbtx}
}

const notificationListQuery = `
SELECT id, type, title, message, action_url, actor_id, is_read, created_at
FROM notifications
WHERE recipient_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

const notificationCountQuery = `
SELECT count(*) FROM notifications WHERE recipient_id = $1`

func (r *NotificationReadStore) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int32) ([]*queries.NotificationView, error) {
	rows, err := r.db.Query(ctx, notificationListQuery, recipientID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	var items []*queries.NotificationView
	for rows.Next() {
		var (
			v         queries.NotificationView
			actionURL pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&v.ID, &v.Type, &v.Title, &v.Message, &actionURL, &v.ActorID, &v.IsRead, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification row", err)
		}
		if actionURL.Valid {
			v.ActionURL = actionURL.String
		}
		v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification rows", err)
	}
	return items, nil
}

func (r *NotificationReadStore) CountByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, notificationCountQuery, recipientID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to count notifications", err)
	}
	return total, nil
}

const unreadCountQuery = `
SELECT count(*) FROM notifications
WHERE recipient_id = $1 AND is_read = false`

func (r *NotificationReadStore) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, unreadCountQuery, recipientID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to count unread notifications", err)
	}
	return total, nil
}
