package queries

import (
	"context"

	"github.com/google/uuid"
)

type NotificationReadStore interface {
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int32) ([]*NotificationView, error)
	CountByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type NotificationQueries interface {
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, page, size int) (Page[*NotificationView], error)
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationQueriesImpl struct {
	store NotificationReadStore
}

func NewNotificationQueries(store NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{store: store}
}

func (q *notificationQueriesImpl) ListByRecipient(ctx context.Context, recipientID uuid.UUID, page, size int) (Page[*NotificationView], error) {
	page, size = NormalizePage(page, size)

	items, err := q.store.ListByRecipient(ctx, recipientID, int32(size), int32(page*size))
	if err != nil {
		return Page[*NotificationView]{}, err
	}
	total, err := q.store.CountByRecipient(ctx, recipientID)
	if err != nil {
		return Page[*NotificationView]{}, err
	}
	return NewPage(items, page, size, total), nil
}

func (q *notificationQueriesImpl) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return q.store.UnreadCount(ctx, recipientID)
}
