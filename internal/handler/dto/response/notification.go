package response

import (
	"time"

	"rentease/internal/usecase/queries"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL string    `json:"actionUrl,omitempty"`
	ActorID   uuid.UUID `json:"actorId"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func FromNotificationView(v *queries.NotificationView) *NotificationResponse {
	return &NotificationResponse{
		ID:        v.ID,
		Type:      v.Type,
		Title:     v.Title,
		Message:   v.Message,
		ActionURL: v.ActionURL,
		ActorID:   v.ActorID,
		IsRead:    v.IsRead,
		CreatedAt: v.CreatedAt,
	}
}
