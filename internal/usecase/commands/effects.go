package commands

import (
	"context"
	"encoding/json"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/shared"

	"github.com/google/uuid"
)

// Outbox job kinds. The dispatcher worker fans out on these.
const (
	JobKindNotification = "notification"
	JobKindEmail        = "email"
)

// NotificationPayload is the outbox payload for in-app notifications.
type NotificationPayload struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	ActorID     uuid.UUID `json:"actor_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	ListingID   uuid.UUID `json:"listing_id"`
}

// EmailPayload is the outbox payload for email sends.
type EmailPayload struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	BookingID   uuid.UUID `json:"booking_id"`
}

// enqueueEffects writes one outbox job per effect, in transition order,
// inside the same transaction as the state write. Dispatch happens after
// commit, so effects for an earlier transition are never observed after
// effects for a later one on the same booking.
func enqueueEffects(ctx context.Context, tx shared.Tx, effects []booking.Effect, runAt time.Time) error {
	for _, effect := range effects {
		kind, topic, payload, err := encodeEffect(effect)
		if err != nil {
			return err
		}
		if err := tx.Outbox().CreateJob(ctx, tx.DB(), kind, topic, payload, runAt); err != nil {
			return err
		}
	}
	return nil
}

func encodeEffect(effect booking.Effect) (kind, topic string, payload []byte, err error) {
	switch e := effect.(type) {
	case booking.NotificationEffect:
		payload, err = json.Marshal(NotificationPayload{
			RecipientID: e.RecipientID,
			ActorID:     e.ActorID,
			BookingID:   e.BookingID,
			ListingID:   e.ListingID,
		})
		return JobKindNotification, string(e.Type), payload, err
	case booking.EmailEffect:
		payload, err = json.Marshal(EmailPayload{
			RecipientID: e.RecipientID,
			BookingID:   e.BookingID,
		})
		return JobKindEmail, string(e.Template), payload, err
	default:
		return "", "", nil, errs.New("unknown effect type")
	}
}
