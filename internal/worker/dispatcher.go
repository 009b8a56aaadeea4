package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"rentease/internal/domain/booking"
	"rentease/internal/infra/mail"
	"rentease/internal/infra/readstore"
	"rentease/internal/infra/repository"
	"rentease/internal/pkg/clock"
	"rentease/internal/pkg/config"
	"rentease/internal/pkg/errs"
	"rentease/internal/usecase/commands"
	"rentease/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dispatcher drains the notification_jobs outbox on a fixed interval.
// Jobs are claimed and resolved inside one transaction per batch;
// delivery is at-least-once, a crash between send and mark re-runs the
// job on the next tick.
type Dispatcher struct {
	pool   *pgxpool.Pool
	outbox *repository.OutboxRepository
	notifs *repository.NotificationRepository
	sender mail.Sender
	clock  clock.Clock
	cfg    config.WorkerConfig
}

func NewDispatcher(pool *pgxpool.Pool, sender mail.Sender, clk clock.Clock, cfg config.WorkerConfig) *Dispatcher {
	return &Dispatcher{
		pool:   pool,
		outbox: repository.NewOutboxRepository(),
		notifs: repository.NewNotificationRepository(),
		sender: sender,
		clock:  clk,
		cfg:    cfg,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	slog.Info("effect dispatcher started", "poll_interval", d.cfg.PollInterval.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("effect dispatcher stopped")
			return
		case <-ticker.C:
			if err := d.dispatchBatch(ctx); err != nil {
				slog.Error("dispatch batch failed", "error", err.Error())
			}
		}
	}
}

func (d *Dispatcher) dispatchBatch(ctx context.Context) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to begin dispatch transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := d.clock.Now()
	jobs, err := d.outbox.ClaimQueued(ctx, tx, now, d.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if err := d.process(ctx, tx, job); err != nil {
			slog.Warn("job failed",
				"job_id", job.ID,
				"kind", job.Kind,
				"topic", job.Topic,
				"attempt", job.Attempts+1,
				"error", err.Error())
			retryAt := now.Add(d.retryDelay(job.Attempts))
			if markErr := d.outbox.MarkFailed(ctx, tx, job.ID, d.cfg.MaxAttempts, err.Error(), retryAt); markErr != nil {
				return markErr
			}
			continue
		}
		if err := d.outbox.MarkSucceeded(ctx, tx, job.ID, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit dispatch transaction")
	}
	return nil
}

func (d *Dispatcher) retryDelay(attempts int32) time.Duration {
	delay := d.cfg.PollInterval * time.Duration(attempts+1)
	if delay > 5*time.Minute {
		delay = 5 * time.Minute
	}
	return delay
}

func (d *Dispatcher) process(ctx context.Context, tx pgx.Tx, job repository.Job) error {
	switch job.Kind {
	case commands.JobKindNotification:
		return d.processNotification(ctx, tx, job)
	case commands.JobKindEmail:
		return d.processEmail(ctx, tx, job)
	default:
		return errs.New("unknown job kind: " + job.Kind)
	}
}

func (d *Dispatcher) processNotification(ctx context.Context, tx pgx.Tx, job repository.Job) error {
	var payload commands.NotificationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "failed to decode notification payload")
	}

	listings := readstore.NewListingReadStore(tx)
	users := readstore.NewUserReadStore(tx)

	snap, err := listings.FindSnapshot(ctx, payload.ListingID)
	if err != nil {
		return err
	}
	actor, err := users.FindByID(ctx, payload.ActorID)
	if err != nil {
		return err
	}

	title, message := notificationText(booking.NotificationType(job.Topic), actor.FirstName, snap.Title)

	return d.notifs.Create(ctx, tx, repository.CreateNotificationParams{
		ID:          uuid.New(),
		RecipientID: payload.RecipientID,
		ActorID:     payload.ActorID,
		Type:        job.Topic,
		Title:       title,
		Message:     message,
		ActionURL:   actionURL(booking.NotificationType(job.Topic), payload),
		BookingID:   payload.BookingID,
		ListingID:   payload.ListingID,
		CreatedAt:   d.clock.Now(),
	})
}

func (d *Dispatcher) processEmail(ctx context.Context, tx pgx.Tx, job repository.Job) error {
	var payload commands.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Wrap(err, "failed to decode email payload")
	}

	bookings := readstore.NewBookingReadStore(tx)
	users := readstore.NewUserReadStore(tx)

	view, err := bookings.FindView(ctx, payload.BookingID)
	if err != nil {
		return err
	}
	recipient, err := users.FindByID(ctx, payload.RecipientID)
	if err != nil {
		return err
	}

	subject, body := emailContent(booking.EmailTemplate(job.Topic), recipient.FirstName, view)
	return d.sender.Send(ctx, recipient.Email, subject, body)
}

func notificationText(kind booking.NotificationType, actorName, listingTitle string) (title, message string) {
	switch kind {
	case booking.NotificationBookingRequested:
		return "New Booking Request", fmt.Sprintf("%s wants to rent your %q", actorName, listingTitle)
	case booking.NotificationBookingApproved:
		return "Booking Approved", fmt.Sprintf("Your booking for %q has been approved!", listingTitle)
	case booking.NotificationBookingRejected:
		return "Booking Declined", fmt.Sprintf("Your booking for %q was declined.", listingTitle)
	case booking.NotificationBookingCancelled:
		return "Booking Cancelled", fmt.Sprintf("The booking for %q has been cancelled.", listingTitle)
	case booking.NotificationBookingStarted:
		return "Rental Started", fmt.Sprintf("Your rental of %q has started.", listingTitle)
	case booking.NotificationBookingCompleted:
		return "Rental Completed", fmt.Sprintf("The rental of %q has been completed.", listingTitle)
	case booking.NotificationReviewReceived:
		return "New Review", fmt.Sprintf("%s left a review on %q", actorName, listingTitle)
	default:
		return "Notification", "You have a new notification."
	}
}

func actionURL(kind booking.NotificationType, payload commands.NotificationPayload) string {
	if kind == booking.NotificationReviewReceived {
		return "/listings/" + payload.ListingID.String()
	}
	return "/bookings/" + payload.BookingID.String()
}

const emailDateFormat = "Jan 2, 2006"

func emailContent(template booking.EmailTemplate, firstName string, view *queries.BookingView) (subject, body string) {
	dates := view.StartDate.Format(emailDateFormat) + " - " + view.EndDate.Format(emailDateFormat)

	switch template {
	case booking.EmailBookingRequested:
		subject = "New Booking Request for " + view.ListingTitle
		body = fmt.Sprintf("<p>Hi %s,</p><p><strong>%s</strong> wants to rent your <strong>%s</strong>.</p><p>Dates: %s</p><p>Total: $%.2f</p>",
			firstName, view.RenterName, view.ListingTitle, dates, float64(view.TotalPriceCents)/100.0)
	case booking.EmailBookingApproved:
		subject = "Your Booking Request was Approved!"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Great news! Your booking for <strong>%s</strong> has been approved.</p><p>Dates: %s</p>",
			firstName, view.ListingTitle, dates)
	case booking.EmailBookingDeclined:
		subject = "Your Booking Request was Declined"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Unfortunately your booking for <strong>%s</strong> was declined.</p>",
			firstName, view.ListingTitle)
	case booking.EmailBookingCancelled:
		subject = "Booking Cancelled"
		body = fmt.Sprintf("<p>Hi %s,</p><p>The booking for <strong>%s</strong> (%s) has been cancelled.</p>",
			firstName, view.ListingTitle, dates)
	case booking.EmailBookingCompleted:
		subject = "Rental Completed"
		body = fmt.Sprintf("<p>Hi %s,</p><p>The rental of <strong>%s</strong> has been completed. Leave a review to help other renters!</p>",
			firstName, view.ListingTitle)
	default:
		subject = "Notification"
		body = fmt.Sprintf("<p>Hi %s,</p><p>You have a new notification.</p>", firstName)
	}
	return subject, body
}
