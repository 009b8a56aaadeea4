package repository

import (
	"context"
	"time"

	"rentease/internal/infra"
	"rentease/internal/infra/db"
	"rentease/internal/pkg/pgconv"
	"rentease/internal/usecase/shared"
)

// Job statuses for the notification_jobs outbox table.
const (
	JobStatusQueued    = "queued"
	JobStatusSucceeded = "succeeded"
	JobStatusFailed    = "failed"
)

// Job is one queued effect row, claimed and dispatched by the worker.
type Job struct {
	ID       int64
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int32
}

type OutboxRepository struct{}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

const createJobQuery = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)`

func (r *OutboxRepository) CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := dbtx.Exec(ctx, createJobQuery, kind, topic, payload, pgconv.TimeToPgtype(runAt), JobStatusQueued)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue job", err, classifyPgErr(err))
	}
	return nil
}

// Jobs are claimed in insertion order so effects for one booking are
// dispatched in the order their transitions committed. SKIP LOCKED
// keeps concurrent workers off each other's rows.
const claimQueuedQuery = `
SELECT id, kind, topic, payload, run_at, attempts
FROM notification_jobs
WHERE status = $1 AND run_at <= $2
ORDER BY id
LIMIT $3
FOR UPDATE SKIP LOCKED`

func (r *OutboxRepository) ClaimQueued(ctx context.Context, dbtx db.DBTX, now time.Time, limit int32) ([]Job, error) {
	rows, err := dbtx.Query(ctx, claimQueuedQuery, JobStatusQueued, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim jobs", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.RunAt, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read jobs", err)
	}
	return jobs, nil
}

const markSucceededQuery = `
UPDATE notification_jobs
SET status = $1, attempts = attempts + 1, completed_at = $2
WHERE id = $3`

func (r *OutboxRepository) MarkSucceeded(ctx context.Context, dbtx db.DBTX, jobID int64, now time.Time) error {
	_, err := dbtx.Exec(ctx, markSucceededQuery, JobStatusSucceeded, pgconv.TimeToPgtype(now), jobID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark job succeeded", err)
	}
	return nil
}

// MarkFailed requeues the job with a delay until attempts reach the
// cap, then parks it as failed with the last error recorded.
const markFailedQuery = `
UPDATE notification_jobs
SET status = CASE WHEN attempts + 1 >= $1 THEN $2 ELSE $3 END,
    attempts = attempts + 1,
    last_error = $4,
    run_at = $5
WHERE id = $6`

func (r *OutboxRepository) MarkFailed(ctx context.Context, dbtx db.DBTX, jobID int64, maxAttempts int32, cause string, retryAt time.Time) error {
	_, err := dbtx.Exec(ctx, markFailedQuery,
		maxAttempts, JobStatusFailed, JobStatusQueued, cause, pgconv.TimeToPgtype(retryAt), jobID)
	if err != nil {
		return infra.WrapRepoErr("failed to mark job failed", err)
	}
	return nil
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
