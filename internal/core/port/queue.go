package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kohai/gamecredit/internal/core/domain"
)

//go:generate mockgen -source=queue.go -destination=mock/queue.go -package=mock
type JobQueue interface {
	// Enqueue is a no-op when a job of the same kind is already queued or running for the order.
	Enqueue(ctx context.Context, job *domain.Job) error
}

type JobStore interface {
	JobQueue
	ClaimJobs(ctx context.Context, limit int) ([]*domain.Job, error)
	CompleteJob(ctx context.Context, id uuid.UUID) error
	RescheduleJob(ctx context.Context, id uuid.UUID, runAt time.Time, lastErr string) error
	FailJob(ctx context.Context, id uuid.UUID, lastErr string) error
}
