package repository

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/kohai/gamecredit/internal/core/domain"
)

// jobLease is how long a running job may go without an update before
// another worker may claim it again.
const jobLease = 5 * time.Minute

var jobColumns = []string{
	"id", "kind", "order_number", "status", "attempts", "max_attempts",
	"run_at", "last_error", "created_at", "updated_at",
}

// Enqueue is a no-op while a job of the same kind is queued or running for the order.
func (or *Repository) Enqueue(ctx context.Context, job *domain.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.RunAt.IsZero() {
		job.RunAt = time.Now()
	}
	job.Status = domain.JobStatusQueued

	sql, args, err := or.db.QueryBuilder.
		Insert("jobs").
		Columns("id", "kind", "order_number", "status", "max_attempts", "run_at").
		Values(job.ID, job.Kind, job.OrderNumber, job.Status, job.MaxAttempts, job.RunAt).
		Suffix("ON CONFLICT (kind, order_number) WHERE status IN ('queued', 'running') DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}

	_, err = or.db.Exec(ctx, sql, args...)
	return err
}

// ClaimJobs marks up to limit due jobs as running and returns them. Rows
// locked by another worker are skipped.
func (or *Repository) ClaimJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	now := time.Now()

	due := sq.Select("id").
		From("jobs").
		Where(sq.Or{
			sq.And{sq.Eq{"status": domain.JobStatusQueued}, sq.LtOrEq{"run_at": now}},
			sq.And{sq.Eq{"status": domain.JobStatusRunning}, sq.Lt{"updated_at": now.Add(-jobLease)}},
		}).
		OrderBy("run_at").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED")

	sql, args, err := or.db.QueryBuilder.
		Update("jobs").
		Set("status", domain.JobStatusRunning).
		Set("attempts", sq.Expr("attempts + 1")).
		Set("updated_at", now).
		Where(sq.Expr("id IN (?)", due)).
		Suffix("RETURNING " + strings.Join(jobColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0, limit)
	for rows.Next() {
		job := domain.Job{}
		err := rows.Scan(
			&job.ID,
			&job.Kind,
			&job.OrderNumber,
			&job.Status,
			&job.Attempts,
			&job.MaxAttempts,
			&job.RunAt,
			&job.LastError,
			&job.CreatedAt,
			&job.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}

func (or *Repository) CompleteJob(ctx context.Context, id uuid.UUID) error {
	return or.updateJob(ctx, id, map[string]any{
		"status": domain.JobStatusCompleted,
	})
}

func (or *Repository) RescheduleJob(ctx context.Context, id uuid.UUID, runAt time.Time, lastErr string) error {
	return or.updateJob(ctx, id, map[string]any{
		"status":     domain.JobStatusQueued,
		"run_at":     runAt,
		"last_error": lastErr,
	})
}

func (or *Repository) FailJob(ctx context.Context, id uuid.UUID, lastErr string) error {
	return or.updateJob(ctx, id, map[string]any{
		"status":     domain.JobStatusFailed,
		"last_error": lastErr,
	})
}

func (or *Repository) updateJob(ctx context.Context, id uuid.UUID, set map[string]any) error {
	set["updated_at"] = sq.Expr("now()")

	sql, args, err := or.db.QueryBuilder.
		Update("jobs").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := or.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
