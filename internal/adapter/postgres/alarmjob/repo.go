// Package alarmjob implements the durable folder-alarm queue using PostgreSQL.
//
// The folder_id primary key keeps at most one job per folder. Complete and
// Retry match on (folder_id, id) so a job replaced while it ran is left alone.
package alarmjob

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var columns = []string{"id", "folder_id", "run_at", "attempts", "last_error", "locked_until", "created_at"}

const claimDueSQL = `
WITH due AS (
    SELECT folder_id FROM alarm_jobs
    WHERE run_at <= $1
      AND (locked_until IS NULL OR locked_until <= $1)
    ORDER BY run_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
UPDATE alarm_jobs j
SET locked_until = $3
FROM due
WHERE j.folder_id = due.folder_id
RETURNING j.id, j.folder_id, j.run_at, j.attempts, j.last_error, j.locked_until, j.created_at`

// Repo is the PostgreSQL job queue.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new alarm job repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Enqueue replaces any pending job for the folder with a fresh one.
func (r *Repo) Enqueue(ctx context.Context, folderID uuid.UUID, runAt time.Time) (domain.AlarmJob, error) {
	stmt := postgres.Builder.Insert("alarm_jobs").
		Columns(columns...).
		Values(uuid.New(), folderID, runAt, 0, "", nil, sq.Expr("now()")).
		Suffix(`ON CONFLICT (folder_id) DO UPDATE SET
			id = EXCLUDED.id,
			run_at = EXCLUDED.run_at,
			attempts = 0,
			last_error = '',
			locked_until = NULL,
			created_at = EXCLUDED.created_at
		RETURNING ` + strings.Join(columns, ", "))

	job, err := scanJob(postgres.QueryRow(ctx, r.pool, stmt))
	if err != nil {
		return domain.AlarmJob{}, postgres.MapError(err, "alarm_job", folderID)
	}
	return job, nil
}

// ClaimDue leases up to limit jobs whose run_at has passed, earliest first.
// Concurrent claimers never receive the same job.
func (r *Repo) ClaimDue(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.AlarmJob, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, claimDueSQL, now, limit, now.Add(lease))
	if err != nil {
		return nil, fmt.Errorf("claim due alarm jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.AlarmJob{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alarm job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("claim due alarm jobs: %w", err)
	}

	slices.SortFunc(jobs, func(a, b domain.AlarmJob) int { return a.RunAt.Compare(b.RunAt) })
	return jobs, nil
}

// Complete deletes the job unless it was replaced since it was claimed.
func (r *Repo) Complete(ctx context.Context, job domain.AlarmJob) error {
	_, err := postgres.Exec(ctx, r.pool, postgres.Builder.Delete("alarm_jobs").
		Where(sq.Eq{"folder_id": job.FolderID, "id": job.ID}))
	if err != nil {
		return postgres.MapError(err, "alarm_job", job.ID)
	}
	return nil
}

// Retry reschedules a failed job unless it was replaced since it was claimed.
func (r *Repo) Retry(ctx context.Context, job domain.AlarmJob, runAt time.Time, cause error) error {
	_, err := postgres.Exec(ctx, r.pool, postgres.Builder.Update("alarm_jobs").
		Set("run_at", runAt).
		Set("attempts", job.Attempts+1).
		Set("last_error", cause.Error()).
		Set("locked_until", nil).
		Where(sq.Eq{"folder_id": job.FolderID, "id": job.ID}))
	if err != nil {
		return postgres.MapError(err, "alarm_job", job.ID)
	}
	return nil
}

// Pending returns the folder's pending job.
func (r *Repo) Pending(ctx context.Context, folderID uuid.UUID) (domain.AlarmJob, error) {
	job, err := scanJob(postgres.QueryRow(ctx, r.pool,
		postgres.Builder.Select(columns...).From("alarm_jobs").Where(sq.Eq{"folder_id": folderID})))
	if err != nil {
		return domain.AlarmJob{}, postgres.MapError(err, "alarm_job", folderID)
	}
	return job, nil
}

func scanJob(row pgx.Row) (domain.AlarmJob, error) {
	var j domain.AlarmJob
	err := row.Scan(&j.ID, &j.FolderID, &j.RunAt, &j.Attempts, &j.LastError, &j.LockedUntil, &j.CreatedAt)
	return j, err
}
