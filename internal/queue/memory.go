// Package queue runs delayed folder-alarm jobs.
//
// A queue holds at most one job per folder: enqueueing for a folder that
// already has a job replaces it. Memory is an in-process queue for tests; the
// queue the scheduler runs on is adapter/postgres/alarmjob, which satisfies
// the same contract.
package queue

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// Memory is a mutex-guarded in-memory job queue keyed by folder.
type Memory struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]domain.AlarmJob
}

// NewMemory creates an empty Memory queue.
func NewMemory() *Memory {
	return &Memory{jobs: make(map[uuid.UUID]domain.AlarmJob)}
}

// Enqueue replaces any pending job for the folder with a fresh one.
func (q *Memory) Enqueue(_ context.Context, folderID uuid.UUID, runAt time.Time) (domain.AlarmJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	job := domain.AlarmJob{
		ID:        uuid.New(),
		FolderID:  folderID,
		RunAt:     runAt,
		CreatedAt: time.Now(),
	}
	q.jobs[folderID] = job
	return job, nil
}

// ClaimDue leases up to limit jobs whose RunAt has passed, earliest first.
// A leased job is invisible to other claims until the lease expires.
func (q *Memory) ClaimDue(_ context.Context, now time.Time, limit int, lease time.Duration) ([]domain.AlarmJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []domain.AlarmJob
	for _, j := range q.jobs {
		if j.RunAt.After(now) {
			continue
		}
		if j.LockedUntil != nil && j.LockedUntil.After(now) {
			continue
		}
		due = append(due, j)
	}

	slices.SortFunc(due, func(a, b domain.AlarmJob) int { return a.RunAt.Compare(b.RunAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	until := now.Add(lease)
	for i := range due {
		due[i].LockedUntil = &until
		q.jobs[due[i].FolderID] = due[i]
	}
	return due, nil
}

// Complete removes the job unless it was replaced since it was claimed.
func (q *Memory) Complete(_ context.Context, job domain.AlarmJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if cur, ok := q.jobs[job.FolderID]; ok && cur.ID == job.ID {
		delete(q.jobs, job.FolderID)
	}
	return nil
}

// Retry reschedules a failed job unless it was replaced since it was claimed.
func (q *Memory) Retry(_ context.Context, job domain.AlarmJob, runAt time.Time, cause error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	cur, ok := q.jobs[job.FolderID]
	if !ok || cur.ID != job.ID {
		return nil
	}
	cur.RunAt = runAt
	cur.Attempts = job.Attempts + 1
	cur.LastError = cause.Error()
	cur.LockedUntil = nil
	q.jobs[job.FolderID] = cur
	return nil
}

// Pending returns the folder's pending job, if any.
func (q *Memory) Pending(folderID uuid.UUID) (domain.AlarmJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	j, ok := q.jobs[folderID]
	return j, ok
}

// Len returns the number of pending jobs.
func (q *Memory) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}
