package alarmjob_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres/alarmjob"
	"github.com/heartmarshall/myenglish-scheduler/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

func base(offsetYears int) time.Time {
	return time.Date(2040+offsetYears, 1, 1, 12, 0, 0, 0, time.UTC)
}

// newRepo empties the queue: claims see every due job, so the tests in this
// package run sequentially on a clean table.
func newRepo(t *testing.T) (*alarmjob.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	if _, err := pool.Exec(context.Background(), `TRUNCATE alarm_jobs`); err != nil {
		t.Fatalf("truncate alarm_jobs: %v", err)
	}
	return alarmjob.New(pool), pool
}

func TestRepo_Enqueue_ReplacesPendingJob(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()

	f := testhelper.SeedFolder(t, pool, uuid.New(), base(0))

	first, err := repo.Enqueue(ctx, f.ID, base(0).Add(time.Hour))
	require.NoError(t, err)
	second, err := repo.Enqueue(ctx, f.ID, base(0).Add(2*time.Hour))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	pending, err := repo.Pending(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, pending.ID)
	assert.True(t, pending.RunAt.Equal(base(0).Add(2*time.Hour)))
	assert.Zero(t, pending.Attempts)
}

func TestRepo_Enqueue_UnknownFolder(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.Enqueue(context.Background(), uuid.New(), base(1))
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestRepo_ClaimCompleteRetry(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()
	now := base(2)

	a := testhelper.SeedFolder(t, pool, uuid.New(), now)
	b := testhelper.SeedFolder(t, pool, uuid.New(), now)
	c := testhelper.SeedFolder(t, pool, uuid.New(), now)

	_, err := repo.Enqueue(ctx, a.ID, now.Add(-2*time.Minute))
	require.NoError(t, err)
	_, err = repo.Enqueue(ctx, b.ID, now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = repo.Enqueue(ctx, c.ID, now.Add(time.Hour))
	require.NoError(t, err)

	claimed, err := repo.ClaimDue(ctx, now, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, claimed, 2)
	assert.Equal(t, a.ID, claimed[0].FolderID)
	assert.Equal(t, b.ID, claimed[1].FolderID)

	again, err := repo.ClaimDue(ctx, now, 10, time.Minute)
	require.NoError(t, err)
	assert.Empty(t, again, "leased jobs must not be claimed twice")

	require.NoError(t, repo.Complete(ctx, claimed[0]))
	_, err = repo.Pending(ctx, a.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.Retry(ctx, claimed[1], now.Add(time.Second), errors.New("notifier down")))
	retried, err := repo.Pending(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, retried.Attempts)
	assert.Equal(t, "notifier down", retried.LastError)
	assert.Nil(t, retried.LockedUntil)

	afterLease, err := repo.ClaimDue(ctx, now.Add(2*time.Second), 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, afterLease, 1)
	assert.Equal(t, b.ID, afterLease[0].FolderID)
}

func TestRepo_Complete_KeepsReplacement(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()
	now := base(3)

	f := testhelper.SeedFolder(t, pool, uuid.New(), now)
	_, err := repo.Enqueue(ctx, f.ID, now)
	require.NoError(t, err)

	claimed, err := repo.ClaimDue(ctx, now, 10, time.Minute)
	require.NoError(t, err)
	require.Len(t, claimed, 1)

	rearmed, err := repo.Enqueue(ctx, f.ID, now.Add(6*time.Hour))
	require.NoError(t, err)

	require.NoError(t, repo.Complete(ctx, claimed[0]))
	require.NoError(t, repo.Retry(ctx, claimed[0], now.Add(time.Second), errors.New("late")))

	pending, err := repo.Pending(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, rearmed.ID, pending.ID)
	assert.Zero(t, pending.Attempts)
}

func TestRepo_ClaimDue_ConcurrentClaimersDisjoint(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()
	now := base(4)

	const jobs = 20
	for i := 0; i < jobs; i++ {
		f := testhelper.SeedFolder(t, pool, uuid.New(), now)
		_, err := repo.Enqueue(ctx, f.ID, now.Add(-time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	var (
		mu   sync.Mutex
		seen = make(map[uuid.UUID]int)
		wg   sync.WaitGroup
	)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimed, err := repo.ClaimDue(ctx, now, 10, time.Minute)
			if err != nil {
				t.Errorf("ClaimDue: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, j := range claimed {
				seen[j.ID]++
			}
		}()
	}
	wg.Wait()

	for id, n := range seen {
		assert.Equal(t, 1, n, "job %s claimed %d times", id, n)
	}

	rest, err := repo.ClaimDue(ctx, now, jobs, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, jobs, len(seen)+len(rest))
}
