package alarm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var _ jobQueue = &jobQueueMock{}

type jobQueueMock struct {
	EnqueueFunc func(ctx context.Context, folderID uuid.UUID, runAt time.Time) (domain.AlarmJob, error)

	calls struct {
		Enqueue []struct {
			Ctx      context.Context
			FolderID uuid.UUID
			RunAt    time.Time
		}
	}
	lockEnqueue sync.RWMutex
}

func (mock *jobQueueMock) Enqueue(ctx context.Context, folderID uuid.UUID, runAt time.Time) (domain.AlarmJob, error) {
	if mock.EnqueueFunc == nil {
		panic("jobQueueMock.EnqueueFunc: method is nil but jobQueue.Enqueue was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
		RunAt    time.Time
	}{Ctx: ctx, FolderID: folderID, RunAt: runAt}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, folderID, runAt)
}

func (mock *jobQueueMock) EnqueueCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
	RunAt    time.Time
} {
	mock.lockEnqueue.RLock()
	calls := mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}
