package study

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ alarmScheduler = &alarmSchedulerMock{}

type alarmSchedulerMock struct {
	ScheduleFolderFunc func(ctx context.Context, folderID uuid.UUID, delay time.Duration) error

	calls struct {
		ScheduleFolder []struct {
			Ctx      context.Context
			FolderID uuid.UUID
			Delay    time.Duration
		}
	}
	lockScheduleFolder sync.RWMutex
}

func (mock *alarmSchedulerMock) ScheduleFolder(ctx context.Context, folderID uuid.UUID, delay time.Duration) error {
	if mock.ScheduleFolderFunc == nil {
		panic("alarmSchedulerMock.ScheduleFolderFunc: method is nil but alarmScheduler.ScheduleFolder was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
		Delay    time.Duration
	}{Ctx: ctx, FolderID: folderID, Delay: delay}
	mock.lockScheduleFolder.Lock()
	mock.calls.ScheduleFolder = append(mock.calls.ScheduleFolder, callInfo)
	mock.lockScheduleFolder.Unlock()
	return mock.ScheduleFolderFunc(ctx, folderID, delay)
}

func (mock *alarmSchedulerMock) ScheduleFolderCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
	Delay    time.Duration
} {
	mock.lockScheduleFolder.RLock()
	calls := mock.calls.ScheduleFolder
	mock.lockScheduleFolder.RUnlock()
	return calls
}
