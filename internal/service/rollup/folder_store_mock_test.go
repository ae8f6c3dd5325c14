package rollup

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var _ folderStore = &folderStoreMock{}

type folderStoreMock struct {
	ListFoldersForDateFunc    func(ctx context.Context, date time.Time) ([]domain.Folder, error)
	ListFolderItemsFunc       func(ctx context.Context, folderID uuid.UUID) ([]domain.FolderItem, error)
	DeactivateOwnerAlarmsFunc func(ctx context.Context, ownerID uuid.UUID, date time.Time) (int, error)
	DeactivateAlarmFunc       func(ctx context.Context, folderID uuid.UUID, rollupDate time.Time) (bool, error)
	ResetReminderMaskFunc     func(ctx context.Context, folderID uuid.UUID, rollupDate time.Time) (bool, error)

	calls struct {
		ListFoldersForDate []struct {
			Ctx  context.Context
			Date time.Time
		}
		ListFolderItems []struct {
			Ctx      context.Context
			FolderID uuid.UUID
		}
		DeactivateOwnerAlarms []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Date    time.Time
		}
		DeactivateAlarm []struct {
			Ctx        context.Context
			FolderID   uuid.UUID
			RollupDate time.Time
		}
		ResetReminderMask []struct {
			Ctx        context.Context
			FolderID   uuid.UUID
			RollupDate time.Time
		}
	}
	lockListFoldersForDate    sync.RWMutex
	lockListFolderItems       sync.RWMutex
	lockDeactivateOwnerAlarms sync.RWMutex
	lockDeactivateAlarm       sync.RWMutex
	lockResetReminderMask     sync.RWMutex
}

func (mock *folderStoreMock) ListFoldersForDate(ctx context.Context, date time.Time) ([]domain.Folder, error) {
	if mock.ListFoldersForDateFunc == nil {
		panic("folderStoreMock.ListFoldersForDateFunc: method is nil but folderStore.ListFoldersForDate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Date time.Time
	}{Ctx: ctx, Date: date}
	mock.lockListFoldersForDate.Lock()
	mock.calls.ListFoldersForDate = append(mock.calls.ListFoldersForDate, callInfo)
	mock.lockListFoldersForDate.Unlock()
	return mock.ListFoldersForDateFunc(ctx, date)
}

func (mock *folderStoreMock) ListFoldersForDateCalls() []struct {
	Ctx  context.Context
	Date time.Time
} {
	mock.lockListFoldersForDate.RLock()
	calls := mock.calls.ListFoldersForDate
	mock.lockListFoldersForDate.RUnlock()
	return calls
}

func (mock *folderStoreMock) ListFolderItems(ctx context.Context, folderID uuid.UUID) ([]domain.FolderItem, error) {
	if mock.ListFolderItemsFunc == nil {
		panic("folderStoreMock.ListFolderItemsFunc: method is nil but folderStore.ListFolderItems was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
	}{Ctx: ctx, FolderID: folderID}
	mock.lockListFolderItems.Lock()
	mock.calls.ListFolderItems = append(mock.calls.ListFolderItems, callInfo)
	mock.lockListFolderItems.Unlock()
	return mock.ListFolderItemsFunc(ctx, folderID)
}

func (mock *folderStoreMock) ListFolderItemsCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
} {
	mock.lockListFolderItems.RLock()
	calls := mock.calls.ListFolderItems
	mock.lockListFolderItems.RUnlock()
	return calls
}

func (mock *folderStoreMock) DeactivateOwnerAlarms(ctx context.Context, ownerID uuid.UUID, date time.Time) (int, error) {
	if mock.DeactivateOwnerAlarmsFunc == nil {
		panic("folderStoreMock.DeactivateOwnerAlarmsFunc: method is nil but folderStore.DeactivateOwnerAlarms was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Date    time.Time
	}{Ctx: ctx, OwnerID: ownerID, Date: date}
	mock.lockDeactivateOwnerAlarms.Lock()
	mock.calls.DeactivateOwnerAlarms = append(mock.calls.DeactivateOwnerAlarms, callInfo)
	mock.lockDeactivateOwnerAlarms.Unlock()
	return mock.DeactivateOwnerAlarmsFunc(ctx, ownerID, date)
}

func (mock *folderStoreMock) DeactivateOwnerAlarmsCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Date    time.Time
} {
	mock.lockDeactivateOwnerAlarms.RLock()
	calls := mock.calls.DeactivateOwnerAlarms
	mock.lockDeactivateOwnerAlarms.RUnlock()
	return calls
}

func (mock *folderStoreMock) DeactivateAlarm(ctx context.Context, folderID uuid.UUID, rollupDate time.Time) (bool, error) {
	if mock.DeactivateAlarmFunc == nil {
		panic("folderStoreMock.DeactivateAlarmFunc: method is nil but folderStore.DeactivateAlarm was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		FolderID   uuid.UUID
		RollupDate time.Time
	}{Ctx: ctx, FolderID: folderID, RollupDate: rollupDate}
	mock.lockDeactivateAlarm.Lock()
	mock.calls.DeactivateAlarm = append(mock.calls.DeactivateAlarm, callInfo)
	mock.lockDeactivateAlarm.Unlock()
	return mock.DeactivateAlarmFunc(ctx, folderID, rollupDate)
}

func (mock *folderStoreMock) DeactivateAlarmCalls() []struct {
	Ctx        context.Context
	FolderID   uuid.UUID
	RollupDate time.Time
} {
	mock.lockDeactivateAlarm.RLock()
	calls := mock.calls.DeactivateAlarm
	mock.lockDeactivateAlarm.RUnlock()
	return calls
}

func (mock *folderStoreMock) ResetReminderMask(ctx context.Context, folderID uuid.UUID, rollupDate time.Time) (bool, error) {
	if mock.ResetReminderMaskFunc == nil {
		panic("folderStoreMock.ResetReminderMaskFunc: method is nil but folderStore.ResetReminderMask was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		FolderID   uuid.UUID
		RollupDate time.Time
	}{Ctx: ctx, FolderID: folderID, RollupDate: rollupDate}
	mock.lockResetReminderMask.Lock()
	mock.calls.ResetReminderMask = append(mock.calls.ResetReminderMask, callInfo)
	mock.lockResetReminderMask.Unlock()
	return mock.ResetReminderMaskFunc(ctx, folderID, rollupDate)
}

func (mock *folderStoreMock) ResetReminderMaskCalls() []struct {
	Ctx        context.Context
	FolderID   uuid.UUID
	RollupDate time.Time
} {
	mock.lockResetReminderMask.RLock()
	calls := mock.calls.ResetReminderMask
	mock.lockResetReminderMask.RUnlock()
	return calls
}
