package alarm

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var _ folderStore = &folderStoreMock{}

type folderStoreMock struct {
	LoadFolderWithCardsFunc func(ctx context.Context, id uuid.UUID) (domain.Folder, []domain.FolderCard, error)
	MarkSlotSentFunc        func(ctx context.Context, folderID uuid.UUID, slot int) (bool, error)
	SetNextAlarmFunc        func(ctx context.Context, folderID uuid.UUID, at time.Time) error

	calls struct {
		LoadFolderWithCards []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		MarkSlotSent []struct {
			Ctx      context.Context
			FolderID uuid.UUID
			Slot     int
		}
		SetNextAlarm []struct {
			Ctx      context.Context
			FolderID uuid.UUID
			At       time.Time
		}
	}
	lockLoadFolderWithCards sync.RWMutex
	lockMarkSlotSent        sync.RWMutex
	lockSetNextAlarm        sync.RWMutex
}

func (mock *folderStoreMock) LoadFolderWithCards(ctx context.Context, id uuid.UUID) (domain.Folder, []domain.FolderCard, error) {
	if mock.LoadFolderWithCardsFunc == nil {
		panic("folderStoreMock.LoadFolderWithCardsFunc: method is nil but folderStore.LoadFolderWithCards was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockLoadFolderWithCards.Lock()
	mock.calls.LoadFolderWithCards = append(mock.calls.LoadFolderWithCards, callInfo)
	mock.lockLoadFolderWithCards.Unlock()
	return mock.LoadFolderWithCardsFunc(ctx, id)
}

func (mock *folderStoreMock) LoadFolderWithCardsCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockLoadFolderWithCards.RLock()
	calls := mock.calls.LoadFolderWithCards
	mock.lockLoadFolderWithCards.RUnlock()
	return calls
}

func (mock *folderStoreMock) MarkSlotSent(ctx context.Context, folderID uuid.UUID, slot int) (bool, error) {
	if mock.MarkSlotSentFunc == nil {
		panic("folderStoreMock.MarkSlotSentFunc: method is nil but folderStore.MarkSlotSent was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
		Slot     int
	}{Ctx: ctx, FolderID: folderID, Slot: slot}
	mock.lockMarkSlotSent.Lock()
	mock.calls.MarkSlotSent = append(mock.calls.MarkSlotSent, callInfo)
	mock.lockMarkSlotSent.Unlock()
	return mock.MarkSlotSentFunc(ctx, folderID, slot)
}

func (mock *folderStoreMock) MarkSlotSentCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
	Slot     int
} {
	mock.lockMarkSlotSent.RLock()
	calls := mock.calls.MarkSlotSent
	mock.lockMarkSlotSent.RUnlock()
	return calls
}

func (mock *folderStoreMock) SetNextAlarm(ctx context.Context, folderID uuid.UUID, at time.Time) error {
	if mock.SetNextAlarmFunc == nil {
		panic("folderStoreMock.SetNextAlarmFunc: method is nil but folderStore.SetNextAlarm was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		FolderID uuid.UUID
		At       time.Time
	}{Ctx: ctx, FolderID: folderID, At: at}
	mock.lockSetNextAlarm.Lock()
	mock.calls.SetNextAlarm = append(mock.calls.SetNextAlarm, callInfo)
	mock.lockSetNextAlarm.Unlock()
	return mock.SetNextAlarmFunc(ctx, folderID, at)
}

func (mock *folderStoreMock) SetNextAlarmCalls() []struct {
	Ctx      context.Context
	FolderID uuid.UUID
	At       time.Time
} {
	mock.lockSetNextAlarm.RLock()
	calls := mock.calls.SetNextAlarm
	mock.lockSetNextAlarm.RUnlock()
	return calls
}
