package study

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var _ folderStore = &folderStoreMock{}

type folderStoreMock struct {
	LoadFolderWithCardsFunc func(ctx context.Context, id uuid.UUID) (domain.Folder, []domain.FolderCard, error)
	SaveFolderItemFunc      func(ctx context.Context, item domain.FolderItem) error

	calls struct {
		LoadFolderWithCards []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SaveFolderItem []struct {
			Ctx  context.Context
			Item domain.FolderItem
		}
	}
	lockLoadFolderWithCards sync.RWMutex
	lockSaveFolderItem      sync.RWMutex
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

func (mock *folderStoreMock) SaveFolderItem(ctx context.Context, item domain.FolderItem) error {
	if mock.SaveFolderItemFunc == nil {
		panic("folderStoreMock.SaveFolderItemFunc: method is nil but folderStore.SaveFolderItem was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item domain.FolderItem
	}{Ctx: ctx, Item: item}
	mock.lockSaveFolderItem.Lock()
	mock.calls.SaveFolderItem = append(mock.calls.SaveFolderItem, callInfo)
	mock.lockSaveFolderItem.Unlock()
	return mock.SaveFolderItemFunc(ctx, item)
}

func (mock *folderStoreMock) SaveFolderItemCalls() []struct {
	Ctx  context.Context
	Item domain.FolderItem
} {
	mock.lockSaveFolderItem.RLock()
	calls := mock.calls.SaveFolderItem
	mock.lockSaveFolderItem.RUnlock()
	return calls
}
