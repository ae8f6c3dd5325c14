package study

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var _ cardStore = &cardStoreMock{}

type cardStoreMock struct {
	LoadCardFunc     func(ctx context.Context, id uuid.UUID) (domain.Card, error)
	SaveCardFunc     func(ctx context.Context, card domain.Card) error
	ListDueCardsFunc func(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]domain.Card, error)

	calls struct {
		LoadCard []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		SaveCard []struct {
			Ctx  context.Context
			Card domain.Card
		}
		ListDueCards []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Now     time.Time
		}
	}
	lockLoadCard     sync.RWMutex
	lockSaveCard     sync.RWMutex
	lockListDueCards sync.RWMutex
}

func (mock *cardStoreMock) LoadCard(ctx context.Context, id uuid.UUID) (domain.Card, error) {
	if mock.LoadCardFunc == nil {
		panic("cardStoreMock.LoadCardFunc: method is nil but cardStore.LoadCard was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockLoadCard.Lock()
	mock.calls.LoadCard = append(mock.calls.LoadCard, callInfo)
	mock.lockLoadCard.Unlock()
	return mock.LoadCardFunc(ctx, id)
}

func (mock *cardStoreMock) LoadCardCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockLoadCard.RLock()
	calls := mock.calls.LoadCard
	mock.lockLoadCard.RUnlock()
	return calls
}

func (mock *cardStoreMock) SaveCard(ctx context.Context, card domain.Card) error {
	if mock.SaveCardFunc == nil {
		panic("cardStoreMock.SaveCardFunc: method is nil but cardStore.SaveCard was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Card domain.Card
	}{Ctx: ctx, Card: card}
	mock.lockSaveCard.Lock()
	mock.calls.SaveCard = append(mock.calls.SaveCard, callInfo)
	mock.lockSaveCard.Unlock()
	return mock.SaveCardFunc(ctx, card)
}

func (mock *cardStoreMock) SaveCardCalls() []struct {
	Ctx  context.Context
	Card domain.Card
} {
	mock.lockSaveCard.RLock()
	calls := mock.calls.SaveCard
	mock.lockSaveCard.RUnlock()
	return calls
}

func (mock *cardStoreMock) ListDueCards(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]domain.Card, error) {
	if mock.ListDueCardsFunc == nil {
		panic("cardStoreMock.ListDueCardsFunc: method is nil but cardStore.ListDueCards was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Now     time.Time
	}{Ctx: ctx, OwnerID: ownerID, Now: now}
	mock.lockListDueCards.Lock()
	mock.calls.ListDueCards = append(mock.calls.ListDueCards, callInfo)
	mock.lockListDueCards.Unlock()
	return mock.ListDueCardsFunc(ctx, ownerID, now)
}

func (mock *cardStoreMock) ListDueCardsCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Now     time.Time
} {
	mock.lockListDueCards.RLock()
	calls := mock.calls.ListDueCards
	mock.lockListDueCards.RUnlock()
	return calls
}
