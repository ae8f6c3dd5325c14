package rollup

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var _ statStore = &statStoreMock{}

type statStoreMock struct {
	ListUsersWithYesterdayStatsFunc func(ctx context.Context, date time.Time) ([]domain.UserStat, error)
	SaveStreakFunc                  func(ctx context.Context, ownerID uuid.UUID, streak int, evaluatedFor time.Time) (bool, error)

	calls struct {
		ListUsersWithYesterdayStats []struct {
			Ctx  context.Context
			Date time.Time
		}
		SaveStreak []struct {
			Ctx          context.Context
			OwnerID      uuid.UUID
			Streak       int
			EvaluatedFor time.Time
		}
	}
	lockListUsersWithYesterdayStats sync.RWMutex
	lockSaveStreak                  sync.RWMutex
}

func (mock *statStoreMock) ListUsersWithYesterdayStats(ctx context.Context, date time.Time) ([]domain.UserStat, error) {
	if mock.ListUsersWithYesterdayStatsFunc == nil {
		panic("statStoreMock.ListUsersWithYesterdayStatsFunc: method is nil but statStore.ListUsersWithYesterdayStats was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Date time.Time
	}{Ctx: ctx, Date: date}
	mock.lockListUsersWithYesterdayStats.Lock()
	mock.calls.ListUsersWithYesterdayStats = append(mock.calls.ListUsersWithYesterdayStats, callInfo)
	mock.lockListUsersWithYesterdayStats.Unlock()
	return mock.ListUsersWithYesterdayStatsFunc(ctx, date)
}

func (mock *statStoreMock) ListUsersWithYesterdayStatsCalls() []struct {
	Ctx  context.Context
	Date time.Time
} {
	mock.lockListUsersWithYesterdayStats.RLock()
	calls := mock.calls.ListUsersWithYesterdayStats
	mock.lockListUsersWithYesterdayStats.RUnlock()
	return calls
}

func (mock *statStoreMock) SaveStreak(ctx context.Context, ownerID uuid.UUID, streak int, evaluatedFor time.Time) (bool, error) {
	if mock.SaveStreakFunc == nil {
		panic("statStoreMock.SaveStreakFunc: method is nil but statStore.SaveStreak was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		OwnerID      uuid.UUID
		Streak       int
		EvaluatedFor time.Time
	}{Ctx: ctx, OwnerID: ownerID, Streak: streak, EvaluatedFor: evaluatedFor}
	mock.lockSaveStreak.Lock()
	mock.calls.SaveStreak = append(mock.calls.SaveStreak, callInfo)
	mock.lockSaveStreak.Unlock()
	return mock.SaveStreakFunc(ctx, ownerID, streak, evaluatedFor)
}

func (mock *statStoreMock) SaveStreakCalls() []struct {
	Ctx          context.Context
	OwnerID      uuid.UUID
	Streak       int
	EvaluatedFor time.Time
} {
	mock.lockSaveStreak.RLock()
	calls := mock.calls.SaveStreak
	mock.lockSaveStreak.RUnlock()
	return calls
}
