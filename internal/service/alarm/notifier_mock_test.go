package alarm

import (
	"context"
	"sync"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	NotifyReminderDueFunc func(ctx context.Context, ev domain.ReminderDue) error

	calls struct {
		NotifyReminderDue []struct {
			Ctx context.Context
			Ev  domain.ReminderDue
		}
	}
	lockNotifyReminderDue sync.RWMutex
}

func (mock *notifierMock) NotifyReminderDue(ctx context.Context, ev domain.ReminderDue) error {
	if mock.NotifyReminderDueFunc == nil {
		panic("notifierMock.NotifyReminderDueFunc: method is nil but notifier.NotifyReminderDue was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ev  domain.ReminderDue
	}{Ctx: ctx, Ev: ev}
	mock.lockNotifyReminderDue.Lock()
	mock.calls.NotifyReminderDue = append(mock.calls.NotifyReminderDue, callInfo)
	mock.lockNotifyReminderDue.Unlock()
	return mock.NotifyReminderDueFunc(ctx, ev)
}

func (mock *notifierMock) NotifyReminderDueCalls() []struct {
	Ctx context.Context
	Ev  domain.ReminderDue
} {
	mock.lockNotifyReminderDue.RLock()
	calls := mock.calls.NotifyReminderDue
	mock.lockNotifyReminderDue.RUnlock()
	return calls
}
