package alarm

import (
	"time"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

// slotPolicy places alarm slots at a fixed cadence inside the daily active
// window [fromHour, toHour) of loc. Slot i of a day starts at
// fromHour + i*cadence.
type slotPolicy struct {
	cadence  time.Duration
	fromHour int
	toHour   int
	loc      *time.Location
}

func newSlotPolicy(cfg domain.AlarmConfig) slotPolicy {
	return slotPolicy{
		cadence:  cfg.Cadence,
		fromHour: cfg.ActiveFromHour,
		toHour:   cfg.ActiveToHour,
		loc:      cfg.Location,
	}
}

// window returns the active window of the day containing t.
func (p slotPolicy) window(t time.Time) (start, end time.Time) {
	y, m, d := t.In(p.loc).Date()
	start = time.Date(y, m, d, p.fromHour, 0, 0, 0, p.loc)
	end = time.Date(y, m, d, p.toHour, 0, 0, 0, p.loc)
	return start, end
}

// slotAt returns the index of the slot t falls in, or false outside the active window.
func (p slotPolicy) slotAt(t time.Time) (int, bool) {
	start, end := p.window(t)
	if t.Before(start) || !t.Before(end) {
		return 0, false
	}
	return int(t.Sub(start) / p.cadence), true
}

// next returns the start of the first slot strictly after t.
func (p slotPolicy) next(t time.Time) time.Time {
	start, end := p.window(t)
	if t.Before(start) {
		return start
	}
	if t.Before(end) {
		idx := int(t.Sub(start) / p.cadence)
		if c := start.Add(time.Duration(idx+1) * p.cadence); c.Before(end) {
			return c
		}
	}
	y, m, d := t.In(p.loc).Date()
	return time.Date(y, m, d+1, p.fromHour, 0, 0, 0, p.loc)
}

// firstSlot returns the start of the first slot on the day containing t.
func (p slotPolicy) firstSlot(t time.Time) time.Time {
	start, _ := p.window(t)
	return start
}
