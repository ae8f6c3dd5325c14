package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemRef points at the content item a card reviews. Opaque to the scheduler.
type ItemRef struct {
	Kind ItemKind
	ID   uuid.UUID
}

// Card is the review state of a single learnable item for one learner.
type Card struct {
	ID                uuid.UUID
	OwnerID           uuid.UUID
	Item              ItemRef
	Stage             int
	CorrectTotal      int
	WrongTotal        int
	IsFromWrongAnswer bool
	WrongAnswer       WrongAnswer
	NextReviewAt      *time.Time
	WaitingUntil      *time.Time
	LastReviewedAt    *time.Time
	IsOverdue         bool
	OverdueStartAt    *time.Time
	OverdueDeadline   *time.Time
	FrozenUntil       *time.Time
	IsMastered        bool
	// Version is bumped on every save and checked by the store.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFrozen reports whether the freeze penalty is still in effect at now.
func (c *Card) IsFrozen(now time.Time) bool {
	return c.FrozenUntil != nil && now.Before(*c.FrozenUntil)
}

// IsDue reports whether the scheduled review time has been reached.
// Cards that were never reviewed have no due time and are not due.
func (c *Card) IsDue(now time.Time) bool {
	return c.NextReviewAt != nil && !c.NextReviewAt.After(now)
}

// IsLocked reports whether the short post-review lockout is still active.
func (c *Card) IsLocked(now time.Time) bool {
	return c.WaitingUntil != nil && now.Before(*c.WaitingUntil)
}

// Folder groups cards that share a reminder cadence for a logical day.
type Folder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	ParentID    *uuid.UUID
	Date        time.Time
	AlarmActive bool
	NextAlarmAt *time.Time
	// ReminderMask holds one bit per alarm slot already sent for the day.
	ReminderMask uint32
	RollupDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SlotSent reports whether the reminder for the given slot was already sent.
func (f *Folder) SlotSent(slot int) bool {
	if slot < 0 || slot >= MaxReminderSlots {
		return false
	}
	return f.ReminderMask&(1<<uint(slot)) != 0
}

// MarkSlotSent records the reminder for the given slot.
func (f *Folder) MarkSlotSent(slot int) {
	if slot < 0 || slot >= MaxReminderSlots {
		return
	}
	f.ReminderMask |= 1 << uint(slot)
}

// FolderItem links a card into a folder.
type FolderItem struct {
	FolderID       uuid.UUID
	CardID         uuid.UUID
	Learned        bool
	WrongCount     int
	LastReviewedAt *time.Time
}

// FolderCard is a folder link together with the card it points at.
type FolderCard struct {
	Item FolderItem
	Card Card
}

// ReminderDue is emitted when a folder still has unlearned cards at an alarm slot.
type ReminderDue struct {
	FolderID       uuid.UUID
	OwnerID        uuid.UUID
	UnlearnedCount int
}
