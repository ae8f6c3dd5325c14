package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlarmJob is a pending "fire folder alarm" job. A folder has at most one.
type AlarmJob struct {
	ID          uuid.UUID
	FolderID    uuid.UUID
	RunAt       time.Time
	Attempts    int
	LastError   string
	LockedUntil *time.Time
	CreatedAt   time.Time
}
