package domain

import (
	"time"
)

// Trigger is the reason a backup run started.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// Run holds the per-invocation paths and metadata for one backup cycle.
// It is created at run start and discarded at run end.
type Run struct {
	Trigger     Trigger
	StartedAt   time.Time
	Dir         string
	ArchivePath string
	BackupID    string
}
