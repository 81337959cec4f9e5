package domain

import "time"

// DeletionStatus is the lifecycle state of a pending asset deletion.
type DeletionStatus string

const (
	DeletionPending DeletionStatus = "pending"
	DeletionDone    DeletionStatus = "deleted"
	DeletionFailed  DeletionStatus = "failed"
)

func (s DeletionStatus) String() string { return string(s) }

// PendingDeletion records an asset that is no longer referenced and should be
// removed from the object store out-of-band.
type PendingDeletion struct {
	ID          int64
	URL         string
	StorageKey  string
	Context     string
	MarkedAt    time.Time
	Status      DeletionStatus
	Attempts    int
	ProcessedAt *time.Time
	LastError   *string
}
