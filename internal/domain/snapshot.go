package domain

import "time"

type SnapshotStatus string

const (
	SnapshotStatusPending   SnapshotStatus = "pending"
	SnapshotStatusCompleted SnapshotStatus = "completed"
	SnapshotStatusFailed    SnapshotStatus = "failed"
)

// Snapshot is the archiver's frozen copy of one past day. The engine only
// reads snapshots; creating them belongs to the archiver job.
type Snapshot struct {
	TargetDate  time.Time      `json:"targetDate"`
	BatchID     string         `json:"batchID"`
	Status      SnapshotStatus `json:"status"`
	RecordCount int            `json:"recordCount"`
	CreatedAt   time.Time      `json:"createdAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// DayAnnotation tells a day-view consumer whether it is looking at frozen
// history. Mutations are disabled entirely when IsHistorical is set.
type DayAnnotation struct {
	IsHistorical bool       `json:"isHistorical"`
	SnapshotDate *time.Time `json:"snapshotDate,omitempty"`
	RecordCount  *int       `json:"recordCount,omitempty"`
}
