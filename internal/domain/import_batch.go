package domain

import "time"

type BatchStatus string

const (
	BatchStatusActive     BatchStatus = "active"
	BatchStatusRolledBack BatchStatus = "rolled_back"
)

// RollbackWindow is how long after commit a batch stays reversible. Past the
// deadline the batch is retained as read-only history.
const RollbackWindow = 24 * time.Hour

type ImportBatch struct {
	BatchID    string      `json:"batchID"`
	ImportedAt time.Time   `json:"importedAt"`
	Status     BatchStatus `json:"status"`
	EntryIDs   []int64     `json:"entryIDs"`
}

func (b *ImportBatch) RollbackDeadline() time.Time {
	return b.ImportedAt.Add(RollbackWindow)
}

func (b *ImportBatch) CanRollback(now time.Time) bool {
	return b.Status == BatchStatusActive && !now.After(b.RollbackDeadline())
}

// ImportRow is one line of bulk tabular input, before validation.
type ImportRow struct {
	RowIndex     int       `json:"rowIndex"`
	EmployeeCode string    `json:"employeeCode"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	StartTime    float64   `json:"startTime"`
	EndTime      float64   `json:"endTime"`
	Memo         string    `json:"memo"`
}

// ImportConflict records a row that was rejected without being inserted.
// Conflicting rows never block the rest of the batch.
type ImportConflict struct {
	RowIndex     int    `json:"rowIndex"`
	EmployeeCode string `json:"employeeCode"`
	Reason       string `json:"reason"`
}

type ImportSummary struct {
	BatchID       string           `json:"batchID"`
	InsertedCount int              `json:"insertedCount"`
	Conflicts     []ImportConflict `json:"conflicts"`
}

type RollbackDetail struct {
	EntryID int64 `json:"entryID"`
	Deleted bool  `json:"deleted"`
}

type RollbackSummary struct {
	BatchID      string           `json:"batchID"`
	DeletedCount int              `json:"deletedCount"`
	Details      []RollbackDetail `json:"details"`
}
