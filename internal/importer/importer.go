// Package importer converts bulk tabular input into adjustment-layer
// schedule entries, committed as one named, time-boxed-reversible batch.
package importer

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
	"github.com/opsdesk-dev/status-board/backend/internal/utils"
)

// Store is the slice of the repository the importer needs.
type Store interface {
	GetStaffByEmployeeCode(code string) (*domain.StaffMember, error)
	ListEntriesForStaff(staffID int64, date time.Time) ([]*domain.ScheduleEntry, error)
	ImportEntries(batchID string, entries []*domain.ScheduleEntry) ([]int64, error)
	GetImportBatch(batchID string) (*domain.ImportBatch, error)
	DeleteBatchEntries(batchID string) (int, []domain.RollbackDetail, error)
}

type Importer struct {
	store    Store
	statuses schedule.StatusSet

	// Now is injectable for tests.
	Now func() time.Time
}

func New(store Store, statuses schedule.StatusSet) *Importer {
	return &Importer{
		store:    store,
		statuses: statuses,
		Now:      time.Now,
	}
}

// Run validates every row independently, commits the survivors as new
// adjustment-layer entries in one batch, and always returns a complete
// summary: good rows commit even when other rows fail. Existing entries are
// never updated; an overlap is reported as a conflict, not overwritten.
func (imp *Importer) Run(batchID string, rows []domain.ImportRow) (*domain.ImportSummary, error) {
	summary := &domain.ImportSummary{
		BatchID:   batchID,
		Conflicts: make([]domain.ImportConflict, 0),
	}

	type dayKey struct {
		staffID int64
		date    string
	}
	existingByDay := make(map[dayKey][]*domain.ScheduleEntry)
	accepted := make([]*domain.ScheduleEntry, 0, len(rows))

	for i := range rows {
		row := &rows[i]

		if err := utils.ValidateImportRow(row, imp.statuses); err != nil {
			summary.Conflicts = append(summary.Conflicts, conflict(row, err.Error()))
			continue
		}

		staff, err := imp.store.GetStaffByEmployeeCode(row.EmployeeCode)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows), errors.Is(err, domain.ErrNotFound):
				summary.Conflicts = append(summary.Conflicts, conflict(row, fmt.Sprintf("unknown employee code %q", row.EmployeeCode)))
				continue
			default:
				return nil, err
			}
		}

		key := dayKey{staffID: staff.ID, date: row.Date.Format("2006-01-02")}
		existing, ok := existingByDay[key]
		if !ok {
			all, err := imp.store.ListEntriesForStaff(staff.ID, row.Date)
			if err != nil {
				return nil, err
			}
			// imports only ever collide with the adjustment layer
			existing = make([]*domain.ScheduleEntry, 0, len(all))
			for _, e := range all {
				if e.Layer == domain.LayerAdjustment {
					existing = append(existing, e)
				}
			}
			existingByDay[key] = existing
		}

		if err := utils.ValidateNoOverlap(existing, staff.ID, domain.LayerAdjustment, row.StartTime, row.EndTime, 0); err != nil {
			summary.Conflicts = append(summary.Conflicts, conflict(row, err.Error()))
			continue
		}

		entry := &domain.ScheduleEntry{
			StaffID:   staff.ID,
			Date:      row.Date,
			Layer:     domain.LayerAdjustment,
			Status:    row.Status,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Memo:      row.Memo,
		}
		accepted = append(accepted, entry)
		// later rows in the same batch must not overlap this one either
		existingByDay[key] = append(existingByDay[key], entry)
	}

	if len(accepted) > 0 {
		ids, err := imp.store.ImportEntries(batchID, accepted)
		if err != nil {
			return nil, err
		}
		summary.InsertedCount = len(ids)
	}

	return summary, nil
}

// Rollback deletes exactly the entries the batch created, provided the
// 24-hour window has not passed. Past the deadline the batch stays
// permanent history and nothing is touched.
func (imp *Importer) Rollback(batchID string) (*domain.RollbackSummary, error) {
	batch, err := imp.store.GetImportBatch(batchID)
	if err != nil {
		return nil, err
	}

	if batch.Status == domain.BatchStatusRolledBack {
		return nil, domain.ErrBatchRolledBack
	}
	if !batch.CanRollback(imp.Now()) {
		return nil, domain.ErrRollbackExpired
	}

	deleted, details, err := imp.store.DeleteBatchEntries(batchID)
	if err != nil {
		return nil, err
	}

	return &domain.RollbackSummary{
		BatchID:      batchID,
		DeletedCount: deleted,
		Details:      details,
	}, nil
}

func conflict(row *domain.ImportRow, reason string) domain.ImportConflict {
	return domain.ImportConflict{
		RowIndex:     row.RowIndex,
		EmployeeCode: row.EmployeeCode,
		Reason:       reason,
	}
}
