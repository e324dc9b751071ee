package repository

import (
	"context"
	"time"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
)

// GetSnapshotByDate returns the archiver's record for a past date, or
// sql.ErrNoRows when the date has not been snapshotted yet (the day view
// then serves live entries).
func (r *Repository) GetSnapshotByDate(date time.Time) (*domain.Snapshot, error) {
	query := `
		SELECT target_date, batch_id, status, record_count, created_at, completed_at
		FROM snapshots
		WHERE target_date = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	snap := &domain.Snapshot{}
	dst := []any{&snap.TargetDate, &snap.BatchID, &snap.Status, &snap.RecordCount, &snap.CreatedAt, &snap.CompletedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, date).Scan(dst...); err != nil {
		return nil, err
	}

	return snap, nil
}

// ListSnapshotEntries returns the frozen entry copy for a snapshotted date.
// Every returned entry carries the historical marker.
func (r *Repository) ListSnapshotEntries(date time.Time) ([]*domain.ScheduleEntry, error) {
	query := `
		SELECT id, staff_id, date, layer, status, start_time, end_time, memo, created_at
		FROM snapshot_entries
		WHERE date = $1
		ORDER BY staff_id, layer, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.ScheduleEntry, 0)
	for rows.Next() {
		entry := &domain.ScheduleEntry{IsHistorical: true}
		dst := []any{&entry.ID, &entry.StaffID, &entry.Date, &entry.Layer, &entry.Status, &entry.StartTime, &entry.EndTime, &entry.Memo, &entry.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
