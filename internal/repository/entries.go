package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
)

func (r *Repository) ListEntriesByDate(date time.Time) ([]*domain.ScheduleEntry, error) {
	query := `
		SELECT id, staff_id, date, layer, status, start_time, end_time, memo, is_historical, created_at
		FROM schedule_entries
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

	return scanEntries(rows)
}

func (r *Repository) ListEntriesForStaff(staffID int64, date time.Time) ([]*domain.ScheduleEntry, error) {
	query := `
		SELECT id, staff_id, date, layer, status, start_time, end_time, memo, is_historical, created_at
		FROM schedule_entries
		WHERE staff_id = $1 AND date = $2
		ORDER BY layer, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *Repository) GetEntryByID(id int64) (*domain.ScheduleEntry, error) {
	query := `
		SELECT staff_id, date, layer, status, start_time, end_time, memo, is_historical, created_at
		FROM schedule_entries
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	entry := &domain.ScheduleEntry{
		ID: id,
	}

	dst := []any{&entry.StaffID, &entry.Date, &entry.Layer, &entry.Status, &entry.StartTime, &entry.EndTime, &entry.Memo, &entry.IsHistorical, &entry.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *Repository) CreateEntry(entry *domain.ScheduleEntry) error {
	query := `
		INSERT INTO schedule_entries (staff_id, date, layer, status, start_time, end_time, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_historical, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{entry.StaffID, entry.Date, entry.Layer, entry.Status, entry.StartTime, entry.EndTime, entry.Memo}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.IsHistorical, &entry.CreatedAt); err != nil {
		return err
	}

	return nil
}

// UpdateEntry applies a partial patch. Fields absent from the patch keep
// their stored value, so concurrent patches to different fields both
// survive; otherwise last write wins, deliberately without locking.
func (r *Repository) UpdateEntry(id int64, patch *domain.EntryPatch) (*domain.ScheduleEntry, error) {
	query := `
		UPDATE schedule_entries
		SET
			staff_id = COALESCE($1, staff_id),
			start_time = COALESCE($2, start_time),
			end_time = COALESCE($3, end_time),
			status = COALESCE($4, status),
			memo = COALESCE($5, memo)
		WHERE id = $6
		RETURNING staff_id, date, layer, status, start_time, end_time, memo, is_historical, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	entry := &domain.ScheduleEntry{
		ID: id,
	}

	args := []any{patch.StaffID, patch.StartTime, patch.EndTime, patch.Status, patch.Memo, id}
	dst := []any{&entry.StaffID, &entry.Date, &entry.Layer, &entry.Status, &entry.StartTime, &entry.EndTime, &entry.Memo, &entry.IsHistorical, &entry.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry is idempotent: deleting an absent id is not an error.
func (r *Repository) DeleteEntry(id int64) error {
	query := `
		DELETE FROM schedule_entries WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func scanEntries(rows *sql.Rows) ([]*domain.ScheduleEntry, error) {
	entries := make([]*domain.ScheduleEntry, 0)
	for rows.Next() {
		entry := &domain.ScheduleEntry{}
		dst := []any{&entry.ID, &entry.StaffID, &entry.Date, &entry.Layer, &entry.Status, &entry.StartTime, &entry.EndTime, &entry.Memo, &entry.IsHistorical, &entry.CreatedAt}
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
