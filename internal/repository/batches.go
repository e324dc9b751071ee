package repository

import (
	"context"
	"time"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
)

// ImportEntries commits one import batch: every entry plus the batch record
// in a single transaction. Partial batches never reach the database; row
// filtering happens before this call.
func (r *Repository) ImportEntries(batchID string, entries []*domain.ScheduleEntry) ([]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO import_batches (batch_id, status)
		VALUES ($1, $2)
	`
	if _, err := tx.ExecContext(ctx, query, batchID, domain.BatchStatusActive); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		query = `
			INSERT INTO schedule_entries (staff_id, date, layer, status, start_time, end_time, memo)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, is_historical, created_at
		`
		args := []any{entry.StaffID, entry.Date, entry.Layer, entry.Status, entry.StartTime, entry.EndTime, entry.Memo}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.IsHistorical, &entry.CreatedAt); err != nil {
			return nil, err
		}

		query = `
			INSERT INTO import_batch_entries (batch_id, entry_id)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, batchID, entry.ID); err != nil {
			return nil, err
		}

		ids = append(ids, entry.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *Repository) GetImportBatch(batchID string) (*domain.ImportBatch, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT imported_at, status
		FROM import_batches
		WHERE batch_id = $1
	`

	batch := &domain.ImportBatch{
		BatchID: batchID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, batchID).Scan(&batch.ImportedAt, &batch.Status); err != nil {
		return nil, err
	}

	query = `
		SELECT entry_id FROM import_batch_entries WHERE batch_id = $1 ORDER BY entry_id
	`
	rows, err := r.dbpool.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batch.EntryIDs = make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		batch.EntryIDs = append(batch.EntryIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batch, nil
}

// ListBatchEntryDates returns the distinct dates a batch's surviving
// entries cover, for scoping change notifications.
func (r *Repository) ListBatchEntryDates(batchID string) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT DISTINCT se.date
		FROM schedule_entries se
		JOIN import_batch_entries ibe ON ibe.entry_id = se.id
		WHERE ibe.batch_id = $1
		ORDER BY se.date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}

// DeleteBatchEntries removes exactly the entries the batch lists and marks
// the batch rolled back, all in one transaction. Entries outside the batch
// are never touched. Ids already gone (manually deleted since the import)
// are reported as not deleted rather than failing the rollback.
func (r *Repository) DeleteBatchEntries(batchID string) (int, []domain.RollbackDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT entry_id FROM import_batch_entries WHERE batch_id = $1 ORDER BY entry_id
	`
	rows, err := tx.QueryContext(ctx, query, batchID)
	if err != nil {
		return 0, nil, err
	}

	entryIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, nil, err
		}
		entryIDs = append(entryIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, nil, err
	}
	rows.Close()

	deleted := 0
	details := make([]domain.RollbackDetail, 0, len(entryIDs))
	for _, id := range entryIDs {
		res, err := tx.ExecContext(ctx, `DELETE FROM schedule_entries WHERE id = $1`, id)
		if err != nil {
			return 0, nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, nil, err
		}
		details = append(details, domain.RollbackDetail{EntryID: id, Deleted: affected > 0})
		if affected > 0 {
			deleted++
		}
	}

	query = `
		UPDATE import_batches SET status = $1 WHERE batch_id = $2
	`
	if _, err := tx.ExecContext(ctx, query, domain.BatchStatusRolledBack, batchID); err != nil {
		return 0, nil, err
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}

	return deleted, details, nil
}
