package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/importer"
)

func (h *Handler) ImportRows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rows []struct {
			EmployeeCode string  `json:"employeeCode" validate:"required"`
			Date         string  `json:"date" validate:"required"`
			Status       string  `json:"status" validate:"required"`
			StartTime    float64 `json:"startTime"`
			EndTime      float64 `json:"endTime"`
			Memo         string  `json:"memo"`
		} `json:"rows" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rows := make([]domain.ImportRow, 0, len(req.Rows))
	preConflicts := make([]domain.ImportConflict, 0)
	for i, raw := range req.Rows {
		date, err := time.Parse("2006-01-02", raw.Date)
		if err != nil {
			preConflicts = append(preConflicts, domain.ImportConflict{
				RowIndex:     i + 1,
				EmployeeCode: raw.EmployeeCode,
				Reason:       "bad date, want YYYY-MM-DD",
			})
			continue
		}
		rows = append(rows, domain.ImportRow{
			RowIndex:     i + 1,
			EmployeeCode: raw.EmployeeCode,
			Date:         date,
			Status:       raw.Status,
			StartTime:    raw.StartTime,
			EndTime:      raw.EndTime,
			Memo:         raw.Memo,
		})
	}

	h.runImport(w, r, rows, preConflicts)
}

// ImportWorkbook accepts a multipart xlsx upload under the "file" field.
func (h *Handler) ImportWorkbook(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		h.errorResponse(w, r, "missing workbook upload under field \"file\"")
		return
	}
	defer file.Close()

	rows, preConflicts, err := importer.ParseWorkbook(file)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.runImport(w, r, rows, preConflicts)
}

func (h *Handler) runImport(w http.ResponseWriter, r *http.Request, rows []domain.ImportRow, preConflicts []domain.ImportConflict) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	imp := importer.New(h.repository, h.statuses)
	batchID := uuid.New().String()

	summary, err := imp.Run(batchID, rows)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	summary.Conflicts = append(preConflicts, summary.Conflicts...)

	// one notification per touched date
	dates := make(map[string]time.Time)
	for _, row := range rows {
		dates[row.Date.Format("2006-01-02")] = row.Date
	}
	for _, d := range dates {
		h.publishScheduleChanged(d)
	}

	mail := domain.MailMessage{
		Type: "import_summary",
		To:   myInfo.Email,
		Data: domain.ImportSummaryMailData{
			FullName:      myInfo.FullName,
			BatchID:       summary.BatchID,
			InsertedCount: summary.InsertedCount,
			ConflictCount: len(summary.Conflicts),
			Conflicts:     summary.Conflicts,
			Deadline:      time.Now().Add(domain.RollbackWindow).Format(time.RFC3339),
		},
	}
	if err := h.queueMail(mail); err != nil {
		// the batch is already committed; a lost summary mail must not fail it
		slog.Error("cannot queue import summary mail", "batchID", summary.BatchID, "error", err)
	}

	h.successResponse(w, r, "import finished", summary)
}

func (h *Handler) GetImportBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	if _, err := uuid.Parse(batchID); err != nil {
		h.errorResponse(w, r, "invalid batch id")
		return
	}

	batch, err := h.repository.GetImportBatch(batchID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "batch not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "batch loaded", batch)
}

func (h *Handler) RollbackImport(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	if _, err := uuid.Parse(batchID); err != nil {
		h.errorResponse(w, r, "invalid batch id")
		return
	}

	imp := importer.New(h.repository, h.statuses)

	// capture the touched dates before the rows disappear
	dates, err := h.repository.ListBatchEntryDates(batchID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	summary, err := imp.Rollback(batchID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "batch not found")
		case errors.Is(err, domain.ErrBatchRolledBack), errors.Is(err, domain.ErrRollbackExpired):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	for _, d := range dates {
		h.publishScheduleChanged(d)
	}

	h.successResponse(w, r, "batch rolled back", summary)
}
