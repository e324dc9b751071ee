package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/editor"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
	"github.com/opsdesk-dev/status-board/backend/internal/utils"
)

type permFunc func(actorID, staffID int64) bool

func (f permFunc) CanEdit(actorID, staffID int64) bool {
	return f(actorID, staffID)
}

func (h *Handler) newEditor(user *domain.User, date time.Time, historical bool) *editor.Editor {
	ed := editor.New(
		editor.RowLayout{TrackWidthPx: h.config.Editor.TrackWidthPx},
		h.config.Editor.MinDragPx,
		permFunc(func(actorID, staffID int64) bool {
			ok, err := h.canEdit(user, staffID, date)
			if err != nil {
				slog.Error("permission lookup failed", "staffID", staffID, "error", err)
				return false
			}
			return ok
		}),
	)
	ed.Historical = historical
	return ed
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StaffID   int64   `json:"staffID" validate:"required"`
		Date      string  `json:"date" validate:"required"`
		Status    string  `json:"status" validate:"required"`
		StartTime float64 `json:"startTime"`
		EndTime   float64 `json:"endTime"`
		Memo      string  `json:"memo"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := h.parseDate(req.Date)
	if err != nil {
		h.errorResponse(w, r, "invalid date, want YYYY-MM-DD")
		return
	}

	if err := h.assertMutable(date); err != nil {
		if errors.Is(err, domain.ErrHistoricalReadOnly) {
			h.errorResponse(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	ok, err := h.canEdit(myInfo, req.StaffID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !ok {
		h.errorResponse(w, r, domain.ErrPermissionDenied.Error())
		return
	}

	if err := utils.ValidateEntryRange(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateStatus(req.Status, h.statuses); err != nil {
		h.badRequest(w, r, err)
		return
	}

	existing, err := h.repository.ListEntriesForStaff(req.StaffID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.ValidateNoOverlap(existing, req.StaffID, domain.LayerAdjustment, req.StartTime, req.EndTime, 0); err != nil {
		h.badRequest(w, r, err)
		return
	}

	today := h.quantizer.LocalDate(time.Now())
	entry := &domain.ScheduleEntry{
		StaffID:   req.StaffID,
		Date:      date,
		Layer:     domain.LayerAdjustment,
		Status:    schedule.NormalizeNewStatus(date, req.Status, today),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Memo:      req.Memo,
	}

	if err := h.repository.CreateEntry(entry); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedule_entries_no_overlap":
				h.errorResponse(w, r, "entry overlaps an existing one in the same layer")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.publishScheduleChanged(date)
	h.successResponse(w, r, "entry created", entry)
}

// QuantizeDrag resolves one drag gesture server-side: both pixel edges snap
// to the grid and the resulting range comes back for the confirm dialog. A
// span below the click threshold returns no range and changes nothing.
func (h *Handler) QuantizeDrag(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StaffID  int64  `json:"staffID" validate:"required"`
		Date     string `json:"date" validate:"required"`
		AnchorX  int    `json:"anchorX"`
		CurrentX int    `json:"currentX"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := h.parseDate(req.Date)
	if err != nil {
		h.errorResponse(w, r, "invalid date, want YYYY-MM-DD")
		return
	}

	entries, annotation, err := h.dayEntries(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ed := h.newEditor(myInfo, date, annotation.IsHistorical)

	rowEntries := make([]*domain.ScheduleEntry, 0)
	for _, e := range entries {
		if e.StaffID == req.StaffID {
			rowEntries = append(rowEntries, e)
		}
	}

	if err := ed.BeginDrag(myInfo.ID, req.StaffID, req.AnchorX, rowEntries); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if err := ed.MoveDrag(req.CurrentX); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	pending, err := ed.EndDrag()
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if pending == nil {
		h.successResponse(w, r, "treated as click", nil)
		return
	}

	h.successResponse(w, r, "range selected", pending)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	entry := r.Context().Value(EntryInfoCtx).(*domain.ScheduleEntry)

	if entry.IsHistorical {
		h.errorResponse(w, r, domain.ErrHistoricalReadOnly.Error())
		return
	}

	var req domain.EntryPatch
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.assertMutable(entry.Date); err != nil {
		if errors.Is(err, domain.ErrHistoricalReadOnly) {
			h.errorResponse(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	ok, err := h.canEdit(myInfo, entry.StaffID, entry.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if ok && req.StaffID != nil && *req.StaffID != entry.StaffID {
		// moving to another row also needs rights on the destination
		ok, err = h.canEdit(myInfo, *req.StaffID, entry.Date)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}
	if !ok {
		h.errorResponse(w, r, domain.ErrPermissionDenied.Error())
		return
	}

	// validate the entry the patch would leave behind
	patched := req.Apply(entry)
	if err := utils.ValidateEntryRange(patched.StartTime, patched.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Status != nil {
		// no same-day rewrite here: the off->unplanned rule fires on create only
		if err := utils.ValidateStatus(patched.Status, h.statuses); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	existing, err := h.repository.ListEntriesForStaff(patched.StaffID, entry.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.ValidateNoOverlap(existing, patched.StaffID, entry.Layer, patched.StartTime, patched.EndTime, entry.ID); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.repository.UpdateEntry(entry.ID, &req)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedule_entries_no_overlap":
				h.errorResponse(w, r, "entry overlaps an existing one in the same layer")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "entry not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.publishScheduleChanged(updated.Date)
	h.successResponse(w, r, "entry updated", updated)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	entry := r.Context().Value(EntryInfoCtx).(*domain.ScheduleEntry)

	if entry.IsHistorical {
		h.errorResponse(w, r, domain.ErrHistoricalReadOnly.Error())
		return
	}

	ok, err := h.canEdit(myInfo, entry.StaffID, entry.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !ok {
		h.errorResponse(w, r, domain.ErrPermissionDenied.Error())
		return
	}

	if err := h.repository.DeleteEntry(entry.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.publishScheduleChanged(entry.Date)
	h.successResponse(w, r, "entry deleted", nil)
}

// MoveEntry drops an existing adjustment entry at a new pixel position,
// possibly on another staff row. Only staffID/start/end change; the grabbed
// point stays under the pointer.
func (h *Handler) MoveEntry(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	entry := r.Context().Value(EntryInfoCtx).(*domain.ScheduleEntry)

	var req struct {
		TargetStaffID int64 `json:"targetStaffID" validate:"required"`
		GrabOffsetPx  int   `json:"grabOffsetPx"`
		DropX         int   `json:"dropX"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.assertMutable(entry.Date); err != nil {
		if errors.Is(err, domain.ErrHistoricalReadOnly) {
			h.errorResponse(w, r, err.Error())
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	ed := h.newEditor(myInfo, entry.Date, entry.IsHistorical)

	patch, err := ed.PlanMove(myInfo.ID, entry, req.GrabOffsetPx, req.DropX, req.TargetStaffID)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	existing, err := h.repository.ListEntriesForStaff(patch.StaffID, entry.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.ValidateNoOverlap(existing, patch.StaffID, domain.LayerAdjustment, patch.StartTime, patch.EndTime, entry.ID); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.repository.UpdateEntry(entry.ID, &domain.EntryPatch{
		StaffID:   &patch.StaffID,
		StartTime: &patch.StartTime,
		EndTime:   &patch.EndTime,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedule_entries_no_overlap":
				h.errorResponse(w, r, "entry overlaps an existing one in the same layer")
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "entry not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.publishScheduleChanged(updated.Date)
	h.successResponse(w, r, "entry moved", updated)
}
