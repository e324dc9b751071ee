package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
)

type SnapshotResponse struct {
	Annotation *domain.DayAnnotation  `json:"annotation"`
	Entries    []schedule.RenderEntry `json:"entries"`
	// Masking tells display layers to hide personal data for staff who left
	// since the snapshot was taken. Only populated when requested.
	Masking map[int64]bool `json:"masking,omitempty"`
}

// GetSnapshot serves a past date: the frozen payload when the archiver has
// run, the live store otherwise. Mutation is disabled entirely for
// historical views; this endpoint is read-only by construction.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	date, err := h.parseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.errorResponse(w, r, "invalid date, want YYYY-MM-DD")
		return
	}

	entries, annotation, err := h.dayEntries(date)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no data for this date")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	resp := SnapshotResponse{
		Annotation: annotation,
		Entries:    schedule.RenderOrder(entries),
	}

	if annotation.IsHistorical && r.URL.Query().Get("includeMasking") == "true" {
		roster, err := h.repository.GetAllStaff()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		active := make(map[int64]bool, len(roster))
		for _, s := range roster {
			active[s.ID] = s.IsActive
		}

		masking := make(map[int64]bool)
		for _, e := range entries {
			if !active[e.StaffID] {
				masking[e.StaffID] = true
			}
		}
		resp.Masking = masking
	}

	h.successResponse(w, r, "snapshot loaded", resp)
}
