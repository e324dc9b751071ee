package handler

import (
	"net/http"

	"github.com/opsdesk-dev/status-board/backend/internal/importer"
)

func (h *Handler) readRoster(w http.ResponseWriter, r *http.Request) ([]importer.RosterRecord, bool) {
	var req struct {
		Roster []importer.RosterRecord `json:"roster" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return nil, false
	}
	return req.Roster, true
}

// PlanDirectorySync diffs an uploaded roster against the live directory and
// returns the add/update/deactivate plan without touching anything.
func (h *Handler) PlanDirectorySync(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.readRoster(w, r)
	if !ok {
		return
	}

	sync := importer.NewSyncer(h.repository)
	plan, err := sync.Plan(roster)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "sync plan computed", plan)
}

// ApplyDirectorySync computes the plan for an uploaded roster and executes
// it. Scheduling data is never touched; deactivated staff keep their
// entries and drop off the board.
func (h *Handler) ApplyDirectorySync(w http.ResponseWriter, r *http.Request) {
	roster, ok := h.readRoster(w, r)
	if !ok {
		return
	}

	sync := importer.NewSyncer(h.repository)
	plan, err := sync.Plan(roster)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	summary, err := sync.Apply(plan)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "sync applied", summary)
}
