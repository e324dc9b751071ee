package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
)

func (h *Handler) parseDate(value string) (time.Time, error) {
	if value == "" {
		return h.quantizer.LocalDate(time.Now()), nil
	}
	return time.Parse("2006-01-02", value)
}

// dayEntries returns the entries backing a date together with its
// historical annotation: a completed snapshot serves the frozen copy,
// anything else serves the live store.
func (h *Handler) dayEntries(date time.Time) ([]*domain.ScheduleEntry, *domain.DayAnnotation, error) {
	snap, err := h.repository.GetSnapshotByDate(date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			entries, err := h.repository.ListEntriesByDate(date)
			if err != nil {
				return nil, nil, err
			}
			return entries, &domain.DayAnnotation{IsHistorical: false}, nil
		}
		return nil, nil, err
	}

	if snap.Status != domain.SnapshotStatusCompleted {
		entries, err := h.repository.ListEntriesByDate(date)
		if err != nil {
			return nil, nil, err
		}
		return entries, &domain.DayAnnotation{IsHistorical: false}, nil
	}

	entries, err := h.repository.ListSnapshotEntries(date)
	if err != nil {
		return nil, nil, err
	}
	targetDate := snap.TargetDate
	recordCount := snap.RecordCount
	return entries, &domain.DayAnnotation{
		IsHistorical: true,
		SnapshotDate: &targetDate,
		RecordCount:  &recordCount,
	}, nil
}

// assertMutable refuses mutations on dates already frozen by the archiver.
func (h *Handler) assertMutable(date time.Time) error {
	snap, err := h.repository.GetSnapshotByDate(date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if snap.Status == domain.SnapshotStatusCompleted {
		return domain.ErrHistoricalReadOnly
	}
	return nil
}

func (h *Handler) canEdit(user *domain.User, staffID int64, date time.Time) (bool, error) {
	staff, err := h.repository.GetStaffByID(staffID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return user.CanEditStaff(staff, date), nil
}

type BoardRow struct {
	Staff   *domain.StaffMember    `json:"staff"`
	Entries []schedule.RenderEntry `json:"entries"`
}

type BoardResponse struct {
	Date       string                `json:"date"`
	Annotation *domain.DayAnnotation `json:"annotation"`
	Rows       []BoardRow            `json:"rows"`
}

// GetBoard returns the roster merged with the date's entries, adjustment
// painted over contract, with provenance marks.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	date, err := h.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "invalid date, want YYYY-MM-DD")
		return
	}

	roster, err := h.repository.GetAllStaff()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	entries, annotation, err := h.dayEntries(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	byStaff := make(map[int64][]*domain.ScheduleEntry)
	for _, e := range entries {
		byStaff[e.StaffID] = append(byStaff[e.StaffID], e)
	}

	rows := make([]BoardRow, 0, len(roster))
	for _, staff := range roster {
		if !staff.IsActive {
			continue
		}
		rows = append(rows, BoardRow{
			Staff:   staff,
			Entries: schedule.RenderOrder(byStaff[staff.ID]),
		})
	}

	h.successResponse(w, r, "board loaded", BoardResponse{
		Date:       date.Format("2006-01-02"),
		Annotation: annotation,
		Rows:       rows,
	})
}
