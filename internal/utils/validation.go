package utils

import (
	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
	"github.com/opsdesk-dev/status-board/backend/internal/timegrid"
)

// ValidateEntryRange checks that [start,end) is a well-formed, grid-aligned
// range inside the operating window.
func ValidateEntryRange(start, end float64) error {
	if start >= end {
		return domain.NewValidationError("startTime", "start time %s must be before end time %s", FormatHour(start), FormatHour(end))
	}
	if !timegrid.InWindow(start, end) {
		return domain.NewValidationError("startTime", "range %s-%s is outside the %02.0f:00-%02.0f:00 operating window", FormatHour(start), FormatHour(end), timegrid.WindowStart, timegrid.WindowEnd)
	}
	if !timegrid.OnGrid(start) {
		return domain.NewValidationError("startTime", "start time %s is not on the 15-minute grid", FormatHour(start))
	}
	if !timegrid.OnGrid(end) {
		return domain.NewValidationError("endTime", "end time %s is not on the 15-minute grid", FormatHour(end))
	}
	return nil
}

// ValidateStatus checks a status label against the configured allow-list.
func ValidateStatus(status string, statuses schedule.StatusSet) error {
	if status == "" {
		return domain.NewValidationError("status", "status is required")
	}
	if !statuses.Allowed(status) {
		return domain.NewValidationError("status", "status %q is not in the allow-list", status)
	}
	return nil
}

// ValidateNoOverlap checks a candidate range against a staff member's
// existing entries in the same layer. Cross-layer overlap is legal, so
// callers pass only same-layer entries. excludeID skips the entry being
// updated; zero means exclude nothing, so candidates that are not yet
// persisted (id zero) still collide.
func ValidateNoOverlap(entries []*domain.ScheduleEntry, staffID int64, layer domain.Layer, start, end float64, excludeID int64) error {
	for _, e := range entries {
		if e.StaffID != staffID || e.Layer != layer {
			continue
		}
		if excludeID != 0 && e.ID == excludeID {
			continue
		}
		if e.Overlaps(start, end) {
			return domain.NewValidationError("startTime", "range %s-%s overlaps entry %d (%s-%s)", FormatHour(start), FormatHour(end), e.ID, FormatHour(e.StartTime), FormatHour(e.EndTime))
		}
	}
	return nil
}

// ValidateImportRow runs the structural checks an import row must pass
// before it is considered for insertion.
func ValidateImportRow(row *domain.ImportRow, statuses schedule.StatusSet) error {
	if row.EmployeeCode == "" {
		return domain.NewValidationError("employeeCode", "employee code is required")
	}
	if row.Date.IsZero() {
		return domain.NewValidationError("date", "date is required")
	}
	if err := ValidateStatus(row.Status, statuses); err != nil {
		return err
	}
	return ValidateEntryRange(row.StartTime, row.EndTime)
}
