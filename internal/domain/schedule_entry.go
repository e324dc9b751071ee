package domain

import "time"

type Layer string

const (
	// LayerContract holds the baseline schedule. Lowest precedence, never
	// edited through drag interaction.
	LayerContract Layer = "contract"
	// LayerAdjustment holds same-day overrides. Highest precedence and the
	// only layer interactive edits and imports write to.
	LayerAdjustment Layer = "adjustment"
)

// ScheduleEntry is one work-status interval of a staff member's day.
// StartTime/EndTime are decimal hours quantized to the 15-minute grid,
// interpreted as the half-open range [StartTime, EndTime).
type ScheduleEntry struct {
	ID           int64     `json:"id"`
	StaffID      int64     `json:"staffID"`
	Date         time.Time `json:"date"`
	Layer        Layer     `json:"layer"`
	Status       string    `json:"status"`
	StartTime    float64   `json:"startTime"`
	EndTime      float64   `json:"endTime"`
	Memo         string    `json:"memo"`
	IsHistorical bool      `json:"isHistorical"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Contains reports whether the instant t (decimal hours) falls inside the
// entry's half-open range.
func (e *ScheduleEntry) Contains(t float64) bool {
	return e.StartTime <= t && t < e.EndTime
}

// Overlaps reports whether two ranges on the same day share any instant.
func (e *ScheduleEntry) Overlaps(start, end float64) bool {
	return e.StartTime < end && start < e.EndTime
}

// EntryPatch is a partial update. Nil fields are left untouched, so two
// concurrent patches touching different fields both survive.
type EntryPatch struct {
	StaffID   *int64   `json:"staffID"`
	StartTime *float64 `json:"startTime"`
	EndTime   *float64 `json:"endTime"`
	Status    *string  `json:"status"`
	Memo      *string  `json:"memo"`
}

// Apply merges the patch onto a copy of the entry. Nil fields keep the
// entry's current value, mirroring the COALESCE merge the store performs.
// Statuses pass through verbatim; the same-day off rewrite never fires on
// updates.
func (p *EntryPatch) Apply(entry *ScheduleEntry) *ScheduleEntry {
	out := *entry
	if p.StaffID != nil {
		out.StaffID = *p.StaffID
	}
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		out.EndTime = *p.EndTime
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Memo != nil {
		out.Memo = *p.Memo
	}
	return &out
}
