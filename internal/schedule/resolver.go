package schedule

import (
	"sort"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/timegrid"
)

// Resolve computes the effective status of one staff member at instant t
// (decimal hours). Adjustment-layer entries outrank contract-layer entries;
// within a layer the greatest id wins (ids are monotonically increasing, so
// this picks the most recently created). With no covering entry the
// effective status is the sentinel "off".
func Resolve(entries []*domain.ScheduleEntry, staffID int64, t float64) string {
	var best *domain.ScheduleEntry
	for _, e := range entries {
		if e.StaffID != staffID || !e.Contains(t) {
			continue
		}
		if best == nil {
			best = e
			continue
		}
		if e.Layer != best.Layer {
			if e.Layer == domain.LayerAdjustment {
				best = e
			}
			continue
		}
		if e.ID > best.ID {
			best = e
		}
	}
	if best == nil {
		return StatusOff
	}
	return best.Status
}

// RenderEntry is an entry plus the provenance marks a range query emits.
// Hatched flags the read-only contract layer, Dashed flags frozen history.
// How they are drawn is the consumer's business.
type RenderEntry struct {
	Entry   *domain.ScheduleEntry `json:"entry"`
	Hatched bool                  `json:"hatched"`
	Dashed  bool                  `json:"dashed"`
}

// RenderOrder orders entries contract-before-adjustment so the adjustment
// layer paints over the contract layer, and attaches provenance marks.
func RenderOrder(entries []*domain.ScheduleEntry) []RenderEntry {
	sorted := make([]*domain.ScheduleEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Layer != sorted[j].Layer {
			return sorted[i].Layer == domain.LayerContract
		}
		if sorted[i].StartTime != sorted[j].StartTime {
			return sorted[i].StartTime < sorted[j].StartTime
		}
		return sorted[i].ID < sorted[j].ID
	})

	out := make([]RenderEntry, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, RenderEntry{
			Entry:   e,
			Hatched: e.Layer == domain.LayerContract,
			Dashed:  e.IsHistorical,
		})
	}
	return out
}

// AvailableNow counts active staff whose effective status at t falls in the
// configured available-status set.
func AvailableNow(roster []*domain.StaffMember, entries []*domain.ScheduleEntry, t float64, available StatusSet) int {
	count := 0
	for _, staff := range roster {
		if !staff.IsActive {
			continue
		}
		if available.Allowed(Resolve(entries, staff.ID, t)) {
			count++
		}
	}
	return count
}

// StaffFilter selects the population a histogram aggregates over. A nil
// filter keeps every active staff member.
type StaffFilter func(*domain.StaffMember) bool

// Histogram buckets the day into the 52 grid cells and counts, per cell,
// how many of the filtered staff resolve to each status. Each cell is
// sampled at its midpoint to dodge boundary ambiguity.
func Histogram(roster []*domain.StaffMember, entries []*domain.ScheduleEntry, filter StaffFilter) []map[string]int {
	buckets := make([]map[string]int, timegrid.CellCount)
	for i := range buckets {
		buckets[i] = make(map[string]int)
	}

	for _, staff := range roster {
		if !staff.IsActive {
			continue
		}
		if filter != nil && !filter(staff) {
			continue
		}
		for i := range buckets {
			status := Resolve(entries, staff.ID, timegrid.CellMidpoint(i))
			buckets[i][status]++
		}
	}
	return buckets
}
