package timegrid

import (
	"math"
	"time"
)

// The board's operating window, in decimal hours of organization-local time.
const (
	WindowStart = 8.0
	WindowEnd   = 21.0
	// SlotHours is the grid resolution: 15 minutes.
	SlotHours = 0.25
	// CellCount is the number of grid cells in the window (52).
	CellCount = int((WindowEnd - WindowStart) / SlotHours)
)

// Quantize rounds t to the nearest multiple of 0.25, ties rounding up.
// Quantize(Quantize(t)) == Quantize(t) for all t.
func Quantize(t float64) float64 {
	return math.Floor(t/SlotHours+0.5) * SlotHours
}

// Clamp constrains t to the operating window.
func Clamp(t float64) float64 {
	if t < WindowStart {
		return WindowStart
	}
	if t > WindowEnd {
		return WindowEnd
	}
	return t
}

// ToGridPosition maps a wall-clock hour to a position in [0,100] on the
// window, snapping to the grid first.
func ToGridPosition(t float64) float64 {
	t = Clamp(Quantize(t))
	return (t - WindowStart) / (WindowEnd - WindowStart) * 100
}

// FromGridPosition is the inverse map, snapped to the grid.
func FromGridPosition(p float64) float64 {
	t := WindowStart + p/100*(WindowEnd-WindowStart)
	return Clamp(Quantize(t))
}

// CellMidpoint returns the sampling hour at the middle of cell i. Sampling
// midpoints avoids ambiguity at cell boundaries.
func CellMidpoint(i int) float64 {
	return WindowStart + (float64(i)+0.5)*SlotHours
}

// InWindow reports whether the half-open range [start,end) lies inside the
// operating window.
func InWindow(start, end float64) bool {
	return start >= WindowStart && end <= WindowEnd
}

// OnGrid reports whether t is already a grid multiple.
func OnGrid(t float64) bool {
	return Quantize(t) == t
}

// Quantizer converts between organization-local wall time and stored
// instants using one fixed UTC offset. No DST.
type Quantizer struct {
	Offset time.Duration
}

func NewQuantizer(offsetMinutes int) *Quantizer {
	return &Quantizer{Offset: time.Duration(offsetMinutes) * time.Minute}
}

func (q *Quantizer) location() *time.Location {
	return time.FixedZone("org", int(q.Offset/time.Second))
}

// Absolute converts a local date plus decimal hour into a stored instant.
func (q *Quantizer) Absolute(date time.Time, hour float64) time.Time {
	y, m, d := date.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, q.location())
	return midnight.Add(time.Duration(hour * float64(time.Hour))).UTC()
}

// LocalHour converts a stored instant back to the local decimal hour.
func (q *Quantizer) LocalHour(instant time.Time) float64 {
	local := instant.In(q.location())
	return float64(local.Hour()) + float64(local.Minute())/60 + float64(local.Second())/3600
}

// LocalDate truncates a stored instant to its organization-local date.
func (q *Quantizer) LocalDate(instant time.Time) time.Time {
	local := instant.In(q.location())
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two dates name the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
