// Package editor turns pointer-drag gestures on a staff row into quantized
// schedule mutations. It is pure state-machine logic: handlers feed it
// pixels and execute the drafts it emits.
package editor

import (
	"errors"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/timegrid"
)

// Editor errors.
var (
	ErrAlreadyDragging   = errors.New("a drag is already in progress")
	ErrNotDragging       = errors.New("no drag in progress")
	ErrNothingPending    = errors.New("no pending range to confirm")
	ErrPointerOverEntry  = errors.New("pointer is over an existing adjustment entry")
	ErrContractEntryMove = errors.New("contract entries cannot be moved")
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhasePendingConfirm
)

// PermissionChecker answers whether an actor may edit a staff member's day.
type PermissionChecker interface {
	CanEdit(actorID, staffID int64) bool
}

// RowLayout maps row-local pixels onto the operating window.
type RowLayout struct {
	TrackWidthPx int
}

// HourAt converts a pixel to a grid-snapped hour.
func (l RowLayout) HourAt(x int) float64 {
	return timegrid.FromGridPosition(l.position(x))
}

// rawHourAt is the unsnapped hour, used for hit-testing existing entries.
func (l RowLayout) rawHourAt(x int) float64 {
	return timegrid.Clamp(timegrid.WindowStart + l.position(x)/100*(timegrid.WindowEnd-timegrid.WindowStart))
}

func (l RowLayout) position(x int) float64 {
	p := float64(x) / float64(l.TrackWidthPx) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// PendingRange is the quantized selection awaiting confirmation.
type PendingRange struct {
	StaffID   int64   `json:"staffID"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// Draft is the create operation a confirmed selection resolves to. The
// layer is always adjustment; status and memo are filled in at confirm time.
type Draft struct {
	StaffID   int64
	StartTime float64
	EndTime   float64
	Layer     domain.Layer
}

// MovePatch is the update a completed move resolves to.
type MovePatch struct {
	EntryID   int64   `json:"entryID"`
	StaffID   int64   `json:"staffID"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// Editor drives one actor's gesture on the board for one viewed day.
// Historical views refuse every mutating transition.
type Editor struct {
	Layout     RowLayout
	MinDragPx  int
	Perm       PermissionChecker
	Historical bool

	phase    Phase
	staffID  int64
	anchorX  int
	currentX int
	pending  *PendingRange
}

func New(layout RowLayout, minDragPx int, perm PermissionChecker) *Editor {
	return &Editor{
		Layout:    layout,
		MinDragPx: minDragPx,
		Perm:      perm,
	}
}

func (e *Editor) Phase() Phase {
	return e.phase
}

// BeginDrag starts a new selection at pixel x on a staff row. It is refused
// on historical views, without edit permission, and when the pointer sits
// over an existing adjustment entry (that pixel belongs to the move
// gesture). Contract entries are inert: dragging through them starts a new
// selection.
func (e *Editor) BeginDrag(actorID, staffID int64, x int, rowEntries []*domain.ScheduleEntry) error {
	if e.phase != PhaseIdle {
		return ErrAlreadyDragging
	}
	if e.Historical {
		return domain.ErrHistoricalReadOnly
	}
	if !e.Perm.CanEdit(actorID, staffID) {
		return domain.ErrPermissionDenied
	}

	at := e.Layout.rawHourAt(x)
	for _, entry := range rowEntries {
		if entry.StaffID == staffID && entry.Layer == domain.LayerAdjustment && entry.Contains(at) {
			return ErrPointerOverEntry
		}
	}

	e.phase = PhaseDragging
	e.staffID = staffID
	e.anchorX = x
	e.currentX = x
	return nil
}

func (e *Editor) MoveDrag(x int) error {
	if e.phase != PhaseDragging {
		return ErrNotDragging
	}
	e.currentX = x
	return nil
}

// Span returns the current visual span in pixels, low edge first.
func (e *Editor) Span() (int, int) {
	lo, hi := e.anchorX, e.currentX
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

// EndDrag finishes the gesture. A span narrower than MinDragPx is a click
// and leaves no trace. Otherwise both edges snap to the grid and the editor
// waits in PendingConfirm; a selection that collapses to zero width after
// snapping is also treated as a click.
func (e *Editor) EndDrag() (*PendingRange, error) {
	if e.phase != PhaseDragging {
		return nil, ErrNotDragging
	}

	lo, hi := e.Span()
	if hi-lo < e.MinDragPx {
		e.reset()
		return nil, nil
	}

	start := e.Layout.HourAt(lo)
	end := e.Layout.HourAt(hi)
	if start >= end {
		e.reset()
		return nil, nil
	}

	e.pending = &PendingRange{StaffID: e.staffID, StartTime: start, EndTime: end}
	e.phase = PhasePendingConfirm
	return e.pending, nil
}

// Confirm resolves the pending selection into an adjustment-layer create.
func (e *Editor) Confirm() (*Draft, error) {
	if e.phase != PhasePendingConfirm {
		return nil, ErrNothingPending
	}
	draft := &Draft{
		StaffID:   e.pending.StaffID,
		StartTime: e.pending.StartTime,
		EndTime:   e.pending.EndTime,
		Layer:     domain.LayerAdjustment,
	}
	e.reset()
	return draft, nil
}

// Cancel abandons the gesture. Nothing is persisted.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.phase = PhaseIdle
	e.staffID = 0
	e.anchorX = 0
	e.currentX = 0
	e.pending = nil
}

// PlanMove computes the update for dropping an existing adjustment entry.
// grabOffsetPx is the pointer's offset inside the dragged block when the
// drag started, so the grabbed point stays under the pointer after the
// drop. The caller must revert any optimistic visual state when this
// returns an error.
func (e *Editor) PlanMove(actorID int64, entry *domain.ScheduleEntry, grabOffsetPx, dropX int, targetStaffID int64) (*MovePatch, error) {
	if e.Historical {
		return nil, domain.ErrHistoricalReadOnly
	}
	if entry.Layer != domain.LayerAdjustment {
		return nil, ErrContractEntryMove
	}
	if !e.Perm.CanEdit(actorID, targetStaffID) {
		return nil, domain.ErrPermissionDenied
	}

	duration := entry.EndTime - entry.StartTime
	start := timegrid.Quantize(e.Layout.rawHourAt(dropX - grabOffsetPx))
	if start < timegrid.WindowStart {
		start = timegrid.WindowStart
	}
	if start+duration > timegrid.WindowEnd {
		start = timegrid.WindowEnd - duration
	}

	return &MovePatch{
		EntryID:   entry.ID,
		StaffID:   targetStaffID,
		StartTime: start,
		EndTime:   start + duration,
	}, nil
}
