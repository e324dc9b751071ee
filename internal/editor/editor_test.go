package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
)

// 1040 px over the 13 hour window: 80 px per hour, 20 px per slot.
var layout = RowLayout{TrackWidthPx: 1040}

type allowAll struct{}

func (allowAll) CanEdit(actorID, staffID int64) bool { return true }

type denyAll struct{}

func (denyAll) CanEdit(actorID, staffID int64) bool { return false }

func TestRowLayoutHourAt(t *testing.T) {
	assert.Equal(t, 8.0, layout.HourAt(0))
	assert.Equal(t, 10.0, layout.HourAt(160))
	assert.Equal(t, 21.0, layout.HourAt(1040))
	// off-track pixels clamp to the window
	assert.Equal(t, 8.0, layout.HourAt(-50))
	assert.Equal(t, 21.0, layout.HourAt(2000))
}

func TestDragConfirmFlow(t *testing.T) {
	ed := New(layout, 5, allowAll{})

	require.NoError(t, ed.BeginDrag(1, 7, 160, nil))
	assert.Equal(t, PhaseDragging, ed.Phase())

	require.NoError(t, ed.MoveDrag(320))

	pending, err := ed.EndDrag()
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, int64(7), pending.StaffID)
	assert.Equal(t, 10.0, pending.StartTime)
	assert.Equal(t, 12.0, pending.EndTime)
	assert.Equal(t, PhasePendingConfirm, ed.Phase())

	draft, err := ed.Confirm()
	require.NoError(t, err)
	assert.Equal(t, domain.LayerAdjustment, draft.Layer)
	assert.Equal(t, int64(7), draft.StaffID)
	assert.Equal(t, 10.0, draft.StartTime)
	assert.Equal(t, 12.0, draft.EndTime)
	assert.Equal(t, PhaseIdle, ed.Phase())
}

func TestDragBackwards(t *testing.T) {
	ed := New(layout, 5, allowAll{})

	require.NoError(t, ed.BeginDrag(1, 7, 320, nil))
	require.NoError(t, ed.MoveDrag(160))

	pending, err := ed.EndDrag()
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, 10.0, pending.StartTime)
	assert.Equal(t, 12.0, pending.EndTime)
}

func TestSubThresholdDragIsClick(t *testing.T) {
	ed := New(layout, 5, allowAll{})

	require.NoError(t, ed.BeginDrag(1, 7, 160, nil))
	require.NoError(t, ed.MoveDrag(163))

	pending, err := ed.EndDrag()
	require.NoError(t, err)
	assert.Nil(t, pending)
	assert.Equal(t, PhaseIdle, ed.Phase())
}

func TestCollapsedAfterSnapIsClick(t *testing.T) {
	ed := New(layout, 5, allowAll{})

	// 7 px clears the threshold but both edges snap to 10:00
	require.NoError(t, ed.BeginDrag(1, 7, 160, nil))
	require.NoError(t, ed.MoveDrag(167))

	pending, err := ed.EndDrag()
	require.NoError(t, err)
	assert.Nil(t, pending)
	assert.Equal(t, PhaseIdle, ed.Phase())
}

func TestBeginDragRefusals(t *testing.T) {
	t.Run("historical view", func(t *testing.T) {
		ed := New(layout, 5, allowAll{})
		ed.Historical = true
		assert.ErrorIs(t, ed.BeginDrag(1, 7, 160, nil), domain.ErrHistoricalReadOnly)
	})

	t.Run("no permission", func(t *testing.T) {
		ed := New(layout, 5, denyAll{})
		assert.ErrorIs(t, ed.BeginDrag(1, 7, 160, nil), domain.ErrPermissionDenied)
	})

	t.Run("pointer over adjustment entry", func(t *testing.T) {
		ed := New(layout, 5, allowAll{})
		row := []*domain.ScheduleEntry{
			{ID: 1, StaffID: 7, Layer: domain.LayerAdjustment, StartTime: 9.5, EndTime: 10.5},
		}
		assert.ErrorIs(t, ed.BeginDrag(1, 7, 160, row), ErrPointerOverEntry)
	})

	t.Run("contract entry does not block", func(t *testing.T) {
		ed := New(layout, 5, allowAll{})
		row := []*domain.ScheduleEntry{
			{ID: 1, StaffID: 7, Layer: domain.LayerContract, StartTime: 9, EndTime: 18},
		}
		assert.NoError(t, ed.BeginDrag(1, 7, 160, row))
	})

	t.Run("second drag", func(t *testing.T) {
		ed := New(layout, 5, allowAll{})
		require.NoError(t, ed.BeginDrag(1, 7, 160, nil))
		assert.ErrorIs(t, ed.BeginDrag(1, 7, 200, nil), ErrAlreadyDragging)
	})
}

func TestPhaseGuards(t *testing.T) {
	ed := New(layout, 5, allowAll{})

	assert.ErrorIs(t, ed.MoveDrag(100), ErrNotDragging)
	_, err := ed.EndDrag()
	assert.ErrorIs(t, err, ErrNotDragging)
	_, err = ed.Confirm()
	assert.ErrorIs(t, err, ErrNothingPending)
}

func TestCancel(t *testing.T) {
	ed := New(layout, 5, allowAll{})

	require.NoError(t, ed.BeginDrag(1, 7, 160, nil))
	require.NoError(t, ed.MoveDrag(320))
	_, err := ed.EndDrag()
	require.NoError(t, err)

	ed.Cancel()
	assert.Equal(t, PhaseIdle, ed.Phase())
	_, err = ed.Confirm()
	assert.ErrorIs(t, err, ErrNothingPending)
}

func TestPlanMove(t *testing.T) {
	ed := New(layout, 5, allowAll{})
	entry := &domain.ScheduleEntry{
		ID:        42,
		StaffID:   7,
		Layer:     domain.LayerAdjustment,
		StartTime: 10,
		EndTime:   11.5,
	}

	// grabbed 10 px into the block, dropped at pixel 250: the block's left
	// edge lands at 240 px = 11:00
	patch, err := ed.PlanMove(1, entry, 10, 250, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(42), patch.EntryID)
	assert.Equal(t, int64(9), patch.StaffID)
	assert.Equal(t, 11.0, patch.StartTime)
	assert.Equal(t, 12.5, patch.EndTime)
}

func TestPlanMoveClampsToWindow(t *testing.T) {
	ed := New(layout, 5, allowAll{})
	entry := &domain.ScheduleEntry{
		ID:        42,
		StaffID:   7,
		Layer:     domain.LayerAdjustment,
		StartTime: 10,
		EndTime:   12,
	}

	patch, err := ed.PlanMove(1, entry, 0, 1040, 7)
	require.NoError(t, err)
	assert.Equal(t, 19.0, patch.StartTime)
	assert.Equal(t, 21.0, patch.EndTime)
}

func TestPlanMoveRefusals(t *testing.T) {
	adjustment := &domain.ScheduleEntry{ID: 1, StaffID: 7, Layer: domain.LayerAdjustment, StartTime: 10, EndTime: 11}
	contract := &domain.ScheduleEntry{ID: 2, StaffID: 7, Layer: domain.LayerContract, StartTime: 9, EndTime: 18}

	ed := New(layout, 5, allowAll{})
	_, err := ed.PlanMove(1, contract, 0, 300, 7)
	assert.ErrorIs(t, err, ErrContractEntryMove)

	ed.Historical = true
	_, err = ed.PlanMove(1, adjustment, 0, 300, 7)
	assert.ErrorIs(t, err, domain.ErrHistoricalReadOnly)

	denied := New(layout, 5, denyAll{})
	_, err = denied.PlanMove(1, adjustment, 0, 300, 7)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}
