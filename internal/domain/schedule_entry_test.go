package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainsHalfOpen(t *testing.T) {
	e := &ScheduleEntry{StartTime: 10, EndTime: 11}

	assert.True(t, e.Contains(10))
	assert.True(t, e.Contains(10.75))
	assert.False(t, e.Contains(11))
	assert.False(t, e.Contains(9.75))
}

func TestOverlaps(t *testing.T) {
	e := &ScheduleEntry{StartTime: 10, EndTime: 12}

	assert.True(t, e.Overlaps(11, 13))
	assert.True(t, e.Overlaps(9, 10.25))
	assert.True(t, e.Overlaps(10.5, 11.5))
	// touching edges do not overlap
	assert.False(t, e.Overlaps(12, 13))
	assert.False(t, e.Overlaps(9, 10))
}

func TestEntryPatchFieldMerge(t *testing.T) {
	base := &ScheduleEntry{
		ID:        1,
		StaffID:   7,
		Layer:     LayerAdjustment,
		Status:    "online",
		StartTime: 10,
		EndTime:   11,
	}

	status := "meeting"
	afterStatus := (&EntryPatch{Status: &status}).Apply(base)

	memo := "customer escalation"
	afterBoth := (&EntryPatch{Memo: &memo}).Apply(afterStatus)

	// two patches touching different fields both survive
	assert.Equal(t, "meeting", afterBoth.Status)
	assert.Equal(t, "customer escalation", afterBoth.Memo)

	// untouched fields keep their values
	assert.Equal(t, int64(7), afterBoth.StaffID)
	assert.Equal(t, 10.0, afterBoth.StartTime)
	assert.Equal(t, 11.0, afterBoth.EndTime)

	// the source entry is never mutated
	assert.Equal(t, "online", base.Status)
	assert.Equal(t, "", base.Memo)
}

func TestEntryPatchDoesNotRewriteOff(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	entry := &ScheduleEntry{ID: 1, StaffID: 7, Date: today, Status: "online", StartTime: 10, EndTime: 11}

	// the off->unplanned rewrite is a create-time rule; patches pass
	// statuses through verbatim even for today's entries
	status := "off"
	patched := (&EntryPatch{Status: &status}).Apply(entry)
	assert.Equal(t, "off", patched.Status)
}

func TestEffectiveUnit(t *testing.T) {
	staff := &StaffMember{
		Department: "first-line",
		Group:      "A",
		TempAssignment: &TempAssignment{
			Department: "second-line",
			Group:      "B",
			StartDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		},
	}

	dept, grp := staff.EffectiveUnit(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "second-line", dept)
	assert.Equal(t, "B", grp)

	// both bounds are inclusive
	dept, _ = staff.EffectiveUnit(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "second-line", dept)
	dept, _ = staff.EffectiveUnit(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "second-line", dept)

	dept, grp = staff.EffectiveUnit(time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "first-line", dept)
	assert.Equal(t, "A", grp)
}

func TestCanRollback(t *testing.T) {
	imported := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	batch := &ImportBatch{
		BatchID:    "batch-1",
		ImportedAt: imported,
		Status:     BatchStatusActive,
	}

	assert.True(t, batch.CanRollback(imported.Add(time.Hour)))
	assert.True(t, batch.CanRollback(imported.Add(RollbackWindow)))
	assert.False(t, batch.CanRollback(imported.Add(RollbackWindow+time.Second)))

	batch.Status = BatchStatusRolledBack
	assert.False(t, batch.CanRollback(imported.Add(time.Hour)))
}
