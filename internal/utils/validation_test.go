package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
)

func TestValidateEntryRange(t *testing.T) {
	cases := []struct {
		name       string
		start, end float64
		wantField  string
	}{
		{"valid", 9, 10.25, ""},
		{"full window", 8, 21, ""},
		{"inverted", 11, 10, "startTime"},
		{"zero width", 10, 10, "startTime"},
		{"before window", 7.75, 9, "startTime"},
		{"past window", 20, 21.25, "startTime"},
		{"start off grid", 9.1, 10, "startTime"},
		{"end off grid", 9, 10.2, "endTime"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateEntryRange(c.start, c.end)
			if c.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, domain.IsValidation(err))
			ve := err.(*domain.ValidationError)
			assert.Equal(t, c.wantField, ve.Field)
		})
	}
}

func TestValidateStatus(t *testing.T) {
	statuses := schedule.NewStatusSet([]string{"on-call"})

	assert.NoError(t, ValidateStatus(schedule.StatusOnline, statuses))
	assert.NoError(t, ValidateStatus("on-call", statuses))
	assert.Error(t, ValidateStatus("", statuses))
	assert.Error(t, ValidateStatus("vacation", statuses))
}

func TestValidateNoOverlap(t *testing.T) {
	entries := []*domain.ScheduleEntry{
		{ID: 1, StaffID: 7, Layer: domain.LayerAdjustment, StartTime: 10, EndTime: 11},
		{ID: 2, StaffID: 7, Layer: domain.LayerContract, StartTime: 9, EndTime: 18},
		{ID: 3, StaffID: 8, Layer: domain.LayerAdjustment, StartTime: 10, EndTime: 11},
	}

	// collides with entry 1
	assert.Error(t, ValidateNoOverlap(entries, 7, domain.LayerAdjustment, 10.5, 11.5, 0))
	// half-open ranges may touch
	assert.NoError(t, ValidateNoOverlap(entries, 7, domain.LayerAdjustment, 11, 12, 0))
	// the contract layer never collides with adjustments
	assert.NoError(t, ValidateNoOverlap(entries, 7, domain.LayerAdjustment, 13, 14, 0))
	// other staff's entries are ignored
	assert.NoError(t, ValidateNoOverlap(entries, 9, domain.LayerAdjustment, 10, 11, 0))
	// updating entry 1 in place is legal
	assert.NoError(t, ValidateNoOverlap(entries, 7, domain.LayerAdjustment, 10, 11.5, 1))
}

func TestValidateNoOverlapUnsavedEntries(t *testing.T) {
	// not-yet-persisted candidates carry id zero and must still collide
	entries := []*domain.ScheduleEntry{
		{ID: 0, StaffID: 7, Layer: domain.LayerAdjustment, StartTime: 10, EndTime: 11},
	}

	assert.Error(t, ValidateNoOverlap(entries, 7, domain.LayerAdjustment, 10.5, 11.5, 0))
}

func TestValidateImportRow(t *testing.T) {
	statuses := schedule.NewStatusSet(nil)
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	good := &domain.ImportRow{
		EmployeeCode: "emp0001",
		Date:         date,
		Status:       schedule.StatusMeeting,
		StartTime:    10,
		EndTime:      11,
	}
	assert.NoError(t, ValidateImportRow(good, statuses))

	noCode := *good
	noCode.EmployeeCode = ""
	assert.Error(t, ValidateImportRow(&noCode, statuses))

	noDate := *good
	noDate.Date = time.Time{}
	assert.Error(t, ValidateImportRow(&noDate, statuses))

	badStatus := *good
	badStatus.Status = "nonsense"
	assert.Error(t, ValidateImportRow(&badStatus, statuses))

	badRange := *good
	badRange.StartTime, badRange.EndTime = 11, 10
	assert.Error(t, ValidateImportRow(&badRange, statuses))
}
