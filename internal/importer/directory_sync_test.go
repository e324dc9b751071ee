package importer

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk-dev/status-board/backend/internal/domain"
)

func TestDiffRoster(t *testing.T) {
	live := []*domain.StaffMember{
		{ID: 1, EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A", IsActive: true},
		{ID: 2, EmployeeCode: "emp0002", Name: "Bob", Department: "first-line", Group: "A", IsActive: true},
		{ID: 3, EmployeeCode: "emp0003", Name: "Carol", Department: "back-office", Group: "C", IsActive: false},
	}
	uploaded := []RosterRecord{
		{EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A"},  // unchanged
		{EmployeeCode: "emp0002", Name: "Bob", Department: "second-line", Group: "B"},   // moved
		{EmployeeCode: "emp0004", Name: "Dave", Department: "back-office", Group: "C"},  // new hire
	}

	plan := DiffRoster(live, uploaded)

	require.Len(t, plan.Add, 1)
	assert.Equal(t, "emp0004", plan.Add[0].EmployeeCode)

	require.Len(t, plan.Update, 1)
	assert.Equal(t, "emp0002", plan.Update[0].EmployeeCode)

	// emp0003 is already inactive, only active missing staff deactivate
	assert.Empty(t, plan.Deactivate)
}

func TestDiffRosterDeactivatesMissing(t *testing.T) {
	live := []*domain.StaffMember{
		{ID: 1, EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A", IsActive: true},
	}

	plan := DiffRoster(live, nil)
	require.Len(t, plan.Deactivate, 1)
	assert.Equal(t, int64(1), plan.Deactivate[0].ID)
}

func TestDiffRosterReactivates(t *testing.T) {
	live := []*domain.StaffMember{
		{ID: 1, EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A", IsActive: false},
	}
	uploaded := []RosterRecord{
		{EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A"},
	}

	// a returning employee shows up as an update even with identical fields
	plan := DiffRoster(live, uploaded)
	require.Len(t, plan.Update, 1)
	assert.Empty(t, plan.Add)
	assert.Empty(t, plan.Deactivate)
}

// fakeDirectory backs the Syncer without a database.
type fakeDirectory struct {
	staff  map[string]*domain.StaffMember
	nextID int64
}

func newFakeDirectory(staff ...*domain.StaffMember) *fakeDirectory {
	dir := &fakeDirectory{staff: make(map[string]*domain.StaffMember)}
	for _, s := range staff {
		dir.nextID++
		s.ID = dir.nextID
		dir.staff[s.EmployeeCode] = s
	}
	return dir
}

func (d *fakeDirectory) GetAllStaff() ([]*domain.StaffMember, error) {
	out := make([]*domain.StaffMember, 0, len(d.staff))
	for _, s := range d.staff {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

func (d *fakeDirectory) CreateStaff(staff *domain.StaffMember) error {
	d.nextID++
	staff.ID = d.nextID
	copied := *staff
	d.staff[staff.EmployeeCode] = &copied
	return nil
}

func (d *fakeDirectory) UpdateStaff(staff *domain.StaffMember) error {
	existing, ok := d.staff[staff.EmployeeCode]
	if !ok {
		return sql.ErrNoRows
	}
	staff.Version = existing.Version + 1
	copied := *staff
	d.staff[staff.EmployeeCode] = &copied
	return nil
}

func TestSyncerApply(t *testing.T) {
	dir := newFakeDirectory(
		&domain.StaffMember{EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A", IsActive: true},
		&domain.StaffMember{EmployeeCode: "emp0002", Name: "Bob", Department: "first-line", Group: "A", IsActive: true},
		&domain.StaffMember{EmployeeCode: "emp0003", Name: "Carol", Department: "back-office", Group: "C", IsActive: true},
	)
	roster := []RosterRecord{
		{EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A"}, // unchanged
		{EmployeeCode: "emp0002", Name: "Bob", Department: "second-line", Group: "B"},  // moved
		{EmployeeCode: "emp0004", Name: "Dave", Department: "back-office", Group: "C"}, // new hire
		// emp0003 gone from the upload
	}

	sync := NewSyncer(dir)
	plan, err := sync.Plan(roster)
	require.NoError(t, err)

	summary, err := sync.Apply(plan)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.AddedCount)
	assert.Equal(t, 1, summary.UpdatedCount)
	assert.Equal(t, 1, summary.DeactivatedCount)

	require.Contains(t, dir.staff, "emp0004")
	assert.True(t, dir.staff["emp0004"].IsActive)
	assert.Equal(t, "second-line", dir.staff["emp0002"].Department)
	assert.False(t, dir.staff["emp0003"].IsActive)
	// untouched rows stay as they were
	assert.Equal(t, "first-line", dir.staff["emp0001"].Department)
	assert.True(t, dir.staff["emp0001"].IsActive)
}

func TestSyncerApplyReactivates(t *testing.T) {
	dir := newFakeDirectory(
		&domain.StaffMember{EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A", IsActive: false},
	)
	roster := []RosterRecord{
		{EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A"},
	}

	sync := NewSyncer(dir)
	plan, err := sync.Plan(roster)
	require.NoError(t, err)

	summary, err := sync.Apply(plan)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.UpdatedCount)
	assert.True(t, dir.staff["emp0001"].IsActive)
}

func TestDiffRosterSkipsDuplicatesAndBlanks(t *testing.T) {
	uploaded := []RosterRecord{
		{EmployeeCode: "", Name: "Nobody"},
		{EmployeeCode: "emp0001", Name: "Alice", Department: "first-line", Group: "A"},
		{EmployeeCode: "emp0001", Name: "Alice Again", Department: "first-line", Group: "A"},
	}

	plan := DiffRoster(nil, uploaded)
	require.Len(t, plan.Add, 1)
	assert.Equal(t, "Alice", plan.Add[0].Name)
}
