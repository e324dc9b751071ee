package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanEditStaff(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	staffID := int64(7)
	staff := &StaffMember{ID: 7, Department: "first-line", Group: "A", IsActive: true}

	admin := &User{Role: RoleAdmin}
	assert.True(t, admin.CanEditStaff(staff, date))

	sameDeptLeader := &User{Role: RoleLeader, Department: "first-line"}
	otherDeptLeader := &User{Role: RoleLeader, Department: "back-office"}
	assert.True(t, sameDeptLeader.CanEditStaff(staff, date))
	assert.False(t, otherDeptLeader.CanEditStaff(staff, date))

	self := &User{Role: RoleAgent, StaffID: &staffID}
	other := &User{Role: RoleAgent, StaffID: new(int64)}
	unlinked := &User{Role: RoleAgent}
	assert.True(t, self.CanEditStaff(staff, date))
	assert.False(t, other.CanEditStaff(staff, date))
	assert.False(t, unlinked.CanEditStaff(staff, date))
}

func TestCanEditStaffHonorsTempAssignment(t *testing.T) {
	staff := &StaffMember{
		ID:         7,
		Department: "first-line",
		TempAssignment: &TempAssignment{
			Department: "second-line",
			StartDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		},
	}
	leader := &User{Role: RoleLeader, Department: "second-line"}

	inside := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC)

	// while visiting the leader's department the visiting leader may edit
	assert.True(t, leader.CanEditStaff(staff, inside))
	assert.False(t, leader.CanEditStaff(staff, outside))
}
