package domain

import "time"

// TempAssignment is an optional, date-bounded reassignment to another
// department/group. Outside its range the staff member's home unit applies.
type TempAssignment struct {
	Department string    `json:"department"`
	Group      string    `json:"group"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
}

type StaffMember struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	EmployeeCode   string          `json:"employeeCode"`
	Department     string          `json:"department"`
	Group          string          `json:"group"`
	IsActive       bool            `json:"isActive"`
	TempAssignment *TempAssignment `json:"tempAssignment,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	Version        int32           `json:"-"`
}

// EffectiveUnit returns the department/group in effect on the given date,
// honoring a temporary reassignment when the date falls inside its range.
func (s *StaffMember) EffectiveUnit(date time.Time) (string, string) {
	if s.TempAssignment != nil {
		ta := s.TempAssignment
		if !date.Before(ta.StartDate) && !date.After(ta.EndDate) {
			return ta.Department, ta.Group
		}
	}
	return s.Department, s.Group
}
