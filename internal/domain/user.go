package domain

import (
	"time"
)

type Role string

const (
	RoleAgent  Role = "agent"
	RoleLeader Role = "leader"
	RoleAdmin  Role = "admin"
)

// User is an actor on the board. StaffID links the account to the staff
// member it represents (nil for pure back-office accounts).
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Department   string    `json:"department"`
	StaffID      *int64    `json:"staffID"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// CanEditStaff implements the board's permission rule: admins edit anyone,
// leaders edit staff in their own department, agents only themselves.
func (u *User) CanEditStaff(staff *StaffMember, date time.Time) bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleLeader:
		dept, _ := staff.EffectiveUnit(date)
		return dept == u.Department
	case RoleAgent:
		return u.StaffID != nil && *u.StaffID == staff.ID
	default:
		return false
	}
}
