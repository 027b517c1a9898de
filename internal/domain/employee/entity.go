package employee

import "time"

// Role is the capability an authenticated caller holds. Request handlers
// dispatch on it instead of comparing raw strings.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// ShiftType is informational; no scheduling logic hangs off it.
type ShiftType string

const (
	ShiftMorning ShiftType = "morning"
	ShiftEvening ShiftType = "evening"
)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	Role         Role
	ShiftType    ShiftType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
