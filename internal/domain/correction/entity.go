package correction

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is an employee's petition to retroactively change the recorded
// check-in/out times of one attendance day. Once approved or rejected it is
// terminal; the times it carries are applied to the attendance ledger only
// on approval.
type Request struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	RequestedCheckIn  *time.Time
	RequestedCheckOut *time.Time
	Reason            string
	Status            Status
	AdminComment      *string
	ReviewedBy        *string
	ReviewedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}
