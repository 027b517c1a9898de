package leave

import "time"

// LeaveType entity
type LeaveType struct {
	ID          string
	Name        string
	Description *string
	IsPaid      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Balance tracks one employee's remaining days for one leave type.
// Invariant, enforced in SQL: 0 <= CurrentBalance <= TotalDays.
// Mutated only by the leave request state machine.
type Balance struct {
	ID             string
	EmployeeID     string
	LeaveTypeID    string
	TotalDays      float64
	CurrentBalance float64
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	LeaveTypeName *string
}

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// Request is a leave application. Its requested length is reserved against
// the balance at submission time and committed on approval or released on
// rejection/cancellation.
type Request struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	IsHalfDay   bool
	Days        float64
	Reason      string
	Status      RequestStatus
	DecidedBy   *string
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName  *string
	LeaveTypeName *string
}

// RequestedDays computes the span length a request consumes: half a day for
// a half-day request, otherwise the inclusive calendar day count.
func RequestedDays(startDate, endDate time.Time, isHalfDay bool) float64 {
	if isHalfDay {
		return 0.5
	}
	return float64(int(endDate.Sub(startDate).Hours()/24) + 1)
}
