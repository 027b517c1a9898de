package attendance

import "time"

// Status is derived from the check-in/out pair, never set directly.
type Status string

const (
	StatusPresent Status = "present"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
)

// Record is the single attendance row for one (employee, date). The unique
// key on that pair is a correctness mechanism: a day can never split into
// two records, no matter how check-ins and corrections interleave.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DeriveStatus computes the status label from the recorded times: both
// present, half a day when only one side was recorded, absent otherwise.
func DeriveStatus(checkIn, checkOut *time.Time) Status {
	switch {
	case checkIn != nil && checkOut != nil:
		return StatusPresent
	case checkIn != nil || checkOut != nil:
		return StatusHalfDay
	default:
		return StatusAbsent
	}
}
