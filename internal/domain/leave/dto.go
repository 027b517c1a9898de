package leave

import (
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/validator"
)

type ApplyRequest struct {
	EmployeeID  string `json:"-"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsHalfDay   bool   `json:"is_half_day"`
	Reason      string `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	startDate, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	endDate, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}
	if okStart && okEnd && r.IsHalfDay && !startDate.Equal(endDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "is_half_day",
			Message: "a half-day request must cover a single date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideRequest struct {
	RequestID string `json:"request_id"`
	Decision  string `json:"decision"`
	DeciderID string `json:"-"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.Decision != string(RequestStatusApproved) && r.Decision != string(RequestStatusRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be 'approved' or 'rejected'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateLeaveTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsPaid      bool    `json:"is_paid"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetBalanceRequest struct {
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	TotalDays   float64 `json:"total_days"`
}

func (r *SetBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if r.TotalDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsPaid      bool    `json:"is_paid"`
}

func ToTypeResponse(t LeaveType) TypeResponse {
	return TypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsPaid:      t.IsPaid,
	}
}

type RequestResponse struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	EmployeeName  *string    `json:"employee_name,omitempty"`
	LeaveTypeID   string     `json:"leave_type_id"`
	LeaveTypeName *string    `json:"leave_type_name,omitempty"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	IsHalfDay     bool       `json:"is_half_day"`
	Days          float64    `json:"days"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	DecidedBy     *string    `json:"decided_by,omitempty"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToRequestResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  req.EmployeeName,
		LeaveTypeID:   req.LeaveTypeID,
		LeaveTypeName: req.LeaveTypeName,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		IsHalfDay:     req.IsHalfDay,
		Days:          req.Days,
		Reason:        req.Reason,
		Status:        string(req.Status),
		DecidedBy:     req.DecidedBy,
		DecidedAt:     req.DecidedAt,
		CreatedAt:     req.CreatedAt,
	}
}

type BalanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	LeaveTypeID    string  `json:"leave_type_id"`
	LeaveTypeName  *string `json:"leave_type_name,omitempty"`
	TotalDays      float64 `json:"total_days"`
	CurrentBalance float64 `json:"current_balance"`
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:             b.ID,
		EmployeeID:     b.EmployeeID,
		LeaveTypeID:    b.LeaveTypeID,
		LeaveTypeName:  b.LeaveTypeName,
		TotalDays:      b.TotalDays,
		CurrentBalance: b.CurrentBalance,
	}
}
