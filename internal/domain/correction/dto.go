package correction

import (
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/validator"
)

type SubmitRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`
	CheckIn    string `json:"check_in,omitempty"`
	CheckOut   string `json:"check_out,omitempty"`
	Reason     string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	} else if date.After(time.Now()) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must not be in the future",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.CheckIn == "" && r.CheckOut == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in",
			Message: "at least one of check_in or check_out is required",
		})
	}
	if r.CheckIn != "" {
		if _, ok := validator.IsValidDateTime(r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an ISO8601 timestamp",
			})
		}
	}
	if r.CheckOut != "" {
		if _, ok := validator.IsValidDateTime(r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewRequest struct {
	RequestID    string  `json:"request_id"`
	Decision     string  `json:"decision"`
	AdminComment *string `json:"admin_comment,omitempty"`
	ReviewerID   string  `json:"-"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.Decision != string(StatusApproved) && r.Decision != string(StatusRejected) {
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

type Response struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	Date         string     `json:"date"`
	CheckIn      *time.Time `json:"check_in,omitempty"`
	CheckOut     *time.Time `json:"check_out,omitempty"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminComment *string    `json:"admin_comment,omitempty"`
	ReviewedBy   *string    `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func ToResponse(req Request) Response {
	return Response{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Date:         req.Date.Format("2006-01-02"),
		CheckIn:      req.RequestedCheckIn,
		CheckOut:     req.RequestedCheckOut,
		Reason:       req.Reason,
		Status:       string(req.Status),
		AdminComment: req.AdminComment,
		ReviewedBy:   req.ReviewedBy,
		ReviewedAt:   req.ReviewedAt,
		CreatedAt:    req.CreatedAt,
	}
}
