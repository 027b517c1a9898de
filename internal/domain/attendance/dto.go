package attendance

import (
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/validator"
)

type RecordResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"`
	CheckIn    *time.Time `json:"check_in,omitempty"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	Status     string     `json:"status"`
}

func ToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date.Format("2006-01-02"),
		CheckIn:    rec.CheckIn,
		CheckOut:   rec.CheckOut,
		Status:     string(rec.Status),
	}
}

type ListMyAttendanceRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *ListMyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
