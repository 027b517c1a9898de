package holiday

import "github.com/kantor-hq/hr-backoffice-go/internal/pkg/validator"

type CreateHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Response struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

func ToResponse(h Holiday) Response {
	return Response{
		ID:   h.ID,
		Name: h.Name,
		Date: h.Date.Format("2006-01-02"),
	}
}
