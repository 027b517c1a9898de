package notification

import (
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/validator"
)

// SendRequest is the admin broadcast payload. A nil RecipientID sends a
// global notification.
type SendRequest struct {
	RecipientID *string `json:"recipient_id,omitempty"`
	Message     string  `json:"message"`
}

func (r *SendRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}
	if len(r.Message) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message must not exceed 1000 characters",
		})
	}
	if r.RecipientID != nil && validator.IsEmpty(*r.RecipientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "recipient_id",
			Message: "recipient_id must not be empty when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type Response struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	IsGlobal  bool      `json:"is_global"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(n Notification) Response {
	return Response{
		ID:        n.ID,
		Message:   n.Message,
		IsGlobal:  n.IsGlobal(),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

type ListResponse struct {
	Notifications []Response `json:"notifications"`
	Total         int64      `json:"total"`
	UnreadCount   int64      `json:"unread_count"`
	Page          int        `json:"page"`
	PageSize      int        `json:"page_size"`
}
