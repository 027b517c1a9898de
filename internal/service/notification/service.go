package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/notification"
)

// Service is the notification dispatcher. Writes issued through it resolve
// the caller's querier, so a dispatch that rides a state transition commits
// or rolls back with that transaction.
type Service struct {
	notificationRepository notification.Repository
	employeeRepository     employee.Repository
}

func NewService(notificationRepository notification.Repository, employeeRepository employee.Repository) *Service {
	return &Service{
		notificationRepository: notificationRepository,
		employeeRepository:     employeeRepository,
	}
}

// Send creates one notification from an admin payload. A nil recipient
// produces a global row that every employee sees.
func (s *Service) Send(ctx context.Context, req notification.SendRequest) (notification.Notification, error) {
	if err := req.Validate(); err != nil {
		return notification.Notification{}, err
	}

	if req.RecipientID != nil {
		if _, err := s.employeeRepository.GetByID(ctx, *req.RecipientID); err != nil {
			return notification.Notification{}, fmt.Errorf("failed to resolve recipient: %w", err)
		}
	}

	n := notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: req.RecipientID,
		Message:     req.Message,
	}

	created, err := s.notificationRepository.Create(ctx, n)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to send notification: %w", err)
	}

	return created, nil
}

// NotifyEmployee dispatches a targeted notification. Called by the workflow
// services from inside their transactions.
func (s *Service) NotifyEmployee(ctx context.Context, recipientID, message string) error {
	n := notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: &recipientID,
		Message:     message,
	}

	if _, err := s.notificationRepository.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to notify employee: %w", err)
	}

	return nil
}

// NotifyAdmins dispatches one targeted notification per admin. Used when an
// employee submits something that needs review.
func (s *Service) NotifyAdmins(ctx context.Context, message string) error {
	admins, err := s.employeeRepository.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	notifications := make([]notification.Notification, 0, len(admins))
	for _, admin := range admins {
		recipientID := admin.ID
		notifications = append(notifications, notification.Notification{
			ID:          uuid.New().String(),
			RecipientID: &recipientID,
			Message:     message,
		})
	}

	if len(notifications) == 0 {
		return nil
	}

	if err := s.notificationRepository.CreateBatch(ctx, notifications); err != nil {
		return fmt.Errorf("failed to notify admins: %w", err)
	}

	return nil
}

// List returns the employee's feed plus counts for the envelope.
func (s *Service) List(ctx context.Context, employeeID string, unreadOnly bool, page, pageSize int) (notification.ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.notificationRepository.ListForEmployee(ctx, employeeID, unreadOnly, page, pageSize)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := s.notificationRepository.CountUnread(ctx, employeeID)
	if err != nil {
		return notification.ListResponse{}, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.Response, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.ToResponse(n))
	}

	return notification.ListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// MarkRead flips one owned notification to read. A row that exists but is
// addressed to someone else (or to everyone) is a permission failure, not a
// missing row.
func (s *Service) MarkRead(ctx context.Context, id, employeeID string) error {
	ok, err := s.notificationRepository.MarkRead(ctx, id, employeeID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if ok {
		return nil
	}

	if _, err := s.notificationRepository.GetByID(ctx, id); err != nil {
		return err
	}

	return notification.ErrNotificationNotOwned
}

func (s *Service) CountUnread(ctx context.Context, employeeID string) (int64, error) {
	count, err := s.notificationRepository.CountUnread(ctx, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
