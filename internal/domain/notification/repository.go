package notification

import "context"

type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	CreateBatch(ctx context.Context, ns []Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)

	// ListForEmployee returns the employee's feed: rows addressed to them
	// plus global rows, newest first.
	ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool, page, pageSize int) ([]Notification, int64, error)
	CountUnread(ctx context.Context, employeeID string) (int64, error)

	// MarkRead flips is_read on a row the employee owns; global rows and
	// rows addressed to others are not matched.
	MarkRead(ctx context.Context, id string, employeeID string) (bool, error)
}
