package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/notification"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository. Resolves the tx-scoped querier
// so dispatches issued inside a state transition commit with it.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (id, recipient_id, message, is_read, created_at)
		VALUES ($1, $2, $3, false, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, n.ID, n.RecipientID, n.Message).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// CreateBatch implements notification.Repository.
func (r *notificationRepository) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	q := GetQuerier(ctx, r.db)

	for _, n := range ns {
		query := `
			INSERT INTO notifications (id, recipient_id, message, is_read, created_at)
			VALUES ($1, $2, $3, false, NOW())
		`
		if _, err := q.Exec(ctx, query, n.ID, n.RecipientID, n.Message); err != nil {
			return fmt.Errorf("failed to batch insert notifications: %w", err)
		}
	}

	return nil
}

// GetByID implements notification.Repository.
func (r *notificationRepository) GetByID(ctx context.Context, id string) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, recipient_id, message, is_read, created_at
		FROM notifications
		WHERE id = $1
	`

	var n notification.Notification
	err := q.QueryRow(ctx, query, id).Scan(&n.ID, &n.RecipientID, &n.Message, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return notification.Notification{}, notification.ErrNotificationNotFound
		}
		return notification.Notification{}, fmt.Errorf("failed to get notification by ID: %w", err)
	}

	return n, nil
}

// ListForEmployee implements notification.Repository. Global rows
// (recipient_id IS NULL) fan out at read time.
func (r *notificationRepository) ListForEmployee(ctx context.Context, employeeID string, unreadOnly bool, page, pageSize int) ([]notification.Notification, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "(recipient_id = $1 OR recipient_id IS NULL)"
	args := []interface{}{employeeID}
	if unreadOnly {
		baseWhere += " AND is_read = false"
	}

	countQuery := "SELECT COUNT(*) FROM notifications WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, recipient_id, message, is_read, created_at
		FROM notifications
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, baseWhere)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, n)
	}

	return notifications, total, nil
}

// CountUnread implements notification.Repository.
func (r *notificationRepository) CountUnread(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE (recipient_id = $1 OR recipient_id IS NULL) AND is_read = false
	`

	var count int64
	if err := q.QueryRow(ctx, query, employeeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead implements notification.Repository. The recipient check in the
// WHERE clause keeps ownership enforcement in the store: rows addressed to
// someone else (or to everyone) match nothing.
func (r *notificationRepository) MarkRead(ctx context.Context, id string, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND recipient_id = $2
	`

	tag, err := q.Exec(ctx, query, id, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
