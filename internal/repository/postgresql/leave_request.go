package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepository{db: db}
}

// Create implements leave.RequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (
			id, employee_id, leave_type_id, start_date, end_date,
			is_half_day, days, reason, status, created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.LeaveTypeID, req.StartDate, req.EndDate,
		req.IsHalfDay, req.Days, req.Reason, string(req.Status),
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.leave_type_id, l.start_date, l.end_date,
		       l.is_half_day, l.days, l.reason, l.status, l.decided_by, l.decided_at,
		       l.created_at, l.updated_at,
		       u.full_name AS employee_name,
		       lt.name AS leave_type_name
		FROM leaves l
		LEFT JOIN users u ON u.id = l.employee_id
		LEFT JOIN leave_types lt ON lt.id = l.leave_type_id
		WHERE l.id = $1
	`

	var req leave.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
		&req.IsHalfDay, &req.Days, &req.Reason, &req.Status, &req.DecidedBy, &req.DecidedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.LeaveTypeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return req, nil
}

// ListByEmployee implements leave.RequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return r.list(ctx, `WHERE l.employee_id = $1`, employeeID)
}

// ListByStatus implements leave.RequestRepository.
func (r *leaveRequestRepository) ListByStatus(ctx context.Context, status leave.RequestStatus) ([]leave.Request, error) {
	return r.list(ctx, `WHERE l.status = $1`, string(status))
}

func (r *leaveRequestRepository) list(ctx context.Context, where string, arg interface{}) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.leave_type_id, l.start_date, l.end_date,
		       l.is_half_day, l.days, l.reason, l.status, l.decided_by, l.decided_at,
		       l.created_at, l.updated_at,
		       u.full_name AS employee_name,
		       lt.name AS leave_type_name
		FROM leaves l
		LEFT JOIN users u ON u.id = l.employee_id
		LEFT JOIN leave_types lt ON lt.id = l.leave_type_id
		` + where + `
		ORDER BY l.created_at DESC
	`

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		var req leave.Request
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate,
			&req.IsHalfDay, &req.Days, &req.Reason, &req.Status, &req.DecidedBy, &req.DecidedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName, &req.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// UpdateStatus implements leave.RequestRepository. Like corrections, the
// pending guard in the WHERE clause makes the flip race-safe.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, decidedBy *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, decided_by = $2, decided_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	tag, err := q.Exec(ctx, query, string(status), decidedBy, id, string(leave.RequestStatusPending))
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAlreadyProcessed
	}

	return nil
}
