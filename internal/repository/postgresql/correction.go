package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/correction"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.Repository {
	return &correctionRepository{db: db}
}

// Create implements correction.Repository.
func (r *correctionRepository) Create(ctx context.Context, req correction.Request) (correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO corrections (
			id, employee_id, date, requested_check_in, requested_check_out,
			reason, status, created_at, updated_at
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.Date, req.RequestedCheckIn, req.RequestedCheckOut,
		req.Reason, string(req.Status),
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return correction.Request{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	return req, nil
}

// GetByID implements correction.Repository.
func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.employee_id, c.date, c.requested_check_in, c.requested_check_out,
		       c.reason, c.status, c.admin_comment, c.reviewed_by, c.reviewed_at,
		       c.created_at, c.updated_at,
		       u.full_name AS employee_name
		FROM corrections c
		LEFT JOIN users u ON u.id = c.employee_id
		WHERE c.id = $1
	`

	var req correction.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.Date, &req.RequestedCheckIn, &req.RequestedCheckOut,
		&req.Reason, &req.Status, &req.AdminComment, &req.ReviewedBy, &req.ReviewedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return correction.Request{}, correction.ErrCorrectionNotFound
		}
		return correction.Request{}, fmt.Errorf("failed to get correction request by ID: %w", err)
	}

	return req, nil
}

// ListByEmployee implements correction.Repository.
func (r *correctionRepository) ListByEmployee(ctx context.Context, employeeID string) ([]correction.Request, error) {
	return r.list(ctx, `WHERE c.employee_id = $1`, employeeID)
}

// ListByStatus implements correction.Repository.
func (r *correctionRepository) ListByStatus(ctx context.Context, status correction.Status) ([]correction.Request, error) {
	return r.list(ctx, `WHERE c.status = $1`, string(status))
}

func (r *correctionRepository) list(ctx context.Context, where string, arg interface{}) ([]correction.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.employee_id, c.date, c.requested_check_in, c.requested_check_out,
		       c.reason, c.status, c.admin_comment, c.reviewed_by, c.reviewed_at,
		       c.created_at, c.updated_at,
		       u.full_name AS employee_name
		FROM corrections c
		LEFT JOIN users u ON u.id = c.employee_id
		` + where + `
		ORDER BY c.created_at DESC
	`

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list correction requests: %w", err)
	}
	defer rows.Close()

	requests := make([]correction.Request, 0)
	for rows.Next() {
		var req correction.Request
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.Date, &req.RequestedCheckIn, &req.RequestedCheckOut,
			&req.Reason, &req.Status, &req.AdminComment, &req.ReviewedBy, &req.ReviewedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.EmployeeName,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// UpdateStatus implements correction.Repository. The status guard in the
// WHERE clause makes the pending -> terminal flip race-safe: a second
// reviewer matches zero rows.
func (r *correctionRepository) UpdateStatus(ctx context.Context, id string, status correction.Status, adminComment *string, reviewedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE corrections
		SET status = $1, admin_comment = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	tag, err := q.Exec(ctx, query, string(status), adminComment, reviewedBy, id, string(correction.StatusPending))
	if err != nil {
		return fmt.Errorf("failed to update correction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrAlreadyReviewed
	}

	return nil
}
