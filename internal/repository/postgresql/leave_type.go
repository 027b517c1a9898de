package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.TypeRepository {
	return &leaveTypeRepository{db: db}
}

// Create implements leave.TypeRepository.
func (r *leaveTypeRepository) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (id, name, description, is_paid, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.Name, leaveType.Description, leaveType.IsPaid,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return leaveType, nil
}

// GetByID implements leave.TypeRepository.
func (r *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_paid, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`

	var leaveType leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(
		&leaveType.ID, &leaveType.Name, &leaveType.Description, &leaveType.IsPaid,
		&leaveType.CreatedAt, &leaveType.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by ID: %w", err)
	}

	return leaveType, nil
}

// GetByName implements leave.TypeRepository.
func (r *leaveTypeRepository) GetByName(ctx context.Context, name string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_paid, created_at, updated_at
		FROM leave_types
		WHERE name = $1
	`

	var leaveType leave.LeaveType
	err := q.QueryRow(ctx, query, name).Scan(
		&leaveType.ID, &leaveType.Name, &leaveType.Description, &leaveType.IsPaid,
		&leaveType.CreatedAt, &leaveType.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by name: %w", err)
	}

	return leaveType, nil
}

// List implements leave.TypeRepository.
func (r *leaveTypeRepository) List(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_paid, created_at, updated_at
		FROM leave_types
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		var leaveType leave.LeaveType
		if err := rows.Scan(
			&leaveType.ID, &leaveType.Name, &leaveType.Description, &leaveType.IsPaid,
			&leaveType.CreatedAt, &leaveType.UpdatedAt,
		); err != nil {
			return nil, err
		}
		types = append(types, leaveType)
	}

	return types, nil
}
