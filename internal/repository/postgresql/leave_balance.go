package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// SetAllocation implements leave.BalanceRepository. Growing an existing
// allocation grows the balance by the same amount; shrinking clamps the
// balance so it never exceeds the new total.
func (r *leaveBalanceRepository) SetAllocation(ctx context.Context, employeeID, leaveTypeID string, totalDays float64) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type_id, total_days, current_balance, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $3, NOW(), NOW())
		ON CONFLICT (employee_id, leave_type_id) DO UPDATE
		SET current_balance = LEAST(leave_balances.current_balance + ($3 - leave_balances.total_days), $3),
		    total_days = $3,
		    updated_at = NOW()
		RETURNING id, employee_id, leave_type_id, total_days, current_balance, created_at, updated_at
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, totalDays).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.TotalDays, &b.CurrentBalance,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to set leave balance allocation: %w", err)
	}

	return b, nil
}

// Get implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, total_days, current_balance, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.TotalDays, &b.CurrentBalance,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// ListByEmployee implements leave.BalanceRepository.
func (r *leaveBalanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lb.id, lb.employee_id, lb.leave_type_id, lb.total_days, lb.current_balance,
		       lb.created_at, lb.updated_at,
		       lt.name AS leave_type_name
		FROM leave_balances lb
		JOIN leave_types lt ON lb.leave_type_id = lt.id
		WHERE lb.employee_id = $1
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.TotalDays, &b.CurrentBalance,
			&b.CreatedAt, &b.UpdatedAt,
			&b.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}

	return balances, nil
}

// Reserve implements leave.BalanceRepository. The balance condition sits in
// the WHERE clause, so two concurrent reservations can never both pass the
// same remaining balance.
func (r *leaveBalanceRepository) Reserve(ctx context.Context, employeeID, leaveTypeID string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET current_balance = current_balance - $1,
		    updated_at = NOW()
		WHERE employee_id = $2
		  AND leave_type_id = $3
		  AND current_balance >= $1
	`

	result, err := q.Exec(ctx, query, days, employeeID, leaveTypeID)
	if err != nil {
		return fmt.Errorf("failed to reserve leave balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// Release implements leave.BalanceRepository. The upper-bound condition
// mirrors Reserve so current_balance can never climb past total_days.
func (r *leaveBalanceRepository) Release(ctx context.Context, employeeID, leaveTypeID string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET current_balance = current_balance + $1,
		    updated_at = NOW()
		WHERE employee_id = $2
		  AND leave_type_id = $3
		  AND current_balance + $1 <= total_days
	`

	result, err := q.Exec(ctx, query, days, employeeID, leaveTypeID)
	if err != nil {
		return fmt.Errorf("failed to release leave balance: %w", err)
	}

	if result.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
