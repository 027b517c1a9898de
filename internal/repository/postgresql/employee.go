package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

// Create implements employee.Repository.
func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, employee_code, full_name, role, shift_type, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.EmployeeCode, emp.FullName, string(emp.Role), string(emp.ShiftType),
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, full_name, role, shift_type, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Role, &emp.ShiftType,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetByCode implements employee.Repository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_code, full_name, role, shift_type, created_at, updated_at
		FROM users
		WHERE employee_code = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, code).Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Role, &emp.ShiftType,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// List implements employee.Repository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return r.list(ctx, `
		SELECT id, employee_code, full_name, role, shift_type, created_at, updated_at
		FROM users
		ORDER BY employee_code
	`)
}

// ListAdmins implements employee.Repository.
func (r *employeeRepository) ListAdmins(ctx context.Context) ([]employee.Employee, error) {
	return r.list(ctx, `
		SELECT id, employee_code, full_name, role, shift_type, created_at, updated_at
		FROM users
		WHERE role = 'admin'
		ORDER BY employee_code
	`)
}

func (r *employeeRepository) list(ctx context.Context, query string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(
			&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Role, &emp.ShiftType,
			&emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	return employees, nil
}
