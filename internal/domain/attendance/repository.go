package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records.
type Repository interface {
	// Create creates the record for (employee, date); the unique key rejects
	// a second record for the same day.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByEmployeeAndDate returns nil when no record exists for the day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// Update rewrites check-in/out and status for an existing record.
	Update(ctx context.Context, rec Record) error

	// Upsert inserts or overwrites the record for (employee, date) in one
	// statement, leaning on the unique key.
	Upsert(ctx context.Context, rec Record) (Record, error)

	// ListByEmployee returns the employee's records inside [from, to],
	// newest first.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}
