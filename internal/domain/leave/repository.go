package leave

import "context"

// TypeRepository - interface for leave_types table
type TypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByName(ctx context.Context, name string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// BalanceRepository - interface for leave_balances table. Reserve and
// Release are single conditional statements so the 0 <= balance <= total
// invariant holds under any interleaving; there is no read-then-write.
type BalanceRepository interface {
	// SetAllocation upserts the allocation for (employee, type); a fresh row
	// starts with CurrentBalance == TotalDays.
	SetAllocation(ctx context.Context, employeeID, leaveTypeID string, totalDays float64) (Balance, error)

	Get(ctx context.Context, employeeID, leaveTypeID string) (Balance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Balance, error)

	// Reserve atomically decrements the balance; ErrInsufficientBalance when
	// the conditional update matches no row.
	Reserve(ctx context.Context, employeeID, leaveTypeID string, days float64) error

	// Release atomically returns a reservation, capped at the allocation.
	Release(ctx context.Context, employeeID, leaveTypeID string, days float64) error
}

// RequestRepository - interface for leaves table
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListByStatus(ctx context.Context, status RequestStatus) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, decidedBy *string) error
}
