package correction

import "context"

type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListByStatus(ctx context.Context, status Status) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, status Status, adminComment *string, reviewedBy string) error
}
