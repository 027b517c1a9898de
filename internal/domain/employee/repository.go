package employee

import "context"

type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	ListAdmins(ctx context.Context) ([]Employee, error)
}
