package holiday

import "context"

type Repository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
}
