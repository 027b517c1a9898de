package postgresql

import (
	"context"
	"fmt"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// Create implements holiday.Repository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, name, date, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, h.Name, h.Date).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return h, nil
}

// Delete implements holiday.Repository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// ListByYear implements holiday.Repository.
func (r *holidayRepository) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, created_at
		FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]holiday.Holiday, 0)
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}

	return holidays, nil
}
