package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/holiday"
)

type Service struct {
	holidayRepository holiday.Repository
}

func NewService(holidayRepository holiday.Repository) *Service {
	return &Service{
		holidayRepository: holidayRepository,
	}
}

func (s *Service) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	return s.holidayRepository.Create(ctx, holiday.Holiday{
		Name: req.Name,
		Date: date,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.holidayRepository.Delete(ctx, id)
}

func (s *Service) ListByYear(ctx context.Context, year int) ([]holiday.Response, error) {
	holidays, err := s.holidayRepository.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	responses := make([]holiday.Response, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, holiday.ToResponse(h))
	}

	return responses, nil
}
