package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/attendance"
)

type Service struct {
	attendanceRepository attendance.Repository

	// now is swapped in tests to pin the working day.
	now func() time.Time
}

func NewService(attendanceRepository attendance.Repository) *Service {
	return &Service{
		attendanceRepository: attendanceRepository,
		now:                  time.Now,
	}
}

// CheckIn opens today's attendance record. A second check-in on the same day
// is rejected, whether it races on the unique key or arrives later.
func (s *Service) CheckIn(ctx context.Context, employeeID string) (attendance.Record, error) {
	now := s.now()
	today := truncateToDate(now)

	existing, err := s.attendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if existing != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}

	rec := attendance.Record{
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     attendance.DeriveStatus(&now, nil),
	}

	created, err := s.attendanceRepository.Create(ctx, rec)
	if err != nil {
		return attendance.Record{}, err
	}

	return created, nil
}

// CheckOut closes today's record. Requires an open check-in and a later
// timestamp; re-checking out is rejected.
func (s *Service) CheckOut(ctx context.Context, employeeID string) (attendance.Record, error) {
	now := s.now()
	today := truncateToDate(now)

	rec, err := s.attendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec == nil || rec.CheckIn == nil {
		return attendance.Record{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}
	if !now.After(*rec.CheckIn) {
		return attendance.Record{}, attendance.ErrCheckOutBeforeIn
	}

	rec.CheckOut = &now
	rec.Status = attendance.DeriveStatus(rec.CheckIn, rec.CheckOut)

	if err := s.attendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.Record{}, err
	}

	return *rec, nil
}

// ListMyAttendance returns the employee's records for the requested range,
// defaulting to the current calendar month.
func (s *Service) ListMyAttendance(ctx context.Context, employeeID string, req attendance.ListMyAttendanceRequest) ([]attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)

	if req.StartDate != "" {
		from, _ = time.Parse("2006-01-02", req.StartDate)
	}
	if req.EndDate != "" {
		to, _ = time.Parse("2006-01-02", req.EndDate)
	}

	records, err := s.attendanceRepository.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}

	return responses, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
