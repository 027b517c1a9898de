package correction

import (
	"context"
	"fmt"
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/correction"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
	notificationservice "github.com/kantor-hq/hr-backoffice-go/internal/service/notification"
)

// Service drives the attendance correction state machine. A request starts
// pending and moves exactly once to approved or rejected; only approval
// touches the attendance ledger.
type Service struct {
	db                   database.TxRunner
	correctionRepository correction.Repository
	attendanceRepository attendance.Repository
	notificationService  *notificationservice.Service
}

func NewService(db database.TxRunner, correctionRepository correction.Repository, attendanceRepository attendance.Repository, notificationService *notificationservice.Service) *Service {
	return &Service{
		db:                   db,
		correctionRepository: correctionRepository,
		attendanceRepository: attendanceRepository,
		notificationService:  notificationService,
	}
}

// Submit files a pending correction request and tells the admins about it,
// in one transaction.
func (s *Service) Submit(ctx context.Context, req correction.SubmitRequest) (correction.Request, error) {
	if err := req.Validate(); err != nil {
		return correction.Request{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	request := correction.Request{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Reason:     req.Reason,
		Status:     correction.StatusPending,
	}
	if req.CheckIn != "" {
		checkIn, err := time.Parse(time.RFC3339, req.CheckIn)
		if err != nil {
			return correction.Request{}, fmt.Errorf("failed to parse check_in: %w", err)
		}
		request.RequestedCheckIn = &checkIn
	}
	if req.CheckOut != "" {
		checkOut, err := time.Parse(time.RFC3339, req.CheckOut)
		if err != nil {
			return correction.Request{}, fmt.Errorf("failed to parse check_out: %w", err)
		}
		request.RequestedCheckOut = &checkOut
	}

	var created correction.Request
	err := s.db.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.correctionRepository.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("failed to create correction request: %w", err)
		}

		message := fmt.Sprintf("New attendance correction request for %s awaits review", req.Date)
		return s.notificationService.NotifyAdmins(txCtx, message)
	})
	if err != nil {
		return correction.Request{}, err
	}

	return created, nil
}

// Review settles a pending request. The status flip, the attendance rewrite
// on approval and the employee notification commit as one unit; a request
// that was already settled surfaces ErrAlreadyReviewed and changes nothing.
func (s *Service) Review(ctx context.Context, req correction.ReviewRequest) (correction.Request, error) {
	if err := req.Validate(); err != nil {
		return correction.Request{}, err
	}

	request, err := s.correctionRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return correction.Request{}, err
	}
	if request.Status != correction.StatusPending {
		return correction.Request{}, correction.ErrAlreadyReviewed
	}

	decision := correction.Status(req.Decision)

	err = s.db.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.correctionRepository.UpdateStatus(txCtx, request.ID, decision, req.AdminComment, req.ReviewerID); err != nil {
			return err
		}

		if decision == correction.StatusApproved {
			if err := s.applyToLedger(txCtx, request); err != nil {
				return err
			}
		}

		message := fmt.Sprintf("Your attendance correction for %s was %s", request.Date.Format("2006-01-02"), decision)
		return s.notificationService.NotifyEmployee(txCtx, request.EmployeeID, message)
	})
	if err != nil {
		return correction.Request{}, err
	}

	return s.correctionRepository.GetByID(ctx, req.RequestID)
}

// applyToLedger writes the approved times into the attendance record for the
// day. Times the request leaves out survive from the existing record, so a
// check-in-only correction keeps the recorded check-out.
func (s *Service) applyToLedger(ctx context.Context, request correction.Request) error {
	rec := attendance.Record{
		EmployeeID: request.EmployeeID,
		Date:       request.Date,
	}

	existing, err := s.attendanceRepository.GetByEmployeeAndDate(ctx, request.EmployeeID, request.Date)
	if err != nil {
		return fmt.Errorf("failed to get attendance record: %w", err)
	}
	if existing != nil {
		rec.CheckIn = existing.CheckIn
		rec.CheckOut = existing.CheckOut
	}

	if request.RequestedCheckIn != nil {
		rec.CheckIn = request.RequestedCheckIn
	}
	if request.RequestedCheckOut != nil {
		rec.CheckOut = request.RequestedCheckOut
	}
	rec.Status = attendance.DeriveStatus(rec.CheckIn, rec.CheckOut)

	if _, err := s.attendanceRepository.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("failed to apply correction to attendance: %w", err)
	}

	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (correction.Request, error) {
	return s.correctionRepository.GetByID(ctx, id)
}

func (s *Service) ListMine(ctx context.Context, employeeID string) ([]correction.Response, error) {
	requests, err := s.correctionRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list correction requests: %w", err)
	}

	return toResponses(requests), nil
}

func (s *Service) ListPending(ctx context.Context) ([]correction.Response, error) {
	requests, err := s.correctionRepository.ListByStatus(ctx, correction.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending correction requests: %w", err)
	}

	return toResponses(requests), nil
}

func toResponses(requests []correction.Request) []correction.Response {
	responses := make([]correction.Response, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, correction.ToResponse(req))
	}
	return responses
}
