package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/kantor-hq/hr-backoffice-go/internal/pkg/database"
	notificationservice "github.com/kantor-hq/hr-backoffice-go/internal/service/notification"
)

// Service drives the leave request state machine and the balance ledger
// behind it. Days are reserved when a request is filed, returned when it is
// rejected or cancelled, and kept deducted when it is approved; every
// transition and its balance movement commit as one transaction.
type Service struct {
	db                  database.TxRunner
	leaveTypeRepository leave.TypeRepository
	balanceRepository   leave.BalanceRepository
	requestRepository   leave.RequestRepository
	notificationService *notificationservice.Service
}

func NewService(db database.TxRunner, leaveTypeRepository leave.TypeRepository, balanceRepository leave.BalanceRepository, requestRepository leave.RequestRepository, notificationService *notificationservice.Service) *Service {
	return &Service{
		db:                  db,
		leaveTypeRepository: leaveTypeRepository,
		balanceRepository:   balanceRepository,
		requestRepository:   requestRepository,
		notificationService: notificationService,
	}
}

// Apply files a leave request. The requested days are reserved against the
// balance in the same transaction that creates the pending row, so a request
// that would overdraw never becomes visible.
func (s *Service) Apply(ctx context.Context, req leave.ApplyRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	leaveType, err := s.leaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.Request{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)
	days := leave.RequestedDays(startDate, endDate, req.IsHalfDay)

	if _, err := s.balanceRepository.Get(ctx, req.EmployeeID, req.LeaveTypeID); err != nil {
		return leave.Request{}, err
	}

	request := leave.Request{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		IsHalfDay:   req.IsHalfDay,
		Days:        days,
		Reason:      req.Reason,
		Status:      leave.RequestStatusPending,
	}

	var created leave.Request
	err = s.db.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.balanceRepository.Reserve(txCtx, req.EmployeeID, req.LeaveTypeID, days); err != nil {
			return err
		}

		var err error
		created, err = s.requestRepository.Create(txCtx, request)
		if err != nil {
			return err
		}

		message := fmt.Sprintf("New %s leave request (%s to %s) awaits review", leaveType.Name, req.StartDate, req.EndDate)
		return s.notificationService.NotifyAdmins(txCtx, message)
	})
	if err != nil {
		return leave.Request{}, err
	}

	return created, nil
}

// Decide settles a pending request. Approval keeps the reservation deducted;
// rejection returns it. The flip, the balance movement and the notification
// commit together, and a raced decision surfaces ErrAlreadyProcessed.
func (s *Service) Decide(ctx context.Context, req leave.DecideRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	request, err := s.requestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	decision := leave.RequestStatus(req.Decision)

	err = s.db.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepository.UpdateStatus(txCtx, request.ID, decision, &req.DeciderID); err != nil {
			return err
		}

		if decision == leave.RequestStatusRejected {
			if err := s.balanceRepository.Release(txCtx, request.EmployeeID, request.LeaveTypeID, request.Days); err != nil {
				return err
			}
		}

		message := fmt.Sprintf("Your leave request (%s to %s) was %s",
			request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"), decision)
		return s.notificationService.NotifyEmployee(txCtx, request.EmployeeID, message)
	})
	if err != nil {
		return leave.Request{}, err
	}

	return s.requestRepository.GetByID(ctx, req.RequestID)
}

// Cancel withdraws the caller's own pending request and returns its
// reservation. Admin requests route through Decide; cancellation is owner
// only.
func (s *Service) Cancel(ctx context.Context, requestID, employeeID string) (leave.Request, error) {
	request, err := s.requestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.Request{}, leave.ErrNotRequestOwner
	}
	if request.Status != leave.RequestStatusPending {
		return leave.Request{}, leave.ErrAlreadyProcessed
	}

	err = s.db.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requestRepository.UpdateStatus(txCtx, request.ID, leave.RequestStatusCancelled, nil); err != nil {
			return err
		}

		return s.balanceRepository.Release(txCtx, request.EmployeeID, request.LeaveTypeID, request.Days)
	})
	if err != nil {
		return leave.Request{}, err
	}

	return s.requestRepository.GetByID(ctx, requestID)
}

func (s *Service) GetRequest(ctx context.Context, id string) (leave.Request, error) {
	return s.requestRepository.GetByID(ctx, id)
}

func (s *Service) ListMine(ctx context.Context, employeeID string) ([]leave.RequestResponse, error) {
	requests, err := s.requestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toRequestResponses(requests), nil
}

func (s *Service) ListPending(ctx context.Context) ([]leave.RequestResponse, error) {
	requests, err := s.requestRepository.ListByStatus(ctx, leave.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	return toRequestResponses(requests), nil
}

// CreateType registers a leave type. Admin operation.
func (s *Service) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	leaveType := leave.LeaveType{
		Name:        req.Name,
		Description: req.Description,
		IsPaid:      req.IsPaid,
	}

	return s.leaveTypeRepository.Create(ctx, leaveType)
}

func (s *Service) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return s.leaveTypeRepository.List(ctx)
}

// SetBalance sets an employee's allocation for one leave type. Admin
// operation; growing or shrinking the allocation moves the balance by the
// same delta, clamped to the new total.
func (s *Service) SetBalance(ctx context.Context, req leave.SetBalanceRequest) (leave.Balance, error) {
	if err := req.Validate(); err != nil {
		return leave.Balance{}, err
	}

	if _, err := s.leaveTypeRepository.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.Balance{}, err
	}

	return s.balanceRepository.SetAllocation(ctx, req.EmployeeID, req.LeaveTypeID, req.TotalDays)
}

// MyBalances lists the caller's balances across leave types.
func (s *Service) MyBalances(ctx context.Context, employeeID string) ([]leave.BalanceResponse, error) {
	balances, err := s.balanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.ToBalanceResponse(b))
	}

	return responses, nil
}

func toRequestResponses(requests []leave.Request) []leave.RequestResponse {
	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, leave.ToRequestResponse(req))
	}
	return responses
}
