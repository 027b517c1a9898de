package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/notification"
	notificationservice "github.com/kantor-hq/hr-backoffice-go/internal/service/notification"
)

// txRunnerStub runs the function directly; the fakes have no transactions.
type txRunnerStub struct{}

func (txRunnerStub) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeTypeRepo) Create(_ context.Context, t leave.LeaveType) (leave.LeaveType, error) {
	for _, existing := range f.types {
		if existing.Name == t.Name {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
	}
	t.ID = fmt.Sprintf("type-%d", len(f.types)+1)
	f.types[t.ID] = t
	return t, nil
}

func (f *fakeTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	t, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return t, nil
}

func (f *fakeTypeRepo) GetByName(_ context.Context, name string) (leave.LeaveType, error) {
	for _, t := range f.types {
		if t.Name == name {
			return t, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeTypeRepo) List(_ context.Context) ([]leave.LeaveType, error) {
	types := make([]leave.LeaveType, 0, len(f.types))
	for _, t := range f.types {
		types = append(types, t)
	}
	return types, nil
}

type fakeBalanceRepo struct {
	balances map[string]*leave.Balance
}

func balanceKey(employeeID, leaveTypeID string) string {
	return employeeID + "/" + leaveTypeID
}

func (f *fakeBalanceRepo) SetAllocation(_ context.Context, employeeID, leaveTypeID string, totalDays float64) (leave.Balance, error) {
	key := balanceKey(employeeID, leaveTypeID)
	b, ok := f.balances[key]
	if !ok {
		b = &leave.Balance{
			ID:             key,
			EmployeeID:     employeeID,
			LeaveTypeID:    leaveTypeID,
			TotalDays:      totalDays,
			CurrentBalance: totalDays,
		}
		f.balances[key] = b
		return *b, nil
	}

	b.CurrentBalance = b.CurrentBalance + (totalDays - b.TotalDays)
	if b.CurrentBalance > totalDays {
		b.CurrentBalance = totalDays
	}
	b.TotalDays = totalDays
	return *b, nil
}

func (f *fakeBalanceRepo) Get(_ context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return *b, nil
}

func (f *fakeBalanceRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Balance, error) {
	balances := make([]leave.Balance, 0)
	for _, b := range f.balances {
		if b.EmployeeID == employeeID {
			balances = append(balances, *b)
		}
	}
	return balances, nil
}

func (f *fakeBalanceRepo) Reserve(_ context.Context, employeeID, leaveTypeID string, days float64) error {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok || b.CurrentBalance < days {
		return leave.ErrInsufficientBalance
	}
	b.CurrentBalance -= days
	return nil
}

func (f *fakeBalanceRepo) Release(_ context.Context, employeeID, leaveTypeID string, days float64) error {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok || b.CurrentBalance+days > b.TotalDays {
		return leave.ErrBalanceNotFound
	}
	b.CurrentBalance += days
	return nil
}

type fakeRequestRepo struct {
	requests map[string]*leave.Request
	seq      int
}

func (f *fakeRequestRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	f.seq++
	req.ID = fmt.Sprintf("req-%d", f.seq)
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	stored := req
	f.requests[req.ID] = &stored
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return *req, nil
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	requests := make([]leave.Request, 0)
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			requests = append(requests, *req)
		}
	}
	return requests, nil
}

func (f *fakeRequestRepo) ListByStatus(_ context.Context, status leave.RequestStatus) ([]leave.Request, error) {
	requests := make([]leave.Request, 0)
	for _, req := range f.requests {
		if req.Status == status {
			requests = append(requests, *req)
		}
	}
	return requests, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status leave.RequestStatus, decidedBy *string) error {
	req, ok := f.requests[id]
	if !ok || req.Status != leave.RequestStatusPending {
		return leave.ErrAlreadyProcessed
	}
	now := time.Now()
	req.Status = status
	req.DecidedBy = decidedBy
	req.DecidedAt = &now
	return nil
}

type fakeNotificationRepo struct {
	notifications []notification.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return n, nil
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, ns []notification.Notification) error {
	f.notifications = append(f.notifications, ns...)
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id string) (notification.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return notification.Notification{}, notification.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) ListForEmployee(_ context.Context, employeeID string, unreadOnly bool, page, pageSize int) ([]notification.Notification, int64, error) {
	matched := make([]notification.Notification, 0)
	for _, n := range f.notifications {
		if n.RecipientID != nil && *n.RecipientID != employeeID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if (n.RecipientID == nil || *n.RecipientID == employeeID) && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string, employeeID string) (bool, error) {
	for i, n := range f.notifications {
		if n.ID == id && n.RecipientID != nil && *n.RecipientID == employeeID {
			f.notifications[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	employees := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		employees = append(employees, emp)
	}
	return employees, nil
}

func (f *fakeEmployeeRepo) ListAdmins(_ context.Context) ([]employee.Employee, error) {
	admins := make([]employee.Employee, 0)
	for _, emp := range f.employees {
		if emp.Role == employee.RoleAdmin {
			admins = append(admins, emp)
		}
	}
	return admins, nil
}

type leaveFixture struct {
	service       *Service
	balances      *fakeBalanceRepo
	requests      *fakeRequestRepo
	notifications *fakeNotificationRepo
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()

	typeRepo := &fakeTypeRepo{types: map[string]leave.LeaveType{
		"annual": {ID: "annual", Name: "Annual Leave", IsPaid: true},
	}}
	balanceRepo := &fakeBalanceRepo{balances: map[string]*leave.Balance{}}
	requestRepo := &fakeRequestRepo{requests: map[string]*leave.Request{}}
	notificationRepo := &fakeNotificationRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1":   {ID: "emp-1", FullName: "Alex", Role: employee.RoleEmployee},
		"admin-1": {ID: "admin-1", FullName: "Sam", Role: employee.RoleAdmin},
	}}

	notificationSvc := notificationservice.NewService(notificationRepo, employeeRepo)

	return &leaveFixture{
		service:       NewService(txRunnerStub{}, typeRepo, balanceRepo, requestRepo, notificationSvc),
		balances:      balanceRepo,
		requests:      requestRepo,
		notifications: notificationRepo,
	}
}

func (f *leaveFixture) allocate(t *testing.T, employeeID string, days float64) {
	t.Helper()
	_, err := f.balances.SetAllocation(context.Background(), employeeID, "annual", days)
	require.NoError(t, err)
}

func TestApplyReservesBalance(t *testing.T) {
	f := newLeaveFixture(t)
	f.allocate(t, "emp-1", 12)

	created, err := f.service.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "family matters",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.RequestStatusPending, created.Status)
	assert.Equal(t, float64(3), created.Days)

	balance, err := f.balances.Get(context.Background(), "emp-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, float64(9), balance.CurrentBalance)

	// The admin got a notification, the employee did not.
	require.Len(t, f.notifications.notifications, 1)
	require.NotNil(t, f.notifications.notifications[0].RecipientID)
	assert.Equal(t, "admin-1", *f.notifications.notifications[0].RecipientID)
}

func TestApplyInsufficientBalance(t *testing.T) {
	f := newLeaveFixture(t)
	f.allocate(t, "emp-1", 2)

	_, err := f.service.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-06",
		Reason:      "long trip",
	})
	require.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// Nothing moved and nothing was created.
	balance, err := f.balances.Get(context.Background(), "emp-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, float64(2), balance.CurrentBalance)
	assert.Empty(t, f.requests.requests)
	assert.Empty(t, f.notifications.notifications)
}

func TestApplyHalfDay(t *testing.T) {
	f := newLeaveFixture(t)
	f.allocate(t, "emp-1", 1)

	created, err := f.service.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-02",
		IsHalfDay:   true,
		Reason:      "appointment",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.5, created.Days)
	balance, err := f.balances.Get(context.Background(), "emp-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, 0.5, balance.CurrentBalance)
}

func TestDecideRejectReleasesBalance(t *testing.T) {
	f := newLeaveFixture(t)
	f.allocate(t, "emp-1", 12)

	created, err := f.service.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "family matters",
	})
	require.NoError(t, err)

	decided, err := f.service.Decide(context.Background(), leave.DecideRequest{
		RequestID: created.ID,
		Decision:  string(leave.RequestStatusRejected),
		DeciderID: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusRejected, decided.Status)

	// Reservation returned in full.
	balance, err := f.balances.Get(context.Background(), "emp-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, float64(12), balance.CurrentBalance)
}

func TestDecideApproveKeepsDeduction(t *testing.T) {
	f := newLeaveFixture(t)
	f.allocate(t, "emp-1", 12)

	created, err := f.service.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "family matters",
	})
	require.NoError(t, err)

	decided, err := f.service.Decide(context.Background(), leave.DecideRequest{
		RequestID: created.ID,
		Decision:  string(leave.RequestStatusApproved),
		DeciderID: "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "admin-1", *decided.DecidedBy)

	balance, err := f.balances.Get(context.Background(), "emp-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, float64(9), balance.CurrentBalance)
}

func TestDecideTwiceFails(t *testing.T) {
	f := newLeaveFixture(t)
	f.allocate(t, "emp-1", 12)

	created, err := f.service.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "family matters",
	})
	require.NoError(t, err)

	_, err = f.service.Decide(context.Background(), leave.DecideRequest{
		RequestID: created.ID,
		Decision:  string(leave.RequestStatusRejected),
		DeciderID: "admin-1",
	})
	require.NoError(t, err)

	_, err = f.service.Decide(context.Background(), leave.DecideRequest{
		RequestID: created.ID,
		Decision:  string(leave.RequestStatusApproved),
		DeciderID: "admin-1",
	})
	require.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	// The rejected release happened exactly once.
	balance, err := f.balances.Get(context.Background(), "emp-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, float64(12), balance.CurrentBalance)
}

func TestCancelOwnerOnly(t *testing.T) {
	f := newLeaveFixture(t)
	f.allocate(t, "emp-1", 12)

	created, err := f.service.Apply(context.Background(), leave.ApplyRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Reason:      "family matters",
	})
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), created.ID, "emp-2")
	require.ErrorIs(t, err, leave.ErrNotRequestOwner)

	cancelled, err := f.service.Cancel(context.Background(), created.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusCancelled, cancelled.Status)

	balance, err := f.balances.Get(context.Background(), "emp-1", "annual")
	require.NoError(t, err)
	assert.Equal(t, float64(12), balance.CurrentBalance)
}

func TestSetBalanceShrinkClampsCurrent(t *testing.T) {
	f := newLeaveFixture(t)
	f.allocate(t, "emp-1", 12)

	balance, err := f.service.SetBalance(context.Background(), leave.SetBalanceRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "annual",
		TotalDays:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(5), balance.TotalDays)
	assert.Equal(t, float64(5), balance.CurrentBalance)
}
