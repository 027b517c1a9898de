package http

import (
	"context"
	"fmt"
	"time"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/correction"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/holiday"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/notification"
)

// In-memory repositories backing the handler tests.

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	for _, existing := range f.employees {
		if existing.EmployeeCode == emp.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	emp.ID = fmt.Sprintf("emp-%d", len(f.employees)+1)
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

type fakeAttendanceRepo struct {
	records map[string]*attendance.Record
}

func attendanceKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	k := attendanceKey(rec.EmployeeID, rec.Date)
	if _, ok := f.records[k]; ok {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	rec.ID = k
	stored := rec
	f.records[k] = &stored
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	rec, ok := f.records[attendanceKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.Record) error {
	k := attendanceKey(rec.EmployeeID, rec.Date)
	if _, ok := f.records[k]; !ok {
		return attendance.ErrRecordNotFound
	}
	stored := rec
	f.records[k] = &stored
	return nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	k := attendanceKey(rec.EmployeeID, rec.Date)
	rec.ID = k
	stored := rec
	f.records[k] = &stored
	return rec, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	records := make([]attendance.Record, 0)
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			records = append(records, *rec)
		}
	}
	return records, nil
}

type fakeCorrectionRepo struct {
	requests map[string]*correction.Request
	seq      int
}

func (f *fakeCorrectionRepo) Create(_ context.Context, req correction.Request) (correction.Request, error) {
	f.seq++
	req.ID = fmt.Sprintf("corr-%d", f.seq)
	req.CreatedAt = time.Now()
	stored := req
	f.requests[req.ID] = &stored
	return req, nil
}

func (f *fakeCorrectionRepo) GetByID(_ context.Context, id string) (correction.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return correction.Request{}, correction.ErrCorrectionNotFound
	}
	return *req, nil
}

func (f *fakeCorrectionRepo) ListByEmployee(_ context.Context, employeeID string) ([]correction.Request, error) {
	requests := make([]correction.Request, 0)
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			requests = append(requests, *req)
		}
	}
	return requests, nil
}

func (f *fakeCorrectionRepo) ListByStatus(_ context.Context, status correction.Status) ([]correction.Request, error) {
	requests := make([]correction.Request, 0)
	for _, req := range f.requests {
		if req.Status == status {
			requests = append(requests, *req)
		}
	}
	return requests, nil
}

func (f *fakeCorrectionRepo) UpdateStatus(_ context.Context, id string, status correction.Status, adminComment *string, reviewedBy string) error {
	req, ok := f.requests[id]
	if !ok || req.Status != correction.StatusPending {
		return correction.ErrAlreadyReviewed
	}
	now := time.Now()
	req.Status = status
	req.AdminComment = adminComment
	req.ReviewedBy = &reviewedBy
	req.ReviewedAt = &now
	return nil
}

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypeRepo) Create(_ context.Context, t leave.LeaveType) (leave.LeaveType, error) {
	for _, existing := range f.types {
		if existing.Name == t.Name {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameExists
		}
	}
	t.ID = fmt.Sprintf("type-%d", len(f.types)+1)
	f.types[t.ID] = t
	return t, nil
}

func (f *fakeLeaveTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	t, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return t, nil
}

func (f *fakeLeaveTypeRepo) GetByName(_ context.Context, name string) (leave.LeaveType, error) {
	for _, t := range f.types {
		if t.Name == name {
			return t, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeLeaveTypeRepo) List(_ context.Context) ([]leave.LeaveType, error) {
	types := make([]leave.LeaveType, 0, len(f.types))
	for _, t := range f.types {
		types = append(types, t)
	}
	return types, nil
}

type fakeLeaveBalanceRepo struct {
	balances map[string]*leave.Balance
}

func balanceKey(employeeID, leaveTypeID string) string {
	return employeeID + "/" + leaveTypeID
}

func (f *fakeLeaveBalanceRepo) SetAllocation(_ context.Context, employeeID, leaveTypeID string, totalDays float64) (leave.Balance, error) {
	k := balanceKey(employeeID, leaveTypeID)
	b, ok := f.balances[k]
	if !ok {
		b = &leave.Balance{
			ID:             k,
			EmployeeID:     employeeID,
			LeaveTypeID:    leaveTypeID,
			TotalDays:      totalDays,
			CurrentBalance: totalDays,
		}
		f.balances[k] = b
		return *b, nil
	}
	b.CurrentBalance = b.CurrentBalance + (totalDays - b.TotalDays)
	if b.CurrentBalance > totalDays {
		b.CurrentBalance = totalDays
	}
	b.TotalDays = totalDays
	return *b, nil
}

func (f *fakeLeaveBalanceRepo) Get(_ context.Context, employeeID, leaveTypeID string) (leave.Balance, error) {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return *b, nil
}

func (f *fakeLeaveBalanceRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Balance, error) {
	balances := make([]leave.Balance, 0)
	for _, b := range f.balances {
		if b.EmployeeID == employeeID {
			balances = append(balances, *b)
		}
	}
	return balances, nil
}

func (f *fakeLeaveBalanceRepo) Reserve(_ context.Context, employeeID, leaveTypeID string, days float64) error {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok || b.CurrentBalance < days {
		return leave.ErrInsufficientBalance
	}
	b.CurrentBalance -= days
	return nil
}

func (f *fakeLeaveBalanceRepo) Release(_ context.Context, employeeID, leaveTypeID string, days float64) error {
	b, ok := f.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok || b.CurrentBalance+days > b.TotalDays {
		return leave.ErrBalanceNotFound
	}
	b.CurrentBalance += days
	return nil
}

type fakeLeaveRequestRepo struct {
	requests map[string]*leave.Request
	seq      int
}

func (f *fakeLeaveRequestRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	f.seq++
	req.ID = fmt.Sprintf("leave-%d", f.seq)
	req.CreatedAt = time.Now()
	stored := req
	f.requests[req.ID] = &stored
	return req, nil
}

func (f *fakeLeaveRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return *req, nil
}

func (f *fakeLeaveRequestRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	requests := make([]leave.Request, 0)
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			requests = append(requests, *req)
		}
	}
	return requests, nil
}

func (f *fakeLeaveRequestRepo) ListByStatus(_ context.Context, status leave.RequestStatus) ([]leave.Request, error) {
	requests := make([]leave.Request, 0)
	for _, req := range f.requests {
		if req.Status == status {
			requests = append(requests, *req)
		}
	}
	return requests, nil
}

func (f *fakeLeaveRequestRepo) UpdateStatus(_ context.Context, id string, status leave.RequestStatus, decidedBy *string) error {
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

type fakeHolidayRepo struct {
	holidays map[string]holiday.Holiday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for _, existing := range f.holidays {
		if existing.Date.Equal(h.Date) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
	}
	h.ID = fmt.Sprintf("holiday-%d", len(f.holidays)+1)
	f.holidays[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(f.holidays, id)
	return nil
}

func (f *fakeHolidayRepo) ListByYear(_ context.Context, year int) ([]holiday.Holiday, error) {
	holidays := make([]holiday.Holiday, 0)
	for _, h := range f.holidays {
		if h.Date.Year() == year {
			holidays = append(holidays, h)
		}
	}
	return holidays, nil
}

type txRunnerStub struct{}

func (txRunnerStub) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
