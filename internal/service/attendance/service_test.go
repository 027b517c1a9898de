package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/attendance"
)

type fakeAttendanceRepo struct {
	records map[string]*attendance.Record
}

func key(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	k := key(rec.EmployeeID, rec.Date)
	if _, ok := f.records[k]; ok {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}
	rec.ID = k
	stored := rec
	f.records[k] = &stored
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	rec, ok := f.records[key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, rec attendance.Record) error {
	k := key(rec.EmployeeID, rec.Date)
	if _, ok := f.records[k]; !ok {
		return attendance.ErrRecordNotFound
	}
	stored := rec
	f.records[k] = &stored
	return nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	k := key(rec.EmployeeID, rec.Date)
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

func newTestService(now time.Time) (*Service, *fakeAttendanceRepo) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Record{}}
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestCheckInOnce(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 4, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	rec, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)
	require.NotNil(t, rec.CheckIn)
	assert.True(t, rec.CheckIn.Equal(now))
	assert.Equal(t, attendance.StatusHalfDay, rec.Status)

	_, err = svc.CheckIn(context.Background(), "emp-1")
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOutRequiresCheckIn(t *testing.T) {
	now := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	_, err := svc.CheckOut(context.Background(), "emp-1")
	require.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutCompletesDay(t *testing.T) {
	checkInAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc, repo := newTestService(checkInAt)

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	checkOutAt := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return checkOutAt }

	rec, err := svc.CheckOut(context.Background(), "emp-1")
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOut)
	assert.True(t, rec.CheckOut.Equal(checkOutAt))
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	// The stored record matches what was returned.
	stored, err := repo.GetByEmployeeAndDate(context.Background(), "emp-1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, attendance.StatusPresent, stored.Status)

	// A second check-out is rejected.
	_, err = svc.CheckOut(context.Background(), "emp-1")
	require.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestListMyAttendanceRange(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)

	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for _, d := range []int{2, 10, 28} {
		date := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		_, err := repo.Upsert(context.Background(), attendance.Record{
			EmployeeID: "emp-1",
			Date:       date,
			CheckIn:    &in,
			Status:     attendance.StatusHalfDay,
		})
		require.NoError(t, err)
	}

	records, err := svc.ListMyAttendance(context.Background(), "emp-1", attendance.ListMyAttendanceRequest{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-15",
	})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
