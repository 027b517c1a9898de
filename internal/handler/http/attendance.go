package http

import (
	"net/http"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/attendance"
	"github.com/kantor-hq/hr-backoffice-go/internal/handler/http/response"
	attendanceservice "github.com/kantor-hq/hr-backoffice-go/internal/service/attendance"
)

// AttendanceHandler defines the attendance handler interface
type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendanceservice.Service
}

func NewAttendanceHandler(attendanceService *attendanceservice.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn opens today's attendance record for the authenticated employee.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	rec, err := h.attendanceService.CheckIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", attendance.ToResponse(rec))
}

// CheckOut closes today's attendance record.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	rec, err := h.attendanceService.CheckOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToResponse(rec))
}

// ListMy returns the caller's attendance records for a date range.
func (h *attendanceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	req := attendance.ListMyAttendanceRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	records, err := h.attendanceService.ListMyAttendance(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
