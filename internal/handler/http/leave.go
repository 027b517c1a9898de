package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kantor-hq/hr-backoffice-go/internal/domain/leave"
	"github.com/kantor-hq/hr-backoffice-go/internal/handler/http/response"
	leaveservice "github.com/kantor-hq/hr-backoffice-go/internal/service/leave"
)

// LeaveHandler defines the leave handler interface
type LeaveHandler interface {
	// Requests
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)

	// Balances and types
	MyBalances(w http.ResponseWriter, r *http.Request)
	SetBalance(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	CreateType(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService *leaveservice.Service
}

func NewLeaveHandler(leaveService *leaveservice.Service) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Apply files a leave request for the authenticated employee.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	created, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave.ToRequestResponse(created))
}

// ListMine returns the caller's own leave requests.
func (h *leaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	requests, err := h.leaveService.ListMine(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Cancel withdraws the caller's own pending leave request.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	cancelled, err := h.leaveService.Cancel(r.Context(), chi.URLParam(r, "id"), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", leave.ToRequestResponse(cancelled))
}

// ListPending returns the decision queue. Admin only.
func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Decide settles one pending leave request. Admin only.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	deciderID := getEmployeeIDFromContext(r)
	if deciderID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.DeciderID = deciderID

	decided, err := h.leaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request decided", leave.ToRequestResponse(decided))
}

// MyBalances returns the caller's balances across leave types.
func (h *leaveHandlerImpl) MyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	balances, err := h.leaveService.MyBalances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// SetBalance sets an employee's allocation for one leave type. Admin only.
func (h *leaveHandlerImpl) SetBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	balance, err := h.leaveService.SetBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave balance set", leave.ToBalanceResponse(balance))
}

func (h *leaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]leave.TypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, leave.ToTypeResponse(t))
	}

	response.Success(w, responses)
}

// CreateType registers a leave type. Admin only.
func (h *leaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	leaveType, err := h.leaveService.CreateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created", leave.ToTypeResponse(leaveType))
}
