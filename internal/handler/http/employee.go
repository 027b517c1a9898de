package http

import (
	"encoding/json"
	"net/http"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/employee"
	"github.com/kantor-hq/hr-backoffice-go/internal/handler/http/response"
	employeeservice "github.com/kantor-hq/hr-backoffice-go/internal/service/employee"
)

// EmployeeHandler defines the employee handler interface
type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService *employeeservice.Service
}

func NewEmployeeHandler(employeeService *employeeservice.Service) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Create registers an employee. Admin only.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	emp, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", toEmployeeResponse(emp))
}

// List returns the roster. Admin only.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Me returns the authenticated employee's own profile.
func (h *employeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	emp, err := h.employeeService.GetByID(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toEmployeeResponse(emp))
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Role:         string(emp.Role),
		ShiftType:    string(emp.ShiftType),
	}
}
