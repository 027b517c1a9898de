package employee

import (
	"context"
	"fmt"

	"github.com/kantor-hq/hr-backoffice-go/internal/domain/employee"
)

type Service struct {
	employeeRepository employee.Repository
}

func NewService(employeeRepository employee.Repository) *Service {
	return &Service{
		employeeRepository: employeeRepository,
	}
}

// Create registers an employee. Admin operation; the employee code is the
// stable external identifier and must be unique.
func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	emp := employee.Employee{
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Role:         employee.Role(req.Role),
		ShiftType:    employee.ShiftType(req.ShiftType),
	}

	return s.employeeRepository.Create(ctx, emp)
}

func (s *Service) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepository.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.EmployeeResponse{
			ID:           emp.ID,
			EmployeeCode: emp.EmployeeCode,
			FullName:     emp.FullName,
			Role:         string(emp.Role),
			ShiftType:    string(emp.ShiftType),
		})
	}

	return responses, nil
}
