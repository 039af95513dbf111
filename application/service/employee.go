package service

import (
	"context"
	"fmt"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/employee"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/view"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/querycache"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/log"
)

// EmployeeService manages employee profiles and the verification pipeline.
type EmployeeService struct {
	employees EmployeeSearcher
	cache     *querycache.Cache
	logger    *log.Logger
}

// NewEmployeeService creates an employee service.
func NewEmployeeService(employees EmployeeSearcher, cache *querycache.Cache, logger *log.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, cache: cache, logger: logger}
}

// RegisterEmployee creates a profile at the start of the pipeline.
func (s *EmployeeService) RegisterEmployee(ctx context.Context, id, name, email, department string) (employee.Employee, error) {
	if err := requireNonEmpty("id", id); err != nil {
		return employee.Employee{}, err
	}
	if err := requireNonEmpty("name", name); err != nil {
		return employee.Employee{}, err
	}
	if err := requireNonEmpty("email", email); err != nil {
		return employee.Employee{}, err
	}

	saved, err := s.employees.Save(ctx, employee.NewEmployee(id, name, email, department))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("register employee: %w", err)
	}

	s.cache.Invalidate(view.Employees())
	s.logger.InfoContext(ctx, "employee registered", "employee_id", id, "department", department)
	return saved, nil
}

// GetEmployee returns one profile, served from the cache when fresh.
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	return cached(ctx, s.cache, view.EmployeeDetail(employeeID), func(ctx context.Context) (employee.Employee, error) {
		return s.employees.FindOne(ctx, employee.WithEmployeeID(employeeID))
	})
}

// SearchEmployees returns a filtered employee page.
func (s *EmployeeService) SearchEmployees(ctx context.Context, f filter.State) (Page[employee.Employee], error) {
	f = f.Sanitize()
	return cached(ctx, s.cache, view.EmployeeSearch(f), func(ctx context.Context) (Page[employee.Employee], error) {
		employees, total, err := s.employees.Search(ctx, f)
		if err != nil {
			return Page[employee.Employee]{}, fmt.Errorf("search employees: %w", err)
		}
		return Page[employee.Employee]{Items: employees, Total: total, Page: f.Page, Limit: f.Limit}, nil
	})
}

// AdvanceVerification moves a profile to its next pipeline stage.
func (s *EmployeeService) AdvanceVerification(ctx context.Context, employeeID string) (employee.Employee, error) {
	return s.review(ctx, employeeID, view.MutationAdvanceVerification, func(e employee.Employee) (employee.Employee, error) {
		return e.Advance()
	})
}

// RejectVerification finalises a profile as rejected.
func (s *EmployeeService) RejectVerification(ctx context.Context, employeeID string) (employee.Employee, error) {
	return s.review(ctx, employeeID, view.MutationRejectVerification, func(e employee.Employee) (employee.Employee, error) {
		return e.Reject()
	})
}

// AssignRole records a role on a profile under review.
func (s *EmployeeService) AssignRole(ctx context.Context, employeeID, role string) (employee.Employee, error) {
	if err := requireNonEmpty("role", role); err != nil {
		return employee.Employee{}, err
	}
	return s.review(ctx, employeeID, view.MutationAssignRole, func(e employee.Employee) (employee.Employee, error) {
		return e.AssignRole(role)
	})
}

func (s *EmployeeService) review(ctx context.Context, employeeID string, mutation view.Mutation, apply func(employee.Employee) (employee.Employee, error)) (employee.Employee, error) {
	current, err := s.employees.FindOne(ctx, employee.WithEmployeeID(employeeID))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("%s: employee %s: %w", mutation, employeeID, err)
	}

	next, err := apply(current)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("%s: employee %s: %w", mutation, employeeID, err)
	}

	saved, err := s.employees.Save(ctx, next)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("%s: employee %s: %w", mutation, employeeID, err)
	}

	s.cache.Invalidate(view.Invalidations(mutation, view.MutationContext{EmployeeID: employeeID})...)
	s.logger.InfoContext(ctx, "verification update", "employee_id", employeeID, "stage", saved.Stage().String())
	return saved, nil
}
