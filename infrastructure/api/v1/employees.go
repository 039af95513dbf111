package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kimutai-cloud/HRMS-sub002/application/service"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/employee"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/middleware"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/v1/dto"
)

// EmployeesRouter handles employee API endpoints.
type EmployeesRouter struct {
	employees *service.EmployeeService
	logger    *slog.Logger
}

// NewEmployeesRouter creates an EmployeesRouter.
func NewEmployeesRouter(employees *service.EmployeeService, logger *slog.Logger) *EmployeesRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeesRouter{employees: employees, logger: logger}
}

// Routes returns the chi router for employee endpoints.
func (e *EmployeesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", e.Search)
	router.Post("/", e.Register)
	router.Get("/{id}", e.Get)
	router.Post("/{id}/verification/advance", e.Advance)
	router.Post("/{id}/verification/reject", e.Reject)
	router.Post("/{id}/role", e.AssignRole)

	return router
}

// Search handles GET /api/v1/employees.
func (e *EmployeesRouter) Search(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	f := filter.ParseQuery(req.URL.Query())
	page, err := e.employees.SearchEmployees(ctx, f)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	data := make([]dto.EmployeeData, 0, len(page.Items))
	for _, emp := range page.Items {
		data = append(data, employeeToDTO(emp))
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EmployeeListResponse{
		Data: data,
		Meta: pageMeta(page.Page, page.Limit, page.Total, page.TotalPages()),
	})
}

// Register handles POST /api/v1/employees.
func (e *EmployeesRouter) Register(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.EmployeeCreateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	registered, err := e.employees.RegisterEmployee(ctx, body.ID, body.Name, body.Email, body.Department)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.EmployeeResponse{Data: employeeToDTO(registered)})
}

// Get handles GET /api/v1/employees/{id}.
func (e *EmployeesRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	found, err := e.employees.GetEmployee(ctx, chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EmployeeResponse{Data: employeeToDTO(found)})
}

// Advance handles POST /api/v1/employees/{id}/verification/advance.
func (e *EmployeesRouter) Advance(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	advanced, err := e.employees.AdvanceVerification(ctx, chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EmployeeResponse{Data: employeeToDTO(advanced)})
}

// Reject handles POST /api/v1/employees/{id}/verification/reject.
func (e *EmployeesRouter) Reject(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	rejected, err := e.employees.RejectVerification(ctx, chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EmployeeResponse{Data: employeeToDTO(rejected)})
}

// AssignRole handles POST /api/v1/employees/{id}/role.
func (e *EmployeesRouter) AssignRole(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.RoleAssignRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	updated, err := e.employees.AssignRole(ctx, chi.URLParam(req, "id"), body.Role)
	if err != nil {
		middleware.WriteError(w, req, err, e.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.EmployeeResponse{Data: employeeToDTO(updated)})
}

func employeeToDTO(e employee.Employee) dto.EmployeeData {
	return dto.EmployeeData{
		Type: "employee",
		ID:   e.ID(),
		Attributes: dto.EmployeeAttributes{
			Name:       e.Name(),
			Email:      e.Email(),
			Department: e.Department(),
			Role:       e.Role(),
			Stage:      string(e.Stage()),
			CreatedAt:  e.CreatedAt(),
			UpdatedAt:  e.UpdatedAt(),
		},
	}
}
