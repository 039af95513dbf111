package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kimutai-cloud/HRMS-sub002/application/service"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/middleware"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/v1/dto"
)

// DashboardsRouter handles dashboard statistic endpoints.
type DashboardsRouter struct {
	dashboards *service.DashboardService
	logger     *slog.Logger
}

// NewDashboardsRouter creates a DashboardsRouter.
func NewDashboardsRouter(dashboards *service.DashboardService, logger *slog.Logger) *DashboardsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardsRouter{dashboards: dashboards, logger: logger}
}

// Routes returns the chi router for dashboard endpoints.
func (d *DashboardsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/manager/{id}", d.Manager)
	router.Get("/employee/{id}", d.Employee)

	return router
}

// Manager handles GET /api/v1/dashboards/manager/{id}.
func (d *DashboardsRouter) Manager(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	stats, err := d.dashboards.ManagerDashboard(ctx, chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, d.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, statsToDTO(stats))
}

// Employee handles GET /api/v1/dashboards/employee/{id}.
func (d *DashboardsRouter) Employee(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	stats, err := d.dashboards.EmployeeDashboard(ctx, chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, d.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, statsToDTO(stats))
}

func statsToDTO(stats service.DashboardStats) dto.DashboardResponse {
	byStatus := make(map[string]int64, len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		byStatus[string(status)] = n
	}
	return dto.DashboardResponse{
		Total:          stats.Total,
		ByStatus:       byStatus,
		Overdue:        stats.Overdue,
		CompletionRate: stats.CompletionRate,
		ComputedAt:     stats.ComputedAt,
	}
}
