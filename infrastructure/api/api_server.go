package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	hrms "github.com/Kimutai-cloud/HRMS-sub002"
	apimiddleware "github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/middleware"
	v1 "github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/v1"
)

// APIServer provides an HTTP API backed by an hrms Client. Mutating
// endpoints require a valid API key when keys are configured; reads stay
// open so the SPA can browse without one.
type APIServer struct {
	client  *hrms.Client
	apiKeys []string
	server  *Server
	router  chi.Router
}

// NewAPIServer creates an APIServer wired to the given Client.
func NewAPIServer(client *hrms.Client, apiKeys []string) *APIServer {
	return &APIServer{client: client, apiKeys: apiKeys}
}

// Router returns the chi router, creating it with all routes mounted on
// first use.
func (a *APIServer) Router() chi.Router {
	if a.router == nil {
		a.router = chi.NewRouter()
		a.mountRoutes(a.router)
	}
	return a.router
}

func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client
	logger := c.Logger()

	tasksRouter := v1.NewTasksRouter(c.Tasks, c.Comments, logger)
	employeesRouter := v1.NewEmployeesRouter(c.Employees, logger)
	presetsRouter := v1.NewPresetsRouter(c.Presets, logger)
	dashboardsRouter := v1.NewDashboardsRouter(c.Dashboards, logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))

		// Open routes. Both are POSTs that only compute: view-state
		// canonicalisation and preset matching read nothing private and
		// write nothing.
		r.Post("/tasks/view", tasksRouter.ViewState)
		r.Post("/presets/match", presetsRouter.Match)

		// Write-protected routes. Mutating methods require a valid API
		// key when keys are configured.
		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.WriteProtect(a.apiKeys))
			r.Mount("/tasks", tasksRouter.Routes())
			r.Mount("/employees", employeesRouter.Routes())
			r.Mount("/presets", presetsRouter.Routes())
			r.Mount("/dashboards", dashboardsRouter.Routes())
		})
	})

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (a *APIServer) ListenAndServe(addr string) error {
	server := NewServer(addr, a.client.Logger())
	a.server = &server

	server.Router().Mount("/", a.Router())
	return server.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for tests and embedding.
func (a *APIServer) Handler() http.Handler {
	return a.Router()
}
