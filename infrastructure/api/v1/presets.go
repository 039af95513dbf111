package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kimutai-cloud/HRMS-sub002/application/service"
	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/middleware"
	"github.com/Kimutai-cloud/HRMS-sub002/infrastructure/api/v1/dto"
)

// PresetsRouter handles saved filter preset endpoints.
type PresetsRouter struct {
	presets *service.PresetService
	logger  *slog.Logger
}

// NewPresetsRouter creates a PresetsRouter.
func NewPresetsRouter(presets *service.PresetService, logger *slog.Logger) *PresetsRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PresetsRouter{presets: presets, logger: logger}
}

// Routes returns the chi router for preset endpoints.
func (p *PresetsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", p.List)
	router.Post("/", p.Save)
	router.Post("/match", p.Match)
	router.Delete("/{id}", p.Delete)

	return router
}

// List handles GET /api/v1/presets.
func (p *PresetsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	presets, err := p.presets.ListPresets(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, p.logger)
		return
	}

	data := make([]dto.PresetData, 0, len(presets))
	for _, preset := range presets {
		data = append(data, presetToDTO(preset))
	}

	middleware.WriteJSON(w, http.StatusOK, dto.PresetListResponse{Data: data})
}

// Save handles POST /api/v1/presets. The filter state arrives as the
// SPA's URL query string and is stored in canonical form.
func (p *PresetsRouter) Save(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.PresetSaveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, p.logger)
		return
	}

	saved, err := p.presets.SavePreset(ctx, body.Name, filter.Parse(body.Query))
	if err != nil {
		middleware.WriteError(w, req, err, p.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.PresetResponse{Data: presetToDTO(saved)})
}

// Match handles POST /api/v1/presets/match. Returns 404 when no preset
// matches the given query.
func (p *PresetsRouter) Match(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.PresetSaveRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, err, p.logger)
		return
	}

	matched, ok, err := p.presets.MatchPreset(ctx, filter.Parse(body.Query))
	if err != nil {
		middleware.WriteError(w, req, err, p.logger)
		return
	}
	if !ok {
		middleware.WriteJSON(w, http.StatusNotFound, dto.PresetListResponse{Data: []dto.PresetData{}})
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.PresetResponse{Data: presetToDTO(matched)})
}

// Delete handles DELETE /api/v1/presets/{id}.
func (p *PresetsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	if err := p.presets.DeletePreset(ctx, chi.URLParam(req, "id")); err != nil {
		middleware.WriteError(w, req, err, p.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func presetToDTO(p filter.Preset) dto.PresetData {
	return dto.PresetData{
		ID:        p.ID,
		Name:      p.Name,
		Query:     p.State.Encode(),
		State:     p.State,
		CreatedAt: p.CreatedAt,
	}
}
