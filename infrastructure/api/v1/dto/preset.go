package dto

import (
	"time"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
)

// PresetData is one saved filter preset.
type PresetData struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Query     string       `json:"query"`
	State     filter.State `json:"state"`
	CreatedAt time.Time    `json:"created_at"`
}

// PresetResponse wraps a single preset.
type PresetResponse struct {
	Data PresetData `json:"data"`
}

// PresetListResponse wraps the preset collection.
type PresetListResponse struct {
	Data []PresetData `json:"data"`
}

// PresetSaveRequest is the body for POST /presets. The filter state is
// given as a URL query string, exactly as the SPA holds it.
type PresetSaveRequest struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}
