package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/log"
)

// PresetService manages saved filter presets. Presets are few and cheap
// to load, so they bypass the query cache entirely.
type PresetService struct {
	presets filter.PresetStore
	logger  *log.Logger
}

// NewPresetService creates a preset service.
func NewPresetService(presets filter.PresetStore, logger *log.Logger) *PresetService {
	return &PresetService{presets: presets, logger: logger}
}

// ListPresets returns every saved preset, newest first.
func (s *PresetService) ListPresets(ctx context.Context) ([]filter.Preset, error) {
	presets, err := s.presets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	return presets, nil
}

// SavePreset stores the given filter state under a name. Saving under an
// existing name replaces that preset.
func (s *PresetService) SavePreset(ctx context.Context, name string, state filter.State) (filter.Preset, error) {
	if err := requireNonEmpty("name", name); err != nil {
		return filter.Preset{}, err
	}

	saved, err := s.presets.Save(ctx, filter.NewPreset(uuid.NewString(), name, state))
	if err != nil {
		return filter.Preset{}, fmt.Errorf("save preset: %w", err)
	}
	s.logger.InfoContext(ctx, "preset saved", "preset_id", saved.ID, "name", saved.Name)
	return saved, nil
}

// DeletePreset removes a preset. Deleting a missing preset is a no-op.
func (s *PresetService) DeletePreset(ctx context.Context, id string) error {
	if err := s.presets.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	return nil
}

// MatchPreset returns the preset whose filter state matches the given
// state, ignoring page position. The second result reports whether one
// matched.
func (s *PresetService) MatchPreset(ctx context.Context, state filter.State) (filter.Preset, bool, error) {
	presets, err := s.presets.List(ctx)
	if err != nil {
		return filter.Preset{}, false, fmt.Errorf("match preset: %w", err)
	}
	for _, p := range presets {
		if p.Matches(state) {
			return p, true, nil
		}
	}
	return filter.Preset{}, false, nil
}
