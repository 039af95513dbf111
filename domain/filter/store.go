package filter

import "context"

// PresetStore persists saved filter presets. Implementations keep all
// presets in a single durable record, read and written whole.
type PresetStore interface {
	// List returns every saved preset, newest first.
	List(ctx context.Context) ([]Preset, error)
	// Save stores a preset, replacing any existing preset with the same
	// name.
	Save(ctx context.Context, p Preset) (Preset, error)
	// Delete removes the preset with the given ID. Deleting a missing
	// preset is not an error.
	Delete(ctx context.Context, id string) error
}
