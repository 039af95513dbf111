package filter

import (
	"strings"
	"time"
)

// MaxPresetNameLength caps preset names.
const MaxPresetNameLength = 60

// Preset is a named, saved filter state a user can re-apply later. The
// embedded state is stored normalized so identical presets saved from
// differently-ordered selections compare equal.
type Preset struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	State     State     `json:"state" yaml:"state"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// NewPreset builds a preset from a name and state. The name is trimmed
// and length-capped, and the state normalized. Page position is not part
// of a preset: re-applying one always starts at page 1.
func NewPreset(id, name string, s State) Preset {
	name = strings.TrimSpace(name)
	if len(name) > MaxPresetNameLength {
		name = name[:MaxPresetNameLength]
	}
	state := s.Normalize()
	state.Page = DefaultPage
	return Preset{
		ID:        id,
		Name:      name,
		State:     state,
		CreatedAt: time.Now().UTC(),
	}
}

// Matches reports whether the given state is the preset's state. Used to
// highlight the active preset in a picker.
func (p Preset) Matches(s State) bool {
	probe := s.Normalize()
	probe.Page = DefaultPage
	return p.State.Equal(probe)
}
