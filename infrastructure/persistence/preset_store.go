package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/database"
)

// presetDocumentKey is the fixed key the whole preset collection lives
// under.
const presetDocumentKey = "hrms.filter.presets"

// PresetStore implements filter.PresetStore on a single JSON document.
// Every operation is a read-modify-write of the whole collection, which
// keeps preset names unique without per-row constraints.
type PresetStore struct {
	db database.Database
}

// NewPresetStore creates a new PresetStore.
func NewPresetStore(db database.Database) PresetStore {
	return PresetStore{db: db}
}

// List returns every saved preset, newest first.
func (s PresetStore) List(ctx context.Context) ([]filter.Preset, error) {
	presets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].CreatedAt.After(presets[j].CreatedAt)
	})
	return presets, nil
}

// Save stores a preset, replacing any existing preset with the same name.
func (s PresetStore) Save(ctx context.Context, p filter.Preset) (filter.Preset, error) {
	presets, err := s.load(ctx)
	if err != nil {
		return filter.Preset{}, err
	}

	kept := presets[:0]
	for _, existing := range presets {
		if existing.Name != p.Name {
			kept = append(kept, existing)
		}
	}
	kept = append(kept, p)

	if err := s.write(ctx, kept); err != nil {
		return filter.Preset{}, err
	}
	return p, nil
}

// Delete removes the preset with the given ID. Deleting a missing preset
// is not an error.
func (s PresetStore) Delete(ctx context.Context, id string) error {
	presets, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := presets[:0]
	for _, existing := range presets {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	return s.write(ctx, kept)
}

func (s PresetStore) load(ctx context.Context) ([]filter.Preset, error) {
	var model PresetDocumentModel
	result := s.db.Session(ctx).Where("key = ?", presetDocumentKey).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load presets: %w", result.Error)
	}

	var presets []filter.Preset
	if err := json.Unmarshal([]byte(model.Document), &presets); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	return presets, nil
}

func (s PresetStore) write(ctx context.Context, presets []filter.Preset) error {
	encoded, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}

	model := PresetDocumentModel{
		Key:       presetDocumentKey,
		Document:  string(encoded),
		UpdatedAt: time.Now().UTC(),
	}
	if result := s.db.Session(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("write presets: %w", result.Error)
	}
	return nil
}
