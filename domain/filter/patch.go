package filter

import (
	"slices"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
)

// Patch describes a partial change to a filter state. Nil fields are left
// untouched; a pointer to an empty slice clears its array field.
type Patch struct {
	Search      *string          `json:"search,omitempty"`
	Statuses    *[]task.Status   `json:"status,omitempty"`
	Priorities  *[]task.Priority `json:"priority,omitempty"`
	Types       *[]task.Type     `json:"type,omitempty"`
	Assignees   *[]string        `json:"assignee,omitempty"`
	Department  *string          `json:"department,omitempty"`
	Tags        *[]string        `json:"tags,omitempty"`
	DueFrom     *Date            `json:"due_from,omitempty"`
	DueTo       *Date            `json:"due_to,omitempty"`
	CreatedFrom *Date            `json:"created_from,omitempty"`
	CreatedTo   *Date            `json:"created_to,omitempty"`
	Sort        *SortField       `json:"sort,omitempty"`
	Order       *SortOrder       `json:"order,omitempty"`
	View        *ViewMode        `json:"view,omitempty"`
	Page        *int             `json:"page,omitempty"`
	Limit       *int             `json:"limit,omitempty"`
}

// TouchesFilters reports whether the patch changes anything that narrows
// or reorders the result set. Page and view mode changes alone do not
// count, so paging through results keeps its position.
func (p Patch) TouchesFilters() bool {
	return p.Search != nil ||
		p.Statuses != nil ||
		p.Priorities != nil ||
		p.Types != nil ||
		p.Assignees != nil ||
		p.Department != nil ||
		p.Tags != nil ||
		p.DueFrom != nil ||
		p.DueTo != nil ||
		p.CreatedFrom != nil ||
		p.CreatedTo != nil ||
		p.Sort != nil ||
		p.Order != nil ||
		p.Limit != nil
}

type applyConfig struct {
	resetPage *bool
}

// ApplyOption configures how a patch is applied.
type ApplyOption func(*applyConfig)

// WithResetPage overrides the page-reset behaviour. True forces page 1
// even for a page-only patch; false keeps the current page even when
// filters change.
func WithResetPage(reset bool) ApplyOption {
	return func(c *applyConfig) {
		c.resetPage = &reset
	}
}

// Apply merges the patch into the state and returns the sanitized result.
// By default the page resets to 1 whenever the patch touches a filtering
// field, since the old page offset is meaningless against a new result
// set. An explicit patched Page wins over the reset unless WithResetPage
// forces one.
func (s State) Apply(p Patch, options ...ApplyOption) State {
	cfg := applyConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	out := s
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Statuses != nil {
		out.Statuses = slices.Clone(*p.Statuses)
	}
	if p.Priorities != nil {
		out.Priorities = slices.Clone(*p.Priorities)
	}
	if p.Types != nil {
		out.Types = slices.Clone(*p.Types)
	}
	if p.Assignees != nil {
		out.Assignees = slices.Clone(*p.Assignees)
	}
	if p.Department != nil {
		out.Department = *p.Department
	}
	if p.Tags != nil {
		out.Tags = slices.Clone(*p.Tags)
	}
	if p.DueFrom != nil {
		out.DueFrom = *p.DueFrom
	}
	if p.DueTo != nil {
		out.DueTo = *p.DueTo
	}
	if p.CreatedFrom != nil {
		out.CreatedFrom = *p.CreatedFrom
	}
	if p.CreatedTo != nil {
		out.CreatedTo = *p.CreatedTo
	}
	if p.Sort != nil {
		out.Sort = *p.Sort
	}
	if p.Order != nil {
		out.Order = *p.Order
	}
	if p.View != nil {
		out.View = *p.View
	}
	if p.Page != nil {
		out.Page = *p.Page
	}
	if p.Limit != nil {
		out.Limit = *p.Limit
	}

	reset := p.TouchesFilters() && p.Page == nil
	if cfg.resetPage != nil {
		reset = *cfg.resetPage
	}
	if reset {
		out.Page = DefaultPage
	}

	return out.Sanitize()
}

// ArrayField names a multi-valued filter dimension for Toggle.
type ArrayField string

// ArrayField values.
const (
	FieldStatus   ArrayField = "status"
	FieldPriority ArrayField = "priority"
	FieldType     ArrayField = "type"
	FieldAssignee ArrayField = "assignee"
	FieldTags     ArrayField = "tags"
)

// Toggle adds the value to the named array field if absent, or removes it
// if present, and resets the page. Tokens outside a closed enum set are a
// no-op. Removing the last member leaves the field unset.
func (s State) Toggle(field ArrayField, value string) State {
	out := s
	switch field {
	case FieldStatus:
		v, ok := task.ParseStatus(value)
		if !ok {
			return s
		}
		out.Statuses = toggleMember(s.Statuses, v)
	case FieldPriority:
		v, ok := task.ParsePriority(value)
		if !ok {
			return s
		}
		out.Priorities = toggleMember(s.Priorities, v)
	case FieldType:
		v, ok := task.ParseType(value)
		if !ok {
			return s
		}
		out.Types = toggleMember(s.Types, v)
	case FieldAssignee:
		if value == "" {
			return s
		}
		out.Assignees = toggleMember(s.Assignees, value)
	case FieldTags:
		if value == "" {
			return s
		}
		out.Tags = toggleMember(s.Tags, value)
	default:
		return s
	}
	out.Page = DefaultPage
	return out.Sanitize()
}

// toggleMember returns a copy of list with v removed when present, or
// appended when absent.
func toggleMember[T comparable](list []T, v T) []T {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return append(slices.Clone(list), v)
}

// Clear returns the default state, discarding every filter, the sort
// configuration, and the page position.
func (s State) Clear() State {
	return Defaults()
}
