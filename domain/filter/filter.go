// Package filter provides the list-view filter state: a value type
// describing search, filtering, sorting, and pagination for task and
// employee list views, plus a lossless-where-valid URL query codec.
//
// Malformed input never fails: every unparseable or out-of-range value
// degrades to its default so a hand-edited URL can never break a view.
package filter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
)

// Limits and defaults for filter state.
const (
	DefaultPage     = 1
	DefaultLimit    = 20
	MaxLimit        = 100
	MaxSearchLength = 200
)

// SortField enumerates the columns a list view can be sorted by.
type SortField string

// SortField values.
const (
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
	SortDueDate   SortField = "due_date"
	SortPriority  SortField = "priority"
	SortStatus    SortField = "status"
	SortTitle     SortField = "title"
)

// AllSortFields returns every valid sort field.
func AllSortFields() []SortField {
	return []SortField{SortCreatedAt, SortUpdatedAt, SortDueDate, SortPriority, SortStatus, SortTitle}
}

// ParseSortField parses a sort field token. Unknown tokens return false.
func ParseSortField(s string) (SortField, bool) {
	for _, v := range AllSortFields() {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

// SortOrder is the sort direction.
type SortOrder string

// SortOrder values.
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder parses a sort order token. Unknown tokens return false.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case OrderAsc:
		return OrderAsc, true
	case OrderDesc:
		return OrderDesc, true
	}
	return "", false
}

// ViewMode is the list presentation mode.
type ViewMode string

// ViewMode values.
const (
	ViewList  ViewMode = "list"
	ViewGrid  ViewMode = "grid"
	ViewBoard ViewMode = "board"
)

// ParseViewMode parses a view mode token. Unknown tokens return false.
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewList:
		return ViewList, true
	case ViewGrid:
		return ViewGrid, true
	case ViewBoard:
		return ViewBoard, true
	}
	return "", false
}

// dateLayout is the wire format for date-range bounds.
const dateLayout = "2006-01-02"

// Date is a calendar-day bound for a date-range filter. The zero value
// means "unset".
type Date struct {
	t time.Time
}

// ParseDate parses an ISO calendar date ("2006-01-02"). Malformed input
// returns a zero Date and false.
func ParseDate(s string) (Date, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, false
	}
	return Date{t: t}, true
}

// DateOf truncates a time to its calendar day in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the underlying time at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// After reports whether d is after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// String returns the ISO date, or empty when unset.
func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// MarshalText encodes the date as an ISO calendar date.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes an ISO calendar date. Malformed input degrades
// to the unset date rather than failing.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, _ := ParseDate(string(text))
	*d = parsed
	return nil
}

// State describes one list view's active search, filter, sort, and
// pagination configuration. It is a plain value: all operations return a
// new State and never mutate the receiver's slices in place.
//
// JSON tags match the URL parameter names so saved presets serialize with
// the same vocabulary as the address bar.
type State struct {
	Search      string          `json:"search,omitempty" yaml:"search,omitempty"`
	Statuses    []task.Status   `json:"status,omitempty" yaml:"status,omitempty"`
	Priorities  []task.Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	Types       []task.Type     `json:"type,omitempty" yaml:"type,omitempty"`
	Assignees   []string        `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Department  string          `json:"department,omitempty" yaml:"department,omitempty"`
	Tags        []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	DueFrom     Date            `json:"due_from,omitzero" yaml:"due_from,omitempty"`
	DueTo       Date            `json:"due_to,omitzero" yaml:"due_to,omitempty"`
	CreatedFrom Date            `json:"created_from,omitzero" yaml:"created_from,omitempty"`
	CreatedTo   Date            `json:"created_to,omitzero" yaml:"created_to,omitempty"`
	Sort        SortField       `json:"sort,omitempty" yaml:"sort,omitempty"`
	Order       SortOrder       `json:"order,omitempty" yaml:"order,omitempty"`
	View        ViewMode        `json:"view,omitempty" yaml:"view,omitempty"`
	Page        int             `json:"page,omitempty" yaml:"page,omitempty"`
	Limit       int             `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Defaults returns the state every view starts from.
func Defaults() State {
	return State{
		Sort:  SortCreatedAt,
		Order: OrderDesc,
		View:  ViewList,
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}
}

// Sanitize returns a copy of the state with every invariant enforced:
// page clamped to [1, inf), limit to [1, MaxLimit], search trimmed and
// length-capped, enum members outside their closed sets dropped, and an
// inverted date range (from after to) dropped entirely while a single
// bound is kept.
//
// Dropping both bounds of an inverted range, rather than swapping or
// clamping them, preserves the upstream product behaviour: degrade to
// unfiltered instead of guessing what the user meant.
func (s State) Sanitize() State {
	out := s

	out.Search = strings.TrimSpace(out.Search)
	if len(out.Search) > MaxSearchLength {
		out.Search = out.Search[:MaxSearchLength]
	}

	out.Statuses = keepValid(s.Statuses, func(v task.Status) bool {
		_, ok := task.ParseStatus(string(v))
		return ok
	})
	out.Priorities = keepValid(s.Priorities, func(v task.Priority) bool {
		_, ok := task.ParsePriority(string(v))
		return ok
	})
	out.Types = keepValid(s.Types, func(v task.Type) bool {
		_, ok := task.ParseType(string(v))
		return ok
	})
	out.Assignees = keepValid(s.Assignees, func(v string) bool {
		return strings.TrimSpace(v) != ""
	})
	out.Tags = keepValid(s.Tags, func(v string) bool {
		return strings.TrimSpace(v) != ""
	})

	out.DueFrom, out.DueTo = sanitizeRange(out.DueFrom, out.DueTo)
	out.CreatedFrom, out.CreatedTo = sanitizeRange(out.CreatedFrom, out.CreatedTo)

	if _, ok := ParseSortField(string(out.Sort)); !ok {
		out.Sort = SortCreatedAt
	}
	if _, ok := ParseSortOrder(string(out.Order)); !ok {
		out.Order = OrderDesc
	}
	if _, ok := ParseViewMode(string(out.View)); !ok {
		out.View = ViewList
	}

	if out.Page < 1 {
		out.Page = DefaultPage
	}
	if out.Limit < 1 {
		out.Limit = DefaultLimit
	}
	if out.Limit > MaxLimit {
		out.Limit = MaxLimit
	}

	return out
}

// sanitizeRange drops both bounds when from is after to. A single bound
// on its own is always kept.
func sanitizeRange(from, to Date) (Date, Date) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return Date{}, Date{}
	}
	return from, to
}

// keepValid returns a copy of values with entries failing the predicate
// removed. An empty result is nil so it compares equal to "unset".
func keepValid[T comparable](values []T, valid func(T) bool) []T {
	var out []T
	for _, v := range values {
		if valid(v) {
			out = append(out, v)
		}
	}
	return out
}

// Normalize returns the canonical form of the state: sanitized, with all
// array fields sorted and de-duplicated. Two states describing the same
// logical view normalize to the same value regardless of the order their
// fields were assembled in.
func (s State) Normalize() State {
	out := s.Sanitize()
	out.Statuses = sortedSet(out.Statuses)
	out.Priorities = sortedSet(out.Priorities)
	out.Types = sortedSet(out.Types)
	out.Assignees = sortedSet(out.Assignees)
	out.Tags = sortedSet(out.Tags)
	return out
}

// sortedSet sorts and de-duplicates, returning nil when empty.
func sortedSet[T ~string](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	out = slices.Compact(out)
	return out
}

// Equal reports whether two states describe the same logical view.
// Array fields are compared as sets.
func (s State) Equal(other State) bool {
	a, b := s.Normalize(), other.Normalize()
	return a.Search == b.Search &&
		slices.Equal(a.Statuses, b.Statuses) &&
		slices.Equal(a.Priorities, b.Priorities) &&
		slices.Equal(a.Types, b.Types) &&
		slices.Equal(a.Assignees, b.Assignees) &&
		a.Department == b.Department &&
		slices.Equal(a.Tags, b.Tags) &&
		a.DueFrom == b.DueFrom &&
		a.DueTo == b.DueTo &&
		a.CreatedFrom == b.CreatedFrom &&
		a.CreatedTo == b.CreatedTo &&
		a.Sort == b.Sort &&
		a.Order == b.Order &&
		a.View == b.View &&
		a.Page == b.Page &&
		a.Limit == b.Limit
}

// IsActive reports whether any field differs from its default. An empty
// array counts as default.
func (s State) IsActive() bool {
	return !s.Equal(Defaults())
}

// Summaries returns one human-readable line per active filter dimension,
// in a stable order, for rendering "active filter" chips.
func (s State) Summaries() []string {
	n := s.Normalize()
	var out []string

	if n.Search != "" {
		out = append(out, fmt.Sprintf("search %q", n.Search))
	}
	if len(n.Statuses) > 0 {
		out = append(out, "status "+joinStrings(n.Statuses))
	}
	if len(n.Priorities) > 0 {
		out = append(out, "priority "+joinStrings(n.Priorities))
	}
	if len(n.Types) > 0 {
		out = append(out, "type "+joinStrings(n.Types))
	}
	if len(n.Assignees) > 0 {
		out = append(out, "assignee "+joinStrings(n.Assignees))
	}
	if n.Department != "" {
		out = append(out, "department "+n.Department)
	}
	if len(n.Tags) > 0 {
		out = append(out, "tags "+joinStrings(n.Tags))
	}
	if line := rangeSummary("due", n.DueFrom, n.DueTo); line != "" {
		out = append(out, line)
	}
	if line := rangeSummary("created", n.CreatedFrom, n.CreatedTo); line != "" {
		out = append(out, line)
	}
	return out
}

func rangeSummary(label string, from, to Date) string {
	switch {
	case !from.IsZero() && !to.IsZero():
		return fmt.Sprintf("%s %s..%s", label, from, to)
	case !from.IsZero():
		return fmt.Sprintf("%s since %s", label, from)
	case !to.IsZero():
		return fmt.Sprintf("%s until %s", label, to)
	default:
		return ""
	}
}

func joinStrings[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
