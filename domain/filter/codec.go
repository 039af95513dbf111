package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/task"
)

// URL parameter names. Array-valued parameters carry comma-joined tokens
// in a single value.
const (
	paramSearch      = "search"
	paramStatus      = "status"
	paramPriority    = "priority"
	paramType        = "type"
	paramAssignee    = "assignee"
	paramDepartment  = "department"
	paramTags        = "tags"
	paramDueFrom     = "due_from"
	paramDueTo       = "due_to"
	paramCreatedFrom = "created_from"
	paramCreatedTo   = "created_to"
	paramSort        = "sort"
	paramOrder       = "order"
	paramView        = "view"
	paramPage        = "page"
	paramLimit       = "limit"
)

// Parse decodes a raw URL query string into a sanitized State. It never
// fails: a malformed query string is treated as empty, unknown parameters
// are ignored, and every unparseable value falls back to its default.
func Parse(rawQuery string) State {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		values = url.Values{}
	}
	return ParseQuery(values)
}

// ParseQuery decodes already-split URL values into a sanitized State.
// Unknown enum tokens inside array parameters are dropped silently rather
// than invalidating their neighbours.
func ParseQuery(values url.Values) State {
	s := Defaults()

	s.Search = values.Get(paramSearch)
	s.Statuses = parseTokens(values.Get(paramStatus), task.ParseStatus)
	s.Priorities = parseTokens(values.Get(paramPriority), task.ParsePriority)
	s.Types = parseTokens(values.Get(paramType), task.ParseType)
	s.Assignees = splitList(values.Get(paramAssignee))
	s.Department = values.Get(paramDepartment)
	s.Tags = splitList(values.Get(paramTags))

	s.DueFrom, _ = ParseDate(values.Get(paramDueFrom))
	s.DueTo, _ = ParseDate(values.Get(paramDueTo))
	s.CreatedFrom, _ = ParseDate(values.Get(paramCreatedFrom))
	s.CreatedTo, _ = ParseDate(values.Get(paramCreatedTo))

	if v, ok := ParseSortField(values.Get(paramSort)); ok {
		s.Sort = v
	}
	if v, ok := ParseSortOrder(values.Get(paramOrder)); ok {
		s.Order = v
	}
	if v, ok := ParseViewMode(values.Get(paramView)); ok {
		s.View = v
	}

	if n, err := strconv.Atoi(values.Get(paramPage)); err == nil {
		s.Page = n
	}
	if n, err := strconv.Atoi(values.Get(paramLimit)); err == nil {
		s.Limit = n
	}

	return s.Sanitize()
}

// Values encodes the state as URL values, omitting every parameter whose
// value equals the default so a pristine view produces an empty query
// string.
func (s State) Values() url.Values {
	n := s.Sanitize()
	values := url.Values{}

	if n.Search != "" {
		values.Set(paramSearch, n.Search)
	}
	setList(values, paramStatus, n.Statuses)
	setList(values, paramPriority, n.Priorities)
	setList(values, paramType, n.Types)
	setList(values, paramAssignee, n.Assignees)
	if n.Department != "" {
		values.Set(paramDepartment, n.Department)
	}
	setList(values, paramTags, n.Tags)

	setDate(values, paramDueFrom, n.DueFrom)
	setDate(values, paramDueTo, n.DueTo)
	setDate(values, paramCreatedFrom, n.CreatedFrom)
	setDate(values, paramCreatedTo, n.CreatedTo)

	if n.Sort != SortCreatedAt {
		values.Set(paramSort, string(n.Sort))
	}
	if n.Order != OrderDesc {
		values.Set(paramOrder, string(n.Order))
	}
	if n.View != ViewList {
		values.Set(paramView, string(n.View))
	}
	if n.Page != DefaultPage {
		values.Set(paramPage, strconv.Itoa(n.Page))
	}
	if n.Limit != DefaultLimit {
		values.Set(paramLimit, strconv.Itoa(n.Limit))
	}

	return values
}

// Encode returns the state as a URL query string with parameters in
// sorted order. Normalized states encode identically, which makes the
// result usable as a cache key qualifier.
func (s State) Encode() string {
	return s.Normalize().Values().Encode()
}

// parseTokens splits a comma-joined list and keeps only tokens the parser
// accepts.
func parseTokens[T ~string](raw string, parse func(string) (T, bool)) []T {
	var out []T
	for _, tok := range strings.Split(raw, ",") {
		if v, ok := parse(strings.TrimSpace(tok)); ok {
			out = append(out, v)
		}
	}
	return out
}

// splitList splits a comma-joined list of free-form tokens, dropping
// empties.
func splitList(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func setList[T ~string](values url.Values, key string, list []T) {
	if len(list) == 0 {
		return
	}
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = string(v)
	}
	values.Set(key, strings.Join(parts, ","))
}

func setDate(values url.Values, key string, d Date) {
	if !d.IsZero() {
		values.Set(key, d.String())
	}
}
