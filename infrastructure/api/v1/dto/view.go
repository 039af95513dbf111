package dto

import "github.com/Kimutai-cloud/HRMS-sub002/domain/filter"

// ViewToggle flips one value in a multi-valued filter dimension.
type ViewToggle struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ViewStateRequest is the body for POST /tasks/view. It carries the SPA's
// current URL query string plus the change being made: a partial patch, a
// toggle, or a full clear.
type ViewStateRequest struct {
	Current   string        `json:"current"`
	Patch     *filter.Patch `json:"patch,omitempty"`
	Toggle    *ViewToggle   `json:"toggle,omitempty"`
	Clear     bool          `json:"clear,omitempty"`
	ResetPage *bool         `json:"reset_page,omitempty"`
}

// ViewStateResponse returns the next URL query string and how to write it
// into browser history.
type ViewStateResponse struct {
	Query     string   `json:"query"`
	Replace   bool     `json:"replace"`
	Active    bool     `json:"active"`
	Summaries []string `json:"summaries,omitempty"`
}
