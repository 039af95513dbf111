package v1

import (
	"net/http"

	"github.com/Kimutai-cloud/HRMS-sub002/domain/filter"
)

// pageMeta builds the pagination meta object for list responses.
func pageMeta(page, limit int, total int64, totalPages int) map[string]any {
	return map[string]any{
		"page":        page,
		"limit":       limit,
		"total_count": total,
		"total_pages": totalPages,
	}
}

// pageLinks builds self/first/prev/next/last links for a filtered list.
// Each link re-encodes the filter with only the page changed, so every
// link is itself a canonical query string.
func pageLinks(req *http.Request, f filter.State, totalPages int) map[string]any {
	base := req.URL.Path

	link := func(page int) string {
		q := f
		q.Page = page
		if enc := q.Encode(); enc != "" {
			return base + "?" + enc
		}
		return base
	}

	links := map[string]any{
		"self":  link(f.Page),
		"first": link(filter.DefaultPage),
	}
	if totalPages > 0 {
		links["last"] = link(totalPages)
	}
	if f.Page > 1 {
		links["prev"] = link(f.Page - 1)
	}
	if f.Page < totalPages {
		links["next"] = link(f.Page + 1)
	}
	return links
}
