// Package listutil parses pagination parameters and computes the page
// metadata the list templates render.
package listutil

import (
	"net/url"
	"slices"
	"strconv"
)

// DefaultPerPage is used when the request carries no valid per_page value.
const DefaultPerPage = 20

// PerPageOptions are the rows-per-page values the list pages offer. Values
// outside this set fall back to DefaultPerPage so a crafted query cannot
// request arbitrarily large pages.
var PerPageOptions = []int{10, 20, 50, 100, 200}

// PageParams is a request's pagination input after validation.
type PageParams struct {
	Page    int // 1-indexed
	PerPage int
}

// ParsePageParams reads page and per_page from query values, applying
// defaults for anything missing or out of range.
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !slices.Contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// PageInfo is the pagination metadata a list template renders.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPageInfo derives page metadata from a total row count, clamping Page
// into the valid range.
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	page = min(max(page, 1), totalPages)
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset is the SQL OFFSET for the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow is the 1-indexed first row shown, or 0 when there are no rows.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow is the 1-indexed last row shown on the current page.
func (p PageInfo) EndRow() int {
	return min(p.Offset()+p.PerPage, p.Total)
}

// PageNumbers returns up to five page numbers centered on the current page,
// for the numbered pagination buttons.
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := max(p.Page-maxButtons/2, 1)
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = max(end-maxButtons+1, 1)
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ShowPagination reports whether the result set spans more than one page.
func (p PageInfo) ShowPagination() bool {
	return p.Total > p.PerPage
}
