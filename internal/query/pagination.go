package query

import (
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// ExportLimit caps the single bulk read behind the export endpoint
	ExportLimit = 50000
)

// PageOptions configures the pagination calculator
type PageOptions struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPageOptions returns the listing endpoint defaults
func DefaultPageOptions() PageOptions {
	return PageOptions{
		DefaultLimit: DefaultLimit,
		MaxLimit:     MaxLimit,
	}
}

// Page is a resolved page, limit and offset
type Page struct {
	Page   int
	Limit  int
	Offset int
}

// NewPage builds a Page and derives its offset
func NewPage(page, limit int) Page {
	return Page{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// ParsePage reads page and limit from the request. Non-numeric values fall
// back to defaults; page < 1 and limit < 1 are rejected; limit above the
// configured maximum is clamped. A page whose offset would not fit in an
// int is rejected.
func ParsePage(values url.Values, opts PageOptions) (Page, error) {
	if opts.DefaultLimit < 1 {
		opts.DefaultLimit = DefaultLimit
	}

	page := DefaultPage
	pageRaw := Lookup(values, "page").String()
	if pageRaw != "" {
		if n, err := strconv.Atoi(pageRaw); err == nil {
			if n < 1 {
				return Page{}, invalidParam("page", pageRaw, "must be at least 1")
			}
			page = n
		}
	}

	limit := opts.DefaultLimit
	if raw := Lookup(values, "limit").String(); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			if n < 1 {
				return Page{}, invalidParam("limit", raw, "must be at least 1")
			}
			limit = n
		}
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		limit = opts.MaxLimit
	}
	if page-1 > math.MaxInt/limit {
		return Page{}, invalidParam("page", pageRaw, "is too large")
	}

	return NewPage(page, limit), nil
}

// PageInfo is the pagination metadata returned with a page of results
type PageInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Paginate derives page metadata for a total result count
func (p Page) Paginate(total int64) PageInfo {
	var pages int64
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return PageInfo{
		Page:        p.Page,
		Limit:       p.Limit,
		TotalCount:  total,
		TotalPages:  pages,
		HasNextPage: int64(p.Page) < pages,
		HasPrevPage: p.Page > 1,
	}
}
