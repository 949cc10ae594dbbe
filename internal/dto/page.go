package dto

import (
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is used when the size query parameter is absent or invalid.
	DefaultPageSize = 12
	// MaxPageSize caps the size query parameter.
	MaxPageSize = 100
)

// PageRequest describes one zero-indexed page of a sorted listing.
type PageRequest struct {
	Page      int
	Size      int
	SortField string // column name, already mapped from the JSON field
	SortDir   string // "asc" or "desc"
}

// ParsePageRequest builds a PageRequest from raw query values.
// sort is Spring-style "field,direction" (e.g. "name,asc"); sortable maps
// exposed JSON field names to column names and doubles as the whitelist that
// keeps the sort expression out of SQL injection territory. Unknown fields
// and directions fall back to id ascending.
func ParsePageRequest(page, size, sort string, sortable map[string]string) PageRequest {
	req := PageRequest{
		Page:      0,
		Size:      DefaultPageSize,
		SortField: "id",
		SortDir:   "asc",
	}

	if v, err := strconv.Atoi(page); err == nil && v >= 0 {
		req.Page = v
	}
	if v, err := strconv.Atoi(size); err == nil && v > 0 {
		if v > MaxPageSize {
			v = MaxPageSize
		}
		req.Size = v
	}

	if sort == "" {
		return req
	}

	field := sort
	dir := "asc"
	if idx := strings.Index(sort, ","); idx >= 0 {
		field = sort[:idx]
		if d := strings.ToLower(strings.TrimSpace(sort[idx+1:])); d == "asc" || d == "desc" {
			dir = d
		}
	}
	if column, ok := sortable[strings.TrimSpace(field)]; ok {
		req.SortField = column
		req.SortDir = dir
	}
	return req
}

// Offset returns the row offset for the requested page.
func (r PageRequest) Offset() int {
	return r.Page * r.Size
}

// OrderClause returns the ORDER BY expression for the request.
func (r PageRequest) OrderClause() string {
	return r.SortField + " " + r.SortDir
}

// Page is the paged listing envelope returned across the REST boundary.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
	Empty         bool  `json:"empty"`
}

// NewPage assembles a page envelope from one page of content and the total
// row count reported by the store.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        req.Page,
		Size:          req.Size,
		First:         req.Page == 0,
		Last:          req.Page >= totalPages-1,
		Empty:         len(content) == 0,
	}
}
