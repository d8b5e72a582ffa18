package repository

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageSpec carries the pagination and sorting options recognized by the
// stores. Bounds normalization lives here, not in the domain services:
// a negative page falls back to the first page and an out-of-range size
// falls back to the default.
type PageSpec struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func (p PageSpec) normalized() PageSpec {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 || p.Size > MaxPageSize {
		p.Size = DefaultPageSize
	}
	return p
}

func (p PageSpec) offset() int {
	return p.Page * p.Size
}

// orderClause maps the external sort field to a whitelisted column and
// appends the direction. Anything but "desc" sorts ascending.
func (p PageSpec) orderClause(columns map[string]string, fallback string) string {
	column, ok := columns[p.SortBy]
	if !ok {
		column = fallback
	}
	if strings.EqualFold(p.SortDir, "desc") {
		return column + " DESC"
	}
	return column + " ASC"
}
