// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the caller supplies none.
const DefaultLimit = 50

// CategoryLimit is the smaller page size for by-category listings.
const CategoryLimit = 20

// Params holds sanitized offset pagination inputs. Malformed values are
// coerced to defaults rather than rejected.
type Params struct {
	Page  int
	Limit int
}

// Parse extracts "page" and "limit" from the request query, coercing
// anything missing or malformed to page 1 / defaultLimit.
func Parse(r *http.Request, defaultLimit int) Params {
	return Params{
		Page:  parsePositive(query.Get(r, "page"), 1),
		Limit: parsePositive(query.Get(r, "limit"), defaultLimit),
	}
}

func parsePositive(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Skip returns the number of documents to skip for this page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Meta is the pagination metadata returned alongside paged lists.
type Meta struct {
	Current int   `json:"current"`
	Total   int64 `json:"total"` // total pages, not total documents
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// BuildMeta derives pagination metadata from the page parameters, the
// number of documents returned for this page, and the total match count.
// Total pages is ceil(count/limit); hasNext holds when documents remain
// beyond this page; hasPrev holds for any page after the first.
func BuildMeta(p Params, returned int, count int64) Meta {
	limit := int64(p.Limit)
	totalPages := (count + limit - 1) / limit
	return Meta{
		Current: p.Page,
		Total:   totalPages,
		HasNext: p.Skip()+int64(returned) < count,
		HasPrev: p.Page > 1,
	}
}
