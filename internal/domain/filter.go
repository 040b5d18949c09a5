package domain

import "time"

// Filter is the optional predicate bundle applied to record list/count queries.
// Zero values mean "not applied":
//   - empty text fields disable the case-insensitive substring match,
//   - a zero rating bound disables that bound (so min_rating=0 is "no minimum",
//     a deliberately preserved behavior of the public API),
//   - nil dates disable the inclusive visit_date range bounds.
type Filter struct {
	Country   string
	City      string
	Category  string
	MinRating int
	MaxRating int
	StartDate *time.Time
	EndDate   *time.Time
}

// IsZero reports whether no predicate is applied.
func (f Filter) IsZero() bool {
	return f.Country == "" && f.City == "" && f.Category == "" &&
		f.MinRating == 0 && f.MaxRating == 0 &&
		f.StartDate == nil && f.EndDate == nil
}

// Pagination carries skip/limit values from the HTTP layer to the repo layer.
// Skip is a zero-based row offset; Limit is capped at 1000 by NewPagination.
type Pagination struct {
	Skip  int
	Limit int
}

// NewPagination builds a Pagination from optional HTTP query params.
// Nil pointers fall back to defaults (skip=0, limit=100).
// Negative skips are clamped to 0; the limit is clamped into [1, 1000].
func NewPagination(skip, limit *int) Pagination {
	p := Pagination{Skip: 0, Limit: 100}
	if skip != nil && *skip > 0 {
		p.Skip = *skip
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 1000 {
			p.Limit = 1000
		}
	}
	return p
}

// Page returns the 1-indexed page number implied by skip/limit, using floor
// division. A skip that lands mid-page reports the page it falls within,
// matching what pagination UIs built against this API expect.
func (p Pagination) Page() int {
	return p.Skip/p.Limit + 1
}
