package query

import "math"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Page struct {
	Number  int
	PerPage int
}

// NewPage clamps page to >= 1 and per_page to [1, MaxPerPage].
func NewPage(number, perPage int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Page{Number: number, PerPage: perPage}
}

// Offset saturates at math.MaxInt for page numbers whose offset does not
// fit in an int.
func (p Page) Offset() int {
	if p.Number <= 1 || p.PerPage <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int { return p.PerPage }

func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

type PageResult[T any] struct {
	Items      []T  `json:"items"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPageResult derives the navigation flags. A page past the end yields
// no items and has_next=false.
func NewPageResult[T any](items []T, total int, p Page) PageResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := TotalPages(total, p.PerPage)
	return PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       p.Number,
		PerPage:    p.PerPage,
		TotalPages: pages,
		HasNext:    p.Number < pages,
		HasPrev:    p.Number > 1,
	}
}

// Spec is everything the executor needs for one list request.
type Spec struct {
	Filters Clauses
	Sort    Sort
	Page    Page
}
