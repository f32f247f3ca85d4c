package models

import "opticrm/internal/query"

// ListParams carries the paging and ordering part of a list request.
type ListParams struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder query.Direction
}
