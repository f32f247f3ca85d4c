package query

import (
	"fmt"
	"slices"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection is used where requests are validated; an empty string
// yields the default descending order.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Desc:
		return Desc, nil
	case Asc:
		return Asc, nil
	default:
		return "", fmt.Errorf("sort_order must be asc or desc, got %q", s)
	}
}

// SortFields is a resource's whitelist of sortable columns plus its default.
type SortFields struct {
	fields []string
	def    string
}

// NewSortFields panics when def is not whitelisted; the lists are static.
func NewSortFields(def string, fields ...string) SortFields {
	if !slices.Contains(fields, def) {
		panic(fmt.Sprintf("query: default sort field %q not in whitelist", def))
	}
	return SortFields{fields: slices.Clone(fields), def: def}
}

// Resolve never fails: unknown fields fall back to the default.
func (s SortFields) Resolve(requested string) string {
	requested = strings.TrimSpace(requested)
	if slices.Contains(s.fields, requested) {
		return requested
	}
	return s.def
}

type Sort struct {
	Field     string
	Direction Direction
}

// OrderBy renders the ORDER BY body; id is appended so pages are stable
// when the sort column has ties.
func (s Sort) OrderBy(prefix string) string {
	dir := "DESC"
	if s.Direction == Asc {
		dir = "ASC"
	}
	return fmt.Sprintf("%s%s %s, %sid %s", prefix, s.Field, dir, prefix, dir)
}
