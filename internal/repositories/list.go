package repositories

import (
	"context"
	"fmt"

	intdb "opticrm/internal/db"
	"opticrm/internal/query"
)

// listSource is the SELECT side of a resource list: table expression,
// selected columns, the alias prefix used for ordering and the row scanner.
type listSource[T any] struct {
	from    string
	columns string
	prefix  string
	scan    func(intdb.RowScanner) (T, error)
}

// runList issues the count query and the page query. Both render the same
// Clauses value, so they cannot disagree on filters. They are separate
// round trips without a shared snapshot: under concurrent writes the total
// and the page may be slightly out of step.
func runList[T any](ctx context.Context, conn intdb.DBTX, src listSource[T], spec query.Spec) (query.PageResult[T], error) {
	where, args := spec.Filters.Where()

	var total int
	countSQL := "SELECT COUNT(*) FROM " + src.from + where
	if err := conn.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return query.PageResult[T]{}, fmt.Errorf("count: %w", err)
	}

	// Past the last row there is nothing to fetch.
	if spec.Page.Offset() >= total {
		return query.NewPageResult[T](nil, total, spec.Page), nil
	}

	pageSQL := "SELECT " + src.columns + " FROM " + src.from + where +
		" ORDER BY " + spec.Sort.OrderBy(src.prefix) + " LIMIT ? OFFSET ?"
	pageArgs := make([]any, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, spec.Page.Limit(), spec.Page.Offset())

	rows, err := conn.QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return query.PageResult[T]{}, fmt.Errorf("page: %w", err)
	}
	defer rows.Close()

	items := make([]T, 0, spec.Page.PerPage)
	for rows.Next() {
		item, err := src.scan(rows)
		if err != nil {
			return query.PageResult[T]{}, fmt.Errorf("scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return query.PageResult[T]{}, err
	}
	return query.NewPageResult(items, total, spec.Page), nil
}

// listSpec assembles the per-request pipeline input.
func listSpec(filters query.Clauses, sorts query.SortFields, sortBy string, dir query.Direction, page, perPage int) query.Spec {
	if dir != query.Asc {
		dir = query.Desc
	}
	return query.Spec{
		Filters: filters,
		Sort:    query.Sort{Field: sorts.Resolve(sortBy), Direction: dir},
		Page:    query.NewPage(page, perPage),
	}
}
