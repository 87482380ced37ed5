package services

import (
	"Repokit/internal/repository"
	"Repokit/internal/result"
)

// ListQuery is the user facing form of repository.QueryOptions.
type ListQuery struct {
	Filter         string
	OrderBy        string
	Include        string
	Skip           *int
	Take           *int
	IncludeDeleted bool
}

type Page[T any] struct {
	Total int64 `json:"total"`
	Items []*T  `json:"items"`
}

const InvalidQuery = "InvalidQuery"

// listPage validates q against columns and relations and loads one page plus the total count.
func listPage[T any](repo repository.GenericRepository[T], q ListQuery, columns, relations map[string]string) *result.Result[*Page[T]] {
	filter, err := ParseFilter(q.Filter, columns)
	if err != nil {
		return result.Fail[*Page[T]](InvalidQuery, err.Error())
	}
	orders, err := ParseOrderBy(q.OrderBy, columns)
	if err != nil {
		return result.Fail[*Page[T]](InvalidQuery, err.Error())
	}
	if len(orders) == 0 {
		orders = []string{"id ASC"}
	}
	include, err := ParseInclude(q.Include, relations)
	if err != nil {
		return result.Fail[*Page[T]](InvalidQuery, err.Error())
	}

	opts := repository.QueryOptions{
		Filter:             filter,
		OrderBy:            orders,
		Include:            include,
		Skip:               q.Skip,
		Take:               q.Take,
		IgnoreQueryFilters: q.IncludeDeleted,
		AsNoTracking:       true,
	}
	total := repo.Count(opts)
	if total.HasErrors() {
		return result.Propagate[*Page[T]](total)
	}
	items := repo.FindAll(opts)
	if items.HasErrors() {
		return result.Propagate[*Page[T]](items)
	}
	return result.New(&Page[T]{Total: total.ResultObject, Items: items.ResultObject})
}
