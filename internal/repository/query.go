package repository

import (
	"strings"

	"Repokit/internal/result"

	"gorm.io/gorm"
)

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{Schema: schema, Args: args}
}

// QueryOptions shapes the query built by Query. Include is a comma separated list of
// association paths to preload, e.g. "Items" or "Items,Owner".
type QueryOptions struct {
	Filter             *QueryFilter
	OrderBy            []string // "name ASC", "id DESC"
	Include            string
	Skip               *int
	Take               *int
	IgnoreQueryFilters bool
	AsNoTracking       bool
}

// Query composes a lazily evaluated query for T. Parts are applied in a fixed order:
// filter bypass, predicate, ordering, includes, skip, take, detached session.
// The returned handle is bound to the repository context but not to the command timeout.
func (r *GenericRepositoryImpl[T, PT]) Query(opts QueryOptions) *gorm.DB {
	query := r.db.WithContext(r.ctx).Model(new(T))
	if opts.IgnoreQueryFilters {
		query = query.Unscoped()
	}
	if opts.Filter != nil && opts.Filter.Schema != "" {
		query = query.Where(opts.Filter.Schema, opts.Filter.Args...)
	}
	for _, order := range opts.OrderBy {
		if order = strings.TrimSpace(order); order != "" {
			query = query.Order(order)
		}
	}
	for _, include := range strings.Split(opts.Include, ",") {
		if include = strings.TrimSpace(include); include != "" {
			query = query.Preload(include)
		}
	}
	if opts.Skip != nil {
		query = query.Offset(*opts.Skip)
	}
	if opts.Take != nil {
		query = query.Limit(*opts.Take)
	}
	if opts.AsNoTracking {
		// a new session keeps later chaining by the caller from mutating this statement
		query = query.Session(&gorm.Session{})
	}
	return query
}

func (r *GenericRepositoryImpl[T, PT]) FindAll(opts QueryOptions) (res *result.Result[[]*T]) {
	defer recoverInto(&res)
	ctx, cancel := r.context()
	defer cancel()

	entities := make([]*T, 0)
	if err := r.Query(opts).WithContext(ctx).Find(&entities).Error; err != nil {
		return result.FromError[[]*T](err)
	}
	return result.New(entities)
}

// Count counts the rows matching the filter part of opts; ordering, includes and
// paging are ignored.
func (r *GenericRepositoryImpl[T, PT]) Count(opts QueryOptions) (res *result.Result[int64]) {
	defer recoverInto(&res)
	ctx, cancel := r.context()
	defer cancel()

	var total int64
	countOpts := QueryOptions{Filter: opts.Filter, IgnoreQueryFilters: opts.IgnoreQueryFilters}
	if err := r.Query(countOpts).WithContext(ctx).Count(&total).Error; err != nil {
		return result.FromError[int64](err)
	}
	return result.New(total)
}
