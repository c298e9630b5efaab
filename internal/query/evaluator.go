package query

import "context"

// Queryable represents a lazily evaluated collection query over records of type T.
// Every refining method returns a new query and leaves the receiver untouched; nothing touches the underlying store
// before one of the materializing methods is called.
type Queryable[T any] interface {
	// Where restricts the query to the records matching the given condition
	Where(cond Condition) Queryable[T]

	// OrderBy orders the records ascending by the given field
	OrderBy(field Field) Queryable[T]

	// OrderByDescending orders the records descending by the given field
	OrderByDescending(field Field) Queryable[T]

	// Skip skips the first n records
	Skip(n int) Queryable[T]

	// Take limits the query to at most n records
	Take(n int) Queryable[T]

	// Include loads the given relation path eagerly
	Include(include Include) Queryable[T]

	// List materializes the query
	List(ctx context.Context) ([]T, error)

	// First materializes the first record of the query and reports whether there is one
	First(ctx context.Context) (T, bool, error)

	// Count returns the amount of records matching the query's conditions.
	// Paging, ordering and includes do not influence the result.
	Count(ctx context.Context) (int, error)
}

// Evaluate refines the given base query using a specification.
// The directives are applied in a fixed order: criteria, ascending ordering, descending ordering, paging window and
// finally every include in the order it was added.
// Errors are not handled here; they surface unchanged once the returned query is materialized.
func Evaluate[T any](base Queryable[T], spec *Specification[T]) Queryable[T] {
	query := base

	if criteria := spec.Criteria(); criteria != nil {
		query = query.Where(criteria)
	}

	if order, ok := spec.Order(); ok {
		if !order.Descending {
			query = query.OrderBy(order.Field)
		} else {
			query = query.OrderByDescending(order.Field)
		}
	}

	if spec.PagingEnabled() {
		query = query.Skip(spec.Skip()).Take(spec.Take())
	}

	for _, include := range spec.Includes() {
		query = query.Include(include)
	}

	return query
}

// Paginate evaluates a list specification and its paired count specification against the same base query and wraps
// the results into a Page.
// The list query is skipped entirely if the count specification matches no records.
func Paginate[T any](ctx context.Context, base Queryable[T], listSpec, countSpec *Specification[T], params PageParams) (*Page[T], error) {
	total, err := Evaluate(base, countSpec).Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return NewPage([]T{}, 0, params.PageIndex, params.PageSize), nil
	}

	items, err := Evaluate(base, listSpec).List(ctx)
	if err != nil {
		return nil, err
	}
	return NewPage(items, total, params.PageIndex, params.PageSize), nil
}
