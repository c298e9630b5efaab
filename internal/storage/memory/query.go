package memory

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/skybi/rendezvous/internal/query"
)

// Collection describes how the records of an entity are stored in a go-memdb table
type Collection[T any] struct {
	// Table is the name of the go-memdb table holding the records
	Table string

	// Fields maps every queryable field to its accessor
	Fields map[query.Field]func(T) any

	// Less orders records by their primary key; it breaks ordering ties
	Less func(a, b T) bool

	// Clone copies a record so that loading relations never touches the stored instance
	Clone func(T) T

	// Loaders holds the relation loaders of the entity
	Loaders query.Loaders[T]
}

// Query implements query.Queryable on top of a go-memdb table.
// Conditions are evaluated against every record of a read transaction snapshot.
type Query[T any] struct {
	db       *memdb.MemDB
	coll     *Collection[T]
	conds    []query.Condition
	order    *query.Order
	skip     int
	take     int
	includes []query.Include
}

var _ query.Queryable[any] = (*Query[any])(nil)

// NewQuery creates a new base query over all records of a collection
func NewQuery[T any](db *memdb.MemDB, coll *Collection[T]) *Query[T] {
	return &Query[T]{
		db:   db,
		coll: coll,
		take: -1,
	}
}

func (q *Query[T]) clone() *Query[T] {
	cpy := *q
	cpy.conds = append([]query.Condition(nil), q.conds...)
	cpy.includes = append([]query.Include(nil), q.includes...)
	return &cpy
}

// Where restricts the query to the records matching the given condition
func (q *Query[T]) Where(cond query.Condition) query.Queryable[T] {
	cpy := q.clone()
	cpy.conds = append(cpy.conds, cond)
	return cpy
}

// OrderBy orders the records ascending by the given field
func (q *Query[T]) OrderBy(field query.Field) query.Queryable[T] {
	cpy := q.clone()
	cpy.order = &query.Order{Field: field}
	return cpy
}

// OrderByDescending orders the records descending by the given field
func (q *Query[T]) OrderByDescending(field query.Field) query.Queryable[T] {
	cpy := q.clone()
	cpy.order = &query.Order{Field: field, Descending: true}
	return cpy
}

// Skip skips the first n records
func (q *Query[T]) Skip(n int) query.Queryable[T] {
	cpy := q.clone()
	if n < 0 {
		n = 0
	}
	cpy.skip = n
	return cpy
}

// Take limits the query to at most n records
func (q *Query[T]) Take(n int) query.Queryable[T] {
	cpy := q.clone()
	if n < 0 {
		n = 0
	}
	cpy.take = n
	return cpy
}

// Include loads the given relation path eagerly
func (q *Query[T]) Include(include query.Include) query.Queryable[T] {
	cpy := q.clone()
	cpy.includes = append(cpy.includes, include)
	return cpy
}

// List materializes the query
func (q *Query[T]) List(ctx context.Context) ([]T, error) {
	if err := q.coll.Loaders.Validate(q.includes); err != nil {
		return nil, err
	}

	records, err := q.filter()
	if err != nil {
		return nil, err
	}
	if err := q.sort(records); err != nil {
		return nil, err
	}

	if q.skip >= len(records) {
		records = records[:0]
	} else {
		records = records[q.skip:]
	}
	if q.take >= 0 && q.take < len(records) {
		records = records[:q.take]
	}

	result := make([]T, len(records))
	for i, record := range records {
		result[i] = q.coll.Clone(record)
	}
	if err := q.coll.Loaders.Load(ctx, result, q.includes); err != nil {
		return nil, err
	}
	return result, nil
}

// First materializes the first record of the query
func (q *Query[T]) First(ctx context.Context) (T, bool, error) {
	records, err := q.Take(1).List(ctx)
	if err != nil || len(records) == 0 {
		var zero T
		return zero, false, err
	}
	return records[0], true, nil
}

// Count returns the amount of records matching the query's conditions
func (q *Query[T]) Count(_ context.Context) (int, error) {
	records, err := q.filter()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (q *Query[T]) filter() ([]T, error) {
	txn := q.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(q.coll.Table, "id")
	if err != nil {
		return nil, err
	}

	records := []T{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		record := obj.(T)
		ok, err := q.matches(record)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, record)
		}
	}
	return records, nil
}

func (q *Query[T]) matches(record T) (bool, error) {
	for _, cond := range q.conds {
		ok, err := match(q.coll.Fields, cond, record)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (q *Query[T]) sort(records []T) error {
	if q.order == nil {
		sort.SliceStable(records, func(i, j int) bool {
			return q.coll.Less(records[i], records[j])
		})
		return nil
	}

	accessor, ok := q.coll.Fields[q.order.Field]
	if !ok {
		return query.UnknownFieldError(q.order.Field)
	}

	var sortErr error
	sort.SliceStable(records, func(i, j int) bool {
		res, err := compareOrdering(accessor(records[i]), accessor(records[j]))
		if err != nil {
			sortErr = err
			return false
		}
		if res == 0 {
			return q.coll.Less(records[i], records[j])
		}
		if q.order.Descending {
			return res > 0
		}
		return res < 0
	})
	return sortErr
}

// compareOrdering compares two field values for sorting; null values sort last ascending and first descending
func compareOrdering(a, b any) (int, error) {
	x, okX := normalize(a)
	y, okY := normalize(b)
	switch {
	case !okX && !okY:
		return 0, nil
	case !okX:
		return 1, nil
	case !okY:
		return -1, nil
	}
	return compare(x, y)
}
