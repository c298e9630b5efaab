package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/skybi/rendezvous/internal/query"
)

// querier is the part of the pgx API queries are executed through; satisfied by *pgxpool.Pool and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Table describes how the records of an entity are stored in a PostgreSQL table
type Table[T any] struct {
	// Name is the name of the table
	Name string

	// Columns holds the selected columns in the order Scan expects them
	Columns []string

	// Key holds the primary key columns; they break ordering ties
	Key []string

	// Fields maps every queryable field to its column
	Fields map[query.Field]string

	// Scan scans a single row of the selected columns
	Scan func(row pgx.Row) (T, error)

	// Loaders holds the relation loaders of the entity
	Loaders query.Loaders[T]
}

// Query implements query.Queryable by building SQL using squirrel
type Query[T any] struct {
	db       querier
	table    *Table[T]
	conds    []query.Condition
	order    *query.Order
	skip     int
	take     int
	includes []query.Include
}

var _ query.Queryable[any] = (*Query[any])(nil)

// NewQuery creates a new base query over all rows of a table
func NewQuery[T any](db querier, table *Table[T]) *Query[T] {
	return &Query[T]{
		db:    db,
		table: table,
		take:  -1,
	}
}

func (q *Query[T]) clone() *Query[T] {
	cpy := *q
	cpy.conds = append([]query.Condition(nil), q.conds...)
	cpy.includes = append([]query.Include(nil), q.includes...)
	return &cpy
}

// Where restricts the query to the rows matching the given condition
func (q *Query[T]) Where(cond query.Condition) query.Queryable[T] {
	cpy := q.clone()
	cpy.conds = append(cpy.conds, cond)
	return cpy
}

// OrderBy orders the rows ascending by the given field
func (q *Query[T]) OrderBy(field query.Field) query.Queryable[T] {
	cpy := q.clone()
	cpy.order = &query.Order{Field: field}
	return cpy
}

// OrderByDescending orders the rows descending by the given field
func (q *Query[T]) OrderByDescending(field query.Field) query.Queryable[T] {
	cpy := q.clone()
	cpy.order = &query.Order{Field: field, Descending: true}
	return cpy
}

// Skip skips the first n rows
func (q *Query[T]) Skip(n int) query.Queryable[T] {
	cpy := q.clone()
	if n < 0 {
		n = 0
	}
	cpy.skip = n
	return cpy
}

// Take limits the query to at most n rows
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

// ToSql builds the SQL statement List executes
func (q *Query[T]) ToSql() (string, []interface{}, error) {
	builder, err := q.where(squirrel.Select(q.table.Columns...).From(q.table.Name))
	if err != nil {
		return "", nil, err
	}

	ordered := ""
	if q.order != nil {
		col, ok := q.table.Fields[q.order.Field]
		if !ok {
			return "", nil, query.UnknownFieldError(q.order.Field)
		}
		ordered = col
		if q.order.Descending {
			builder = builder.OrderBy(col + " DESC")
		} else {
			builder = builder.OrderBy(col + " ASC")
		}
	}
	for _, col := range q.table.Key {
		if col != ordered {
			builder = builder.OrderBy(col + " ASC")
		}
	}

	if q.skip > 0 {
		builder = builder.Offset(uint64(q.skip))
	}
	if q.take >= 0 {
		builder = builder.Limit(uint64(q.take))
	}

	return builder.PlaceholderFormat(squirrel.Dollar).ToSql()
}

// CountSql builds the SQL statement Count executes
func (q *Query[T]) CountSql() (string, []interface{}, error) {
	builder, err := q.where(squirrel.Select("COUNT(*)").From(q.table.Name))
	if err != nil {
		return "", nil, err
	}
	return builder.PlaceholderFormat(squirrel.Dollar).ToSql()
}

func (q *Query[T]) where(builder squirrel.SelectBuilder) (squirrel.SelectBuilder, error) {
	for _, cond := range q.conds {
		compiled, err := compile(cond, q.table.Fields)
		if err != nil {
			return builder, err
		}
		builder = builder.Where(compiled)
	}
	return builder, nil
}

// List materializes the query
func (q *Query[T]) List(ctx context.Context) ([]T, error) {
	if err := q.table.Loaders.Validate(q.includes); err != nil {
		return nil, err
	}

	sql, vals, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.db.Query(ctx, sql, vals...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	objs := []T{}
	for rows.Next() {
		obj, err := q.table.Scan(rows)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := q.table.Loaders.Load(ctx, objs, q.includes); err != nil {
		return nil, err
	}
	return objs, nil
}

// First materializes the first row of the query
func (q *Query[T]) First(ctx context.Context) (T, bool, error) {
	objs, err := q.Take(1).List(ctx)
	if err != nil || len(objs) == 0 {
		var zero T
		return zero, false, err
	}
	return objs[0], true, nil
}

// Count returns the amount of rows matching the query's conditions
func (q *Query[T]) Count(ctx context.Context) (int, error) {
	sql, vals, err := q.CountSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := q.db.QueryRow(ctx, sql, vals...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
