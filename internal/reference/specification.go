package reference

import "github.com/skybi/rendezvous/internal/query"

const (
	FieldID       query.Field = "id"
	FieldName     query.Field = "name"
	FieldRegionID query.Field = "regionId"
)

// NewAllSpecification returns every reference record ordered by name
func NewAllSpecification[T any]() *query.Specification[T] {
	return query.NewBuilder[T](nil).OrderBy(FieldName).Build()
}

// NewByIDSpecification matches the reference record with the given ID
func NewByIDSpecification[T any](id int64) *query.Specification[T] {
	return query.NewBuilder[T](query.Eq{Field: FieldID, Value: id}).Build()
}

// NewCitiesByRegionSpecification returns the cities of a region ordered by name
func NewCitiesByRegionSpecification(regionID int64) *query.Specification[*City] {
	return query.NewBuilder[*City](query.Eq{Field: FieldRegionID, Value: regionID}).
		OrderBy(FieldName).
		Build()
}

// NewByIDsSpecification matches the reference records with one of the given IDs
func NewByIDsSpecification[T any](ids []int64) *query.Specification[T] {
	return query.NewBuilder[T](query.InInt64(FieldID, ids)).Build()
}
