package reference

import (
	"context"

	"github.com/skybi/rendezvous/internal/query"
)

// Store provides the collection queries of the reference data tables
type Store interface {
	Regions() query.Queryable[*Region]
	Cities() query.Queryable[*City]
	Genders() query.Queryable[*Gender]
	Statuses() query.Queryable[*Status]
}

// Repository defines the reference data repository API.
// The single-record getters return nil if there is no record with the given ID.
type Repository interface {
	GetRegions(ctx context.Context) ([]*Region, error)
	GetRegion(ctx context.Context, id int64) (*Region, error)

	// GetCities retrieves all cities or, if regionID is not nil, the cities of a single region
	GetCities(ctx context.Context, regionID *int64) ([]*City, error)
	GetCity(ctx context.Context, id int64) (*City, error)

	GetGenders(ctx context.Context) ([]*Gender, error)
	GetGender(ctx context.Context, id int64) (*Gender, error)

	GetStatuses(ctx context.Context) ([]*Status, error)
	GetStatus(ctx context.Context, id int64) (*Status, error)
}

// StoreRepository implements Repository on top of a Store using specifications
type StoreRepository struct {
	store Store
}

var _ Repository = (*StoreRepository)(nil)

// NewRepository creates a new repository backed by the given store
func NewRepository(store Store) *StoreRepository {
	return &StoreRepository{store: store}
}

func (repo *StoreRepository) GetRegions(ctx context.Context) ([]*Region, error) {
	return query.Evaluate(repo.store.Regions(), NewAllSpecification[*Region]()).List(ctx)
}

func (repo *StoreRepository) GetRegion(ctx context.Context, id int64) (*Region, error) {
	return first(ctx, repo.store.Regions(), NewByIDSpecification[*Region](id))
}

func (repo *StoreRepository) GetCities(ctx context.Context, regionID *int64) ([]*City, error) {
	spec := NewAllSpecification[*City]()
	if regionID != nil {
		spec = NewCitiesByRegionSpecification(*regionID)
	}
	return query.Evaluate(repo.store.Cities(), spec).List(ctx)
}

func (repo *StoreRepository) GetCity(ctx context.Context, id int64) (*City, error) {
	return first(ctx, repo.store.Cities(), NewByIDSpecification[*City](id))
}

func (repo *StoreRepository) GetGenders(ctx context.Context) ([]*Gender, error) {
	return query.Evaluate(repo.store.Genders(), NewAllSpecification[*Gender]()).List(ctx)
}

func (repo *StoreRepository) GetGender(ctx context.Context, id int64) (*Gender, error) {
	return first(ctx, repo.store.Genders(), NewByIDSpecification[*Gender](id))
}

func (repo *StoreRepository) GetStatuses(ctx context.Context) ([]*Status, error) {
	return query.Evaluate(repo.store.Statuses(), NewAllSpecification[*Status]()).List(ctx)
}

func (repo *StoreRepository) GetStatus(ctx context.Context, id int64) (*Status, error) {
	return first(ctx, repo.store.Statuses(), NewByIDSpecification[*Status](id))
}

func first[T any](ctx context.Context, base query.Queryable[*T], spec *query.Specification[*T]) (*T, error) {
	obj, ok, err := query.Evaluate(base, spec).First(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return obj, nil
}
