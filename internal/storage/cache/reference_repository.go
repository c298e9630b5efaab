package cache

import (
	"context"
	"time"

	"github.com/skybi/rendezvous/internal/hashmap"
	"github.com/skybi/rendezvous/internal/reference"
)

// cleanupInterval is the interval expired cache entries are removed in
const cleanupInterval = 10 * time.Second

// ReferenceRepository implements the reference.Repository interface in order to implement caching.
// Reference data changes rarely, so whole lists are cached next to single records.
type ReferenceRepository struct {
	repo reference.Repository

	regions  *entityCache[reference.Region]
	cities   *entityCache[reference.City]
	genders  *entityCache[reference.Gender]
	statuses *entityCache[reference.Status]

	// citiesByRegion caches the city lists per region; key 0 holds the list of all cities
	citiesByRegion *hashmap.ExpiringMap[int64, []*reference.City]
}

var _ reference.Repository = (*ReferenceRepository)(nil)

// NewReferenceRepository wraps a reference repository, caching its results for the given lifetime
func NewReferenceRepository(repo reference.Repository, lifetime time.Duration) *ReferenceRepository {
	citiesByRegion := hashmap.NewExpiring[int64, []*reference.City](lifetime)
	citiesByRegion.ScheduleCleanupTask(cleanupInterval)
	return &ReferenceRepository{
		repo:           repo,
		regions:        newEntityCache[reference.Region](lifetime),
		cities:         newEntityCache[reference.City](lifetime),
		genders:        newEntityCache[reference.Gender](lifetime),
		statuses:       newEntityCache[reference.Status](lifetime),
		citiesByRegion: citiesByRegion,
	}
}

// GetRegions retrieves all regions
func (repo *ReferenceRepository) GetRegions(ctx context.Context) ([]*reference.Region, error) {
	return repo.regions.all(ctx, repo.repo.GetRegions, func(obj *reference.Region) int64 { return obj.ID })
}

// GetRegion retrieves a region by its ID
func (repo *ReferenceRepository) GetRegion(ctx context.Context, id int64) (*reference.Region, error) {
	return repo.regions.get(ctx, id, repo.repo.GetRegion)
}

// GetCities retrieves all cities or the cities of a single region
func (repo *ReferenceRepository) GetCities(ctx context.Context, regionID *int64) ([]*reference.City, error) {
	var key int64
	if regionID != nil {
		key = *regionID
	}
	if cached, ok := repo.citiesByRegion.Lookup(key); ok {
		return cached, nil
	}

	cities, err := repo.repo.GetCities(ctx, regionID)
	if err != nil {
		return nil, err
	}
	for _, obj := range cities {
		repo.cities.records.Set(obj.ID, obj)
	}
	repo.citiesByRegion.Set(key, cities)
	return cities, nil
}

// GetCity retrieves a city by its ID
func (repo *ReferenceRepository) GetCity(ctx context.Context, id int64) (*reference.City, error) {
	return repo.cities.get(ctx, id, repo.repo.GetCity)
}

// GetGenders retrieves all genders
func (repo *ReferenceRepository) GetGenders(ctx context.Context) ([]*reference.Gender, error) {
	return repo.genders.all(ctx, repo.repo.GetGenders, func(obj *reference.Gender) int64 { return obj.ID })
}

// GetGender retrieves a gender by its ID
func (repo *ReferenceRepository) GetGender(ctx context.Context, id int64) (*reference.Gender, error) {
	return repo.genders.get(ctx, id, repo.repo.GetGender)
}

// GetStatuses retrieves all statuses
func (repo *ReferenceRepository) GetStatuses(ctx context.Context) ([]*reference.Status, error) {
	return repo.statuses.all(ctx, repo.repo.GetStatuses, func(obj *reference.Status) int64 { return obj.ID })
}

// GetStatus retrieves a status by its ID
func (repo *ReferenceRepository) GetStatus(ctx context.Context, id int64) (*reference.Status, error) {
	return repo.statuses.get(ctx, id, repo.repo.GetStatus)
}

// Close stops the cleanup tasks of every underlying cache
func (repo *ReferenceRepository) Close() {
	repo.regions.close()
	repo.cities.close()
	repo.genders.close()
	repo.statuses.close()
	repo.citiesByRegion.StopCleanupTask()
}

// entityCache caches the records of a single reference table
type entityCache[T any] struct {
	records *hashmap.ExpiringMap[int64, *T]

	// list holds the list of all records under the key 0
	list *hashmap.ExpiringMap[int, []*T]
}

func newEntityCache[T any](lifetime time.Duration) *entityCache[T] {
	records := hashmap.NewExpiring[int64, *T](lifetime)
	records.ScheduleCleanupTask(cleanupInterval)
	list := hashmap.NewExpiring[int, []*T](lifetime)
	list.ScheduleCleanupTask(cleanupInterval)
	return &entityCache[T]{
		records: records,
		list:    list,
	}
}

func (cache *entityCache[T]) all(ctx context.Context, fetch func(context.Context) ([]*T, error), id func(*T) int64) ([]*T, error) {
	if cached, ok := cache.list.Lookup(0); ok {
		return cached, nil
	}
	objs, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	for _, obj := range objs {
		cache.records.Set(id(obj), obj)
	}
	cache.list.Set(0, objs)
	return objs, nil
}

func (cache *entityCache[T]) get(ctx context.Context, id int64, fetch func(context.Context, int64) (*T, error)) (*T, error) {
	if cached, ok := cache.records.Lookup(id); ok {
		return cached, nil
	}
	obj, err := fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		cache.records.Set(id, obj)
	}
	return obj, nil
}

func (cache *entityCache[T]) close() {
	cache.records.StopCleanupTask()
	cache.list.StopCleanupTask()
}
