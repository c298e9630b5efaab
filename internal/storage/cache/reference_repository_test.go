package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skybi/rendezvous/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRepository serves fixed reference data and counts the calls reaching it
type countingRepository struct {
	calls int
	err   error
}

var _ reference.Repository = (*countingRepository)(nil)

func (repo *countingRepository) GetRegions(_ context.Context) ([]*reference.Region, error) {
	repo.calls++
	return []*reference.Region{{ID: 1, Name: "North"}}, repo.err
}

func (repo *countingRepository) GetRegion(_ context.Context, id int64) (*reference.Region, error) {
	repo.calls++
	if id != 1 {
		return nil, repo.err
	}
	return &reference.Region{ID: 1, Name: "North"}, repo.err
}

func (repo *countingRepository) GetCities(_ context.Context, regionID *int64) ([]*reference.City, error) {
	repo.calls++
	if regionID != nil && *regionID != 1 {
		return []*reference.City{}, repo.err
	}
	return []*reference.City{{ID: 1, Name: "Harbor", RegionID: 1}}, repo.err
}

func (repo *countingRepository) GetCity(_ context.Context, _ int64) (*reference.City, error) {
	repo.calls++
	return nil, repo.err
}

func (repo *countingRepository) GetGenders(_ context.Context) ([]*reference.Gender, error) {
	repo.calls++
	return []*reference.Gender{{ID: 1, Name: "Male"}, {ID: 2, Name: "Female"}}, repo.err
}

func (repo *countingRepository) GetGender(_ context.Context, _ int64) (*reference.Gender, error) {
	repo.calls++
	return nil, repo.err
}

func (repo *countingRepository) GetStatuses(_ context.Context) ([]*reference.Status, error) {
	repo.calls++
	return []*reference.Status{}, repo.err
}

func (repo *countingRepository) GetStatus(_ context.Context, _ int64) (*reference.Status, error) {
	repo.calls++
	return nil, repo.err
}

func newCached(t *testing.T, underlying reference.Repository) *ReferenceRepository {
	repo := NewReferenceRepository(underlying, time.Minute)
	t.Cleanup(repo.Close)
	return repo
}

func TestListsAreCached(t *testing.T) {
	underlying := &countingRepository{}
	repo := newCached(t, underlying)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		genders, err := repo.GetGenders(ctx)
		require.NoError(t, err)
		assert.Len(t, genders, 2)
	}
	assert.Equal(t, 1, underlying.calls)
}

func TestListedRecordsServeSingleLookups(t *testing.T) {
	underlying := &countingRepository{}
	repo := newCached(t, underlying)
	ctx := context.Background()

	_, err := repo.GetGenders(ctx)
	require.NoError(t, err)
	gender, err := repo.GetGender(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, gender)
	assert.Equal(t, "Female", gender.Name)
	assert.Equal(t, 1, underlying.calls)
}

func TestMissingRecordsAreNotCached(t *testing.T) {
	underlying := &countingRepository{}
	repo := newCached(t, underlying)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		region, err := repo.GetRegion(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, region)
	}
	assert.Equal(t, 2, underlying.calls)
}

func TestCitiesAreCachedPerRegion(t *testing.T) {
	underlying := &countingRepository{}
	repo := newCached(t, underlying)
	ctx := context.Background()
	north, south := int64(1), int64(2)

	all, err := repo.GetCities(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	byNorth, err := repo.GetCities(ctx, &north)
	require.NoError(t, err)
	assert.Len(t, byNorth, 1)
	bySouth, err := repo.GetCities(ctx, &south)
	require.NoError(t, err)
	assert.Empty(t, bySouth)
	assert.Equal(t, 3, underlying.calls)

	_, err = repo.GetCities(ctx, &north)
	require.NoError(t, err)
	city, err := repo.GetCity(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, city)
	assert.Equal(t, 3, underlying.calls)
}

func TestErrorsAreNotCached(t *testing.T) {
	underlying := &countingRepository{err: errors.New("connection reset")}
	repo := newCached(t, underlying)

	_, err := repo.GetStatuses(context.Background())
	assert.Error(t, err)
	underlying.err = nil
	_, err = repo.GetStatuses(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, underlying.calls)
}
