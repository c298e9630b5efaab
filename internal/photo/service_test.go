package photo_test

import (
	"context"
	"testing"
	"time"

	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *photo.Service {
	driver := memory.New()
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	return &photo.Service{
		Store: driver.Photos(),
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	}
}

func TestFirstPhotoBecomesMain(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	first := &photo.Photo{URL: "https://media.example.com/1.jpg"}
	second := &photo.Photo{URL: "https://media.example.com/2.jpg"}
	require.NoError(t, service.Add(ctx, 1, 1, first))
	require.NoError(t, service.Add(ctx, 1, 1, second))

	assert.True(t, first.IsMain)
	assert.False(t, second.IsMain)
	main, err := service.GetMain(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, main)
	assert.Equal(t, first.ID, main.ID)
}

func TestAddValidation(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	assert.ErrorIs(t, service.Add(ctx, 2, 1, &photo.Photo{URL: "https://media.example.com/1.jpg"}), photo.ErrUnauthorized)
	assert.ErrorIs(t, service.Add(ctx, 1, 1, &photo.Photo{}), photo.ErrMissingURL)
}

func TestSetMain(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	first := &photo.Photo{URL: "https://media.example.com/1.jpg"}
	second := &photo.Photo{URL: "https://media.example.com/2.jpg"}
	foreign := &photo.Photo{URL: "https://media.example.com/3.jpg"}
	require.NoError(t, service.Add(ctx, 1, 1, first))
	require.NoError(t, service.Add(ctx, 1, 1, second))
	require.NoError(t, service.Add(ctx, 2, 2, foreign))

	assert.ErrorIs(t, service.SetMain(ctx, 1, 1, first.ID), photo.ErrAlreadyMain)
	assert.ErrorIs(t, service.SetMain(ctx, 1, 1, foreign.ID), photo.ErrUnauthorized)
	assert.ErrorIs(t, service.SetMain(ctx, 1, 1, 999), photo.ErrNotFound)

	require.NoError(t, service.SetMain(ctx, 1, 1, second.ID))
	photos, err := query.Evaluate(service.Store.Query(), photo.NewForUserSpecification(1)).List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.False(t, photos[0].IsMain)
	assert.True(t, photos[1].IsMain)
}

func TestDelete(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	main := &photo.Photo{URL: "https://media.example.com/1.jpg"}
	other := &photo.Photo{URL: "https://media.example.com/2.jpg"}
	require.NoError(t, service.Add(ctx, 1, 1, main))
	require.NoError(t, service.Add(ctx, 1, 1, other))

	assert.ErrorIs(t, service.Delete(ctx, 1, 1, main.ID), photo.ErrDeleteMain)
	require.NoError(t, service.Delete(ctx, 1, 1, other.ID))
	_, err := service.Get(ctx, other.ID)
	assert.ErrorIs(t, err, photo.ErrNotFound)
}
