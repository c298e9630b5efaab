package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore records the batches of last activity updates it receives
type recordingStore struct {
	batches []map[int64]time.Time
	err     error
}

var _ user.Store = (*recordingStore)(nil)

func (store *recordingStore) Query() query.Queryable[*user.User] {
	return nil
}

func (store *recordingStore) Create(_ context.Context, _ *user.User) error {
	return nil
}

func (store *recordingStore) Update(_ context.Context, _ int64, _ *user.Update) error {
	return nil
}

func (store *recordingStore) UpdateLastActive(_ context.Context, seen map[int64]time.Time) error {
	if store.err != nil {
		return store.err
	}
	store.batches = append(store.batches, seen)
	return nil
}

func newTestTracker(store user.Store, clock *time.Time) *Tracker {
	tracker := NewTracker(store)
	tracker.now = func() time.Time { return *clock }
	return tracker
}

func TestFlushSendsLatestActivityOnce(t *testing.T) {
	store := &recordingStore{}
	clock := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	tracker := newTestTracker(store, &clock)

	tracker.Touch(1)
	tracker.Touch(2)
	clock = clock.Add(time.Minute)
	tracker.Touch(1)
	assert.Equal(t, 2, tracker.Pending())

	n, err := tracker.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, store.batches, 1)
	assert.Equal(t, map[int64]time.Time{1: clock, 2: clock.Add(-time.Minute)}, store.batches[0])
	assert.Equal(t, 0, tracker.Pending())

	n, err = tracker.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, store.batches, 1)
}

func TestFailedFlushKeepsActivity(t *testing.T) {
	store := &recordingStore{err: errors.New("database unavailable")}
	clock := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	tracker := newTestTracker(store, &clock)

	tracker.Touch(1)
	_, err := tracker.Flush(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, tracker.Pending())

	store.err = nil
	n, err := tracker.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
