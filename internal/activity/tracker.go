package activity

import (
	"context"
	"time"

	"github.com/skybi/rendezvous/internal/hashmap"
	"github.com/skybi/rendezvous/internal/user"
)

// Tracker keeps track of the last activity of users and updates it in batches in order to reduce database traffic
type Tracker struct {
	store user.Store
	now   func() time.Time

	lastSeen *hashmap.NormalMap[int64, time.Time]
}

// NewTracker creates a new user activity tracker
func NewTracker(store user.Store) *Tracker {
	return &Tracker{
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
		lastSeen: hashmap.NewNormal[int64, time.Time](),
	}
}

// Touch records that the given user was active just now
func (tracker *Tracker) Touch(userID int64) {
	tracker.lastSeen.Set(userID, tracker.now())
}

// Pending returns the amount of users whose activity was not flushed yet
func (tracker *Tracker) Pending() int {
	return tracker.lastSeen.Size()
}

// Flush sends all recorded activity to the database and resets the tracker.
// Activity recorded while flushing is kept for the next flush; a failed flush keeps everything.
func (tracker *Tracker) Flush(ctx context.Context) (int, error) {
	batch := tracker.lastSeen.Drain()
	if len(batch) == 0 {
		return 0, nil
	}

	if err := tracker.store.UpdateLastActive(ctx, batch); err != nil {
		tracker.lastSeen.Merge(batch, func(current, failed time.Time) time.Time {
			if current.Before(failed) {
				return failed
			}
			return current
		})
		return 0, err
	}
	return len(batch), nil
}
