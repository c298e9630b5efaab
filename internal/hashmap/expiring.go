package hashmap

import (
	"time"

	"github.com/skybi/rendezvous/internal/task"
)

type expiringEntry[T any] struct {
	raw      T
	inserted time.Time
}

// ExpiringMap implements the Map interface and wraps the standard NormalMap in order to implement value expiration.
// Expired values are never returned; they are removed from memory by the cleanup task.
type ExpiringMap[K comparable, V any] struct {
	normal      *NormalMap[K, *expiringEntry[V]]
	lifetime    time.Duration
	now         func() time.Time
	cleanupTask *task.RepeatingTask
}

var _ Map[int, any] = (*ExpiringMap[int, any])(nil)

// NewExpiring creates a new expiring map whose values exist for a specific lifetime.
// Expired values will not be removed from memory before ScheduleCleanupTask is called.
func NewExpiring[K comparable, V any](lifetime time.Duration) *ExpiringMap[K, V] {
	return &ExpiringMap[K, V]{
		normal:   NewNormal[K, *expiringEntry[V]](),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// ScheduleCleanupTask schedules the task that cleans up expired values in a specific interval.
// StopCleanupTask has to be called as soon as the map is no longer needed.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(obj.removeExpired, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the cleanup task if one is scheduled
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	if obj.cleanupTask == nil {
		return
	}
	obj.cleanupTask.Stop(false)
	obj.cleanupTask = nil
}

// Size returns the amount of stored key-value pairs, including expired ones that were not cleaned up yet
func (obj *ExpiringMap[K, V]) Size() int {
	return obj.normal.Size()
}

// Lookup returns the value assigned to the given key and a boolean indicating if an unexpired value is assigned
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := obj.normal.Lookup(key)
	if !ok || obj.expired(val) {
		var zero V
		return zero, false
	}
	return val.raw, true
}

// Set sets a key-value pair and restarts its lifetime
func (obj *ExpiringMap[K, V]) Set(key K, value V) {
	obj.normal.Set(key, &expiringEntry[V]{
		raw:      value,
		inserted: obj.now(),
	})
}

// Unset deletes the value assigned to given key
func (obj *ExpiringMap[K, V]) Unset(key K) {
	obj.normal.Unset(key)
}

// Drain removes all key-value pairs and returns the unexpired ones
func (obj *ExpiringMap[K, V]) Drain() map[K]V {
	drained := make(map[K]V)
	for key, val := range obj.normal.Drain() {
		if !obj.expired(val) {
			drained[key] = val.raw
		}
	}
	return drained
}

func (obj *ExpiringMap[K, V]) expired(entry *expiringEntry[V]) bool {
	return obj.now().Sub(entry.inserted) > obj.lifetime
}

func (obj *ExpiringMap[K, V]) removeExpired() {
	obj.normal.update(func(raw map[K]*expiringEntry[V]) {
		for key, val := range raw {
			if obj.expired(val) {
				delete(raw, key)
			}
		}
	})
}
