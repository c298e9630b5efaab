package hashmap

import "sync"

// NormalMap implements the Map interface using normal hash map behaviour.
// Basically it simply wraps the builtin map type with a RWMutex mechanism in order to provide thread safety.
type NormalMap[K comparable, V any] struct {
	mtx        sync.RWMutex
	underlying map[K]V
}

var _ Map[int, any] = (*NormalMap[int, any])(nil)

// NewNormal creates a new normal thread safe Map
func NewNormal[K comparable, V any]() *NormalMap[K, V] {
	return &NormalMap[K, V]{
		underlying: make(map[K]V),
	}
}

// Size returns the amount of stored key-value pairs
func (obj *NormalMap[K, V]) Size() int {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return len(obj.underlying)
}

// Lookup returns the value assigned to the given key and a boolean indicating if a value is assigned at all
func (obj *NormalMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	val, ok := obj.underlying[key]
	return val, ok
}

// Set sets a key-value pair
func (obj *NormalMap[K, V]) Set(key K, value V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying[key] = value
}

// Unset deletes the value assigned to given key
func (obj *NormalMap[K, V]) Unset(key K) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	delete(obj.underlying, key)
}

// Drain swaps the underlying map for an empty one and returns the old one
func (obj *NormalMap[K, V]) Drain() map[K]V {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	drained := obj.underlying
	obj.underlying = make(map[K]V)
	return drained
}

// Merge puts all given key-value pairs back into the map.
// If a key already has a value, resolve decides which value to keep.
func (obj *NormalMap[K, V]) Merge(values map[K]V, resolve func(current, incoming V) V) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	for key, incoming := range values {
		if current, ok := obj.underlying[key]; ok {
			obj.underlying[key] = resolve(current, incoming)
			continue
		}
		obj.underlying[key] = incoming
	}
}

// update runs action while holding the write lock
func (obj *NormalMap[K, V]) update(action func(underlying map[K]V)) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	action(obj.underlying)
}
