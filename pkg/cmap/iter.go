// Package cmap provides a concurrent-safe sharded map.
package cmap

// Range iterates over all key-value pairs.
//
// The callback returns false to stop iteration.
// Note: This acquires locks shard by shard, so the view may not be consistent.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, shard := range m.shards {
		shard.mu.RLock()
		for k, v := range shard.items {
			if !fn(k, v) {
				shard.mu.RUnlock()
				return
			}
		}
		shard.mu.RUnlock()
	}
}

// Keys returns all keys.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Count())
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Pop removes a key and returns its value.
// Returns the value and true if the key existed, zero value and false otherwise.
func (m *Map[K, V]) Pop(key K) (V, bool) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	val, ok := shard.items[key]
	if ok {
		delete(shard.items, key)
	}
	return val, ok
}

// SetIfAbsent sets the value only if the key does not exist.
// Returns true if the value was set, false if the key already exists.
func (m *Map[K, V]) SetIfAbsent(key K, value V) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	if _, ok := shard.items[key]; ok {
		return false
	}

	shard.items[key] = value
	return true
}

// DeleteIf removes a key only if the current value satisfies the predicate.
// Returns true if the key was removed.
func (m *Map[K, V]) DeleteIf(key K, pred func(value V) bool) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	val, ok := shard.items[key]
	if !ok || !pred(val) {
		return false
	}
	delete(shard.items, key)
	return true
}

// Versioned is an interface for values that support versioning.
type Versioned interface {
	GetVersion() uint64
	SetVersion(v uint64)
}

// CompareAndSwap atomically compares and swaps a value if the version matches.
// Returns true if the swap was successful, false if the version didn't match.
// This is useful for optimistic locking patterns.
func CompareAndSwap[K comparable, V Versioned](m *Map[K, V], key K, expectedVersion uint64, newValue V) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	current, exists := shard.items[key]
	if !exists {
		return false
	}

	if current.GetVersion() != expectedVersion {
		return false
	}

	newValue.SetVersion(expectedVersion + 1)
	shard.items[key] = newValue
	return true
}

// CompareAndDelete atomically deletes a value if the version matches.
// Returns true if the delete was successful.
func CompareAndDelete[K comparable, V Versioned](m *Map[K, V], key K, expectedVersion uint64) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	current, exists := shard.items[key]
	if !exists {
		return false
	}

	if current.GetVersion() != expectedVersion {
		return false
	}

	delete(shard.items, key)
	return true
}
