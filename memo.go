package spline

import "sync"

// memo is a lazily computed value that can be invalidated.
//
// The compute function runs under the memo's lock, so at most one
// computation per memo is in flight and readers never observe a partial
// result. memo must not be copied after first use.
type memo[T any] struct {
	mu    sync.Mutex
	valid bool
	value T
}

// get returns the cached value, computing it first if the memo has been
// invalidated. name identifies the cache in debug logs.
func (m *memo[T]) get(name string, compute func() T) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid {
		m.value = compute()
		m.valid = true
		Logger().Debug("spline: recomputed cache", "cache", name)
	}
	return m.value
}

// invalidate marks the value as stale. The old value is kept until the next
// get replaces it.
func (m *memo[T]) invalidate() {
	m.mu.Lock()
	m.valid = false
	m.mu.Unlock()
}

func (m *memo[T]) cached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.valid
}
