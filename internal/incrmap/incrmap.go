// Package incrmap implements the monotonic-key map used as the shape pool
// during sketch splitting: keys are assigned in strictly increasing order
// and, once removed, are never reissued.
package incrmap

// Key is an IncrementingMap key. Keys are assigned starting at 1 and are
// strictly increasing; a removed key is retired forever.
type Key int

// Map is an append-only-keyed mapping from Key to T. Iteration order is
// undefined but stable within a single Iter call.
type Map[T any] struct {
	entries map[Key]T
	highest Key
}

// New returns an empty Map.
func New[T any]() *Map[T] {
	return &Map[T]{entries: map[Key]T{}}
}

// Add inserts t under a freshly allocated key and returns that key.
func (m *Map[T]) Add(t T) Key {
	m.highest++
	m.entries[m.highest] = t
	return m.highest
}

// Set overwrites the value stored at k without allocating a new key. Used
// for the one case in the split scheduler where a shape's type changes
// but its identity must survive (a circle substituted by a degenerate arc).
func (m *Map[T]) Set(k Key, t T) {
	m.entries[k] = t
}

// Remove drops the entry at k, if any, and returns k.
func (m *Map[T]) Remove(k Key) Key {
	delete(m.entries, k)
	return k
}

// Get looks up the value stored at k.
func (m *Map[T]) Get(k Key) (T, bool) {
	v, ok := m.entries[k]
	return v, ok
}

// Len returns the number of live entries.
func (m *Map[T]) Len() int {
	return len(m.entries)
}

// Iter calls fn once per live entry. Iteration order is undefined.
func (m *Map[T]) Iter(fn func(Key, T)) {
	for k, v := range m.entries {
		fn(k, v)
	}
}

// Keys returns the live keys in no particular order.
func (m *Map[T]) Keys() []Key {
	keys := make([]Key, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}
