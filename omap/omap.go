// Package omap provides a small insertion-ordered map.
//
// Both schema properties and template sections are order-sensitive: the order
// keys were declared in is the order they are walked and rendered in.
package omap

import "iter"

// Map is a map that remembers the order keys were first set in.
// The zero value is ready to use.
type Map[K comparable, V any] struct {
	keys  []K
	items map[K]V
}

// New returns an empty map with room for n entries.
func New[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{keys: make([]K, 0, n), items: make(map[K]V, n)}
}

// Set stores v under k. Overwriting an existing key keeps its position.
func (m *Map[K, V]) Set(k K, v V) {
	if m.items == nil {
		m.items = make(map[K]V)
	}
	if _, ok := m.items[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.items[k] = v
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	if m == nil || m.items == nil {
		var zero V
		return zero, false
	}
	v, ok := m.items[k]
	return v, ok
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.Get(k)
	return ok
}

// Len returns the number of entries. A nil map has length zero.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return append([]K(nil), m.keys...)
}

// All iterates over the entries in insertion order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.items[k]) {
				return
			}
		}
	}
}
