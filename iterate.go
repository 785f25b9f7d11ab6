package ordmap

import (
	"iter"

	"github.com/npillmayer/ordmap/arena"
)

// ForEach walks the map's elements in ascending key order.
//
// Iteration stops early if fn returns false. fn may erase the element it is
// called for. If fn erases the upcoming element or clears the map, the walk
// ends; other modifications during the walk are not supported.
func (m *Map[K, V]) ForEach(fn func(key K, value V) bool) {
	if m.IsEmpty() || fn == nil {
		return
	}
	m.walk(m.first(), m.successor, fn)
}

// All returns an iterator over key/value pairs in ascending key order.
// The same modification rules as for ForEach apply.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.ForEach(yield)
	}
}

// Backward returns an iterator over key/value pairs in descending key order.
// The same modification rules as for ForEach apply.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.IsEmpty() {
			return
		}
		m.walk(m.last(), m.predecessor, yield)
	}
}

// Keys returns an iterator over the keys in ascending order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.ForEach(func(k K, _ V) bool {
			return yield(k)
		})
	}
}

// Values returns an iterator over the values in ascending key order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.ForEach(func(_ K, v V) bool {
			return yield(v)
		})
	}
}

// Range returns an iterator over the pairs with from <= key < to, in
// ascending key order. The same modification rules as for ForEach apply.
func (m *Map[K, V]) Range(from, to K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.IsEmpty() {
			return
		}
		m.walk(m.lowerBound(from), m.successor, func(k K, v V) bool {
			if m.cfg.Compare(k, to) >= 0 {
				return false
			}
			return yield(k, v)
		})
	}
}

// walk visits nodes starting at i, stepping with step. The next node is
// determined before fn is called, so fn may erase the current element.
func (m *Map[K, V]) walk(i arena.Index, step func(arena.Index) arena.Index, fn func(K, V) bool) {
	store := m.store
	for i != arena.Nil {
		n := m.node(i)
		next := step(i)
		nextRef := store.Ref(next)
		if !fn(n.key, n.value) {
			return
		}
		if next == arena.Nil || m.store != store || !store.Live(nextRef) {
			return
		}
		i = next
	}
}
