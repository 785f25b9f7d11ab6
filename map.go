package ordmap

import (
	"cmp"
	"fmt"

	"github.com/npillmayer/ordmap/arena"
)

// Map is an ordered key/value container.
//
// K is the key type, V the value type. A Map has to be created with New or
// NewWithConfig; the zero value is not usable.
type Map[K, V any] struct {
	cfg   Config[K]
	store *arena.Store[node[K, V]]
	root  arena.Index
}

type node[K, V any] struct {
	key    K
	value  V
	level  int32 // AA level, 1 for leaves
	left   arena.Index
	right  arena.Index
	parent arena.Index
}

// New creates an empty map ordered by the natural ordering of K.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	m, err := NewWithConfig[K, V](NaturalOrder[K]())
	assert(err == nil, "natural order configuration rejected")
	return m
}

// NewWithConfig creates an empty map with a validated configuration.
func NewWithConfig[K, V any](cfg Config[K]) (*Map[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	store, err := arena.New[node[K, V]](cfg.Allocator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Map[K, V]{cfg: cfg, store: store}, nil
}

// Config returns a copy of the effective map configuration.
func (m *Map[K, V]) Config() Config[K] {
	return m.cfg
}

// Allocator returns the growth policy of the map's node store.
func (m *Map[K, V]) Allocator() arena.Allocator {
	return m.cfg.Allocator
}

// IsEmpty reports whether the map holds no keys.
func (m *Map[K, V]) IsEmpty() bool {
	return m == nil || m.root == arena.Nil
}

// Len returns the number of keys in the map. O(1).
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.store.Len()
}

// Height returns the height of the tree, where 0 means empty.
func (m *Map[K, V]) Height() int {
	if m == nil {
		return 0
	}
	return m.height(m.root)
}

// Stats returns occupancy statistics of the map's node store.
func (m *Map[K, V]) Stats() arena.Stats {
	return m.store.Stats()
}

// Clear erases all keys. Nodes are released to the store's free list and
// will be reused by subsequent insertions. All iterators become stale.
func (m *Map[K, V]) Clear() {
	T().Debugf("ordmap: clearing map with %d keys", m.Len())
	m.store.Clear()
	m.root = arena.Nil
}

// Clone returns a deep copy of m with its own node store. The copy uses the
// same comparer and allocator. Values are copied by assignment.
func (m *Map[K, V]) Clone() (*Map[K, V], error) {
	c, err := NewWithConfig[K, V](m.cfg)
	if err != nil {
		return nil, err
	}
	if err := c.insertAll(m); err != nil {
		return nil, err
	}
	T().Debugf("ordmap: cloned map with %d keys", c.Len())
	return c, nil
}

// CopyFrom replaces the contents of m with a deep copy of other's contents.
// Keys are ordered by m's comparer. If copying fails, m remains unchanged.
// All iterators of m become stale.
func (m *Map[K, V]) CopyFrom(other *Map[K, V]) error {
	if m == other {
		return nil
	}
	c, err := NewWithConfig[K, V](m.cfg)
	if err != nil {
		return err
	}
	if err := c.insertAll(other); err != nil {
		return err
	}
	m.store, m.root = c.store, c.root
	T().Debugf("ordmap: copied %d keys into map", m.Len())
	return nil
}

// insertAll inserts every pair of other in ascending key order.
func (m *Map[K, V]) insertAll(other *Map[K, V]) error {
	if other.IsEmpty() {
		return nil
	}
	for i := other.first(); i != arena.Nil; i = other.successor(i) {
		n := other.node(i)
		if _, err := m.Insert(n.key, n.value); err != nil {
			return err
		}
	}
	return nil
}

// Insert inserts key with value and returns an iterator to the new element.
//
// If key is already present, its value is not overwritten; Insert then is a
// no-op returning an iterator to the existing element. If the node store
// cannot grow, Insert returns an error wrapping arena.ErrExhausted and the
// map is unchanged.
func (m *Map[K, V]) Insert(key K, value V) (Iterator[K, V], error) {
	at, _, err := m.insertKey(key, value)
	if err != nil {
		return Iterator[K, V]{}, err
	}
	return m.iterator(at), nil
}

// Set inserts key with value or, if key is already present, overwrites its
// value. It returns true if a new element has been created.
func (m *Map[K, V]) Set(key K, value V) (bool, error) {
	at, created, err := m.insertKey(key, value)
	if err != nil {
		return false, err
	}
	if !created {
		m.node(at).value = value
	}
	return created, nil
}

// Ref returns a pointer to the value stored for key. If key is absent, it
// is inserted with the zero value of V first. The pointer stays valid until
// key is erased or the map is cleared.
func (m *Map[K, V]) Ref(key K) (*V, error) {
	var zero V
	at, _, err := m.insertKey(key, zero)
	if err != nil {
		return nil, err
	}
	return &m.node(at).value, nil
}

func (m *Map[K, V]) insertKey(key K, value V) (arena.Index, bool, error) {
	root, at, created, err := m.insert(m.root, arena.Nil, key, value)
	if err != nil {
		return arena.Nil, false, fmt.Errorf("ordmap: insert failed: %w", err)
	}
	m.root = root
	m.node(root).parent = arena.Nil
	return at, created, nil
}

// Get returns the value stored for key and whether key is present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if i := m.find(key); i != arena.Nil {
		return m.node(i).value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	return m.find(key) != arena.Nil
}

// Find returns an iterator to the element with key, or an invalid iterator
// if there is no such element.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	return m.iterator(m.find(key))
}

// LowerBound returns an iterator to the first element with a key equal to
// or greater than key. It returns an invalid iterator, if there is no such
// element.
func (m *Map[K, V]) LowerBound(key K) Iterator[K, V] {
	return m.iterator(m.lowerBound(key))
}

// UpperBound returns an iterator to the first element with a key greater
// than key. It returns an invalid iterator, if there is no such element.
func (m *Map[K, V]) UpperBound(key K) Iterator[K, V] {
	return m.iterator(m.upperBound(key))
}

// First returns an iterator to the element with the smallest key, or an
// invalid iterator for an empty map.
func (m *Map[K, V]) First() Iterator[K, V] {
	return m.iterator(m.first())
}

// Last returns an iterator to the element with the largest key, or an
// invalid iterator for an empty map. It is the starting point for reverse
// traversal.
func (m *Map[K, V]) Last() Iterator[K, V] {
	return m.iterator(m.last())
}

// Erase removes key from the map and reports whether it has been present.
// Erasing an absent key is a no-op.
func (m *Map[K, V]) Erase(key K) bool {
	root, found := m.erase(m.root, key)
	if !found {
		return false
	}
	m.root = root
	if root != arena.Nil {
		m.node(root).parent = arena.Nil
	}
	return true
}

// EraseAt removes the element it refers to and returns an iterator to its
// in-order successor (invalid, if the erased element has been the last one).
//
// it has to be a valid iterator created by m. Invalid, stale and foreign
// iterators are rejected with ErrInvalidIterator, ErrStaleIterator and
// ErrForeignIterator respectively.
func (m *Map[K, V]) EraseAt(it Iterator[K, V]) (Iterator[K, V], error) {
	if it.m == nil {
		return Iterator[K, V]{}, ErrInvalidIterator
	}
	if it.m != m {
		return Iterator[K, V]{}, ErrForeignIterator
	}
	if err := it.Err(); err != nil {
		return Iterator[K, V]{}, err
	}
	i := it.ref.Index()
	succ := m.iterator(m.successor(i))
	m.root = m.eraseNode(i)
	if m.root != arena.Nil {
		m.node(m.root).parent = arena.Nil
	}
	return succ, nil
}

func (m *Map[K, V]) node(i arena.Index) *node[K, V] {
	return m.store.At(i)
}

func (m *Map[K, V]) iterator(i arena.Index) Iterator[K, V] {
	if i == arena.Nil {
		return Iterator[K, V]{}
	}
	return Iterator[K, V]{ConstIterator[K, V]{
		m:     m,
		store: m.store,
		ref:   m.store.Ref(i),
	}}
}
