package ordmap

import "github.com/npillmayer/ordmap/arena"

// ConstIterator is a read-only position in a map.
//
// The zero value is the invalid iterator. Walking past either end of the map
// yields an invalid iterator. An iterator becomes stale once the element it
// refers to is erased or the map is cleared; a stale iterator is not Valid.
type ConstIterator[K, V any] struct {
	m     *Map[K, V]
	store *arena.Store[node[K, V]]
	ref   arena.Ref
}

// Valid reports whether the iterator refers to a live element.
func (it ConstIterator[K, V]) Valid() bool {
	return it.Err() == nil
}

// Err returns nil for a valid iterator, ErrInvalidIterator for an iterator
// which refers to no element and ErrStaleIterator for an iterator whose
// element has been erased.
func (it ConstIterator[K, V]) Err() error {
	if it.m == nil || it.ref.IsNil() {
		return ErrInvalidIterator
	}
	if it.m.store != it.store || !it.store.Live(it.ref) {
		return ErrStaleIterator
	}
	return nil
}

// Key returns the key of the element. For an iterator which is not valid,
// Key returns the zero value of K.
func (it ConstIterator[K, V]) Key() K {
	if !it.Valid() {
		var zero K
		return zero
	}
	return it.store.At(it.ref.Index()).key
}

// Value returns the value of the element. For an iterator which is not
// valid, Value returns the zero value of V.
func (it ConstIterator[K, V]) Value() V {
	if !it.Valid() {
		var zero V
		return zero
	}
	return it.store.At(it.ref.Index()).value
}

// Next returns an iterator to the in-order successor.
func (it ConstIterator[K, V]) Next() ConstIterator[K, V] {
	if !it.Valid() {
		return ConstIterator[K, V]{}
	}
	return it.m.iterator(it.m.successor(it.ref.Index())).ConstIterator
}

// Prev returns an iterator to the in-order predecessor.
func (it ConstIterator[K, V]) Prev() ConstIterator[K, V] {
	if !it.Valid() {
		return ConstIterator[K, V]{}
	}
	return it.m.iterator(it.m.predecessor(it.ref.Index())).ConstIterator
}

// Equal reports whether it and other refer to the same element of the same
// map. All invalid iterators are equal to each other.
func (it ConstIterator[K, V]) Equal(other ConstIterator[K, V]) bool {
	if it.ref.IsNil() && other.ref.IsNil() {
		return true
	}
	return it.m == other.m && it.store == other.store && it.ref == other.ref
}

// Iterator is a position in a map which additionally allows to change the
// value of the element in place. Keys cannot be changed through an
// iterator, as this would break the ordering of the map.
type Iterator[K, V any] struct {
	ConstIterator[K, V]
}

// Next returns an iterator to the in-order successor.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	return Iterator[K, V]{it.ConstIterator.Next()}
}

// Prev returns an iterator to the in-order predecessor.
func (it Iterator[K, V]) Prev() Iterator[K, V] {
	return Iterator[K, V]{it.ConstIterator.Prev()}
}

// Equal reports whether it and other refer to the same element of the same
// map.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.ConstIterator.Equal(other.ConstIterator)
}

// Const returns a read-only view of the iterator.
func (it Iterator[K, V]) Const() ConstIterator[K, V] {
	return it.ConstIterator
}

// SetValue replaces the value of the element.
func (it Iterator[K, V]) SetValue(value V) error {
	if err := it.Err(); err != nil {
		return err
	}
	it.store.At(it.ref.Index()).value = value
	return nil
}

// ValueRef returns a pointer to the value of the element, or nil if the
// iterator is not valid. The pointer stays valid until the element is
// erased.
func (it Iterator[K, V]) ValueRef() *V {
	if !it.Valid() {
		return nil
	}
	return &it.store.At(it.ref.Index()).value
}
