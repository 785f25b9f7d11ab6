/*
Package ordmap offers an ordered associative container.

Map

A Map stores key/value pairs sorted by key. Keys are unique under the map's
comparer. Lookups, insertions and erasures take O(log n) time; iteration
visits keys in ascending (or, walking backwards, descending) order. Range
queries are supported through LowerBound and UpperBound.

The map is implemented as an Andersson tree (AA tree), a simplified
red-black tree which keeps a single integer level per node instead of a
colour bit. Balance is restored with two local rotations, skew and split.
The height of a tree holding n keys never exceeds 2·log2(n+1).

Nodes are kept in a paged node store (package arena). Erased nodes are
recycled through a free list before the store grows, and the growth policy
is injectable through an arena.Allocator. Nodes never move in memory while
they are alive, and erasing a key never moves another key to a different
node. Consequently, an iterator stays valid until the very element it
refers to is erased (or the map is cleared). Iterators detect this
condition: a stale iterator reports itself as not valid and every mutating
operation through it returns ErrStaleIterator.

Keys are read-only through every iterator. Values may be changed in place,
either through an Iterator or through the pointer returned by Map.Ref.

A Map is not safe for concurrent use. Clients have to serialize access
themselves, e.g. with a mutex or a single-writer discipline.

	m := ordmap.New[int, string]()
	m.Insert(3, "three")
	m.Insert(1, "one")
	for it := m.First(); it.Valid(); it = it.Next() {
	    fmt.Println(it.Key(), it.Value())
	}

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.

*/
package ordmap

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// MapError is an error type for the ordmap module
type MapError string

func (e MapError) Error() string {
	return string(e)
}

// ErrInvalidConfig is flagged if a map configuration is unusable, e.g. if it
// lacks a comparer.
const ErrInvalidConfig = MapError("invalid map configuration")

// ErrInvalidIterator is flagged whenever an operation requires a valid
// iterator, but is handed an iterator which refers to no element at all.
const ErrInvalidIterator = MapError("iterator does not refer to an element")

// ErrStaleIterator is flagged whenever an iterator refers to an element which
// has been erased in the meantime.
const ErrStaleIterator = MapError("iterator refers to an erased element")

// ErrForeignIterator is flagged if an iterator is handed to a map it has not
// been created by.
const ErrForeignIterator = MapError("iterator belongs to a different map")

// ErrInvariant is flagged by Check if the tree structure is corrupted.
const ErrInvariant = MapError("tree invariant violated")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
