package arena

import (
	"errors"
	"fmt"
	"math"
)

// Index addresses a slot of a Store. Nil is the reserved "no node" index.
type Index uint32

// Nil is the sentinel index. It never refers to a live slot.
const Nil Index = 0

// Ref is a stamped slot reference. A Ref stays live until its slot is
// released; after that it never matches the slot again, even if the slot is
// reused.
type Ref struct {
	index Index
	stamp uint64
}

// Index returns the slot index of r.
func (r Ref) Index() Index { return r.index }

// IsNil reports whether r refers to no slot at all.
func (r Ref) IsNil() bool { return r.index == Nil }

type slot[T any] struct {
	item  T
	stamp uint64 // 0 while the slot is free
	next  Index  // free-list link, meaningful while the slot is free
}

// Store is a paged slot store with a LIFO free list.
type Store[T any] struct {
	alloc    Allocator
	pageSize int
	pages    [][]slot[T]
	next     Index  // first index never handed out
	free     Index  // head of the free list
	live     int    // number of acquired slots
	nfree    int    // number of slots on the free list
	stamp    uint64 // last stamp handed out
}

// Stats is a snapshot of a store's occupancy.
type Stats struct {
	Live     int // slots currently acquired
	Free     int // released slots waiting for reuse
	Slots    int // high-water mark of slots ever handed out
	Pages    int // backing pages
	PageSize int // slots per page
}

// New creates an empty store. A nil allocator selects DefaultAllocator.
func New[T any](alloc Allocator) (*Store[T], error) {
	if alloc == nil {
		alloc = DefaultAllocator()
	}
	ps := alloc.PageSize()
	if ps <= 0 {
		return nil, fmt.Errorf("%w: page size %d", ErrInvalidAllocator, ps)
	}
	return &Store[T]{
		alloc:    alloc,
		pageSize: ps,
		next:     1, // index 0 is the sentinel
	}, nil
}

// Allocator returns the growth policy of the store.
func (s *Store[T]) Allocator() Allocator {
	return s.alloc
}

// Acquire stores item in a slot and returns the slot's index.
//
// Released slots are reused, most recently released first. If the free list
// is empty the store hands out a fresh slot, appending a page if necessary.
// If the allocator refuses to grow, Acquire returns ErrExhausted and no slot
// is handed out.
func (s *Store[T]) Acquire(item T) (Index, error) {
	var i Index
	if s.free != Nil {
		i = s.free
		sl := s.slot(i)
		s.free = sl.next
		sl.next = Nil
		s.nfree--
	} else {
		if s.next == math.MaxUint32 {
			return Nil, fmt.Errorf("%w: index space used up", ErrExhausted)
		}
		// the sentinel occupies slot 0, so with single-slot pages the
		// first acquire needs two pages
		for int(s.next) >= len(s.pages)*s.pageSize {
			if err := s.grow(); err != nil {
				return Nil, err
			}
		}
		i = s.next
		s.next++
	}
	sl := s.slot(i)
	s.stamp++
	sl.stamp = s.stamp
	sl.item = item
	s.live++
	return i, nil
}

func (s *Store[T]) grow() error {
	allocated := len(s.pages) * s.pageSize
	if err := s.alloc.Grow(allocated, s.pageSize); err != nil {
		tracer().Debugf("arena: growth refused at %d slots: %v", allocated, err)
		if !errors.Is(err, ErrExhausted) {
			return fmt.Errorf("%w: %v", ErrExhausted, err)
		}
		return err
	}
	s.pages = append(s.pages, make([]slot[T], s.pageSize))
	tracer().Debugf("arena: store grown to %d pages of %d slots", len(s.pages), s.pageSize)
	return nil
}

// Release zeroes the item of slot i and pushes the slot onto the free list.
// Releasing Nil or a slot which is not live is a programming error and panics.
func (s *Store[T]) Release(i Index) {
	assert(i != Nil, "arena: release of nil index")
	sl := s.slot(i)
	assert(sl.stamp != 0, "arena: release of free slot")
	var zero T
	sl.item = zero
	sl.stamp = 0
	sl.next = s.free
	s.free = i
	s.live--
	s.nfree++
}

// At returns a pointer to the item of live slot i. The pointer stays valid
// until the slot is released.
func (s *Store[T]) At(i Index) *T {
	assert(i != Nil, "arena: access to nil index")
	sl := s.slot(i)
	assert(sl.stamp != 0, "arena: access to free slot")
	return &sl.item
}

// Ref returns a stamped reference for live slot i. Ref(Nil) is the nil Ref.
func (s *Store[T]) Ref(i Index) Ref {
	if i == Nil {
		return Ref{}
	}
	sl := s.slot(i)
	assert(sl.stamp != 0, "arena: reference to free slot")
	return Ref{index: i, stamp: sl.stamp}
}

// Live reports whether r still refers to the slot it was taken from.
func (s *Store[T]) Live(r Ref) bool {
	if r.index == Nil || r.index >= s.next {
		return false
	}
	return s.slot(r.index).stamp == r.stamp
}

// Clear releases every live slot. Pages are kept for reuse. References taken
// before Clear are no longer live afterwards.
func (s *Store[T]) Clear() {
	// release in descending order, so low indices are reused first
	for i := s.next - 1; i > Nil; i-- {
		if s.slot(i).stamp != 0 {
			s.Release(i)
		}
	}
	assert(s.live == 0, "arena: live slots after clear")
}

// Each calls fn for every live slot in index order (not in any client
// order). Iteration stops early if fn returns false.
func (s *Store[T]) Each(fn func(i Index, item *T) bool) {
	for i := Index(1); i < s.next; i++ {
		sl := s.slot(i)
		if sl.stamp == 0 {
			continue
		}
		if !fn(i, &sl.item) {
			return
		}
	}
}

// Len returns the number of live slots.
func (s *Store[T]) Len() int {
	return s.live
}

// Slots returns the high-water mark of slots handed out so far.
func (s *Store[T]) Slots() int {
	return int(s.next) - 1
}

// Stats returns a snapshot of the store's occupancy.
func (s *Store[T]) Stats() Stats {
	return Stats{
		Live:     s.live,
		Free:     s.nfree,
		Slots:    s.Slots(),
		Pages:    len(s.pages),
		PageSize: s.pageSize,
	}
}

func (s *Store[T]) slot(i Index) *slot[T] {
	return &s.pages[int(i)/s.pageSize][int(i)%s.pageSize]
}
