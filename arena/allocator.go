package arena

import "fmt"

// DefaultPageSize is the number of slots per page of the default allocator.
const DefaultPageSize = 64

// Allocator is the growth policy of a Store.
type Allocator interface {
	// PageSize returns the number of slots per backing page. It is queried
	// once, when the store is created.
	PageSize() int
	// Grow is called before a new page is appended. allocated is the number
	// of slots the store already holds. A non-nil error refuses growth.
	Grow(allocated, pageSize int) error
}

type pagedAllocator struct {
	pageSize int
}

// DefaultAllocator returns an unbounded allocator with DefaultPageSize pages.
func DefaultAllocator() Allocator {
	return pagedAllocator{pageSize: DefaultPageSize}
}

// PagedAllocator returns an unbounded allocator with pages of pageSize slots.
// A non-positive pageSize selects DefaultPageSize.
func PagedAllocator(pageSize int) Allocator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return pagedAllocator{pageSize: pageSize}
}

func (a pagedAllocator) PageSize() int { return a.pageSize }

func (a pagedAllocator) Grow(allocated, pageSize int) error { return nil }

type limitAllocator struct {
	inner    Allocator
	maxSlots int
}

// Limit wraps an allocator and refuses growth beyond maxSlots slots.
//
// The limit counts whole pages, including the page holding the sentinel
// slot: growth is refused if the next page would take the store beyond
// maxSlots. A nil inner allocator selects DefaultAllocator.
func Limit(inner Allocator, maxSlots int) Allocator {
	if inner == nil {
		inner = DefaultAllocator()
	}
	return limitAllocator{inner: inner, maxSlots: maxSlots}
}

func (a limitAllocator) PageSize() int { return a.inner.PageSize() }

func (a limitAllocator) Grow(allocated, pageSize int) error {
	if allocated+pageSize > a.maxSlots {
		return fmt.Errorf("%w: limit of %d slots reached", ErrExhausted, a.maxSlots)
	}
	return a.inner.Grow(allocated, pageSize)
}
