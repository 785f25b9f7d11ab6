package arena

import "errors"

var (
	// ErrExhausted signals that the allocator refused to grow the store.
	ErrExhausted = errors.New("arena: store exhausted")
	// ErrInvalidAllocator signals an allocator with an unusable page size.
	ErrInvalidAllocator = errors.New("arena: invalid allocator")
)
