package ordmap

import (
	"cmp"
	"fmt"

	"github.com/npillmayer/ordmap/arena"
)

// CompareFunc returns a negative number if a sorts before b, a positive
// number if a sorts after b, and 0 if both are considered the same key.
// It has to define a strict weak ordering.
type CompareFunc[K any] func(a, b K) int

// Config configures a Map.
type Config[K any] struct {
	// Compare establishes the order of keys. It is required.
	Compare CompareFunc[K]
	// Allocator is the growth policy of the map's node store. If nil,
	// arena.DefaultAllocator is used.
	Allocator arena.Allocator
}

// NaturalOrder returns a configuration using the natural ordering of K
// and the default allocator.
func NaturalOrder[K cmp.Ordered]() Config[K] {
	return Config[K]{Compare: cmp.Compare[K]}
}

// CompareFromLess adapts a strict less-than function to a CompareFunc.
// Keys a, b with neither less(a,b) nor less(b,a) are considered equal.
func CompareFromLess[K any](less func(a, b K) bool) CompareFunc[K] {
	return func(a, b K) int {
		if less(a, b) {
			return -1
		}
		if less(b, a) {
			return 1
		}
		return 0
	}
}

func (cfg Config[K]) normalized() Config[K] {
	if cfg.Allocator == nil {
		cfg.Allocator = arena.DefaultAllocator()
	}
	return cfg
}

func (cfg Config[K]) validate() error {
	cfg = cfg.normalized()
	if cfg.Compare == nil {
		return fmt.Errorf("%w: comparer is required", ErrInvalidConfig)
	}
	if cfg.Allocator.PageSize() <= 0 {
		return fmt.Errorf("%w: allocator page size must be positive", ErrInvalidConfig)
	}
	return nil
}
