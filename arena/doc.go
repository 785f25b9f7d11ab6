/*
Package arena provides a paged node store with free-list recycling.

A Store hands out slots addressed by Index. Slots live in fixed-size pages
which are never relocated, so a pointer returned by At stays valid until the
slot is released. Index 0 is reserved as the "no node" sentinel (Nil) and is
never handed out.

Released slots are pushed onto a LIFO free list, linked through an index
embedded in the slot, and are reused before the store grows. Every acquire
stamps the slot with a store-unique number. A Ref pairs an Index with that
stamp, which lets clients detect use of a slot after it has been released.

Growth is governed by an Allocator. An allocator decides the page size and may
refuse to grow the store, which Acquire reports as ErrExhausted.

A Store is not safe for concurrent use.

_________________________________________________________________________

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package arena

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ordmap'
func tracer() tracing.Trace {
	return tracing.Select("ordmap")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
