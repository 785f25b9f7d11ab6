/*
Package textfile loads UTF-8 text files as a stream of line-aligned fragments.

A Loader reads a file in fragments of a recommended size. Fragments never end
inside a line, so every fragment carries a run of complete lines together with
the number of its first line. Fragments are broadcast to any number of
subscribers, which may consume them concurrently, e.g. to feed several indices
from a single pass over the file.

	loader, err := textfile.Open("words.txt", 0)
	sub, err := loader.Subscribe(ctx, 8)
	go loader.Run()
	err = sub.Each(func(frag textfile.Fragment) error { ... })

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ordmap'
func tracer() tracing.Trace {
	return tracing.Select("ordmap")
}
