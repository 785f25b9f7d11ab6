/*
Package wordindex builds a sorted word index on top of an ordmap.Map.

An Index maps each word of a text to the number of its occurrences and the
lines it occurs on. Words are found at the line-break opportunities of
UAX#14, optionally folded to lower case, and ordered either by byte order or
by the collation rules of a natural language. Text may be added line by line,
from a reader, from an HTML fragment or from a file, which is loaded through
package textfile.

A Printer writes an index as a report to a console.

An Index is not safe for concurrent use.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package wordindex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ordmap'
func tracer() tracing.Trace {
	return tracing.Select("ordmap")
}
