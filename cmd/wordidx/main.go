/*
Command wordidx prints a sorted word index of text or HTML files.

	wordidx [flags] file...

For every word the index lists the number of occurrences and the lines it
occurs on. Words are ordered by byte order or, with --lang, by the collation
rules of a language. The report may be limited to a range of words and be
printed in reverse order. With --dot, the internal tree of the index is
written in Graphviz DOT format.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package main

func main() {
	Execute()
}
