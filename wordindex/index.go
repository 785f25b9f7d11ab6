package wordindex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/ordmap"
	"github.com/npillmayer/ordmap/arena"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrInvalidOptions is returned by New for unusable options.
var ErrInvalidOptions = errors.New("wordindex: invalid options")

// Entry is the index information for a single word.
type Entry struct {
	Count int   // number of occurrences
	Lines []int // lines the word occurs on, ascending, without duplicates
}

// Options configure an Index.
type Options struct {
	// Language selects collation rules (BCP 47 tag, e.g. "de" or "sv").
	// If empty, words are ordered by byte order.
	Language string
	// FoldCase folds words to lower case before they are indexed.
	FoldCase bool
	// MinLength is the minimum number of characters of an indexed word.
	MinLength int
	// Allocator is the growth policy of the index's node store. If nil,
	// the default allocator is used.
	Allocator arena.Allocator
}

// Index is a sorted word index.
type Index struct {
	words *ordmap.Map[string, Entry]
	opts  Options
	fold  cases.Caser
	lines int // last line number seen by AddReader
}

// New creates an empty index.
func New(opts Options) (*Index, error) {
	if opts.MinLength < 0 {
		return nil, fmt.Errorf("%w: negative minimum length", ErrInvalidOptions)
	}
	compare := strings.Compare
	if opts.Language != "" {
		tag, err := language.Parse(opts.Language)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
		coll := collate.New(tag)
		compare = coll.CompareString
		tracer().Debugf("wordindex: collating words for language %s", tag)
	}
	words, err := ordmap.NewWithConfig[string, Entry](ordmap.Config[string]{
		Compare:   compare,
		Allocator: opts.Allocator,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return &Index{
		words: words,
		opts:  opts,
		fold:  cases.Fold(),
	}, nil
}

// Options returns the options the index has been created with.
func (ix *Index) Options() Options {
	return ix.opts
}

// Map returns the underlying ordered map. Clients must not modify it while
// the index is in use.
func (ix *Index) Map() *ordmap.Map[string, Entry] {
	return ix.words
}

// Len returns the number of distinct words.
func (ix *Index) Len() int {
	return ix.words.Len()
}

// Clear removes all words.
func (ix *Index) Clear() {
	ix.words.Clear()
	ix.lines = 0
}

// AddWord records an occurrence of word on line. The word is normalized
// first. It returns false if the word has been discarded because it is too
// short.
func (ix *Index) AddWord(word string, line int) (bool, error) {
	word = ix.normalize(word)
	if word == "" || utf8.RuneCountInString(word) < ix.opts.MinLength {
		return false, nil
	}
	e, err := ix.words.Ref(word)
	if err != nil {
		return false, fmt.Errorf("wordindex: cannot add %q: %w", word, err)
	}
	e.Count++
	if n := len(e.Lines); n == 0 || e.Lines[n-1] != line {
		e.Lines = append(e.Lines, line)
	}
	return true, nil
}

// AddLine indexes the words of a single line of text.
func (ix *Index) AddLine(text string, line int) error {
	for _, w := range splitWords(text) {
		if _, err := ix.AddWord(w, line); err != nil {
			return err
		}
	}
	return nil
}

// AddReader indexes a text line by line. Line numbers continue from the
// previous call of AddReader, starting at 1.
func (ix *Index) AddReader(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		ix.lines++
		if err := ix.AddLine(sc.Text(), ix.lines); err != nil {
			return err
		}
	}
	return sc.Err()
}

// Lookup returns the entry for word.
func (ix *Index) Lookup(word string) (Entry, bool) {
	return ix.words.Get(ix.normalize(word))
}

// Remove removes word from the index and reports whether it has been
// present.
func (ix *Index) Remove(word string) bool {
	return ix.words.Erase(ix.normalize(word))
}

// Words returns an iterator over all words in index order.
func (ix *Index) Words() iter.Seq2[string, Entry] {
	return ix.words.All()
}

// Backward returns an iterator over all words in reverse index order.
func (ix *Index) Backward() iter.Seq2[string, Entry] {
	return ix.words.Backward()
}

// Range returns an iterator over the words w with from <= w < to. An empty
// to means no upper limit.
func (ix *Index) Range(from, to string) iter.Seq2[string, Entry] {
	from = ix.normalize(from)
	if to == "" {
		return func(yield func(string, Entry) bool) {
			for it := ix.words.LowerBound(from); it.Valid(); it = it.Next() {
				if !yield(it.Key(), it.Value()) {
					return
				}
			}
		}
	}
	return ix.words.Range(from, ix.normalize(to))
}

// Prune removes every word occurring less than minCount times and returns
// the number of words removed.
func (ix *Index) Prune(minCount int) int {
	n := 0
	for it := ix.words.First(); it.Valid(); {
		if it.Value().Count >= minCount {
			it = it.Next()
			continue
		}
		next, err := ix.words.EraseAt(it)
		if err != nil {
			tracer().Errorf("wordindex: prune: %v", err)
			break
		}
		it = next
		n++
	}
	tracer().Debugf("wordindex: pruned %d words", n)
	return n
}

func (ix *Index) normalize(word string) string {
	word = strings.TrimFunc(word, isApostrophe)
	if ix.opts.FoldCase {
		word = ix.fold.String(word)
	}
	return word
}
