package wordindex

import (
	"bufio"
	"strings"
	"unicode"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
)

// splitWords breaks text into words. Segments are delimited by UAX#14
// line-break opportunities; each segment is then stripped of spaces and
// punctuation. A segment may hold more than one word, e.g. for text like
// "a/b".
func splitWords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(strings.NewReader(text)))
	words := make([]string, 0, 16)
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		for _, w := range strings.FieldsFunc(frag, isWordDelimiter) {
			if w = strings.TrimFunc(w, isApostrophe); w != "" {
				words = append(words, w)
			}
		}
	}
	return words
}

func isWordDelimiter(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r) || isApostrophe(r))
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
