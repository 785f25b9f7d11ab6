package wordindex

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Printer writes a word index as a report, one word per output line:
//
//	word     count  line, line, …
//
// Words are padded to a common column width, which is measured in display
// cells according to UAX#11, so wide characters line up on a console. Line
// lists are cut off to fit the line width.
type Printer struct {
	LineWidth int            // maximum width of an output line, in cells
	Context   *uax11.Context // context for measuring display widths
	Colored   bool           // print words and counts in colour
	palette   map[string]*color.Color
}

var setupGraphemes sync.Once

// NewPrinter creates a printer for a console. If stdout is a terminal, the
// line width is taken from the terminal's width.
func NewPrinter(colored bool) *Printer {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	p := &Printer{
		LineWidth: lineWidthFromTerminal(),
		Context:   uax11.ContextFromEnvironment(),
		Colored:   colored,
		palette:   makeDefaultPalette(),
	}
	return p
}

func makeDefaultPalette() map[string]*color.Color {
	return map[string]*color.Color{
		"word":  color.New(color.FgBlue),
		"count": color.New(color.FgRed),
		"lines": color.New(color.Faint),
	}
}

// lineWidthFromTerminal checks wether stdout is a terminal, and if so it
// reads the terminal's width.
func lineWidthFromTerminal() int {
	width := 80
	if term.IsTerminal(0) {
		w, _, err := term.GetSize(0)
		if err == nil {
			if w > 30 {
				width = w - 2
			} else {
				width = 30
			}
		}
	}
	tracer().Debugf("wordindex: setting line length to %d en", width)
	return width
}

type row struct {
	word  string
	width int
	entry Entry
}

// Print writes the entries of seq as a report to w.
func (p *Printer) Print(w io.Writer, seq iter.Seq2[string, Entry]) error {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	ctx := p.Context
	if ctx == nil {
		ctx = uax11.LatinContext
	}
	if p.palette == nil {
		p.palette = makeDefaultPalette()
	}
	var rows []row
	colwidth := 0
	for word, e := range seq {
		r := row{word: word, entry: e}
		r.width = uax11.StringWidth(grapheme.StringFromString(word), ctx)
		colwidth = max(colwidth, r.width)
		rows = append(rows, r)
	}
	for _, r := range rows {
		if err := p.printRow(w, r, colwidth); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printRow(w io.Writer, r row, colwidth int) error {
	used := colwidth + 8 // word column, count column and separators
	lines := lineList(r.entry.Lines, p.LineWidth-used)
	if err := p.fprint(w, "word", r.word); err != nil {
		return err
	}
	if _, err := io.WriteString(w, strings.Repeat(" ", colwidth-r.width+1)); err != nil {
		return err
	}
	if err := p.fprint(w, "count", fmt.Sprintf("%5d", r.entry.Count)); err != nil {
		return err
	}
	if lines != "" {
		if _, err := io.WriteString(w, "  "); err != nil {
			return err
		}
		if err := p.fprint(w, "lines", lines); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (p *Printer) fprint(w io.Writer, role, s string) error {
	if p.Colored {
		if c, ok := p.palette[role]; ok {
			_, err := c.Fprint(w, s)
			return err
		}
	}
	_, err := io.WriteString(w, s)
	return err
}

// lineList formats line numbers as a comma separated list of at most width
// cells. A list which does not fit is cut off with an ellipsis.
func lineList(lines []int, width int) string {
	if len(lines) == 0 || width <= 0 {
		return ""
	}
	const more = ", …" // 3 cells
	var b strings.Builder
	cells := 0
	for i, l := range lines {
		s := strconv.Itoa(l)
		if i > 0 {
			s = ", " + s
		}
		reserve := 0
		if i < len(lines)-1 {
			reserve = 3
		}
		if cells+len(s)+reserve > width {
			if i == 0 {
				return "…"
			}
			b.WriteString(more)
			break
		}
		b.WriteString(s)
		cells += len(s)
	}
	return b.String()
}
