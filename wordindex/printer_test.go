package wordindex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/uax/uax11"
	"github.com/stretchr/testify/require"
)

func TestPrinterReport(t *testing.T) {
	ix, err := New(Options{FoldCase: true})
	require.NoError(t, err)
	require.NoError(t, ix.AddReader(strings.NewReader(fox)))
	p := &Printer{LineWidth: 40, Context: uax11.LatinContext}
	var buf bytes.Buffer
	require.NoError(t, p.Print(&buf, ix.Range("d", "g")))
	require.Equal(t, "dog     2  2, 3\nfox     1  1\n", buf.String())
}

func TestPrinterAlignsWideWords(t *testing.T) {
	ix, err := New(Options{})
	require.NoError(t, err)
	for _, w := range []string{"ab", "日本"} {
		_, err := ix.AddWord(w, 1)
		require.NoError(t, err)
	}
	p := &Printer{LineWidth: 40, Context: uax11.LatinContext}
	var buf bytes.Buffer
	require.NoError(t, p.Print(&buf, ix.Words()))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	// "日本" takes four cells, "ab" is padded to match
	require.Equal(t, "ab       1  1", lines[0])
	require.Equal(t, "日本     1  1", lines[1])
}

func TestLineList(t *testing.T) {
	require.Equal(t, "1, 2, 3, 100", lineList([]int{1, 2, 3, 100}, 20))
	require.Equal(t, "1, 2, 3, …", lineList([]int{1, 2, 3, 100}, 10))
	require.Equal(t, "…", lineList([]int{12345}, 3))
	require.Equal(t, "", lineList(nil, 10))
	require.Equal(t, "", lineList([]int{1}, 0))
}

func TestNewPrinter(t *testing.T) {
	p := NewPrinter(false)
	require.GreaterOrEqual(t, p.LineWidth, 30)
	require.False(t, p.Colored)
}
