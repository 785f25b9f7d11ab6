package wordindex

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AddHTML indexes the textual content of an HTML fragment. It does no
// interpretation of layout and styling, but extracts the pure text. Block
// elements and line breaks start a new line; the content of script and
// style elements is skipped.
func (ix *Index) AddHTML(input io.Reader) error {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(n, &b)
	}
	return ix.AddReader(strings.NewReader(b.String()))
}

// InnerText returns the textual content of an HTML element and all its
// descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents).
func InnerText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		case atom.Br:
			b.WriteByte('\n')
		}
	} else if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
	if n.Type == html.ElementNode && isBlock(n.DataAtom) {
		b.WriteByte('\n')
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Tr, atom.Blockquote, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}
