package ordmap

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/ordmap/arena"
)

// Map2Dot outputs the internal structure of a Map in Graphviz DOT format
// (for debugging purposes).
//
// Nodes are labelled with their key and AA level and filled with a colour
// by level. Horizontal links are drawn in red, missing children as empty
// circles.
func Map2Dot[K, V any](m *Map[K, V], w io.Writer) error {
	var nodelist, edgelist strings.Builder
	nilid := 0
	if !m.IsEmpty() {
		m.dotNode(m.root, &nodelist, &edgelist, &nilid)
	}
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("strict digraph {\n")
	write("\tnode [fontname=Arial,fontsize=12];\n")
	write(nodelist.String())
	write(edgelist.String())
	write("}\n")
	if err != nil {
		T().Errorf("map DOT: %s", err.Error())
	}
	return err
}

func (m *Map[K, V]) dotNode(t arena.Index, nodes, edges *strings.Builder, nilid *int) {
	tn := m.node(t)
	label := strings.ReplaceAll(fmt.Sprintf("%v", tn.key), "\"", "\\\"")
	fmt.Fprintf(nodes, "\"%d\" [label=\"%s\\n%d\" %s];\n", t, label, tn.level, nodeDotStyles(int(tn.level)))
	for _, c := range [2]arena.Index{tn.left, tn.right} {
		if c == arena.Nil {
			// sentinel children get ids which cannot clash with slot indices
			*nilid--
			fmt.Fprintf(nodes, "\"%d\" %s;\n", *nilid, emptyNode())
			fmt.Fprintf(edges, "\"%d\" -> \"%d\";\n", t, *nilid)
			continue
		}
		if c == tn.right && m.node(c).level == tn.level {
			fmt.Fprintf(edges, "\"%d\" -> \"%d\" [color=red];\n", t, c)
		} else {
			fmt.Fprintf(edges, "\"%d\" -> \"%d\";\n", t, c)
		}
		m.dotNode(c, nodes, edges, nilid)
	}
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles(level int) string {
	s := ",style=filled,color=black,shape=circle"
	if level >= len(hexcolors) {
		level = len(hexcolors) - 1
	}
	s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[level])
	return s
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
