package btree

import (
	"fmt"
	"io"
	"strings"
)

// Dot outputs the internal structure of the tree in Graphviz DOT format
// (for debugging purposes).
func (t *Tree) Dot(w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12,shape=record];\n")
	if t != nil && t.root != nil {
		next := 1
		t.dotNode(w, t.root, &next)
	}
	io.WriteString(w, "}\n")
}

// dotNode emits node n with id *next and returns the id it consumed.
func (t *Tree) dotNode(w io.Writer, n *node, next *int) int {
	id := *next
	*next++
	var cells []string
	for _, e := range n.entries {
		cells = append(cells, fmt.Sprintf("%g ×%d", e.key, e.mult))
	}
	fmt.Fprintf(w, "\t\"%d\" [label=\"%s\"];\n", id, strings.Join(cells, " | "))
	for _, child := range n.children {
		childID := t.dotNode(w, child, next)
		fmt.Fprintf(w, "\t\"%d\" -> \"%d\";\n", id, childID)
	}
	return id
}
