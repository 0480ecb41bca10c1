package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs the parse tree in a human-readable indented format,
// one node per line with its kind and computed type.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new tree printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintTree prints the tree rooted at node.
func (p *Printer) PrintTree(node *Node) {
	p.printNode(node, 0)
}

func (p *Printer) printNode(node *Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if node.Type.IsEmpty() {
		fmt.Fprintf(p.w, "%s%s\n", indent, node.Kind)
	} else {
		fmt.Fprintf(p.w, "%s%s : %s\n", indent, node.Kind, node.Type)
	}
	for _, child := range node.Children {
		p.printNode(child, depth+1)
	}
}
