package parser

import (
	"fmt"
	"io"
)

// PrintTree renders a parse tree with box-drawing rules. Terminal leaves are
// quoted.
func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childPrefix string) {
	if node == nil {
		return
	}

	if node.Terminal {
		fmt.Fprintf(w, "%v%#v\n", ruledLine, node.Name)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.Name)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childPrefix+line, childPrefix+prefix)
	}
}
