package tree

import "strings"

// RenderGraph draws a box-art view of the root forest, depth-first.
// Roots sit at column 0 with no connector; descendants use ├─ for non-last
// siblings and └─ for the last, with │ continuation on intermediate levels.
// Diagnostic output only.
func (t *Tree) RenderGraph() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var b strings.Builder
	for _, root := range t.roots {
		renderNode(&b, root, "", true, true)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *Node, indent string, last, root bool) {
	connector, continuation := "├─", "│ "
	if root {
		connector, continuation = "", ""
	} else if last {
		connector, continuation = "└─", "  "
	}
	b.WriteString(indent + connector + n.String() + "\n")
	indent += continuation
	for i, child := range n.children {
		renderNode(b, child, indent, i+1 == len(n.children), false)
	}
}
