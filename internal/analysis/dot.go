package analysis

import (
	"fmt"
	"strings"
)

// ToDot renders the graph in Graphviz DOT form. Basic blocks are boxes,
// Entry/Exit are ellipses, decisions are diamonds; edges carry the
// true/false labels and loop-back/return styling.
func (c *Cfg) ToDot() string {
	var b strings.Builder
	b.WriteString("digraph CFG {\n")

	for _, n := range c.Nodes {
		fmt.Fprintf(&b, "    n%d [label=%q, shape=%s];\n", n.ID, nodeLabel(n), nodeShape(n.Kind))
	}
	for _, e := range c.Edges {
		attrs := edgeAttrs(e.Kind)
		if attrs == "" {
			fmt.Fprintf(&b, "    n%d -> n%d;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&b, "    n%d -> n%d [%s];\n", e.From, e.To, attrs)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeLabel(n Node) string {
	switch n.Kind {
	case NodeEntry:
		return "ENTRY"
	case NodeExit:
		return "EXIT"
	case NodeBranch:
		return fmt.Sprintf("branch L%d", n.Span.Line)
	case NodeLoopHeader:
		return fmt.Sprintf("loop L%d", n.Span.Line)
	case NodeLoopExit:
		return fmt.Sprintf("loop exit L%d", n.Span.Line)
	default:
		return fmt.Sprintf("L%d", n.Span.Line)
	}
}

func nodeShape(k NodeKind) string {
	switch k {
	case NodeEntry, NodeExit:
		return "ellipse"
	case NodeBranch, NodeLoopHeader:
		return "diamond"
	default:
		return "box"
	}
}

func edgeAttrs(k EdgeKind) string {
	switch k {
	case EdgeTrueBranch:
		return `label="T", color=green`
	case EdgeFalseBranch:
		return `label="F", color=red`
	case EdgeLoopBack:
		return "style=dashed, color=blue"
	case EdgeReturn:
		return "color=purple"
	case EdgeLoopExit:
		return "style=dashed"
	default:
		return ""
	}
}
