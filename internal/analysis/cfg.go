// Package analysis builds control-flow graphs over statement lists and
// detects structural code smells. It is the per-POU half of the
// analyzer; project-wide aggregation lives in internal/project.
package analysis

import (
	"github.com/plclens/plclens/internal/ast"
	"github.com/plclens/plclens/internal/lexer"
)

// NodeID indexes into Cfg.Nodes.
type NodeID int

// NodeKind classifies a CFG node.
type NodeKind int

const (
	NodeEntry NodeKind = iota
	NodeExit
	NodeBasic
	NodeBranch
	NodeLoopHeader
	NodeLoopExit
)

func (k NodeKind) String() string {
	switch k {
	case NodeEntry:
		return "entry"
	case NodeExit:
		return "exit"
	case NodeBasic:
		return "basic"
	case NodeBranch:
		return "branch"
	case NodeLoopHeader:
		return "loop"
	case NodeLoopExit:
		return "loop_exit"
	default:
		return "unknown"
	}
}

// EdgeKind classifies a control transfer.
type EdgeKind int

const (
	EdgeSequential EdgeKind = iota
	EdgeTrueBranch
	EdgeFalseBranch
	EdgeLoopBack
	EdgeLoopExit
	EdgeReturn
)

// Node is one CFG node. Stmt is the occupant for Basic nodes and the
// owning control statement for Branch/LoopHeader/LoopExit; it is nil
// for Entry, Exit, and synthetic nodes.
type Node struct {
	ID   NodeID
	Kind NodeKind
	Stmt ast.Stmt
	Span lexer.Span
}

// Edge is one labeled control transfer between two nodes.
type Edge struct {
	From NodeID
	To   NodeID
	Kind EdgeKind
}

// Cfg is a control-flow graph over a statement list. Nodes and Edges
// are flat slices; node IDs are indices into Nodes.
type Cfg struct {
	Nodes []Node
	Edges []Edge
	Entry NodeID
	Exit  NodeID
}

// exitPoint is a dangling edge source: a node whose control continues
// into whatever comes next, with the kind the eventual edge will carry.
type exitPoint struct {
	node NodeID
	kind EdgeKind
}

type builder struct {
	cfg *Cfg

	// Innermost-loop stacks for EXIT and CONTINUE resolution.
	loopHeads []NodeID
	loopExits []NodeID

	// RETURN nodes, edged to Exit once the walk finishes.
	returns []NodeID
}

// BuildCFG builds the control-flow graph of a statement list.
func BuildCFG(stmts []ast.Stmt) *Cfg {
	b := &builder{cfg: &Cfg{}}

	entry := b.newNode(NodeEntry, nil, lexer.Span{})
	b.cfg.Entry = entry

	exits := b.buildList(stmts, []exitPoint{{entry, EdgeSequential}})

	exit := b.newNode(NodeExit, nil, lexer.Span{})
	b.cfg.Exit = exit
	b.connect(exits, exit)
	for _, ret := range b.returns {
		b.addEdge(ret, exit, EdgeReturn)
	}

	return b.cfg
}

func (b *builder) newNode(kind NodeKind, stmt ast.Stmt, span lexer.Span) NodeID {
	id := NodeID(len(b.cfg.Nodes))
	b.cfg.Nodes = append(b.cfg.Nodes, Node{ID: id, Kind: kind, Stmt: stmt, Span: span})
	return id
}

func (b *builder) addEdge(from, to NodeID, kind EdgeKind) {
	b.cfg.Edges = append(b.cfg.Edges, Edge{From: from, To: to, Kind: kind})
}

func (b *builder) connect(preds []exitPoint, to NodeID) {
	for _, p := range preds {
		b.addEdge(p.node, to, p.kind)
	}
}

// buildList walks a statement list, threading the dangling exits of
// each statement into the next. Terminal statements (RETURN, EXIT,
// CONTINUE) drop their exits, so following statements build with no
// predecessors and surface as unreachable.
func (b *builder) buildList(stmts []ast.Stmt, preds []exitPoint) []exitPoint {
	for _, s := range stmts {
		preds = b.buildStmt(s, preds)
	}
	return preds
}

func (b *builder) buildStmt(s ast.Stmt, preds []exitPoint) []exitPoint {
	switch s := s.(type) {
	case *ast.IfStmt:
		return b.buildIf(s, preds)
	case *ast.CaseStmt:
		return b.buildCase(s, preds)
	case *ast.ForStmt:
		return b.buildLoop(s, s.Body, preds)
	case *ast.WhileStmt:
		return b.buildLoop(s, s.Body, preds)
	case *ast.RepeatStmt:
		return b.buildRepeat(s, preds)
	case *ast.RegionStmt:
		// Regions are folding markers; the body runs unconditionally.
		return b.buildList(s.Body, preds)
	case *ast.ExitStmt:
		n := b.newNode(NodeBasic, s, s.Span())
		b.connect(preds, n)
		if len(b.loopExits) > 0 {
			b.addEdge(n, b.loopExits[len(b.loopExits)-1], EdgeLoopExit)
		}
		return nil
	case *ast.ContinueStmt:
		n := b.newNode(NodeBasic, s, s.Span())
		b.connect(preds, n)
		if len(b.loopHeads) > 0 {
			b.addEdge(n, b.loopHeads[len(b.loopHeads)-1], EdgeLoopBack)
		}
		return nil
	case *ast.ReturnStmt:
		n := b.newNode(NodeBasic, s, s.Span())
		b.connect(preds, n)
		b.returns = append(b.returns, n)
		return nil
	default:
		// Assignments, calls, empty statements, gotos, labels.
		n := b.newNode(NodeBasic, s, s.Span())
		b.connect(preds, n)
		return []exitPoint{{n, EdgeSequential}}
	}
}

func (b *builder) buildIf(s *ast.IfStmt, preds []exitPoint) []exitPoint {
	cond := b.newNode(NodeBranch, s, s.Cond.Span())
	b.connect(preds, cond)

	exits := b.buildList(s.Then, []exitPoint{{cond, EdgeTrueBranch}})

	falseFrom := exitPoint{cond, EdgeFalseBranch}
	for _, elsif := range s.Elsifs {
		eb := b.newNode(NodeBranch, s, elsif.Cond.Span())
		b.connect([]exitPoint{falseFrom}, eb)
		exits = append(exits, b.buildList(elsif.Body, []exitPoint{{eb, EdgeTrueBranch}})...)
		falseFrom = exitPoint{eb, EdgeFalseBranch}
	}

	if len(s.Else) > 0 {
		exits = append(exits, b.buildList(s.Else, []exitPoint{falseFrom})...)
	} else {
		exits = append(exits, falseFrom)
	}
	return exits
}

func (b *builder) buildCase(s *ast.CaseStmt, preds []exitPoint) []exitPoint {
	cond := b.newNode(NodeBranch, s, s.Selector.Span())
	b.connect(preds, cond)

	var exits []exitPoint
	for _, branch := range s.Branches {
		exits = append(exits, b.buildList(branch.Body, []exitPoint{{cond, EdgeTrueBranch}})...)
	}
	if s.HasElse {
		exits = append(exits, b.buildList(s.Else, []exitPoint{{cond, EdgeFalseBranch}})...)
	} else {
		exits = append(exits, exitPoint{cond, EdgeFalseBranch})
	}
	return exits
}

// buildLoop handles FOR and WHILE: a header tested before every
// iteration, with body exits looping back to it.
func (b *builder) buildLoop(s ast.Stmt, body []ast.Stmt, preds []exitPoint) []exitPoint {
	head := b.newNode(NodeLoopHeader, s, s.Span())
	b.connect(preds, head)
	lexit := b.newNode(NodeLoopExit, s, s.Span())
	b.addEdge(head, lexit, EdgeFalseBranch)

	b.loopHeads = append(b.loopHeads, head)
	b.loopExits = append(b.loopExits, lexit)
	bodyExits := b.buildList(body, []exitPoint{{head, EdgeTrueBranch}})
	b.loopHeads = b.loopHeads[:len(b.loopHeads)-1]
	b.loopExits = b.loopExits[:len(b.loopExits)-1]

	for _, be := range bodyExits {
		b.addEdge(be.node, head, EdgeLoopBack)
	}
	return []exitPoint{{lexit, EdgeSequential}}
}

// buildRepeat differs from the pre-tested loops: the body runs first,
// then a trailing header tests UNTIL. Condition-true leaves the loop,
// condition-false re-enters the synthetic body-entry node.
func (b *builder) buildRepeat(s *ast.RepeatStmt, preds []exitPoint) []exitPoint {
	bodyEntry := b.newNode(NodeBasic, nil, s.Span())
	b.connect(preds, bodyEntry)

	var condSpan lexer.Span
	if s.Until != nil {
		condSpan = s.Until.Span()
	} else {
		condSpan = s.Span()
	}
	head := b.newNode(NodeLoopHeader, s, condSpan)
	lexit := b.newNode(NodeLoopExit, s, s.Span())

	b.loopHeads = append(b.loopHeads, head)
	b.loopExits = append(b.loopExits, lexit)
	bodyExits := b.buildList(s.Body, []exitPoint{{bodyEntry, EdgeSequential}})
	b.loopHeads = b.loopHeads[:len(b.loopHeads)-1]
	b.loopExits = b.loopExits[:len(b.loopExits)-1]

	b.connect(bodyExits, head)
	b.addEdge(head, lexit, EdgeTrueBranch)
	b.addEdge(head, bodyEntry, EdgeFalseBranch)
	return []exitPoint{{lexit, EdgeSequential}}
}

// CyclomaticComplexity is the decision-point form: one plus the number
// of Branch and LoopHeader nodes.
func (c *Cfg) CyclomaticComplexity() int {
	d := 0
	for _, n := range c.Nodes {
		if n.Kind == NodeBranch || n.Kind == NodeLoopHeader {
			d++
		}
	}
	return 1 + d
}

// ComplexityFromEdges is the classical E - N + 2 form, floored at 1.
// For structured bodies it agrees with CyclomaticComplexity.
func (c *Cfg) ComplexityFromEdges() int {
	m := len(c.Edges) - len(c.Nodes) + 2
	if m < 1 {
		return 1
	}
	return m
}

// UnreachableNodes returns the IDs of nodes not reachable from Entry,
// in ascending order.
func (c *Cfg) UnreachableNodes() []NodeID {
	succ := c.successors()
	visited := make([]bool, len(c.Nodes))

	stack := []NodeID{c.Entry}
	visited[c.Entry] = true
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range succ[n] {
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}

	var out []NodeID
	for id, ok := range visited {
		if !ok {
			out = append(out, NodeID(id))
		}
	}
	return out
}

func (c *Cfg) successors() [][]NodeID {
	succ := make([][]NodeID, len(c.Nodes))
	for _, e := range c.Edges {
		succ[e.From] = append(succ[e.From], e.To)
	}
	return succ
}

// CountExpressionDecisions counts short-circuit operators (AND, OR) in
// an expression tree, for cognitive-complexity style measurements.
// Matching on the spelling is enough: the parser normalizes lower-case
// operators and '&' to the upper-case keyword form.
func CountExpressionDecisions(expr ast.Expr) int {
	count := 0
	ast.Walk(expr, func(n ast.Node) bool {
		if bin, ok := n.(*ast.BinaryExpr); ok {
			if bin.Op == "AND" || bin.Op == "OR" {
				count++
			}
		}
		return true
	})
	return count
}
