package query

import (
	"github.com/panbanda/ctree/pkg/ctree"
)

// ParentMap records the parent of every node under a root, plus an index
// from address to the expression carrying it. It holds references into the
// tree it was built from and is valid for as long as that tree is unchanged.
// A nil *ParentMap behaves as an empty map.
type ParentMap struct {
	root   ctree.Node
	parent map[ctree.Node]ctree.Node
	byAddr map[ctree.Addr]*ctree.Expr
}

// BuildParentMap walks root once and returns its parent map.
func BuildParentMap(root ctree.Node) *ParentMap {
	m := &ParentMap{
		root:   root,
		parent: make(map[ctree.Node]ctree.Node),
		byAddr: make(map[ctree.Addr]*ctree.Expr),
	}
	ctree.Walk(root, nil, (*parentTracker)(m))
	return m
}

// parentTracker fills a ParentMap as the walk descends.
type parentTracker ParentMap

func (t *parentTracker) VisitExpr(e *ctree.Expr, parent ctree.Node) ctree.Signal {
	t.parent[e] = parent
	// Expressions sharing an address resolve to the last one visited.
	if e.EA != ctree.BadAddr {
		t.byAddr[e.EA] = e
	}
	return ctree.Continue
}

func (t *parentTracker) VisitInsn(i *ctree.Insn, parent ctree.Node) ctree.Signal {
	t.parent[i] = parent
	return ctree.Continue
}

// Root returns the node the map was built from.
func (m *ParentMap) Root() ctree.Node {
	if m == nil {
		return nil
	}
	return m.root
}

// Len returns the number of nodes in the map, root included.
func (m *ParentMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.parent)
}

// Contains reports whether n was visited when the map was built.
func (m *ParentMap) Contains(n ctree.Node) bool {
	if m == nil || n == nil {
		return false
	}
	_, ok := m.parent[n]
	return ok
}

// ParentOf returns the parent of n, or nil for the root and unknown nodes.
func (m *ParentMap) ParentOf(n ctree.Node) ctree.Node {
	if m == nil || n == nil {
		return nil
	}
	return m.parent[n]
}

// ByAddr returns the expression at addr, or nil.
func (m *ParentMap) ByAddr(addr ctree.Addr) *ctree.Expr {
	if m == nil {
		return nil
	}
	return m.byAddr[addr]
}

// IsAncestorOf reports whether ancestor lies strictly above n. A node is not
// its own ancestor.
func (m *ParentMap) IsAncestorOf(ancestor, n ctree.Node) bool {
	if ancestor == nil {
		return false
	}
	for n != nil {
		n = m.ParentOf(n)
		if n == ancestor {
			return true
		}
	}
	return false
}

// Depth returns the number of parent hops from n to the root, or -1 when n
// is not in the map.
func (m *ParentMap) Depth(n ctree.Node) int {
	if !m.Contains(n) {
		return -1
	}
	depth := 0
	for p := m.ParentOf(n); p != nil; p = m.ParentOf(p) {
		depth++
	}
	return depth
}

// parentFunc returns one parent hop for a query: the map when given, the
// function's own lookup otherwise.
func parentFunc(fn *ctree.Func, m *ParentMap) func(ctree.Node) ctree.Node {
	if m != nil {
		return m.ParentOf
	}
	return fn.FindParentOf
}
