package ctree

// Signal tells Walk how to proceed after a visit.
type Signal int

const (
	// Continue descends into the node's children.
	Continue Signal = iota
	// SkipChildren leaves the node's subtree unvisited and moves on.
	SkipChildren
	// Stop ends the walk. Walk returns Stop.
	Stop
)

// Visitor receives every node of a walk together with its direct parent.
type Visitor interface {
	VisitExpr(e *Expr, parent Node) Signal
	VisitInsn(i *Insn, parent Node) Signal
}

// VisitorFuncs adapts plain functions to Visitor. Nil fields continue.
type VisitorFuncs struct {
	Expr func(e *Expr, parent Node) Signal
	Insn func(i *Insn, parent Node) Signal
}

func (f VisitorFuncs) VisitExpr(e *Expr, parent Node) Signal {
	if f.Expr == nil {
		return Continue
	}
	return f.Expr(e, parent)
}

func (f VisitorFuncs) VisitInsn(i *Insn, parent Node) Signal {
	if f.Insn == nil {
		return Continue
	}
	return f.Insn(i, parent)
}

// Walk traverses the tree rooted at root depth-first in pre-order.
// parent is reported as the parent of root and may be nil.
// Any signal other than Continue or SkipChildren is treated as Stop.
func Walk(root Node, parent Node, v Visitor) Signal {
	if isNil(root) {
		return Continue
	}

	var sig Signal
	switch n := root.(type) {
	case *Expr:
		sig = v.VisitExpr(n, parent)
	case *Insn:
		sig = v.VisitInsn(n, parent)
	default:
		return Continue
	}

	switch sig {
	case Continue:
	case SkipChildren:
		return Continue
	default:
		return Stop
	}

	for _, child := range Children(root) {
		if Walk(child, root, v) == Stop {
			return Stop
		}
	}
	return Continue
}

// Children returns the direct children of n in traversal order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if !isNil(c) {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *Expr:
		if n == nil {
			return nil
		}
		add(n.X)
		add(n.Y)
		add(n.Z)
		for _, a := range n.Args {
			add(a)
		}
	case *Insn:
		if n == nil {
			return nil
		}
		switch n.Op {
		case InsnBlock:
			if n.Block != nil {
				for _, c := range n.Block.Insns {
					add(c)
				}
			}
		case InsnIf:
			add(n.Expr)
			add(n.Then)
			add(n.Else)
		case InsnFor:
			add(n.Init)
			add(n.Expr)
			add(n.Step)
			add(n.Body)
		case InsnDo:
			add(n.Body)
			add(n.Expr)
		case InsnSwitch:
			add(n.Expr)
			for _, c := range n.Cases {
				add(c.Body)
			}
		default:
			add(n.Expr)
			add(n.Body)
		}
	}
	return out
}

// isNil catches typed nil pointers stored in a Node.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Expr:
		return n == nil
	case *Insn:
		return n == nil
	}
	return false
}
