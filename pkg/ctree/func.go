package ctree

// Func is a decompiled function: its name, entry address and body block.
type Func struct {
	Name string
	EA   Addr
	Body *Insn
}

// FindParentOf returns the direct parent of n by walking the body until n is
// met. It returns nil for the body itself and for nodes outside the function.
// No parent map is built, so each call costs a walk of the tree up to n.
func (f *Func) FindParentOf(n Node) Node {
	if f == nil || f.Body == nil || isNil(n) {
		return nil
	}

	var found Node
	Walk(f.Body, nil, VisitorFuncs{
		Expr: func(e *Expr, parent Node) Signal {
			if Node(e) == n {
				found = parent
				return Stop
			}
			return Continue
		},
		Insn: func(i *Insn, parent Node) Signal {
			if Node(i) == n {
				found = parent
				return Stop
			}
			// Instructions never sit under expressions.
			if !n.IsExpr() && i.Op == InsnExpr {
				return SkipChildren
			}
			return Continue
		},
	})
	return found
}

// Contains reports whether n is the body or a node under it.
func (f *Func) Contains(n Node) bool {
	if f == nil || f.Body == nil || isNil(n) {
		return false
	}
	if n == Node(f.Body) {
		return true
	}
	return f.FindParentOf(n) != nil
}

// Stats summarises the shape of a function body.
type Stats struct {
	Insns    int `json:"insns" toon:"insns"`
	Exprs    int `json:"exprs" toon:"exprs"`
	MaxDepth int `json:"max_depth" toon:"max_depth"`
}

// Stats counts the function's instructions and expressions and the depth of
// its deepest node (the body is at depth 0).
func (f *Func) Stats() Stats {
	var s Stats
	if f == nil || f.Body == nil {
		return s
	}
	var count func(n Node, depth int)
	count = func(n Node, depth int) {
		if n.IsExpr() {
			s.Exprs++
		} else {
			s.Insns++
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		for _, c := range Children(n) {
			count(c, depth+1)
		}
	}
	count(f.Body, 0)
	return s
}
