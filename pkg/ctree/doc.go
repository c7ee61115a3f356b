// Package ctree models the tree a decompiler produces for one function.
//
// A function body is a block instruction. Instructions (statements) hold
// expressions and other instructions; expressions hold only expressions.
// Nodes carry no parent pointers. Callers that need parents either walk the
// tree with a Visitor, which receives the direct parent of every node, or ask
// the function for a single node's parent with FindParentOf.
//
// Usage:
//
//	fn := &ctree.Func{Name: "main", Body: ctree.NewBlock(0, stmts...)}
//	ctree.Walk(fn.Body, nil, ctree.VisitorFuncs{
//	    Expr: func(e *ctree.Expr, parent ctree.Node) ctree.Signal {
//	        fmt.Println(ctree.String(e))
//	        return ctree.Continue
//	    },
//	})
package ctree
