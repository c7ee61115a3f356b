package query

import (
	"fmt"

	"github.com/panbanda/ctree/pkg/ctree"
)

// ExprFunc is called for each expression of a search. Its Signal controls
// the walk as in ctree.Walk.
type ExprFunc func(e *ctree.Expr) ctree.Signal

// ForEachExpr calls visit for every expression under fn's body in pre-order.
// When within is non-nil the search covers only within's subtree, and within
// must belong to fn. No state survives the call.
func ForEachExpr(fn *ctree.Func, visit ExprFunc, within ctree.Node) error {
	if fn == nil || fn.Body == nil {
		return fmt.Errorf("expression search: %w", ErrForeignNode)
	}

	root := ctree.Node(fn.Body)
	var parent ctree.Node
	if within != nil {
		if !fn.Contains(within) {
			return fmt.Errorf("expression search within %s: %w", ctree.String(within), ErrForeignNode)
		}
		root = within
		parent = fn.FindParentOf(within)
	}

	ctree.Walk(root, parent, ctree.VisitorFuncs{
		Expr: func(e *ctree.Expr, _ ctree.Node) ctree.Signal {
			return visit(e)
		},
	})
	return nil
}

// FindExprs returns every expression under fn's body (or within's subtree)
// for which match returns true.
func FindExprs(fn *ctree.Func, match func(*ctree.Expr) bool, within ctree.Node) ([]*ctree.Expr, error) {
	var found []*ctree.Expr
	err := ForEachExpr(fn, func(e *ctree.Expr) ctree.Signal {
		if match(e) {
			found = append(found, e)
		}
		return ctree.Continue
	}, within)
	return found, err
}
