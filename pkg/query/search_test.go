package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/ctree/pkg/ctree"
	"github.com/panbanda/ctree/pkg/ctree/ctreetest"
	"github.com/panbanda/ctree/pkg/query"
)

func TestForEachExprVisitsAllExpressions(t *testing.T) {
	s := ctreetest.NewSample()
	var seen []string

	err := query.ForEachExpr(s.Func, func(e *ctree.Expr) ctree.Signal {
		seen = append(seen, ctree.String(e))
		return ctree.Continue
	}, nil)

	require.NoError(t, err)
	assert.Len(t, seen, s.Func.Stats().Exprs)
	assert.Equal(t, "x", seen[0])
	assert.Equal(t, "y", seen[len(seen)-1])
}

func TestForEachExprWithin(t *testing.T) {
	s := ctreetest.NewSample()
	var seen []string

	err := query.ForEachExpr(s.Func, func(e *ctree.Expr) ctree.Signal {
		seen = append(seen, ctree.String(e))
		return ctree.Continue
	}, s.Call)

	require.NoError(t, err)
	assert.Equal(t, []string{"f(a + b)", "f", "a + b", "a", "b"}, seen)
}

func TestForEachExprStop(t *testing.T) {
	s := ctreetest.NewSample()
	var calls []*ctree.Expr
	visits := 0

	err := query.ForEachExpr(s.Func, func(e *ctree.Expr) ctree.Signal {
		visits++
		if e.Op == ctree.OpCall {
			calls = append(calls, e)
			return ctree.Stop
		}
		return ctree.Continue
	}, nil)

	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Same(t, s.Call, calls[0])
	// x, y = f(a + b), y, f(a + b)
	assert.Equal(t, 4, visits)
}

func TestForEachExprSkipChildren(t *testing.T) {
	s := ctreetest.NewSample()
	var vars []string

	err := query.ForEachExpr(s.Func, func(e *ctree.Expr) ctree.Signal {
		if e.Op == ctree.OpCall {
			return ctree.SkipChildren
		}
		if e.Op == ctree.OpVar {
			vars = append(vars, e.Name)
		}
		return ctree.Continue
	}, s.Inner)

	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, vars)
}

func TestForEachExprForeignWithin(t *testing.T) {
	s := ctreetest.NewSample()
	other := ctreetest.NewSample()

	err := query.ForEachExpr(s.Func, func(*ctree.Expr) ctree.Signal { return ctree.Continue }, other.Call)

	assert.ErrorIs(t, err, query.ErrForeignNode)
}

func TestFindExprs(t *testing.T) {
	s := ctreetest.NewSample()

	asgs, err := query.FindExprs(s.Func, func(e *ctree.Expr) bool { return e.Op.IsAssignment() }, nil)
	require.NoError(t, err)
	require.Len(t, asgs, 2)
	assert.Same(t, s.AsgExpr, asgs[0])

	inLoop, err := query.FindExprs(s.Func, func(e *ctree.Expr) bool { return e.Op == ctree.OpVar }, s.Loop)
	require.NoError(t, err)
	assert.Len(t, inLoop, 3)
}
