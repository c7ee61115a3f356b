package ctree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/ctree/pkg/ctree"
	"github.com/panbanda/ctree/pkg/ctree/ctreetest"
)

func collect(root ctree.Node, parent ctree.Node, stopAt ctree.Node, skip ctree.Node) ([]string, ctree.Signal) {
	var seen []string
	visit := func(n ctree.Node) ctree.Signal {
		seen = append(seen, ctree.String(n))
		switch n {
		case stopAt:
			return ctree.Stop
		case skip:
			return ctree.SkipChildren
		}
		return ctree.Continue
	}
	sig := ctree.Walk(root, parent, ctree.VisitorFuncs{
		Expr: func(e *ctree.Expr, _ ctree.Node) ctree.Signal { return visit(e) },
		Insn: func(i *ctree.Insn, _ ctree.Node) ctree.Signal { return visit(i) },
	})
	return seen, sig
}

func TestWalkPreOrder(t *testing.T) {
	s := ctreetest.NewSample()

	seen, sig := collect(s.If, nil, nil, nil)

	assert.Equal(t, ctree.Continue, sig)
	assert.Equal(t, []string{
		"if (x)",
		"x",
		"{...}",
		"y = f(a + b);",
		"y = f(a + b)",
		"y",
		"f(a + b)",
		"f",
		"a + b",
		"a",
		"b",
	}, seen)
}

func TestWalkSkipChildren(t *testing.T) {
	s := ctreetest.NewSample()

	seen, sig := collect(s.Func.Body, nil, nil, s.If)

	assert.Equal(t, ctree.Continue, sig)
	assert.Equal(t, "{...}", seen[0])
	assert.Equal(t, "if (x)", seen[1])
	assert.Equal(t, "while (n)", seen[2], "if subtree must be skipped")
	assert.NotContains(t, seen, "a + b")
	assert.Contains(t, seen, "return y;")
}

func TestWalkStop(t *testing.T) {
	s := ctreetest.NewSample()

	seen, sig := collect(s.Func.Body, nil, s.Sum, nil)

	assert.Equal(t, ctree.Stop, sig)
	assert.Equal(t, "a + b", seen[len(seen)-1])
	assert.NotContains(t, seen, "while (n)")
}

func TestWalkUnknownSignalStops(t *testing.T) {
	s := ctreetest.NewSample()
	visits := 0

	sig := ctree.Walk(s.Func.Body, nil, ctree.VisitorFuncs{
		Insn: func(*ctree.Insn, ctree.Node) ctree.Signal {
			visits++
			return ctree.Signal(42)
		},
	})

	assert.Equal(t, ctree.Stop, sig)
	assert.Equal(t, 1, visits)
}

func TestWalkReportsParents(t *testing.T) {
	s := ctreetest.NewSample()
	parents := make(map[ctree.Node]ctree.Node)
	sentinel := ctree.NewBlock(0)

	ctree.Walk(s.Func.Body, sentinel, ctree.VisitorFuncs{
		Expr: func(e *ctree.Expr, p ctree.Node) ctree.Signal { parents[e] = p; return ctree.Continue },
		Insn: func(i *ctree.Insn, p ctree.Node) ctree.Signal { parents[i] = p; return ctree.Continue },
	})

	assert.Same(t, sentinel, parents[s.Func.Body])
	assert.Same(t, s.Func.Body, parents[s.If])
	assert.Same(t, s.If, parents[s.Cond])
	assert.Same(t, s.If, parents[s.Inner])
	assert.Same(t, s.Inner, parents[s.Assign])
	assert.Same(t, s.Assign, parents[s.AsgExpr])
	assert.Same(t, s.Call, parents[s.Sum])
	assert.Same(t, s.Sum, parents[s.B])
}

func TestWalkNilRoot(t *testing.T) {
	var e *ctree.Expr
	called := false

	sig := ctree.Walk(e, nil, ctree.VisitorFuncs{
		Expr: func(*ctree.Expr, ctree.Node) ctree.Signal { called = true; return ctree.Continue },
	})

	assert.Equal(t, ctree.Continue, sig)
	assert.False(t, called)
}

func TestChildren(t *testing.T) {
	s := ctreetest.NewSample()

	tests := []struct {
		name string
		node ctree.Node
		want []ctree.Node
	}{
		{"body", s.Func.Body, []ctree.Node{s.If, s.Loop, s.Ret}},
		{"if without else", s.If, []ctree.Node{s.Cond, s.Inner}},
		{"expr stmt", s.Assign, []ctree.Node{s.AsgExpr}},
		{"call", s.Call, []ctree.Node{s.Callee, s.Sum}},
		{"leaf", s.A, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ctree.Children(tt.node))
		})
	}
}

func TestChildrenLoopsAndSwitch(t *testing.T) {
	initExpr := ctree.Binary(ctree.OpAsg, 1, ctree.Var(1, "i"), ctree.Num(2, "0"))
	cond := ctree.Binary(ctree.OpLt, 3, ctree.Var(3, "i"), ctree.Var(4, "n"))
	step := ctree.Unary(ctree.OpPreInc, 5, ctree.Var(6, "i"))
	body := ctree.NewBlock(7)
	forInsn := &ctree.Insn{Op: ctree.InsnFor, Init: initExpr, Expr: cond, Step: step, Body: body}
	assert.Equal(t, []ctree.Node{initExpr, cond, step, body}, ctree.Children(forInsn))

	doInsn := &ctree.Insn{Op: ctree.InsnDo, Expr: cond, Body: body}
	assert.Equal(t, []ctree.Node{body, cond}, ctree.Children(doInsn))

	arm1 := ctree.NewBlock(8)
	arm2 := ctree.NewBlock(9)
	sw := &ctree.Insn{Op: ctree.InsnSwitch, Expr: cond, Cases: []*ctree.Case{
		{Values: []string{"1"}, Body: arm1},
		{Body: arm2},
	}}
	require.True(t, sw.Cases[1].IsDefault())
	assert.Equal(t, []ctree.Node{cond, arm1, arm2}, ctree.Children(sw))
}
