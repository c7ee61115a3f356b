package ctree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/panbanda/ctree/pkg/ctree"
	"github.com/panbanda/ctree/pkg/ctree/ctreetest"
)

func TestFindParentOf(t *testing.T) {
	s := ctreetest.NewSample()

	tests := []struct {
		name string
		node ctree.Node
		want ctree.Node
	}{
		{"if in body", s.If, s.Func.Body},
		{"condition", s.Cond, s.If},
		{"inner block", s.Inner, s.If},
		{"assignment insn", s.Assign, s.Inner},
		{"assignment expr", s.AsgExpr, s.Assign},
		{"call arg", s.Sum, s.Call},
		{"leaf", s.B, s.Sum},
		{"loop body stmt", s.Decrement, s.LoopBody},
		{"return", s.Ret, s.Func.Body},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, s.Func.FindParentOf(tt.node))
		})
	}
}

func TestFindParentOfRootAndForeign(t *testing.T) {
	s := ctreetest.NewSample()
	other := ctreetest.NewSample()

	assert.Nil(t, s.Func.FindParentOf(s.Func.Body))
	assert.Nil(t, s.Func.FindParentOf(other.Sum))
	assert.Nil(t, s.Func.FindParentOf(other.Assign))
	assert.Nil(t, s.Func.FindParentOf(nil))

	var fn *ctree.Func
	assert.Nil(t, fn.FindParentOf(s.Sum))
}

func TestContains(t *testing.T) {
	s := ctreetest.NewSample()
	other := ctreetest.NewSample()

	assert.True(t, s.Func.Contains(s.Func.Body))
	assert.True(t, s.Func.Contains(s.B))
	assert.True(t, s.Func.Contains(s.Ret))
	assert.False(t, s.Func.Contains(other.B))
	assert.False(t, s.Func.Contains(nil))
}

func TestStats(t *testing.T) {
	s := ctreetest.NewSample()

	st := s.Func.Stats()

	// body, if, inner, assign, while, loop body, decrement, return
	assert.Equal(t, 8, st.Insns)
	// x; y = f(a + b) (7 nodes); n; n = n - 1 (5 nodes); y
	assert.Equal(t, 15, st.Exprs)
	// body > if > inner > assign > asg > call > sum > a
	assert.Equal(t, 7, st.MaxDepth)

	var empty *ctree.Func
	assert.Equal(t, ctree.Stats{}, empty.Stats())
}

func TestFingerprint(t *testing.T) {
	a := ctreetest.NewSample()
	b := ctreetest.NewSample()

	assert.NotZero(t, a.Func.Fingerprint())
	assert.Equal(t, a.Func.Fingerprint(), b.Func.Fingerprint())

	// Addresses and the function name do not count.
	b.Func.Name = "renamed"
	b.Sum.EA += 0x1000
	assert.Equal(t, a.Func.Fingerprint(), b.Func.Fingerprint())

	b.A.Name = "c"
	assert.NotEqual(t, a.Func.Fingerprint(), b.Func.Fingerprint())

	c := ctreetest.NewSample()
	c.Inner.Block.Remove(0)
	assert.NotEqual(t, a.Func.Fingerprint(), c.Func.Fingerprint())

	var empty *ctree.Func
	assert.Zero(t, empty.Fingerprint())
}

func TestFingerprintTokenBoundaries(t *testing.T) {
	// Text may contain spaces; moving one across a name/value boundary
	// must still change the hash.
	a := ctreetest.NewSample()
	a.A.Name, a.A.Value = "x y", "z"
	b := ctreetest.NewSample()
	b.A.Name, b.A.Value = "x", "y z"
	assert.NotEqual(t, a.Func.Fingerprint(), b.Func.Fingerprint())

	c := ctreetest.NewSample()
	c.A.Name, c.A.Value = "", "x y z"
	assert.NotEqual(t, a.Func.Fingerprint(), c.Func.Fingerprint())
	assert.NotEqual(t, b.Func.Fingerprint(), c.Func.Fingerprint())
}
