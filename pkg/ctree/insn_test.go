package ctree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/ctree/pkg/ctree"
)

func stmt(name string) *ctree.Insn {
	return ctree.ExprStmt(0, ctree.Call(0, ctree.Var(0, name)))
}

func TestBlockInsertRemove(t *testing.T) {
	a, b, c := stmt("a"), stmt("b"), stmt("c")
	blk := ctree.NewBlock(0, a, c).Block

	blk.Insert(1, b)
	require.Equal(t, 3, blk.Len())
	assert.Same(t, a, blk.At(0))
	assert.Same(t, b, blk.At(1))
	assert.Same(t, c, blk.At(2))

	d := stmt("d")
	blk.Insert(10, d)
	assert.Same(t, d, blk.At(3))

	e := stmt("e")
	blk.Insert(-1, e)
	assert.Same(t, e, blk.At(0))

	removed := blk.Remove(1)
	assert.Same(t, a, removed)
	assert.Equal(t, 4, blk.Len())
	assert.Same(t, b, blk.At(1))
}

func TestInsnPredicates(t *testing.T) {
	assert.True(t, ctree.NewBlock(0).IsBlock())
	assert.False(t, stmt("x").IsBlock())
	assert.False(t, (*ctree.Insn)(nil).IsBlock())

	assert.True(t, ctree.InsnFor.IsLoop())
	assert.True(t, ctree.InsnDo.IsLoop())
	assert.False(t, ctree.InsnIf.IsLoop())

	assert.True(t, ctree.OpAsgXor.IsAssignment())
	assert.False(t, ctree.OpEq.IsAssignment())
	assert.True(t, ctree.OpHelper.IsLeaf())
	assert.False(t, ctree.OpCall.IsLeaf())
}

func TestNodeInterface(t *testing.T) {
	e := ctree.Var(0x10, "x")
	i := ctree.ExprStmt(0x20, e)

	var n ctree.Node = e
	assert.True(t, n.IsExpr())
	assert.Equal(t, ctree.Addr(0x10), n.Address())
	assert.Equal(t, "var", n.Kind())

	n = i
	assert.False(t, n.IsExpr())
	assert.Equal(t, ctree.Addr(0x20), n.Address())
	assert.Equal(t, "expr", n.Kind())
}
