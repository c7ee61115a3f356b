package query

import (
	"fmt"

	"github.com/panbanda/ctree/pkg/ctree"
)

// BlockPos returns the block that directly holds stmt and stmt's position in
// it. Positions reflect the block's current order and are never cached.
//
// A statement whose parent is not a block (the body of a brace-less if or
// loop, a function body) yields ErrNoBlock. A statement missing from the
// block its parent resolved to yields ErrNotInBlock.
//
// parents may be nil, in which case the function's own parent lookup is used.
func BlockPos(fn *ctree.Func, stmt *ctree.Insn, parents *ParentMap) (*ctree.Block, int, error) {
	if fn == nil || stmt == nil {
		return nil, -1, fmt.Errorf("block position: %w", ErrForeignNode)
	}
	if parents != nil && !parents.Contains(stmt) {
		return nil, -1, fmt.Errorf("block position of %s: %w", ctree.String(stmt), ErrForeignNode)
	}

	parent := parentFunc(fn, parents)(stmt)
	if parent == nil && stmt != fn.Body {
		return nil, -1, fmt.Errorf("block position of %s: %w", ctree.String(stmt), ErrForeignNode)
	}
	blk, ok := parent.(*ctree.Insn)
	if !ok || !blk.IsBlock() {
		return nil, -1, fmt.Errorf("block position of %s: %w", ctree.String(stmt), ErrNoBlock)
	}

	for i, insn := range blk.Block.Insns {
		if insn == stmt {
			return blk.Block, i, nil
		}
	}
	return nil, -1, fmt.Errorf("block position of %s: %w", ctree.String(stmt), ErrNotInBlock)
}

// BlockInsn returns the block instruction directly holding stmt, or nil.
func BlockInsn(fn *ctree.Func, stmt *ctree.Insn, parents *ParentMap) *ctree.Insn {
	if fn == nil || stmt == nil {
		return nil
	}
	blk, ok := parentFunc(fn, parents)(stmt).(*ctree.Insn)
	if !ok || !blk.IsBlock() {
		return nil
	}
	return blk
}
