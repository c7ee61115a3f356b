// Package query answers structural questions about a decompiled function's
// tree: which statement encloses an expression, where a statement sits in its
// block, and which nodes of a selection are redundant because an ancestor is
// already selected.
//
// The tree has no parent pointers. A ParentMap walks it once and records the
// parent of every node; queries that accept a ParentMap (or a Cache that
// builds one lazily) answer each parent hop in constant time. Queries given no
// map fall back to the function's own single-path parent lookup. Both paths
// produce the same answers.
//
// Nothing in this package modifies the tree.
//
// Usage:
//
//	var cache query.Cache
//	stmt, err := query.StatementOf(fn, expr, &cache)
//	if err != nil {
//	    return err
//	}
//	blk, pos, err := query.BlockPos(fn, stmt, cache.Parents(fn))
package query
