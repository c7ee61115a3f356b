package query

import (
	"github.com/panbanda/ctree/pkg/ctree"
)

// AnyAncestorOf reports whether some member of set is an ancestor of item.
// A nil parents map knows no ancestry and always reports false.
func AnyAncestorOf(parents *ParentMap, set []ctree.Node, item ctree.Node) bool {
	for _, p := range set {
		if parents.IsAncestorOf(p, item) {
			return true
		}
	}
	return false
}

// KeepTopmost reduces items to the nodes that have no ancestor among the
// others. Items are taken from the end of the slice: each one is dropped if
// a node still waiting or an already kept node is its ancestor, and kept
// otherwise. The result is in the order items were kept, so it is reversed
// relative to the input. Unrelated nodes are all kept, and so are repeated
// entries of the same node, since a node is not its own ancestor.
// items itself is not modified.
//
// parents must cover the tree the items belong to, typically
// BuildParentMap(fn.Body) or Cache.Parents. With a nil map no node has an
// ancestor and every item is kept.
func KeepTopmost(parents *ParentMap, items []ctree.Node) []ctree.Node {
	kept := make([]ctree.Node, 0, len(items))
	for len(items) > 0 {
		item := items[len(items)-1]
		items = items[:len(items)-1]

		if !AnyAncestorOf(parents, items, item) && !AnyAncestorOf(parents, kept, item) {
			kept = append(kept, item)
		}
	}
	return kept
}

// KeepTopmostInsns is KeepTopmost for a selection of statements.
func KeepTopmostInsns(parents *ParentMap, insns []*ctree.Insn) []*ctree.Insn {
	items := make([]ctree.Node, len(insns))
	for i, insn := range insns {
		items[i] = insn
	}
	kept := KeepTopmost(parents, items)
	out := make([]*ctree.Insn, len(kept))
	for i, n := range kept {
		out[i] = n.(*ctree.Insn)
	}
	return out
}
