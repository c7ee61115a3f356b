package query

import (
	"fmt"

	"github.com/panbanda/ctree/pkg/ctree"
)

// Cache holds a parent map built on first use so that a run of queries over
// one function pays for the walk once. The zero value is ready to use. A
// Cache is owned by its caller; it is not safe for concurrent use.
type Cache struct {
	fn      *ctree.Func
	parents *ParentMap
}

// Parents returns the parent map for fn's body, building it if the cache is
// empty or was filled for another function.
func (c *Cache) Parents(fn *ctree.Func) *ParentMap {
	if c.parents == nil || c.fn != fn || c.parents.Root() != ctree.Node(fn.Body) {
		c.fn = fn
		c.parents = BuildParentMap(fn.Body)
	}
	return c.parents
}

// Reset drops the cached map. Call it after the tree has been modified.
func (c *Cache) Reset() {
	c.fn = nil
	c.parents = nil
}

// StatementOf returns the statement that encloses item: it climbs from item
// through enclosing expressions and returns the instruction holding the
// outermost one. A statement resolves to itself.
//
// With a nil cache every hop uses the function's own parent lookup; otherwise
// the cache's parent map is built if needed and used. The result is the same.
func StatementOf(fn *ctree.Func, item ctree.Node, cache *Cache) (*ctree.Insn, error) {
	if fn == nil || fn.Body == nil || item == nil {
		return nil, fmt.Errorf("statement of %v: %w", item, ErrForeignNode)
	}

	var parents *ParentMap
	if cache != nil {
		parents = cache.Parents(fn)
		if !parents.Contains(item) {
			return nil, fmt.Errorf("statement of %s: %w", ctree.String(item), ErrForeignNode)
		}
	}
	parentOf := parentFunc(fn, parents)

	// Climb to the outermost expression.
	stmt := item
	for n := item; n != nil && n.IsExpr(); n = parentOf(n) {
		stmt = n
	}

	// ...then step to the instruction that holds it.
	if stmt.IsExpr() {
		p := parentOf(stmt)
		if p == nil {
			if parents == nil && stmt == item {
				return nil, fmt.Errorf("statement of %s: %w", ctree.String(item), ErrForeignNode)
			}
			return nil, fmt.Errorf("statement of %s: %w", ctree.String(item), ErrNoStatement)
		}
		stmt = p
	}

	insn, ok := stmt.(*ctree.Insn)
	if !ok {
		return nil, fmt.Errorf("statement of %s: %w", ctree.String(item), ErrNoStatement)
	}
	if parents == nil && insn != fn.Body && insn == item && fn.FindParentOf(insn) == nil {
		return nil, fmt.Errorf("statement of %s: %w", ctree.String(item), ErrForeignNode)
	}
	return insn, nil
}
