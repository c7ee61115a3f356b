package query

import "errors"

// ErrNoStatement is returned when climbing from a node never reaches a
// statement. Every expression under a function body has an instruction above
// it, so this only reports a malformed tree.
var ErrNoStatement = errors.New("no enclosing statement")

// ErrNoBlock is returned when a statement's parent is not a block, as for the
// single-statement arm of an if or loop written without braces.
var ErrNoBlock = errors.New("statement is not inside a block")

// ErrNotInBlock is returned when a statement is missing from the block its
// parent lookup resolved to. The statement and the tree disagree.
var ErrNotInBlock = errors.New("statement not found in its parent block")

// ErrForeignNode is returned when a node does not belong to the function or
// parent map it was queried against.
var ErrForeignNode = errors.New("node does not belong to this tree")
