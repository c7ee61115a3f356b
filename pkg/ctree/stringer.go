package ctree

// String methods for the op types.
// These are required for toon serialization, which uses fmt.Stringer.

// ExprOp
func (op ExprOp) String() string { return string(op) }

// InsnOp
func (op InsnOp) String() string { return string(op) }
