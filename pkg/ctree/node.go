package ctree

// Addr is a source address. For lifted pseudocode it is a byte offset plus a base.
type Addr uint64

// BadAddr marks a node that has no address.
const BadAddr = ^Addr(0)

// Node is an element of the tree: either an *Expr or an *Insn.
type Node interface {
	// IsExpr reports whether the node is an expression.
	IsExpr() bool

	// Address returns the node's address, or BadAddr.
	Address() Addr

	// Kind returns the node's operation name.
	Kind() string
}

// ExprOp identifies an expression operation.
type ExprOp string

const (
	OpEmpty ExprOp = "empty"

	// Assignment
	OpAsg     ExprOp = "asg"
	OpAsgAdd  ExprOp = "asgadd"
	OpAsgSub  ExprOp = "asgsub"
	OpAsgMul  ExprOp = "asgmul"
	OpAsgDiv  ExprOp = "asgdiv"
	OpAsgMod  ExprOp = "asgmod"
	OpAsgAnd  ExprOp = "asgband"
	OpAsgOr   ExprOp = "asgbor"
	OpAsgXor  ExprOp = "asgxor"
	OpAsgShl  ExprOp = "asgshl"
	OpAsgShr  ExprOp = "asgshr"
	OpComma   ExprOp = "comma"
	OpTernary ExprOp = "tern"

	// Binary
	OpLogOr  ExprOp = "lor"
	OpLogAnd ExprOp = "land"
	OpBitOr  ExprOp = "bor"
	OpBitXor ExprOp = "xor"
	OpBitAnd ExprOp = "band"
	OpEq     ExprOp = "eq"
	OpNe     ExprOp = "ne"
	OpLt     ExprOp = "lt"
	OpLe     ExprOp = "le"
	OpGt     ExprOp = "gt"
	OpGe     ExprOp = "ge"
	OpShl    ExprOp = "shl"
	OpShr    ExprOp = "shr"
	OpAdd    ExprOp = "add"
	OpSub    ExprOp = "sub"
	OpMul    ExprOp = "mul"
	OpDiv    ExprOp = "div"
	OpMod    ExprOp = "mod"

	// Unary
	OpNeg     ExprOp = "neg"
	OpLogNot  ExprOp = "lnot"
	OpBitNot  ExprOp = "bnot"
	OpDeref   ExprOp = "ptr"
	OpRef     ExprOp = "ref"
	OpPostInc ExprOp = "postinc"
	OpPostDec ExprOp = "postdec"
	OpPreInc  ExprOp = "preinc"
	OpPreDec  ExprOp = "predec"
	OpCast    ExprOp = "cast"
	OpSizeof  ExprOp = "sizeof"

	// Access
	OpCall   ExprOp = "call"
	OpIdx    ExprOp = "idx"
	OpMemRef ExprOp = "memref"
	OpMemPtr ExprOp = "memptr"

	// Leaves
	OpVar    ExprOp = "var"
	OpNum    ExprOp = "num"
	OpStr    ExprOp = "str"
	OpHelper ExprOp = "helper"
)

// IsAssignment reports whether op stores into its X operand.
func (op ExprOp) IsAssignment() bool {
	switch op {
	case OpAsg, OpAsgAdd, OpAsgSub, OpAsgMul, OpAsgDiv, OpAsgMod,
		OpAsgAnd, OpAsgOr, OpAsgXor, OpAsgShl, OpAsgShr:
		return true
	}
	return false
}

// IsLeaf reports whether op never has operands.
func (op ExprOp) IsLeaf() bool {
	switch op {
	case OpEmpty, OpVar, OpNum, OpStr, OpHelper:
		return true
	}
	return false
}

// Expr is an expression node.
//
// Operands are used per op: unary ops use X; binary and assignment ops use
// X and Y; the ternary uses X ? Y : Z; calls use X as the callee and Args;
// member access uses X and Name; casts and sizeof keep the type text in Name.
// Leaves keep their text in Name (var, helper) or Value (num, str).
type Expr struct {
	Op    ExprOp
	EA    Addr
	X     *Expr
	Y     *Expr
	Z     *Expr
	Args  []*Expr
	Name  string
	Value string
}

func (e *Expr) IsExpr() bool   { return true }
func (e *Expr) Address() Addr  { return e.EA }
func (e *Expr) Kind() string   { return string(e.Op) }
func (e *Expr) String() string { return String(e) }

// Var returns a variable reference.
func Var(ea Addr, name string) *Expr {
	return &Expr{Op: OpVar, EA: ea, Name: name}
}

// Num returns a numeric literal.
func Num(ea Addr, value string) *Expr {
	return &Expr{Op: OpNum, EA: ea, Value: value}
}

// Binary returns a two-operand expression, including assignments.
func Binary(op ExprOp, ea Addr, x, y *Expr) *Expr {
	return &Expr{Op: op, EA: ea, X: x, Y: y}
}

// Unary returns a one-operand expression.
func Unary(op ExprOp, ea Addr, x *Expr) *Expr {
	return &Expr{Op: op, EA: ea, X: x}
}

// Call returns a call of callee with args.
func Call(ea Addr, callee *Expr, args ...*Expr) *Expr {
	return &Expr{Op: OpCall, EA: ea, X: callee, Args: args}
}
