package ctree

// InsnOp identifies an instruction (statement) kind.
type InsnOp string

const (
	InsnEmpty    InsnOp = "empty"
	InsnBlock    InsnOp = "block"
	InsnExpr     InsnOp = "expr"
	InsnIf       InsnOp = "if"
	InsnFor      InsnOp = "for"
	InsnWhile    InsnOp = "while"
	InsnDo       InsnOp = "do"
	InsnSwitch   InsnOp = "switch"
	InsnBreak    InsnOp = "break"
	InsnContinue InsnOp = "continue"
	InsnReturn   InsnOp = "return"
	InsnGoto     InsnOp = "goto"
)

// IsLoop reports whether op is a loop.
func (op InsnOp) IsLoop() bool {
	return op == InsnFor || op == InsnWhile || op == InsnDo
}

// Insn is an instruction node.
//
// Fields are used per op: block uses Block; expr and return use Expr; if uses
// Expr as the condition with Then and Else; for uses Init, Expr, Step and Body;
// while and do use Expr and Body; switch uses Expr and Cases; goto uses Target.
type Insn struct {
	Op     InsnOp
	EA     Addr
	Label  string
	Block  *Block
	Expr   *Expr
	Init   *Expr
	Step   *Expr
	Then   *Insn
	Else   *Insn
	Body   *Insn
	Cases  []*Case
	Target string
}

func (i *Insn) IsExpr() bool   { return false }
func (i *Insn) Address() Addr  { return i.EA }
func (i *Insn) Kind() string   { return string(i.Op) }
func (i *Insn) String() string { return String(i) }

// IsBlock reports whether the instruction is a block.
func (i *Insn) IsBlock() bool {
	return i != nil && i.Op == InsnBlock && i.Block != nil
}

// Case is one arm of a switch. An arm with no values is the default arm.
type Case struct {
	Values []string
	Body   *Insn
}

// IsDefault reports whether the arm is the default arm.
func (c *Case) IsDefault() bool {
	return len(c.Values) == 0
}

// Block is an ordered sequence of instructions.
type Block struct {
	Insns []*Insn
}

// Len returns the number of instructions in the block.
func (b *Block) Len() int {
	return len(b.Insns)
}

// At returns the instruction at position i.
func (b *Block) At(i int) *Insn {
	return b.Insns[i]
}

// Insert places insn at position i, shifting later instructions.
// Positions past the end append.
func (b *Block) Insert(i int, insn *Insn) {
	if i >= len(b.Insns) {
		b.Insns = append(b.Insns, insn)
		return
	}
	if i < 0 {
		i = 0
	}
	b.Insns = append(b.Insns, nil)
	copy(b.Insns[i+1:], b.Insns[i:])
	b.Insns[i] = insn
}

// Remove deletes and returns the instruction at position i.
func (b *Block) Remove(i int) *Insn {
	insn := b.Insns[i]
	b.Insns = append(b.Insns[:i], b.Insns[i+1:]...)
	return insn
}

// NewBlock returns a block instruction holding insns.
func NewBlock(ea Addr, insns ...*Insn) *Insn {
	return &Insn{Op: InsnBlock, EA: ea, Block: &Block{Insns: insns}}
}

// ExprStmt returns an expression instruction wrapping e.
func ExprStmt(ea Addr, e *Expr) *Insn {
	return &Insn{Op: InsnExpr, EA: ea, Expr: e}
}

// If returns an if instruction. elseInsn may be nil.
func If(ea Addr, cond *Expr, then, elseInsn *Insn) *Insn {
	return &Insn{Op: InsnIf, EA: ea, Expr: cond, Then: then, Else: elseInsn}
}

// While returns a while loop.
func While(ea Addr, cond *Expr, body *Insn) *Insn {
	return &Insn{Op: InsnWhile, EA: ea, Expr: cond, Body: body}
}

// Return returns a return instruction. value may be nil.
func Return(ea Addr, value *Expr) *Insn {
	return &Insn{Op: InsnReturn, EA: ea, Expr: value}
}
