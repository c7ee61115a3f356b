// Package ctreetest builds small hand-made trees for tests.
package ctreetest

import "github.com/panbanda/ctree/pkg/ctree"

// Sample is the function
//
//	void sample() {
//	  if (x) {
//	    y = f(a + b);
//	  }
//	  while (n) {
//	    n = n - 1;
//	  }
//	  return y;
//	}
//
// with every interesting node exposed by name.
type Sample struct {
	Func *ctree.Func

	If      *ctree.Insn // if (x)
	Cond    *ctree.Expr // x
	Inner   *ctree.Insn // { y = f(a + b); }
	Assign  *ctree.Insn // y = f(a + b);
	AsgExpr *ctree.Expr // y = f(a + b)
	Y       *ctree.Expr
	Call    *ctree.Expr // f(a + b)
	Callee  *ctree.Expr // f
	Sum     *ctree.Expr // a + b
	A       *ctree.Expr
	B       *ctree.Expr

	Loop      *ctree.Insn // while (n)
	LoopBody  *ctree.Insn // { n = n - 1; }
	Decrement *ctree.Insn // n = n - 1;

	Ret *ctree.Insn // return y;
}

// NewSample builds a fresh Sample. Addresses follow the layout above.
func NewSample() *Sample {
	s := &Sample{}

	s.Cond = ctree.Var(0x14, "x")
	s.Y = ctree.Var(0x20, "y")
	s.Callee = ctree.Var(0x24, "f")
	s.A = ctree.Var(0x26, "a")
	s.B = ctree.Var(0x2a, "b")
	s.Sum = ctree.Binary(ctree.OpAdd, 0x28, s.A, s.B)
	s.Call = ctree.Call(0x25, s.Callee, s.Sum)
	s.AsgExpr = ctree.Binary(ctree.OpAsg, 0x22, s.Y, s.Call)
	s.Assign = ctree.ExprStmt(0x20, s.AsgExpr)
	s.Inner = ctree.NewBlock(0x17, s.Assign)
	s.If = ctree.If(0x10, s.Cond, s.Inner, nil)

	n := ctree.Var(0x40, "n")
	dec := ctree.Binary(ctree.OpAsg, 0x42,
		ctree.Var(0x40, "n"),
		ctree.Binary(ctree.OpSub, 0x46, ctree.Var(0x44, "n"), ctree.Num(0x48, "1")))
	s.Decrement = ctree.ExprStmt(0x40, dec)
	s.LoopBody = ctree.NewBlock(0x3e, s.Decrement)
	s.Loop = ctree.While(0x34, n, s.LoopBody)

	s.Ret = ctree.Return(0x50, ctree.Var(0x57, "y"))

	s.Func = &ctree.Func{
		Name: "sample",
		EA:   0,
		Body: ctree.NewBlock(0x0e, s.If, s.Loop, s.Ret),
	}
	return s
}
