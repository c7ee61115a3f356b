package ctree

import (
	"strings"
)

var binaryTokens = map[ExprOp]string{
	OpAsg: "=", OpAsgAdd: "+=", OpAsgSub: "-=", OpAsgMul: "*=", OpAsgDiv: "/=",
	OpAsgMod: "%=", OpAsgAnd: "&=", OpAsgOr: "|=", OpAsgXor: "^=", OpAsgShl: "<<=",
	OpAsgShr: ">>=", OpComma: ",",
	OpLogOr: "||", OpLogAnd: "&&", OpBitOr: "|", OpBitXor: "^", OpBitAnd: "&",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpShl: "<<", OpShr: ">>", OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
}

var prefixTokens = map[ExprOp]string{
	OpNeg: "-", OpLogNot: "!", OpBitNot: "~", OpDeref: "*", OpRef: "&",
	OpPreInc: "++", OpPreDec: "--",
}

// BinaryToken returns the C token for a binary or assignment op.
func BinaryToken(op ExprOp) (string, bool) {
	tok, ok := binaryTokens[op]
	return tok, ok
}

// String renders n as a single line of C-like pseudocode. Compound
// instructions render their header only; blocks render as "{...}".
func String(n Node) string {
	if isNil(n) {
		return ""
	}
	var sb strings.Builder
	switch n := n.(type) {
	case *Expr:
		writeExpr(&sb, n, false)
	case *Insn:
		writeInsn(&sb, n)
	}
	return sb.String()
}

func writeInsn(sb *strings.Builder, i *Insn) {
	if i.Label != "" {
		sb.WriteString(i.Label)
		sb.WriteString(": ")
	}
	switch i.Op {
	case InsnBlock:
		sb.WriteString("{...}")
	case InsnExpr:
		writeExpr(sb, i.Expr, false)
		sb.WriteString(";")
	case InsnIf:
		sb.WriteString("if (")
		writeExpr(sb, i.Expr, false)
		sb.WriteString(")")
	case InsnWhile:
		sb.WriteString("while (")
		writeExpr(sb, i.Expr, false)
		sb.WriteString(")")
	case InsnDo:
		sb.WriteString("do ... while (")
		writeExpr(sb, i.Expr, false)
		sb.WriteString(");")
	case InsnFor:
		sb.WriteString("for (")
		writeExpr(sb, i.Init, false)
		sb.WriteString("; ")
		writeExpr(sb, i.Expr, false)
		sb.WriteString("; ")
		writeExpr(sb, i.Step, false)
		sb.WriteString(")")
	case InsnSwitch:
		sb.WriteString("switch (")
		writeExpr(sb, i.Expr, false)
		sb.WriteString(")")
	case InsnReturn:
		sb.WriteString("return")
		if i.Expr != nil {
			sb.WriteString(" ")
			writeExpr(sb, i.Expr, false)
		}
		sb.WriteString(";")
	case InsnGoto:
		sb.WriteString("goto ")
		sb.WriteString(i.Target)
		sb.WriteString(";")
	case InsnBreak, InsnContinue:
		sb.WriteString(string(i.Op))
		sb.WriteString(";")
	default:
		sb.WriteString(";")
	}
}

func writeExpr(sb *strings.Builder, e *Expr, nested bool) {
	if e == nil {
		return
	}
	if nested && needsParens(e.Op) {
		sb.WriteString("(")
		defer sb.WriteString(")")
	}

	if tok, ok := binaryTokens[e.Op]; ok {
		writeExpr(sb, e.X, true)
		if e.Op == OpComma {
			sb.WriteString(", ")
		} else {
			sb.WriteString(" " + tok + " ")
		}
		writeExpr(sb, e.Y, !e.Op.IsAssignment())
		return
	}
	if tok, ok := prefixTokens[e.Op]; ok {
		sb.WriteString(tok)
		writeExpr(sb, e.X, true)
		return
	}

	switch e.Op {
	case OpPostInc, OpPostDec:
		writeExpr(sb, e.X, true)
		if e.Op == OpPostInc {
			sb.WriteString("++")
		} else {
			sb.WriteString("--")
		}
	case OpTernary:
		writeExpr(sb, e.X, true)
		sb.WriteString(" ? ")
		writeExpr(sb, e.Y, true)
		sb.WriteString(" : ")
		writeExpr(sb, e.Z, true)
	case OpCast:
		sb.WriteString("(" + e.Name + ")")
		writeExpr(sb, e.X, true)
	case OpSizeof:
		sb.WriteString("sizeof(")
		if e.X != nil {
			writeExpr(sb, e.X, false)
		} else {
			sb.WriteString(e.Name)
		}
		sb.WriteString(")")
	case OpCall:
		writeExpr(sb, e.X, true)
		sb.WriteString("(")
		for i, a := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, a, false)
		}
		sb.WriteString(")")
	case OpIdx:
		writeExpr(sb, e.X, true)
		sb.WriteString("[")
		writeExpr(sb, e.Y, false)
		sb.WriteString("]")
	case OpMemRef, OpMemPtr:
		writeExpr(sb, e.X, true)
		if e.Op == OpMemPtr {
			sb.WriteString("->")
		} else {
			sb.WriteString(".")
		}
		sb.WriteString(e.Name)
	case OpNum, OpStr:
		sb.WriteString(e.Value)
	default:
		sb.WriteString(e.Name)
	}
}

func needsParens(op ExprOp) bool {
	if _, ok := binaryTokens[op]; ok {
		return true
	}
	return op == OpTernary || op == OpCast
}
