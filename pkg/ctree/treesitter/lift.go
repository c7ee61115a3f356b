package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/panbanda/ctree/pkg/ctree"
	"github.com/panbanda/ctree/pkg/parser"
)

var binaryOps = map[string]ctree.ExprOp{
	"||": ctree.OpLogOr, "&&": ctree.OpLogAnd,
	"|": ctree.OpBitOr, "^": ctree.OpBitXor, "&": ctree.OpBitAnd,
	"==": ctree.OpEq, "!=": ctree.OpNe,
	"<": ctree.OpLt, "<=": ctree.OpLe, ">": ctree.OpGt, ">=": ctree.OpGe,
	"<<": ctree.OpShl, ">>": ctree.OpShr,
	"+": ctree.OpAdd, "-": ctree.OpSub,
	"*": ctree.OpMul, "/": ctree.OpDiv, "%": ctree.OpMod,
}

var assignOps = map[string]ctree.ExprOp{
	"=": ctree.OpAsg, "+=": ctree.OpAsgAdd, "-=": ctree.OpAsgSub,
	"*=": ctree.OpAsgMul, "/=": ctree.OpAsgDiv, "%=": ctree.OpAsgMod,
	"&=": ctree.OpAsgAnd, "|=": ctree.OpAsgOr, "^=": ctree.OpAsgXor,
	"<<=": ctree.OpAsgShl, ">>=": ctree.OpAsgShr,
}

var unaryOps = map[string]ctree.ExprOp{
	"-": ctree.OpNeg, "!": ctree.OpLogNot, "~": ctree.OpBitNot,
	"*": ctree.OpDeref, "&": ctree.OpRef,
}

// lifter converts one function's syntax tree into ctree nodes.
type lifter struct {
	source []byte
	base   ctree.Addr
}

func (l *lifter) addr(n *sitter.Node) ctree.Addr {
	return l.base + ctree.Addr(n.StartByte())
}

func (l *lifter) text(n *sitter.Node) string {
	return parser.GetNodeText(n, l.source)
}

// namedChildren returns n's named children without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := range int(n.NamedChildCount()) {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// block lifts a compound_statement.
func (l *lifter) block(n *sitter.Node) *ctree.Insn {
	var insns []*ctree.Insn
	for _, c := range namedChildren(n) {
		insns = append(insns, l.stmts(c)...)
	}
	return ctree.NewBlock(l.addr(n), insns...)
}

// single lifts a statement that must become exactly one instruction.
func (l *lifter) single(n *sitter.Node) *ctree.Insn {
	if n == nil {
		return nil
	}
	insns := l.stmts(n)
	switch len(insns) {
	case 0:
		return &ctree.Insn{Op: ctree.InsnEmpty, EA: l.addr(n)}
	case 1:
		return insns[0]
	default:
		return ctree.NewBlock(l.addr(n), insns...)
	}
}

// stmts lifts a statement or declaration. Declarations yield one
// instruction per initialised declarator.
func (l *lifter) stmts(n *sitter.Node) []*ctree.Insn {
	ea := l.addr(n)
	switch n.Type() {
	case "compound_statement":
		return []*ctree.Insn{l.block(n)}

	case "expression_statement":
		kids := namedChildren(n)
		if len(kids) == 0 {
			return []*ctree.Insn{{Op: ctree.InsnEmpty, EA: ea}}
		}
		return []*ctree.Insn{ctree.ExprStmt(ea, l.expr(kids[0]))}

	case "declaration":
		return l.declaration(n)

	case "if_statement":
		insn := ctree.If(ea, l.expr(n.ChildByFieldName("condition")),
			l.single(n.ChildByFieldName("consequence")), nil)
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				if kids := namedChildren(alt); len(kids) > 0 {
					insn.Else = l.single(kids[0])
				}
			} else {
				insn.Else = l.single(alt)
			}
		}
		return []*ctree.Insn{insn}

	case "while_statement":
		return []*ctree.Insn{ctree.While(ea,
			l.expr(n.ChildByFieldName("condition")),
			l.single(n.ChildByFieldName("body")))}

	case "do_statement":
		return []*ctree.Insn{{
			Op:   ctree.InsnDo,
			EA:   ea,
			Expr: l.expr(n.ChildByFieldName("condition")),
			Body: l.single(n.ChildByFieldName("body")),
		}}

	case "for_statement":
		return []*ctree.Insn{l.forStmt(n)}

	case "switch_statement":
		return []*ctree.Insn{l.switchStmt(n)}

	case "return_statement":
		var value *ctree.Expr
		if kids := namedChildren(n); len(kids) > 0 {
			value = l.expr(kids[0])
		}
		return []*ctree.Insn{ctree.Return(ea, value)}

	case "break_statement":
		return []*ctree.Insn{{Op: ctree.InsnBreak, EA: ea}}

	case "continue_statement":
		return []*ctree.Insn{{Op: ctree.InsnContinue, EA: ea}}

	case "goto_statement":
		return []*ctree.Insn{{Op: ctree.InsnGoto, EA: ea, Target: l.text(n.ChildByFieldName("label"))}}

	case "labeled_statement":
		label := l.text(n.ChildByFieldName("label"))
		kids := namedChildren(n)
		var inner []*ctree.Insn
		if len(kids) > 1 {
			inner = l.stmts(kids[len(kids)-1])
		}
		if len(inner) == 0 {
			inner = []*ctree.Insn{{Op: ctree.InsnEmpty, EA: ea}}
		}
		inner[0].Label = label
		return inner

	case "type_definition", "struct_specifier", "union_specifier", "enum_specifier":
		return nil

	default:
		return []*ctree.Insn{ctree.ExprStmt(ea, l.helper(n))}
	}
}

// declaration lifts "T a = x, b, *c = y;" into "a = x;" and "c = y;".
func (l *lifter) declaration(n *sitter.Node) []*ctree.Insn {
	var out []*ctree.Insn
	for _, c := range namedChildren(n) {
		if c.Type() != "init_declarator" {
			continue
		}
		if asg := l.initDeclarator(c); asg != nil {
			out = append(out, ctree.ExprStmt(l.addr(c), asg))
		}
	}
	return out
}

func (l *lifter) initDeclarator(n *sitter.Node) *ctree.Expr {
	decl := n.ChildByFieldName("declarator")
	value := n.ChildByFieldName("value")
	if decl == nil || value == nil {
		return nil
	}
	for decl.Type() != "identifier" {
		next := decl.ChildByFieldName("declarator")
		if next == nil {
			break
		}
		decl = next
	}
	target := ctree.Var(l.addr(decl), l.text(decl))
	return ctree.Binary(ctree.OpAsg, l.opAddr(n, "="), target, l.expr(value))
}

func (l *lifter) forStmt(n *sitter.Node) *ctree.Insn {
	insn := &ctree.Insn{
		Op:   ctree.InsnFor,
		EA:   l.addr(n),
		Expr: l.expr(n.ChildByFieldName("condition")),
		Step: l.expr(n.ChildByFieldName("update")),
		Body: l.single(n.ChildByFieldName("body")),
	}
	init := n.ChildByFieldName("initializer")
	if init != nil && init.Type() == "declaration" {
		var parts []*ctree.Expr
		for _, c := range namedChildren(init) {
			if c.Type() == "init_declarator" {
				if asg := l.initDeclarator(c); asg != nil {
					parts = append(parts, asg)
				}
			}
		}
		for _, p := range parts {
			if insn.Init == nil {
				insn.Init = p
			} else {
				insn.Init = ctree.Binary(ctree.OpComma, ctree.BadAddr, insn.Init, p)
			}
		}
	} else {
		insn.Init = l.expr(init)
	}
	return insn
}

func (l *lifter) switchStmt(n *sitter.Node) *ctree.Insn {
	insn := &ctree.Insn{
		Op:   ctree.InsnSwitch,
		EA:   l.addr(n),
		Expr: l.expr(n.ChildByFieldName("condition")),
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return insn
	}
	for _, c := range namedChildren(body) {
		if c.Type() != "case_statement" {
			continue
		}
		arm := &ctree.Case{}
		value := c.ChildByFieldName("value")
		if value != nil {
			arm.Values = []string{l.text(value)}
		}
		var insns []*ctree.Insn
		for _, s := range namedChildren(c) {
			if value != nil && s.StartByte() == value.StartByte() && s.EndByte() == value.EndByte() {
				continue
			}
			insns = append(insns, l.stmts(s)...)
		}
		arm.Body = ctree.NewBlock(l.addr(c), insns...)
		insn.Cases = append(insn.Cases, arm)
	}
	return insn
}

// opAddr returns the address of n's operator token, or of n when it has none.
func (l *lifter) opAddr(n *sitter.Node, token string) ctree.Addr {
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if !c.IsNamed() && c.Type() == token {
			return l.addr(c)
		}
	}
	return l.addr(n)
}

func (l *lifter) helper(n *sitter.Node) *ctree.Expr {
	return &ctree.Expr{Op: ctree.OpHelper, EA: l.addr(n), Name: l.text(n)}
}

// expr lifts an expression node. Parentheses are dropped. Operators that
// follow their first operand take the operator token's address, so no two
// expressions share one.
func (l *lifter) expr(n *sitter.Node) *ctree.Expr {
	if n == nil {
		return nil
	}
	ea := l.addr(n)

	switch n.Type() {
	case "parenthesized_expression", "condition_clause":
		if value := n.ChildByFieldName("value"); value != nil {
			return l.expr(value)
		}
		kids := namedChildren(n)
		if len(kids) == 0 {
			return l.helper(n)
		}
		return l.expr(kids[0])

	case "identifier", "field_identifier", "qualified_identifier", "this":
		return ctree.Var(ea, l.text(n))

	case "number_literal", "char_literal", "true", "false", "null", "nullptr":
		return ctree.Num(ea, l.text(n))

	case "string_literal", "concatenated_string":
		return &ctree.Expr{Op: ctree.OpStr, EA: ea, Value: l.text(n)}

	case "binary_expression":
		opNode := n.ChildByFieldName("operator")
		op, ok := binaryOps[opNode.Type()]
		if !ok {
			return l.helper(n)
		}
		return ctree.Binary(op, l.addr(opNode),
			l.expr(n.ChildByFieldName("left")),
			l.expr(n.ChildByFieldName("right")))

	case "assignment_expression":
		opNode := n.ChildByFieldName("operator")
		op, ok := assignOps[opNode.Type()]
		if !ok {
			return l.helper(n)
		}
		return ctree.Binary(op, l.addr(opNode),
			l.expr(n.ChildByFieldName("left")),
			l.expr(n.ChildByFieldName("right")))

	case "unary_expression", "pointer_expression":
		opNode := n.ChildByFieldName("operator")
		arg := l.expr(n.ChildByFieldName("argument"))
		if opNode.Type() == "+" {
			return arg
		}
		op, ok := unaryOps[opNode.Type()]
		if !ok {
			return l.helper(n)
		}
		return ctree.Unary(op, ea, arg)

	case "update_expression":
		opNode := n.ChildByFieldName("operator")
		argNode := n.ChildByFieldName("argument")
		prefix := opNode.StartByte() < argNode.StartByte()
		var op ctree.ExprOp
		switch {
		case opNode.Type() == "++" && prefix:
			op = ctree.OpPreInc
		case opNode.Type() == "++":
			op = ctree.OpPostInc
		case prefix:
			op = ctree.OpPreDec
		default:
			op = ctree.OpPostDec
		}
		if !prefix {
			ea = l.addr(opNode)
		}
		return ctree.Unary(op, ea, l.expr(argNode))

	case "call_expression":
		args := n.ChildByFieldName("arguments")
		if args != nil {
			ea = l.addr(args)
		}
		call := ctree.Call(ea, l.expr(n.ChildByFieldName("function")))
		if args != nil {
			for _, a := range namedChildren(args) {
				call.Args = append(call.Args, l.expr(a))
			}
		}
		return call

	case "subscript_expression":
		index := n.ChildByFieldName("index")
		if index == nil {
			if kids := namedChildren(n); len(kids) > 1 {
				index = kids[1]
			}
		}
		return &ctree.Expr{Op: ctree.OpIdx, EA: l.opAddr(n, "["),
			X: l.expr(n.ChildByFieldName("argument")),
			Y: l.expr(index)}

	case "field_expression":
		op := ctree.OpMemRef
		if opNode := n.ChildByFieldName("operator"); opNode != nil {
			ea = l.addr(opNode)
			if opNode.Type() == "->" {
				op = ctree.OpMemPtr
			}
		}
		return &ctree.Expr{Op: op, EA: ea,
			X:    l.expr(n.ChildByFieldName("argument")),
			Name: l.text(n.ChildByFieldName("field"))}

	case "cast_expression":
		return &ctree.Expr{Op: ctree.OpCast, EA: ea,
			Name: l.text(n.ChildByFieldName("type")),
			X:    l.expr(n.ChildByFieldName("value"))}

	case "conditional_expression":
		return &ctree.Expr{Op: ctree.OpTernary, EA: l.opAddr(n, "?"),
			X: l.expr(n.ChildByFieldName("condition")),
			Y: l.expr(n.ChildByFieldName("consequence")),
			Z: l.expr(n.ChildByFieldName("alternative"))}

	case "comma_expression":
		return ctree.Binary(ctree.OpComma, l.opAddr(n, ","),
			l.expr(n.ChildByFieldName("left")),
			l.expr(n.ChildByFieldName("right")))

	case "sizeof_expression":
		e := &ctree.Expr{Op: ctree.OpSizeof, EA: ea}
		if value := n.ChildByFieldName("value"); value != nil {
			e.X = l.expr(value)
		} else {
			e.Name = l.text(n.ChildByFieldName("type"))
		}
		return e

	default:
		return l.helper(n)
	}
}
