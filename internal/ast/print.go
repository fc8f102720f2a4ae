package ast

import (
	"fmt"
	"strings"
)

// Sprint renders node as a compact, indented text tree: the form the
// `ast(s)` built-in hands back to a running program, and the simplest
// way to eyeball a parsed statement from the REPL.
func Sprint(node Node) string {
	var b strings.Builder
	sprintNode(&b, node, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func sprintNode(b *strings.Builder, node Node, depth int) {
	indent(b, depth)
	if node == nil {
		b.WriteString("<nil>\n")
		return
	}

	switch n := node.(type) {
	case *Ident:
		fmt.Fprintf(b, "Ident(%s)\n", n.Name)
	case *LiteralExpr:
		fmt.Fprintf(b, "Literal(%s)\n", n.Value.Display())
	case *IdentExpr:
		fmt.Fprintf(b, "IdentExpr(%s)\n", n.Name)
	case *BinOpExpr:
		fmt.Fprintf(b, "BinOp(%s)\n", n.Op)
		sprintNode(b, n.Left, depth+1)
		sprintNode(b, n.Right, depth+1)
	case *UnaryExpr:
		fmt.Fprintf(b, "Unary(%s)\n", n.Op)
		sprintNode(b, n.Operand, depth+1)
	case *CallExpr:
		b.WriteString("Call\n")
		sprintNode(b, n.Callee, depth+1)
		for _, a := range n.Args {
			sprintNode(b, a, depth+1)
		}
	case *LetExpr:
		fmt.Fprintf(b, "Let(%s)\n", n.Name)
		sprintNode(b, n.Value, depth+1)
	case *IfExpr:
		b.WriteString("If\n")
		sprintNode(b, n.Cond, depth+1)
		sprintNode(b, n.Then, depth+1)
		if n.Else != nil {
			sprintNode(b, n.Else, depth+1)
		}
	case *WhileExpr:
		b.WriteString("While\n")
		sprintNode(b, n.Cond, depth+1)
		sprintNode(b, n.Body, depth+1)
	case *Block:
		b.WriteString("Block\n")
		for _, s := range n.Stmts {
			sprintNode(b, s, depth+1)
		}
	case *BlockExpr:
		sprintNode(b, n.Block, depth)
	case *RetExpr:
		b.WriteString("Return\n")
		if n.Value != nil {
			sprintNode(b, n.Value, depth+1)
		}
	case *BreakExpr:
		b.WriteString("Break\n")
	case *ContinueExpr:
		b.WriteString("Continue\n")
	case *FuncExpr:
		sprintNode(b, n.Fn, depth)
	case *Function:
		names := make([]string, len(n.Args))
		for i, a := range n.Args {
			names[i] = a.Name
		}
		fmt.Fprintf(b, "Function(%s, [%s])\n", n.Name, strings.Join(names, ", "))
		sprintNode(b, n.Body, depth+1)
	case *ExprStmt:
		sprintNode(b, n.Expr, depth)
	case *FnStmt:
		sprintNode(b, n.Fn, depth)
	default:
		fmt.Fprintf(b, "Unknown(%T)\n", n)
	}
}
