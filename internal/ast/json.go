package ast

import "github.com/Stringy/wisdom/internal/token"

// NodeToMap converts an AST node into a map suitable for JSON
// serialization: every node carries a "kind" tag plus its position, the
// same tagged-union shape the `wisdom ast` command dumps to stdout.
func NodeToMap(node Node) map[string]interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Ident:
		return m("Ident", n.Position, "name", n.Name)
	case *LiteralExpr:
		return m("LiteralExpr", n.Position, "value", n.Value.Display())
	case *IdentExpr:
		return m("IdentExpr", n.Position, "name", n.Name)
	case *BinOpExpr:
		return m("BinOpExpr", n.Position,
			"op", n.Op.String(),
			"left", NodeToMap(n.Left),
			"right", NodeToMap(n.Right))
	case *UnaryExpr:
		return m("UnaryExpr", n.Position, "op", n.Op.String(), "operand", NodeToMap(n.Operand))
	case *CallExpr:
		return m("CallExpr", n.Position, "callee", NodeToMap(n.Callee), "args", exprSlice(n.Args))
	case *LetExpr:
		return m("LetExpr", n.Position, "name", n.Name, "value", NodeToMap(n.Value))
	case *IfExpr:
		result := m("IfExpr", n.Position, "cond", NodeToMap(n.Cond), "then", NodeToMap(n.Then))
		if n.Else != nil {
			result["else"] = NodeToMap(n.Else)
		}
		return result
	case *WhileExpr:
		return m("WhileExpr", n.Position, "cond", NodeToMap(n.Cond), "body", NodeToMap(n.Body))
	case *Block:
		return m("Block", n.Position, "stmts", stmtSlice(n.Stmts))
	case *BlockExpr:
		return m("BlockExpr", n.Position, "block", NodeToMap(n.Block))
	case *RetExpr:
		result := m("RetExpr", n.Position)
		if n.Value != nil {
			result["value"] = NodeToMap(n.Value)
		}
		return result
	case *BreakExpr:
		return m("BreakExpr", n.Position, "label", n.Label)
	case *ContinueExpr:
		return m("ContinueExpr", n.Position, "label", n.Label)
	case *FuncExpr:
		return m("FuncExpr", n.Position, "fn", funcToMap(n.Fn))
	case *ExprStmt:
		return m("ExprStmt", n.Position, "expr", NodeToMap(n.Expr))
	case *FnStmt:
		return m("FnStmt", n.Position, "fn", funcToMap(n.Fn))
	default:
		return map[string]interface{}{"kind": "Unknown"}
	}
}

func funcToMap(fn *Function) map[string]interface{} {
	if fn == nil {
		return nil
	}
	params := make([]string, len(fn.Args))
	for i, a := range fn.Args {
		params[i] = a.Name
	}
	return map[string]interface{}{
		"kind":   "Function",
		"pos":    posToMap(fn.Position),
		"name":   fn.Name,
		"params": params,
		"body":   NodeToMap(fn.Body),
	}
}

func m(kind string, pos token.Position, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"pos":  posToMap(pos),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key, _ := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func posToMap(pos token.Position) map[string]interface{} {
	return map[string]interface{}{"line": pos.Line, "column": pos.Column}
}

func exprSlice(exprs []Expr) []interface{} {
	result := make([]interface{}, len(exprs))
	for i, e := range exprs {
		result[i] = NodeToMap(e)
	}
	return result
}

func stmtSlice(stmts []Stmt) []interface{} {
	result := make([]interface{}, len(stmts))
	for i, s := range stmts {
		result[i] = NodeToMap(s)
	}
	return result
}
