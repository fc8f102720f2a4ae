package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Stringy/wisdom/internal/ast"
	"github.com/Stringy/wisdom/internal/value"
)

func parseOne(t *testing.T, src string) ast.Stmt {
	t.Helper()
	stmt, err := NewFromSource(src).ParseStmt()
	require.NoError(t, err)
	return stmt
}

func TestParseLiteralExprStmt(t *testing.T) {
	stmt := parseOne(t, "42;")
	es, ok := stmt.(*ast.ExprStmt)
	require.True(t, ok)
	lit, ok := es.Expr.(*ast.LiteralExpr)
	require.True(t, ok)
	require.Equal(t, value.Int(42), lit.Value)
}

func TestParseTrailingSemicolonOptional(t *testing.T) {
	// REPL-style input with no trailing ';' is tolerated.
	stmt, err := NewFromSource("1 + 1").ParseStmt()
	require.NoError(t, err)
	require.NotNil(t, stmt)
}

func TestOperatorPrecedenceMulBeforeAdd(t *testing.T) {
	stmt := parseOne(t, "1 + 2 * 3;")
	bin := stmt.(*ast.ExprStmt).Expr.(*ast.BinOpExpr)
	require.Equal(t, ast.OpAdd, bin.Op)
	rhs := bin.Right.(*ast.BinOpExpr)
	require.Equal(t, ast.OpMul, rhs.Op)
}

func TestOperatorLeftAssociative(t *testing.T) {
	// 1 - 2 - 3 should parse as (1 - 2) - 3.
	stmt := parseOne(t, "1 - 2 - 3;")
	bin := stmt.(*ast.ExprStmt).Expr.(*ast.BinOpExpr)
	require.Equal(t, ast.OpSub, bin.Op)
	lhs, ok := bin.Left.(*ast.BinOpExpr)
	require.True(t, ok, "left operand should itself be the inner subtraction")
	require.Equal(t, ast.OpSub, lhs.Op)
}

func TestAssignRightAssociative(t *testing.T) {
	// a = b = c should parse as a = (b = c).
	stmt := parseOne(t, "a = b = c;")
	bin := stmt.(*ast.ExprStmt).Expr.(*ast.BinOpExpr)
	require.Equal(t, ast.OpAssign, bin.Op)
	require.Equal(t, "a", bin.Left.(*ast.IdentExpr).Name)
	rhs, ok := bin.Right.(*ast.BinOpExpr)
	require.True(t, ok)
	require.Equal(t, ast.OpAssign, rhs.Op)
	require.Equal(t, "b", rhs.Left.(*ast.IdentExpr).Name)
}

func TestParseParenGrouping(t *testing.T) {
	stmt := parseOne(t, "(2 * (5 + 7)) * (6 + 2);")
	bin := stmt.(*ast.ExprStmt).Expr.(*ast.BinOpExpr)
	require.Equal(t, ast.OpMul, bin.Op)
}

func TestParseCall(t *testing.T) {
	stmt := parseOne(t, "max(20, 10);")
	call := stmt.(*ast.ExprStmt).Expr.(*ast.CallExpr)
	require.Equal(t, "max", call.Callee.(*ast.IdentExpr).Name)
	require.Len(t, call.Args, 2)
}

func TestParseLet(t *testing.T) {
	stmt := parseOne(t, "let a = 123;")
	let := stmt.(*ast.ExprStmt).Expr.(*ast.LetExpr)
	require.Equal(t, "a", let.Name)
	require.Equal(t, value.Int(123), let.Value.(*ast.LiteralExpr).Value)
}

func TestParseLetNoInit(t *testing.T) {
	stmt := parseOne(t, "let a;")
	let := stmt.(*ast.ExprStmt).Expr.(*ast.LetExpr)
	require.Nil(t, let.Value)
}

func TestParseIfElse(t *testing.T) {
	stmt := parseOne(t, "if a > b { return a; } else { return b; }")
	ifExpr := stmt.(*ast.ExprStmt).Expr.(*ast.IfExpr)
	require.NotNil(t, ifExpr.Then)
	require.NotNil(t, ifExpr.Else)
	_, ok := ifExpr.Else.(*ast.BlockExpr)
	require.True(t, ok)
}

func TestParseElseIf(t *testing.T) {
	stmt := parseOne(t, "if a { return 1; } else if b { return 2; }")
	ifExpr := stmt.(*ast.ExprStmt).Expr.(*ast.IfExpr)
	_, ok := ifExpr.Else.(*ast.IfExpr)
	require.True(t, ok)
}

func TestParseWhile(t *testing.T) {
	stmt := parseOne(t, "while a < 10 { a = a + 1; }")
	_, ok := stmt.(*ast.ExprStmt).Expr.(*ast.WhileExpr)
	require.True(t, ok)
}

func TestParseFunction(t *testing.T) {
	stmt := parseOne(t, "fn max(a, b) { if a > b { return a; } return b; }")
	fn := stmt.(*ast.FnStmt)
	require.Equal(t, "max", fn.Fn.Name)
	require.Len(t, fn.Fn.Args, 2)
	require.Equal(t, "a", fn.Fn.Args[0].Name)
	require.Equal(t, "b", fn.Fn.Args[1].Name)
}

func TestParseFunctionArgTypesIgnored(t *testing.T) {
	stmt := parseOne(t, "fn add(a: int, b: int) { return a + b; }")
	fn := stmt.(*ast.FnStmt)
	require.Len(t, fn.Fn.Args, 2)
}

func TestParseTrueFalseNone(t *testing.T) {
	stmt := parseOne(t, "true;")
	require.Equal(t, value.Bool(true), stmt.(*ast.ExprStmt).Expr.(*ast.LiteralExpr).Value)

	stmt = parseOne(t, "false;")
	require.Equal(t, value.Bool(false), stmt.(*ast.ExprStmt).Expr.(*ast.LiteralExpr).Value)

	stmt = parseOne(t, "none;")
	require.Equal(t, value.None{}, stmt.(*ast.ExprStmt).Expr.(*ast.LiteralExpr).Value)
}

func TestParseUnary(t *testing.T) {
	stmt := parseOne(t, "-a + 1;")
	bin := stmt.(*ast.ExprStmt).Expr.(*ast.BinOpExpr)
	require.Equal(t, ast.OpAdd, bin.Op)
	_, ok := bin.Left.(*ast.UnaryExpr)
	require.True(t, ok)
}

func TestParseStringEscapes(t *testing.T) {
	stmt := parseOne(t, `"a\"b";`)
	lit := stmt.(*ast.ExprStmt).Expr.(*ast.LiteralExpr)
	require.Equal(t, value.String(`a"b`), lit.Value)
}

func TestParseEmptyInputIsUnexpectedEOL(t *testing.T) {
	_, err := NewFromSource("").ParseStmt()
	require.Error(t, err)
}

func TestParseUnmatchedParen(t *testing.T) {
	_, err := NewFromSource("(1 + 2").ParseStmt()
	require.Error(t, err)
}

func TestParseDeterministic(t *testing.T) {
	src := "let a = 1; a = a + 1;"
	s1, err := NewFromSource(src).ParseStmt()
	require.NoError(t, err)
	s2, err := NewFromSource(src).ParseStmt()
	require.NoError(t, err)
	require.Equal(t, s1, s2)
}
