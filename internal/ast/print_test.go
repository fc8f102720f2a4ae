package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Stringy/wisdom/internal/value"
)

func TestSprintBinOpNestsOperands(t *testing.T) {
	tree := &BinOpExpr{
		Op:   OpAdd,
		Left: &LiteralExpr{Value: value.Int(1)},
		Right: &BinOpExpr{
			Op:    OpMul,
			Left:  &LiteralExpr{Value: value.Int(2)},
			Right: &LiteralExpr{Value: value.Int(3)},
		},
	}
	out := Sprint(tree)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, []string{
		"BinOp(+)",
		"  Literal(1)",
		"  BinOp(*)",
		"    Literal(2)",
		"    Literal(3)",
	}, lines)
}

func TestSprintFunctionShowsArgNames(t *testing.T) {
	fn := &Function{
		Name: "max",
		Args: []ArgSpec{{Name: "a"}, {Name: "b"}},
		Body: &Block{Stmts: []Stmt{
			&ExprStmt{Expr: &RetExpr{Value: &IdentExpr{Name: "a"}}},
		}},
	}
	out := Sprint(fn)
	require.Contains(t, out, "Function(max, [a, b])")
	require.Contains(t, out, "Return")
	require.Contains(t, out, "IdentExpr(a)")
}

func TestSprintNilNode(t *testing.T) {
	require.Equal(t, "<nil>\n", Sprint(nil))
}

func TestNodeToMapLiteral(t *testing.T) {
	m := NodeToMap(&LiteralExpr{Value: value.Int(42)})
	require.Equal(t, "LiteralExpr", m["kind"])
	require.Equal(t, "42", m["value"])
}

func TestNodeToMapBinOpRecurses(t *testing.T) {
	m := NodeToMap(&BinOpExpr{
		Op:    OpAdd,
		Left:  &LiteralExpr{Value: value.Int(1)},
		Right: &IdentExpr{Name: "x"},
	})
	require.Equal(t, "BinOpExpr", m["kind"])
	left, ok := m["left"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "LiteralExpr", left["kind"])
	right, ok := m["right"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "IdentExpr", right["kind"])
}
