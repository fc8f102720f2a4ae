package runtime

import (
	"github.com/Stringy/wisdom/internal/ast"
	"github.com/Stringy/wisdom/internal/value"
)

// UserFunc adapts a parsed *ast.Function so it can flow through
// value.Value as a value.Callable. A captured Function is a value-copy
// of its parsed definition: no enclosing scope is snapshotted, so
// Wisdom functions do not close over live locals (see Context.CallScoped).
type UserFunc struct {
	Fn *ast.Function
}

func (f UserFunc) Name() string { return f.Fn.Name }
func (f UserFunc) Arity() int   { return len(f.Fn.Args) }

// Builtin adapts a Go closure so it can flow through value.Value as a
// value.Callable. Arity of -1 marks a variadic built-in (print); the
// dispatcher in visitCall only checks argument count when FnArity is
// non-negative.
type Builtin struct {
	FnName  string
	FnArity int
	Call    func(args []value.Value) (value.Value, error)
}

func (b Builtin) Name() string { return b.FnName }
func (b Builtin) Arity() int   { return b.FnArity }
