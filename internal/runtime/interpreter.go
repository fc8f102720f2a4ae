package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/Stringy/wisdom/internal/ast"
	"github.com/Stringy/wisdom/internal/diag"
	"github.com/Stringy/wisdom/internal/lexer"
	"github.com/Stringy/wisdom/internal/parser"
	"github.com/Stringy/wisdom/internal/token"
	"github.com/Stringy/wisdom/internal/value"
)

// Interpreter walks ast.Stmt/ast.Expr trees against a Context: a
// straightforward tree-walking evaluator with no separate compilation
// step.
type Interpreter struct {
	ctx      *Context
	out      io.Writer
	builtins map[string]Builtin
}

// NewInterpreter creates an Interpreter with a fresh global scope and
// the built-in functions registered. Output from `print` is written
// to out.
func NewInterpreter(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	i := &Interpreter{ctx: NewContext(), out: out}
	i.registerBuiltins()
	return i
}

// Context exposes the interpreter's live scope stack, primarily so a
// REPL collaborator can inspect or extend it between lines.
func (i *Interpreter) Context() *Context { return i.ctx }

// EvalLine parses and evaluates exactly one statement from text,
// ignoring anything left in the stream after it: callers that may hand
// it more than one statement (e.g. "a = a + 1; a") want EvalScript
// instead, which loops until the stream is empty.
func (i *Interpreter) EvalLine(text string) (value.Value, error) {
	p := parser.New(lexer.NewTokenStream(text))
	stmt, err := p.ParseStmt()
	if err != nil {
		return nil, err
	}
	outcome, err := i.visitStmt(stmt)
	if err != nil {
		return nil, err
	}
	return i.projectTopLevel(outcome)
}

// EvalScript parses and evaluates statements from text until the token
// stream is exhausted, returning the value of the last statement. A
// Return that escapes every statement ends the script early and
// becomes its final value.
func (i *Interpreter) EvalScript(text string) (value.Value, error) {
	p := parser.New(lexer.NewTokenStream(text))
	last := value.Value(value.None{})
	for !p.IsEmpty() {
		stmt, err := p.ParseStmt()
		if err != nil {
			return nil, err
		}
		outcome, err := i.visitStmt(stmt)
		if err != nil {
			return nil, err
		}
		if outcome.Signal == SigReturn {
			return outcome.Value, nil
		}
		if outcome.Signal != SigNormal {
			return i.projectTopLevel(outcome)
		}
		last = outcome.Value
	}
	return last, nil
}

// EvalFile reads path and evaluates it as a script.
func (i *Interpreter) EvalFile(path string) (value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.New(diag.IOError, token.DefaultPosition, "reading %q: %v", path, err)
	}
	return i.EvalScript(string(data))
}

// projectTopLevel converts an Outcome that escaped every enclosing
// statement into a script result: Normal projects to its value,
// Return projects to its payload, Break/Continue are errors (there is
// no enclosing loop left to catch them).
func (i *Interpreter) projectTopLevel(o Outcome) (value.Value, error) {
	switch o.Signal {
	case SigReturn:
		return o.Value, nil
	case SigBreak:
		return nil, diag.At(diag.BreakInWrongContext, o.Position)
	case SigContinue:
		return nil, diag.At(diag.ContinueInWrongContext, o.Position)
	default:
		return o.Value, nil
	}
}

// ============================================================
// Statement dispatch
// ============================================================

func (i *Interpreter) visitStmt(stmt ast.Stmt) (Outcome, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return i.visitExpr(s.Expr)
	case *ast.FnStmt:
		i.ctx.StoreTop(s.Fn.Name, value.Func{Fn: UserFunc{Fn: s.Fn}})
		return normalNone, nil
	default:
		return Outcome{}, fmt.Errorf("runtime: unhandled statement type %T", stmt)
	}
}

// ============================================================
// Expression dispatch
// ============================================================

func (i *Interpreter) visitExpr(expr ast.Expr) (Outcome, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return Normal(e.Value), nil

	case *ast.IdentExpr:
		v, ok := i.ctx.Lookup(e.Name)
		if !ok {
			return Outcome{}, diag.New(diag.UndefinedVar, e.Position, "undefined variable %q", e.Name)
		}
		return Normal(v), nil

	case *ast.LetExpr:
		return i.visitLet(e)

	case *ast.BinOpExpr:
		return i.visitBinOp(e)

	case *ast.UnaryExpr:
		return i.visitUnary(e)

	case *ast.CallExpr:
		return i.visitCallExpr(e)

	case *ast.WhileExpr:
		return i.visitWhile(e)

	case *ast.IfExpr:
		return i.visitIf(e)

	case *ast.Block:
		return i.visitBlock(e)

	case *ast.BlockExpr:
		return i.visitBlock(e.Block)

	case *ast.RetExpr:
		if e.Value == nil {
			return Outcome{Signal: SigReturn, Value: value.None{}, Position: e.Position}, nil
		}
		inner, err := i.visitExpr(e.Value)
		if err != nil {
			return Outcome{}, err
		}
		if !inner.IsNormal() {
			return inner, nil
		}
		return Outcome{Signal: SigReturn, Value: inner.Value, Position: e.Position}, nil

	case *ast.BreakExpr:
		o := breakOutcome
		o.Position = e.Position
		return o, nil

	case *ast.ContinueExpr:
		o := continueOutcome
		o.Position = e.Position
		return o, nil

	case *ast.FuncExpr:
		return Normal(value.Func{Fn: UserFunc{Fn: e.Fn}}), nil

	default:
		return Outcome{}, fmt.Errorf("runtime: unhandled expression type %T", expr)
	}
}

func (i *Interpreter) visitLet(e *ast.LetExpr) (Outcome, error) {
	v := value.Value(value.None{})
	if e.Value != nil {
		o, err := i.visitExpr(e.Value)
		if err != nil {
			return Outcome{}, err
		}
		if !o.IsNormal() {
			return o, nil
		}
		v = o.Value
	}
	i.ctx.StoreTop(e.Name, v)
	return normalNone, nil
}

func (i *Interpreter) visitUnary(e *ast.UnaryExpr) (Outcome, error) {
	o, err := i.visitExpr(e.Operand)
	if err != nil {
		return Outcome{}, err
	}
	if !o.IsNormal() {
		return o, nil
	}
	var result value.Value
	switch e.Op {
	case token.Sub:
		result, err = value.Neg(o.Value)
	case token.Not:
		result, err = value.Not(o.Value)
	default:
		return Outcome{}, diag.New(diag.InvalidType, e.Position, "unsupported unary operator %q", e.Op)
	}
	if err != nil {
		return Outcome{}, diag.New(diag.InvalidType, e.Position, "%v", err)
	}
	return Normal(result), nil
}

func (i *Interpreter) visitBlock(b *ast.Block) (Outcome, error) {
	return i.ctx.Scoped(func() (Outcome, error) {
		result := normalNone
		for _, stmt := range b.Stmts {
			o, err := i.visitStmt(stmt)
			if err != nil {
				return Outcome{}, err
			}
			result = o
			if !o.IsNormal() {
				return o, nil
			}
		}
		return result, nil
	})
}

func (i *Interpreter) visitWhile(e *ast.WhileExpr) (Outcome, error) {
	for {
		cond, err := i.visitExpr(e.Cond)
		if err != nil {
			return Outcome{}, err
		}
		if !cond.IsNormal() {
			return cond, nil
		}
		if !value.Truthy(cond.Value) {
			return normalNone, nil
		}

		body, err := i.visitBlock(e.Body)
		if err != nil {
			return Outcome{}, err
		}
		switch body.Signal {
		case SigNormal, SigContinue:
			// fall through to next iteration
		case SigBreak:
			return normalNone, nil
		case SigReturn:
			return body, nil
		}
	}
}

func (i *Interpreter) visitIf(e *ast.IfExpr) (Outcome, error) {
	cond, err := i.visitExpr(e.Cond)
	if err != nil {
		return Outcome{}, err
	}
	if !cond.IsNormal() {
		return cond, nil
	}
	if value.Truthy(cond.Value) {
		return i.visitBlock(e.Then)
	}
	if e.Else != nil {
		return i.visitExpr(e.Else)
	}
	return normalNone, nil
}

// ============================================================
// Binary operators and the value algebra dispatch
// ============================================================

func (i *Interpreter) visitBinOp(e *ast.BinOpExpr) (Outcome, error) {
	if e.Op == ast.OpAssign {
		return i.visitAssign(e)
	}
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		return i.visitShortCircuit(e)
	}

	lhs, err := i.visitExpr(e.Left)
	if err != nil {
		return Outcome{}, err
	}
	if !lhs.IsNormal() {
		return lhs, nil
	}
	rhs, err := i.visitExpr(e.Right)
	if err != nil {
		return Outcome{}, err
	}
	if !rhs.IsNormal() {
		return rhs, nil
	}

	fn, ok := binOpFns[e.Op]
	if !ok {
		return Outcome{}, diag.New(diag.InvalidType, e.Position, "unsupported operator %q", e.Op)
	}
	result, err := fn(lhs.Value, rhs.Value)
	if err != nil {
		return Outcome{}, diag.New(diag.InvalidType, e.Position, "%v", err)
	}
	return Normal(result), nil
}

// binOpFns maps every non-assignment, non-short-circuit BinOp to its
// value-algebra implementation.
var binOpFns = map[ast.BinOp]func(a, b value.Value) (value.Value, error){
	ast.OpAdd:    value.Add,
	ast.OpSub:    value.Sub,
	ast.OpMul:    value.Mul,
	ast.OpDiv:    value.Div,
	ast.OpMod:    value.Mod,
	ast.OpLt:     value.Lt,
	ast.OpLtEq:   value.LtEq,
	ast.OpGt:     value.Gt,
	ast.OpGtEq:   value.GtEq,
	ast.OpEqEq:   value.Eq,
	ast.OpNotEq:  value.NotEq,
	ast.OpBinAnd: value.BinAnd,
	ast.OpBinOr:  value.BinOr,
	ast.OpXor:    value.BinXor,
}

// visitShortCircuit implements && and || with the evaluation-order
// short circuit idiomatic Go gives these operators: the right operand
// is never evaluated once the left operand already determines the
// result.
func (i *Interpreter) visitShortCircuit(e *ast.BinOpExpr) (Outcome, error) {
	lhs, err := i.visitExpr(e.Left)
	if err != nil {
		return Outcome{}, err
	}
	if !lhs.IsNormal() {
		return lhs, nil
	}
	lt := value.Truthy(lhs.Value)
	if e.Op == ast.OpAnd && !lt {
		return Normal(value.Bool(false)), nil
	}
	if e.Op == ast.OpOr && lt {
		return Normal(value.Bool(true)), nil
	}
	rhs, err := i.visitExpr(e.Right)
	if err != nil {
		return Outcome{}, err
	}
	if !rhs.IsNormal() {
		return rhs, nil
	}
	return Normal(value.Bool(value.Truthy(rhs.Value))), nil
}

// visitAssign implements `=`: the left-hand side must be a plain
// identifier naming an already-bound variable.
func (i *Interpreter) visitAssign(e *ast.BinOpExpr) (Outcome, error) {
	ident, ok := e.Left.(*ast.IdentExpr)
	if !ok {
		return Outcome{}, diag.New(diag.InvalidAssignment, e.Position, "left-hand side of '=' must be an identifier")
	}
	if !i.ctx.Exists(ident.Name) {
		return Outcome{}, diag.New(diag.UndefinedVar, e.Position, "undefined variable %q", ident.Name)
	}
	rhs, err := i.visitExpr(e.Right)
	if err != nil {
		return Outcome{}, err
	}
	if !rhs.IsNormal() {
		return rhs, nil
	}
	i.ctx.Store(ident.Name, rhs.Value)
	return normalNone, nil
}

// ============================================================
// Calls
// ============================================================

func (i *Interpreter) visitCallExpr(e *ast.CallExpr) (Outcome, error) {
	ident, ok := e.Callee.(*ast.IdentExpr)
	if !ok {
		return Outcome{}, diag.New(diag.NotCallable, e.Position, "callee is not callable")
	}
	return i.visitCall(ident.Name, e.Args, e.Position)
}

func (i *Interpreter) visitCall(name string, argExprs []ast.Expr, pos token.Position) (Outcome, error) {
	if bound, ok := i.ctx.Lookup(name); ok {
		fv, ok := bound.(value.Func)
		if !ok {
			return Outcome{}, diag.New(diag.NotCallable, pos, "%q is not callable", name)
		}
		uf, isUser := fv.Fn.(UserFunc)
		if !isUser {
			return i.callGo(fv.Fn, argExprs, pos)
		}
		if len(argExprs) != len(uf.Fn.Args) {
			return Outcome{}, diag.New(diag.UnexpectedArgs, pos, "%s() expects %d argument(s), got %d",
				name, len(uf.Fn.Args), len(argExprs))
		}
		args, o, err := i.evalArgs(argExprs)
		if err != nil {
			return Outcome{}, err
		}
		if o != nil {
			return *o, nil
		}
		return i.visitFunction(uf.Fn, args)
	}

	if b, ok := i.builtins[name]; ok {
		if b.FnArity >= 0 && len(argExprs) != b.FnArity {
			return Outcome{}, diag.New(diag.UnexpectedArgs, pos, "%s() expects %d argument(s), got %d",
				name, b.FnArity, len(argExprs))
		}
		args, o, err := i.evalArgs(argExprs)
		if err != nil {
			return Outcome{}, err
		}
		if o != nil {
			return *o, nil
		}
		result, err := b.Call(args)
		if err != nil {
			if de, ok := err.(*diag.Error); ok {
				if de.Position == token.DefaultPosition {
					de.Position = pos
				}
				return Outcome{}, de
			}
			return Outcome{}, diag.New(diag.InvalidType, pos, "%v", err)
		}
		return Normal(result), nil
	}

	return Outcome{}, diag.New(diag.UndefinedVar, pos, "undefined function %q", name)
}

// callGo invokes a non-UserFunc Callable (e.g. a Builtin someone has
// stored in a variable) reached through a name lookup rather than the
// builtin table directly.
func (i *Interpreter) callGo(c value.Callable, argExprs []ast.Expr, pos token.Position) (Outcome, error) {
	b, ok := c.(Builtin)
	if !ok {
		return Outcome{}, diag.New(diag.NotCallable, pos, "%q is not callable", c.Name())
	}
	if b.FnArity >= 0 && len(argExprs) != b.FnArity {
		return Outcome{}, diag.New(diag.UnexpectedArgs, pos, "%s() expects %d argument(s), got %d",
			c.Name(), b.FnArity, len(argExprs))
	}
	args, o, err := i.evalArgs(argExprs)
	if err != nil {
		return Outcome{}, err
	}
	if o != nil {
		return *o, nil
	}
	result, err := b.Call(args)
	if err != nil {
		return Outcome{}, diag.New(diag.InvalidType, pos, "%v", err)
	}
	return Normal(result), nil
}

// evalArgs evaluates argExprs left-to-right. If any argument produces
// a non-Normal outcome (a control-flow escape from inside an argument
// expression, e.g. `f(return 1)`), evaluation stops and that outcome
// is returned to be propagated by the caller.
func (i *Interpreter) evalArgs(argExprs []ast.Expr) ([]value.Value, *Outcome, error) {
	vals := make([]value.Value, 0, len(argExprs))
	for _, ae := range argExprs {
		o, err := i.visitExpr(ae)
		if err != nil {
			return nil, nil, err
		}
		if !o.IsNormal() {
			return nil, &o, nil
		}
		vals = append(vals, o.Value)
	}
	return vals, nil, nil
}

// visitFunction runs fn's body in a fresh scope with its parameters
// bound: Normal continues to the next statement, Return ends the call
// projected to Normal, Break/Continue cannot cross a function boundary
// and become errors.
func (i *Interpreter) visitFunction(fn *ast.Function, args []value.Value) (Outcome, error) {
	return i.ctx.CallScoped(func() (Outcome, error) {
		for idx, spec := range fn.Args {
			i.ctx.StoreTop(spec.Name, args[idx])
		}
		last := value.Value(value.None{})
		for _, stmt := range fn.Body.Stmts {
			o, err := i.visitStmt(stmt)
			if err != nil {
				return Outcome{}, err
			}
			switch o.Signal {
			case SigNormal:
				last = o.Value
			case SigReturn:
				return Normal(o.Value), nil
			case SigBreak:
				return Outcome{}, diag.At(diag.BreakInWrongContext, o.Position)
			case SigContinue:
				return Outcome{}, diag.At(diag.ContinueInWrongContext, o.Position)
			}
		}
		return Normal(last), nil
	})
}
