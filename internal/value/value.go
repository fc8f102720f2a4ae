// Package value implements Wisdom's runtime value algebra: the tagged
// union of values a Wisdom program can produce, plus the arithmetic,
// comparison, logical, and bitwise dispatch rules between them.
//
// It is kept separate from internal/runtime so internal/ast can embed a
// Value in a literal expression node without importing the evaluator.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the concrete type a Value holds.
type Kind int

const (
	IntKind Kind = iota
	FloatKind
	BoolKind
	StringKind
	NamedKind
	FuncKind
	NoneKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case NamedKind:
		return "named"
	case FuncKind:
		return "func"
	case NoneKind:
		return "none"
	default:
		return "unknown"
	}
}

// Value is any Wisdom runtime value.
type Value interface {
	Kind() Kind
	// Display renders the value the way `print` shows it.
	Display() string
	fmt.Stringer
}

// Int is a 64-bit signed integer value.
type Int int64

func (Int) Kind() Kind          { return IntKind }
func (i Int) Display() string   { return strconv.FormatInt(int64(i), 10) }
func (i Int) String() string    { return i.Display() }

// Float is a 64-bit floating point value.
type Float float64

func (Float) Kind() Kind { return FloatKind }
func (f Float) Display() string {
	if math.IsInf(float64(f), 1) {
		return "inf"
	}
	if math.IsInf(float64(f), -1) {
		return "-inf"
	}
	if math.IsNaN(float64(f)) {
		return "nan"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}
func (f Float) String() string { return f.Display() }

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind        { return BoolKind }
func (b Bool) Display() string { return strconv.FormatBool(bool(b)) }
func (b Bool) String() string  { return b.Display() }

// String is a text value. Display renders it without surrounding quotes.
type String string

func (String) Kind() Kind        { return StringKind }
func (s String) Display() string { return string(s) }
func (s String) String() string  { return s.Display() }

// Named is an opaque, named runtime value that is neither a primitive nor
// a function (e.g. a built-in handle). It carries no state of its own
// beyond its name; equality is by name.
type Named string

func (Named) Kind() Kind        { return NamedKind }
func (n Named) Display() string { return "<" + string(n) + ">" }
func (n Named) String() string  { return n.Display() }

// Callable is satisfied by anything the evaluator can invoke: a
// user-defined Wisdom function or a built-in. The evaluator owns the call
// mechanics; Func here is only the data Value needs to describe one.
type Callable interface {
	Name() string
	Arity() int
}

// Func wraps a Callable so it can flow through the Value algebra (e.g. be
// assigned to a variable, compared for identity, or printed).
type Func struct {
	Fn Callable
}

func (Func) Kind() Kind { return FuncKind }
func (f Func) Display() string {
	return fmt.Sprintf("<fn %s/%d>", f.Fn.Name(), f.Fn.Arity())
}
func (f Func) String() string { return f.Display() }

// None is Wisdom's unit value: the result of statements and expressions
// that produce nothing meaningful.
type None struct{}

func (None) Kind() Kind        { return NoneKind }
func (None) Display() string   { return "none" }
func (n None) String() string  { return n.Display() }

// Error reports a runtime type error: an operation applied to operand
// kinds it does not support. The evaluator wraps this in a diag.Error
// (Kind: InvalidType) with a source position; Error here only describes
// what went wrong between two values.
type Error struct {
	Op       string
	Operands []Kind
}

func (e *Error) Error() string {
	kinds := make([]string, len(e.Operands))
	for i, k := range e.Operands {
		kinds[i] = k.String()
	}
	return fmt.Sprintf("invalid operand type(s) for %q: %s", e.Op, strings.Join(kinds, ", "))
}

func typeErr(op string, vs ...Value) *Error {
	kinds := make([]Kind, len(vs))
	for i, v := range vs {
		kinds[i] = v.Kind()
	}
	return &Error{Op: op, Operands: kinds}
}

// Truthy reports whether v is considered true in a boolean context.
// Bool follows its own value; Int/Float are truthy when non-zero;
// String is truthy when non-empty; None is always false; Named and Func
// are always true.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Int:
		return x != 0
	case Float:
		return x != 0
	case String:
		return len(x) > 0
	case None:
		return false
	default:
		return true
	}
}

func asFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x), true
	case Float:
		return float64(x), true
	default:
		return 0, false
	}
}

// numericPair promotes a and b to a common numeric representation: if
// either is a Float, both are treated as float64; otherwise both are
// treated as int64. ok is false if either operand is non-numeric.
func numericPair(a, b Value) (af, bf float64, ai, bi int64, isFloat, ok bool) {
	ai0, aInt := a.(Int)
	bi0, bInt := b.(Int)
	af0, aIsNum := asFloat(a)
	bf0, bIsNum := asFloat(b)
	if !aIsNum || !bIsNum {
		return 0, 0, 0, 0, false, false
	}
	if aInt && bInt {
		return 0, 0, int64(ai0), int64(bi0), false, true
	}
	return af0, bf0, 0, 0, true, true
}

// Add implements '+': numeric addition with int/float promotion, and
// string concatenation when both operands are String.
func Add(a, b Value) (Value, error) {
	if as, ok := a.(String); ok {
		if bs, ok := b.(String); ok {
			return as + bs, nil
		}
	}
	af, bf, ai, bi, isFloat, ok := numericPair(a, b)
	if !ok {
		return nil, typeErr("+", a, b)
	}
	if isFloat {
		return Float(af + bf), nil
	}
	return Int(ai + bi), nil
}

// Sub implements '-'.
func Sub(a, b Value) (Value, error) {
	af, bf, ai, bi, isFloat, ok := numericPair(a, b)
	if !ok {
		return nil, typeErr("-", a, b)
	}
	if isFloat {
		return Float(af - bf), nil
	}
	return Int(ai - bi), nil
}

// Mul implements '*'.
func Mul(a, b Value) (Value, error) {
	af, bf, ai, bi, isFloat, ok := numericPair(a, b)
	if !ok {
		return nil, typeErr("*", a, b)
	}
	if isFloat {
		return Float(af * bf), nil
	}
	return Int(ai * bi), nil
}

// Div implements '/'. Division is always float division, regardless of
// operand types, per Wisdom's language design (no separate integer
// division operator).
func Div(a, b Value) (Value, error) {
	af, bf, ok := numeric2(a, b)
	if !ok {
		return nil, typeErr("/", a, b)
	}
	return Float(af / bf), nil
}

func numeric2(a, b Value) (float64, float64, bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return af, bf, aok && bok
}

// Mod implements '%'. Both operands must be Int; the result has the sign
// of Go's '%' operator (truncated division remainder).
func Mod(a, b Value) (Value, error) {
	ai, aok := a.(Int)
	bi, bok := b.(Int)
	if !aok || !bok {
		return nil, typeErr("%", a, b)
	}
	if bi == 0 {
		return nil, typeErr("% by zero", a, b)
	}
	return ai % bi, nil
}

// compareNumeric returns -1/0/1 for numeric a<b/a==b/a>b.
func compareNumeric(a, b Value) (int, bool) {
	af, bf, ai, bi, isFloat, ok := numericPair(a, b)
	if !ok {
		return 0, false
	}
	if isFloat {
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}
	switch {
	case ai < bi:
		return -1, true
	case ai > bi:
		return 1, true
	default:
		return 0, true
	}
}

// Eq implements '=='. Numeric operands compare by value across int/float;
// other kinds compare only against their own kind.
func Eq(a, b Value) (Value, error) {
	if c, ok := compareNumeric(a, b); ok {
		return Bool(c == 0), nil
	}
	switch x := a.(type) {
	case Bool:
		y, ok := b.(Bool)
		return Bool(ok && x == y), nil
	case String:
		y, ok := b.(String)
		return Bool(ok && x == y), nil
	case Named:
		y, ok := b.(Named)
		return Bool(ok && x == y), nil
	case None:
		_, ok := b.(None)
		return Bool(ok), nil
	default:
		return Bool(false), nil
	}
}

// NotEq implements '!='.
func NotEq(a, b Value) (Value, error) {
	eq, err := Eq(a, b)
	if err != nil {
		return nil, err
	}
	return Bool(!bool(eq.(Bool))), nil
}

func compareOp(op string, a, b Value, pick func(c int) bool) (Value, error) {
	c, ok := compareNumeric(a, b)
	if ok {
		return Bool(pick(c)), nil
	}
	if as, aok := a.(String); aok {
		if bs, bok := b.(String); bok {
			return Bool(pick(strings.Compare(string(as), string(bs)))), nil
		}
	}
	return nil, typeErr(op, a, b)
}

// Lt implements '<'.
func Lt(a, b Value) (Value, error) { return compareOp("<", a, b, func(c int) bool { return c < 0 }) }

// LtEq implements '<='.
func LtEq(a, b Value) (Value, error) {
	return compareOp("<=", a, b, func(c int) bool { return c <= 0 })
}

// Gt implements '>'.
func Gt(a, b Value) (Value, error) { return compareOp(">", a, b, func(c int) bool { return c > 0 }) }

// GtEq implements '>='.
func GtEq(a, b Value) (Value, error) {
	return compareOp(">=", a, b, func(c int) bool { return c >= 0 })
}

// And implements '&&' as a short-circuit-free truthiness combination of
// two already-evaluated values. The evaluator does not call it: it
// evaluates '&&' and '||' itself so it can short-circuit.
func And(a, b Value) (Value, error) {
	return Bool(Truthy(a) && Truthy(b)), nil
}

// Or implements '||'.
func Or(a, b Value) (Value, error) {
	return Bool(Truthy(a) || Truthy(b)), nil
}

// BinAnd implements bitwise '&'. Both operands must be Int.
func BinAnd(a, b Value) (Value, error) {
	ai, aok := a.(Int)
	bi, bok := b.(Int)
	if !aok || !bok {
		return nil, typeErr("&", a, b)
	}
	return ai & bi, nil
}

// BinOr implements bitwise '|'.
func BinOr(a, b Value) (Value, error) {
	ai, aok := a.(Int)
	bi, bok := b.(Int)
	if !aok || !bok {
		return nil, typeErr("|", a, b)
	}
	return ai | bi, nil
}

// BinXor implements bitwise '^'.
func BinXor(a, b Value) (Value, error) {
	ai, aok := a.(Int)
	bi, bok := b.(Int)
	if !aok || !bok {
		return nil, typeErr("^", a, b)
	}
	return ai ^ bi, nil
}

// Neg implements unary '-'.
func Neg(v Value) (Value, error) {
	switch x := v.(type) {
	case Int:
		return -x, nil
	case Float:
		return -x, nil
	default:
		return nil, typeErr("unary -", v)
	}
}

// Not implements unary '!', logical negation via truthiness.
func Not(v Value) (Value, error) {
	return Bool(!Truthy(v)), nil
}
