package runtime

import (
	"github.com/Stringy/wisdom/internal/token"
	"github.com/Stringy/wisdom/internal/value"
)

// Signal tags the kind of non-local control flow an Outcome carries.
type Signal int

const (
	// SigNormal is a plain evaluated value: no control-flow escape.
	SigNormal Signal = iota
	// SigReturn unwinds to the nearest enclosing function call.
	SigReturn
	// SigBreak unwinds to the nearest enclosing loop.
	SigBreak
	// SigContinue restarts the nearest enclosing loop.
	SigContinue
)

// Outcome is the result of evaluating any Expr or Stmt: either a normal
// value or a tagged control-flow signal carrying a payload value. Every
// evaluator method returns an Outcome so that return/break/continue
// propagate out of deep recursion without panics.
// Position is set only on Return/Break/Continue outcomes, to the
// source position of the keyword that produced them; it is used to
// report BreakInWrongContext/ContinueInWrongContext at the right spot
// when such a signal escapes every enclosing loop or function.
type Outcome struct {
	Signal   Signal
	Value    value.Value
	Position token.Position
}

// Normal wraps v as a plain evaluation result.
func Normal(v value.Value) Outcome { return Outcome{Signal: SigNormal, Value: v} }

// normalNone is the outcome produced by statements with no meaningful
// value (let, assignment, function declaration).
var normalNone = Normal(value.None{})

// breakOutcome and continueOutcome carry no payload; their Value is
// None for uniformity with Outcome.Value's type.
var breakOutcome = Outcome{Signal: SigBreak, Value: value.None{}}
var continueOutcome = Outcome{Signal: SigContinue, Value: value.None{}}

// IsNormal reports whether o carries no pending control-flow signal.
func (o Outcome) IsNormal() bool { return o.Signal == SigNormal }
