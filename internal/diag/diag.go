// Package diag defines Wisdom's single diagnostic error type: every
// tokenizer, parser, and evaluator failure surfaces as a *diag.Error
// carrying a Kind and a source Position.
package diag

import (
	"fmt"

	"github.com/Stringy/wisdom/internal/token"
)

// Kind is the closed set of ways a Wisdom program can fail to tokenize,
// parse, or evaluate.
type Kind int

const (
	InvalidChar Kind = iota
	InvalidToken
	InvalidLit
	UnexpectedEOL
	UnmatchedExpr
	ExpectedOperator
	ExpectedIdent
	ExpectSemiColon
	ExpectedTokens
	UndefinedVar
	InvalidType
	InvalidAssignment
	NotCallable
	UnexpectedArgs
	BreakInWrongContext
	ContinueInWrongContext
	IOError
)

var kindNames = map[Kind]string{
	InvalidChar:            "invalid character",
	InvalidToken:           "invalid token",
	InvalidLit:             "invalid literal",
	UnexpectedEOL:          "unexpected end of input",
	UnmatchedExpr:          "unmatched expression",
	ExpectedOperator:       "expected operator",
	ExpectedIdent:          "expected identifier",
	ExpectSemiColon:        "expected ';'",
	ExpectedTokens:         "expected token",
	UndefinedVar:           "undefined variable",
	InvalidType:            "invalid type",
	InvalidAssignment:      "invalid assignment target",
	NotCallable:            "value is not callable",
	UnexpectedArgs:         "unexpected number of arguments",
	BreakInWrongContext:    "break outside of a loop",
	ContinueInWrongContext: "continue outside of a loop",
	IOError:                "I/O error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is a single positioned diagnostic. It is returned by every stage
// of Wisdom — tokenizer, parser, evaluator — as a plain Go error.
type Error struct {
	Kind     Kind
	Position token.Position
	Message  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s", e.Position, e.Kind)
	}
	return fmt.Sprintf("%s %s", e.Position, e.Message)
}

// New builds an Error of the given kind at pos with a formatted message.
func New(kind Kind, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// At builds an Error of the given kind at pos using the kind's default
// message text.
func At(kind Kind, pos token.Position) *Error {
	return &Error{Kind: kind, Position: pos, Message: kind.String()}
}
