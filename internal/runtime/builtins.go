package runtime

import (
	"fmt"
	"io"

	"github.com/Stringy/wisdom/internal/ast"
	"github.com/Stringy/wisdom/internal/diag"
	"github.com/Stringy/wisdom/internal/parser"
	"github.com/Stringy/wisdom/internal/token"
	"github.com/Stringy/wisdom/internal/value"
)

// registerBuiltins installs the built-in functions directly into the
// interpreter's builtin table (not the global scope): visitCall only
// reaches a builtin when the name is not bound in any scope, so a user
// definition always shadows a built-in of the same name.
func (i *Interpreter) registerBuiltins() {
	i.builtins = map[string]Builtin{
		"print": {
			FnName:  "print",
			FnArity: -1,
			Call: func(args []value.Value) (value.Value, error) {
				for _, a := range args {
					fmt.Fprint(i.out, a.Display())
				}
				fmt.Fprint(i.out, "\n")
				return value.None{}, nil
			},
		},
		"ast": {
			FnName:  "ast",
			FnArity: 1,
			Call:    builtinAST,
		},
	}
}

// builtinAST implements `ast(s)`: parse s as a single statement and
// return its pretty-printed tree as a String. A non-String argument is
// InvalidType; a parse failure propagates the parser's diag.Error
// unchanged so its position points into s.
func builtinAST(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, &diag.Error{Kind: diag.InvalidType, Position: token.DefaultPosition,
			Message: "ast() expects a String argument"}
	}
	p := parser.NewFromSource(string(s))
	stmt, err := p.ParseStmt()
	if err != nil {
		return nil, err
	}
	return value.String(ast.Sprint(stmt)), nil
}

// SetOutput redirects print()'s destination. Used by collaborators
// that want to capture or silence interpreter output (tests, non-REPL
// tooling) instead of writing straight to the process's stdout.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}
