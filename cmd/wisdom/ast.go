package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stringy/wisdom/internal/ast"
	"github.com/Stringy/wisdom/internal/lexer"
	"github.com/Stringy/wisdom/internal/parser"
)

// astCmd implements `wisdom ast <file>`: parse every statement in the
// file and print each as JSON via internal/ast.NodeToMap.
func astCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Parse a Wisdom source file and print its AST as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %q: %w", path, err)
			}

			p := parser.New(lexer.NewTokenStream(string(src)))
			var stmts []interface{}
			for !p.IsEmpty() {
				stmt, err := p.ParseStmt()
				if err != nil {
					printErr(string(src), err)
					os.Exit(1)
				}
				stmts = append(stmts, ast.NodeToMap(stmt))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stmts)
		},
	}
}
