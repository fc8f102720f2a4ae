package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stringy/wisdom/internal/lexer"
	"github.com/Stringy/wisdom/internal/token"
)

// tokensCmd implements `wisdom tokens <file>`: tokenize a file and
// print one token per line with its position, or the same data as
// JSON with --json.
func tokensCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a Wisdom source file and print the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %q: %w", path, err)
			}

			toks, err := lexer.Tokenize(string(src), false)
			if err != nil {
				printErr(string(src), err)
				os.Exit(1)
			}

			if jsonOut {
				return printTokensJSON(toks)
			}
			printTokensText(toks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print tokens as JSON")
	return cmd
}

func printTokensText(toks []token.Token) {
	for _, t := range toks {
		fmt.Printf("%-12s %-20q %s\n", t.Kind, t.Literal, t.Position)
	}
}

type tokenJSON struct {
	Kind    string `json:"kind"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func printTokensJSON(toks []token.Token) error {
	out := make([]tokenJSON, len(toks))
	for i, t := range toks {
		out[i] = tokenJSON{
			Kind:    t.Kind.String(),
			Literal: t.Literal,
			Line:    t.Position.Line,
			Column:  t.Position.Column,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
