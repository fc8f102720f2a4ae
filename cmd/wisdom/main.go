// Command wisdom is the CLI entry point for the Wisdom scripting
// language: the REPL, file runner, and AST/token inspection tools.
//
// Usage:
//
//	wisdom run    <file>            Run a source file
//	wisdom repl                     Start the interactive REPL
//	wisdom tokens <file> [--json]   Tokenize and print the token stream
//	wisdom ast    <file>            Parse and print the AST as JSON
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
