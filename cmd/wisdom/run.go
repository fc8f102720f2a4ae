package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Stringy/wisdom/internal/runtime"
)

// runCmd implements `wisdom run <file>`: read a file, evaluate it as a
// script, and print the resulting value's display form.
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Wisdom source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %q: %w", path, err)
			}

			interp := runtime.NewInterpreter(os.Stdout)
			result, err := interp.EvalScript(string(src))
			if err != nil {
				printErr(string(src), err)
				os.Exit(1)
			}
			fmt.Println(result.Display())
			return nil
		},
	}
}
