package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/Stringy/wisdom/internal/runtime"
)

// replCmd implements `wisdom repl`: one call to Interpreter.EvalScript
// per accepted input, with multi-line continuation while braces are
// unbalanced, backed by github.com/chzyer/readline for history and
// editing.
func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive Wisdom REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	cfg := loadReplConfig()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cfg.Prompt,
		HistoryFile:       cfg.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), cfg.Greeting)
	fmt.Fprintln(rl.Stdout())

	interp := runtime.NewInterpreter(rl.Stdout())
	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt("...     ")
		} else {
			rl.SetPrompt(cfg.Prompt)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if braceDepth > 0 {
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintln(rl.Stdout(), "(use 'exit' or Ctrl+D to quit)")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		if braceDepth == 0 && strings.TrimSpace(line) == "exit" {
			break
		}

		braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		source := accumulated.String()
		accumulated.Reset()

		if strings.TrimSpace(source) == "" {
			continue
		}

		// An accepted input block may hold more than one statement
		// (e.g. "let a = 1; a", or several physical lines joined by
		// brace continuation), so it is run as a script rather than a
		// single EvalLine call, which would silently drop the rest.
		result, err := interp.EvalScript(source)
		if err != nil {
			printErr(source, err)
			continue
		}
		fmt.Fprintln(rl.Stdout(), result.Display())
	}
	return nil
}
