package main

import (
	"fmt"
	"os"

	"github.com/Stringy/wisdom/internal/diag"
	"github.com/Stringy/wisdom/internal/diagrender"
)

// printErr renders err with the line-oriented caret diagnostic when it
// is one of ours and src is available, falling back to a bare message
// otherwise (e.g. IOError, where there is no source line to point at).
func printErr(src string, err error) {
	if de, ok := err.(*diag.Error); ok && src != "" {
		fmt.Fprint(os.Stderr, diagrender.Render(src, de))
		return
	}
	fmt.Fprintln(os.Stderr, "error:", err)
}
