// Package diagrender renders a diag.Error against its source text as a
// source-line snippet with a single caret under the error column (the
// rest of the offending token is not underlined), the line-oriented
// diagnostic printer
// Wisdom's CLI collaborators use to show where a program went wrong.
package diagrender

import (
	"fmt"
	"strings"

	"github.com/Stringy/wisdom/internal/diag"
)

// Render formats err against src as a multi-line string: the offending
// source line followed by a caret under the error column.
func Render(src string, err *diag.Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error: %s\n", err.Message)
	fmt.Fprintf(&b, "  --> %s\n", err.Position)

	line := sourceLine(src, err.Position.Line)
	if line == "" {
		return b.String()
	}

	fmt.Fprintf(&b, "   |\n")
	fmt.Fprintf(&b, "%3d| %s\n", err.Position.Line, line)
	b.WriteString("   | ")
	b.WriteString(caretLine(line, err.Position.Column))
	b.WriteString("\n")
	return b.String()
}

func sourceLine(src string, lineNo int) string {
	lines := strings.Split(src, "\n")
	idx := lineNo - 1
	if idx < 0 || idx >= len(lines) {
		return ""
	}
	return lines[idx]
}

// caretLine builds a line of spaces with a single '^' at col (1-based),
// preserving tabs in the source so the caret lines up under proportional
// or tab-expanded rendering alike.
func caretLine(line string, col int) string {
	var b strings.Builder
	for i := 0; i < col-1 && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	for i := len(line); i < col-1; i++ {
		b.WriteByte(' ')
	}
	b.WriteByte('^')
	return b.String()
}
