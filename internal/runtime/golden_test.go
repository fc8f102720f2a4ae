package runtime

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// goldenTest runs a .wis script and compares its printed output to a
// .expected file, both under ../../testdata.
func goldenTest(t *testing.T, name string) {
	t.Helper()

	srcPath := filepath.Join("..", "..", "testdata", name+".wis")
	expectedPath := filepath.Join("..", "..", "testdata", name+".expected")

	source, err := os.ReadFile(srcPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", srcPath, err)
	}
	expected, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("failed to read %s: %v", expectedPath, err)
	}

	var buf bytes.Buffer
	interp := NewInterpreter(&buf)
	if _, err := interp.EvalScript(string(source)); err != nil {
		t.Fatalf("runtime error: %v", err)
	}

	gotStr := strings.TrimRight(buf.String(), "\n")
	expectedStr := strings.TrimRight(string(expected), "\n")

	if gotStr != expectedStr {
		expectedLines := strings.Split(expectedStr, "\n")
		gotLines := strings.Split(gotStr, "\n")

		t.Errorf("output mismatch for %s", name)
		maxLines := len(expectedLines)
		if len(gotLines) > maxLines {
			maxLines = len(gotLines)
		}
		for i := 0; i < maxLines; i++ {
			var exp, g string
			if i < len(expectedLines) {
				exp = expectedLines[i]
			} else {
				exp = "<missing>"
			}
			if i < len(gotLines) {
				g = gotLines[i]
			} else {
				g = "<missing>"
			}
			prefix := "  "
			if exp != g {
				prefix = "! "
			}
			t.Logf("%sline %d: expected=%q got=%q", prefix, i+1, exp, g)
		}
	}
}

func TestGoldenFib(t *testing.T) {
	goldenTest(t, "golden_fib")
}

func TestGoldenLoops(t *testing.T) {
	goldenTest(t, "golden_loops")
}

func TestGoldenStrings(t *testing.T) {
	goldenTest(t, "golden_strings")
}
