package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteText_Solved(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, buildTestResult(t)); err != nil {
		t.Fatalf("WriteText returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Initial Grid:\n\nB o o\no o o\no o o\n",
		"Solution:\n\nB A B\nB o A\nA o B\n",
		"Strategy: permutations",
		"Targets: (2, 3)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteText_Unsolved(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, buildUnsolvedResult()); err != nil {
		t.Fatalf("WriteText returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "No solution found") {
		t.Errorf("expected no-solution notice, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "Solution:") {
		t.Error("unsolved output must not print a solution grid")
	}
}

func TestSaveText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showstopper_4_solved.txt")
	if err := SaveText(path, buildTestResult(t)); err != nil {
		t.Fatalf("SaveText returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Puzzle: showstopper_4") {
		t.Errorf("unexpected file content:\n%s", data)
	}
}
