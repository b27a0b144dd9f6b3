package importer

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/piwi3910/LazorSolve/internal/model"
)

const yarnBFF = `# yarn_5 from the Lazor level pack
# o = open, x = no block allowed, A/B/C = fixed blocks

GRID START
o B x o o
o o o o o
o x o o o
o x o o x
o o x x o
B o x o o
GRID STOP

A 8

L 4 1 1 1

P 6 9
P 9 2
`

func TestParseBFF_Yarn(t *testing.T) {
	res := ParseBFF(strings.NewReader(yarnBFF), "yarn_5")

	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}

	p := res.Puzzle
	if p.Name != "yarn_5" {
		t.Errorf("expected name yarn_5, got %q", p.Name)
	}
	if p.Grid.Rows() != 6 || p.Grid.Cols() != 5 {
		t.Errorf("expected 6x5 grid, got %dx%d", p.Grid.Rows(), p.Grid.Cols())
	}
	if p.Grid.At(model.Cell{Row: 0, Col: 1}) != model.BlockOpaque {
		t.Errorf("expected fixed opaque block at (0,1)")
	}
	if p.Inventory != (model.Inventory{Reflect: 8}) {
		t.Errorf("unexpected inventory %s", p.Inventory)
	}
	wantLasers := []model.LaserState{{X: 4, Y: 1, VX: 1, VY: 1}}
	if !reflect.DeepEqual(p.Lasers, wantLasers) {
		t.Errorf("expected lasers %v, got %v", wantLasers, p.Lasers)
	}
	wantTargets := []model.Point{{X: 6, Y: 9}, {X: 9, Y: 2}}
	if !reflect.DeepEqual(p.Targets, wantTargets) {
		t.Errorf("expected targets %v, got %v", wantTargets, p.Targets)
	}
}

func TestParseBFF_GridRowsStartingWithInventoryLetters(t *testing.T) {
	content := "GRID START\nA o\nB C\nGRID STOP\nA 1\nL 1 0 1 1\nP 3 2\n"
	res := ParseBFF(strings.NewReader(content), "letters")

	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if got := res.Puzzle.Grid.Strings(); !reflect.DeepEqual(got, []string{"A o", "B C"}) {
		t.Errorf("unexpected grid %v", got)
	}
	if res.Puzzle.Inventory.Reflect != 1 {
		t.Errorf("expected A=1, got %d", res.Puzzle.Inventory.Reflect)
	}
}

func TestParseBFF_MultipleLasersAndCommentedLines(t *testing.T) {
	content := `GRID START
o o o
o o o
GRID STOP
A 1
B 1 # trailing comment drops the whole line
C 1
L 0 1 1 1
L 6 3 -1 -1
P 3 2
`
	res := ParseBFF(strings.NewReader(content), "multi")
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Puzzle.Inventory != (model.Inventory{Reflect: 1, Refract: 1}) {
		t.Errorf("unexpected inventory %s", res.Puzzle.Inventory)
	}
	if len(res.Puzzle.Lasers) != 2 {
		t.Fatalf("expected 2 lasers, got %d", len(res.Puzzle.Lasers))
	}
	if res.Puzzle.Lasers[1].VX != -1 {
		t.Errorf("expected negative velocity, got %d", res.Puzzle.Lasers[1].VX)
	}
}

func TestParseBFF_InvalidNumber(t *testing.T) {
	content := "GRID START\no o\nGRID STOP\nA two\nL 1 0 1 1\n"
	res := ParseBFF(strings.NewReader(content), "bad")

	if res.OK() {
		t.Fatal("expected an error for a non-numeric count")
	}
	if !strings.Contains(res.Errors[0], "Line 4") {
		t.Errorf("error should name the line, got %q", res.Errors[0])
	}
}

func TestParseBFF_WrongArity(t *testing.T) {
	content := "GRID START\no o\nGRID STOP\nL 1 0 1\n"
	res := ParseBFF(strings.NewReader(content), "bad")

	if res.OK() {
		t.Fatal("expected an error for a short laser line")
	}
}

func TestParseBFF_UnknownLineWarns(t *testing.T) {
	content := "GRID START\no o\nGRID STOP\nZ 3\nL 1 0 1 1\nP 3 2\n"
	res := ParseBFF(strings.NewReader(content), "warn")

	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", res.Warnings)
	}
}

func TestParseBFF_MissingGrid(t *testing.T) {
	res := ParseBFF(strings.NewReader("A 1\nL 1 0 1 1\n"), "nogrid")
	if res.OK() {
		t.Fatal("expected error for missing grid")
	}
}

func TestParseBFF_UnterminatedGrid(t *testing.T) {
	res := ParseBFF(strings.NewReader("GRID START\no o\n"), "open")
	if res.OK() {
		t.Fatal("expected error for unterminated grid")
	}
}

func TestParseBFF_RaggedGrid(t *testing.T) {
	res := ParseBFF(strings.NewReader("GRID START\no o\no\nGRID STOP\nL 1 0 1 1\n"), "ragged")
	if res.OK() {
		t.Fatal("expected error for ragged grid")
	}
}

func TestParseBFF_InventoryExceedsOpenCells(t *testing.T) {
	content := "GRID START\no x\nGRID STOP\nA 2\nL 1 0 1 1\nP 1 0\n"
	res := ParseBFF(strings.NewReader(content), "full")

	if res.OK() {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(res.Errors[0], "invalid puzzle") {
		t.Errorf("expected validation error, got %q", res.Errors[0])
	}
}

func TestParseBFF_NoTargetsWarns(t *testing.T) {
	res := ParseBFF(strings.NewReader("GRID START\no o\nGRID STOP\nL 1 0 1 1\n"), "free")
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Errorf("expected a no-targets warning, got %v", res.Warnings)
	}
}

func TestImportBFF_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yarn_5.bff")
	if err := os.WriteFile(path, []byte(yarnBFF), 0644); err != nil {
		t.Fatal(err)
	}

	res := ImportBFF(path)
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Puzzle.Name != "yarn_5" {
		t.Errorf("expected name from file, got %q", res.Puzzle.Name)
	}
}

func TestImportBFF_FileNotFound(t *testing.T) {
	res := ImportBFF("/nonexistent/puzzle.bff")
	if res.OK() {
		t.Fatal("expected error for missing file")
	}
}
