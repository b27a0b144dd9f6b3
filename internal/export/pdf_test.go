package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/piwi3910/LazorSolve/internal/engine"
	"github.com/piwi3910/LazorSolve/internal/model"
)

// buildTestResult solves a small refract puzzle so the exporters see real
// paths and coverage.
func buildTestResult(t *testing.T) model.SolveResult {
	t.Helper()
	p := model.Puzzle{
		Name:      "showstopper_4",
		Grid:      model.MustParseGrid("B o o", "o o o", "o o o"),
		Inventory: model.Inventory{Reflect: 3, Opaque: 3},
		Lasers:    []model.LaserState{{X: 3, Y: 6, VX: -1, VY: -1}},
		Targets:   []model.Point{{X: 2, Y: 3}},
	}
	logger, _ := test.NewNullLogger()
	result, err := engine.New(model.DefaultSettings(), engine.WithLogger(logger)).Solve(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if !result.Solved {
		t.Fatal("test puzzle should be solvable")
	}
	return result
}

// buildUnsolvedResult returns a result with no placement.
func buildUnsolvedResult() model.SolveResult {
	return model.NewSolveResult(model.Puzzle{
		Name:    "stuck",
		Grid:    model.MustParseGrid("o x", "x o"),
		Lasers:  []model.LaserState{{X: 1, Y: 0, VX: 1, VY: 1}},
		Targets: []model.Point{{X: 0, Y: 4}},
	})
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solution.pdf")

	if err := ExportPDF(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
	// Two pages plus an embedded QR image
	if len(data) < 1000 {
		t.Errorf("PDF file seems too small: %d bytes", len(data))
	}
}

func TestExportPDF_UnsolvedResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unsolved.pdf")

	err := ExportPDF(path, buildUnsolvedResult())
	if !errors.Is(err, ErrUnsolved) {
		t.Fatalf("expected ErrUnsolved, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written for an unsolved result")
	}
}

func TestExportPDF_LargeBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.pdf")

	result := buildTestResult(t)
	rows := make([]string, 12)
	for i := range rows {
		rows[i] = "o x A B C o x A B C o x"
	}
	placement := model.NewPlacement(model.MustParseGrid(rows...), nil, nil)
	result.Placement = &placement

	if err := ExportPDF(path, result); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestCollectSolutionInfo(t *testing.T) {
	result := buildTestResult(t)

	info, err := CollectSolutionInfo(result)
	if err != nil {
		t.Fatalf("CollectSolutionInfo returned error: %v", err)
	}
	if info.Puzzle != "showstopper_4" {
		t.Errorf("expected puzzle name, got %q", info.Puzzle)
	}
	if len(info.Grid) != 3 {
		t.Fatalf("expected 3 grid rows, got %d", len(info.Grid))
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back SolutionInfo
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != result.ID || back.Strategy != result.Strategy {
		t.Errorf("QR payload lost fields: %+v", back)
	}

	if _, err := CollectSolutionInfo(buildUnsolvedResult()); !errors.Is(err, ErrUnsolved) {
		t.Errorf("expected ErrUnsolved, got %v", err)
	}
}
