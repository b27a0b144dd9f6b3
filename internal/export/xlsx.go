package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// Workbook sheet names.
const (
	SheetSolution = "Solution"
	SheetCoverage = "Coverage"
	SheetSummary  = "Summary"
)

// ExportXLSX writes a workbook with the solved grid (one colored cell per
// block), the lit lattice points with target flags, and a key/value summary.
func ExportXLSX(path string, result model.SolveResult) error {
	grid, err := solvedBoard(result)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSolution); err != nil {
		return err
	}
	if err := writeSolutionSheet(f, grid); err != nil {
		return fmt.Errorf("solution sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetCoverage); err != nil {
		return err
	}
	if err := writeCoverageSheet(f, result); err != nil {
		return fmt.Errorf("coverage sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if err := writeSummarySheet(f, result); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}

	return f.SaveAs(path)
}

func writeSolutionSheet(f *excelize.File, grid model.Grid) error {
	styles := make(map[model.BlockKind]int, len(blockColors))
	for kind, col := range blockColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{col.hex()}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Font:      &excelize.Font{Bold: kind.Placeable()},
		})
		if err != nil {
			return err
		}
		styles[kind] = style
	}

	for r, row := range grid.Cells {
		for c, kind := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetSolution, cell, string(kind.Code())); err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetSolution, cell, cell, styles[kind]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCoverageSheet(f *excelize.File, result model.SolveResult) error {
	targets := make(map[model.Point]bool, len(result.Puzzle.Targets))
	for _, t := range result.Puzzle.Targets {
		targets[t] = true
	}

	rows := [][]interface{}{{"X", "Y", "Target"}}
	for _, p := range result.Coverage {
		target := ""
		if targets[p] {
			target = "yes"
		}
		rows = append(rows, []interface{}{p.X, p.Y, target})
	}
	return setRows(f, SheetCoverage, rows)
}

func writeSummarySheet(f *excelize.File, result model.SolveResult) error {
	rows := [][]interface{}{
		{"Puzzle", result.Puzzle.Name},
		{"Result ID", result.ID},
		{"Solved", result.Solved},
		{"Strategy", string(result.Strategy)},
		{"Reflect Blocks", result.Puzzle.Inventory.Reflect},
		{"Opaque Blocks", result.Puzzle.Inventory.Opaque},
		{"Refract Blocks", result.Puzzle.Inventory.Refract},
		{"Open Cells", len(result.Puzzle.Grid.OpenCells())},
		{"Fixed Cells", result.Puzzle.Grid.Count(model.BlockFixed)},
		{"Lasers", len(result.Puzzle.Lasers)},
		{"Targets", len(result.Puzzle.Targets)},
		{"Points Lit", len(result.Coverage)},
		{"Candidates", result.Candidates},
		{"Skipped", result.Skipped},
		{"Elapsed (s)", result.Elapsed.Seconds()},
	}
	return setRows(f, SheetSummary, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
