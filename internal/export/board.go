// Package export renders solved Lazor boards to text, PDF, DXF and XLSX.
//
// All drawings share the fine lattice coordinate system: a coarse cell at
// (row, col) spans lattice X 2*col..2*col+2 and Y 2*row..2*row+2, and laser
// paths are polylines through lattice points.
package export

import (
	"errors"
	"fmt"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// ErrUnsolved is returned by the drawing exporters when the result carries no placement.
var ErrUnsolved = errors.New("no solution to export")

// rgb is a fill or stroke color.
type rgb struct {
	R, G, B int
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

var blockColors = map[model.BlockKind]rgb{
	model.BlockOpen:    {R: 245, G: 245, B: 245},
	model.BlockFixed:   {R: 150, G: 150, B: 150},
	model.BlockReflect: {R: 33, G: 150, B: 243},  // blue
	model.BlockOpaque:  {R: 55, G: 55, B: 55},    // near black
	model.BlockRefract: {R: 178, G: 235, B: 242}, // glass
}

var (
	laserColor     = rgb{R: 244, G: 67, B: 54}
	targetHitColor = rgb{R: 76, G: 175, B: 80}
	targetMissed   = rgb{R: 255, G: 152, B: 0}
)

// solvedBoard returns the placement grid or ErrUnsolved.
func solvedBoard(result model.SolveResult) (model.Grid, error) {
	if !result.Solved || result.Placement == nil {
		return model.Grid{}, fmt.Errorf("%s: %w", result.Puzzle.Name, ErrUnsolved)
	}
	return result.Placement.Grid, nil
}

// targetHits pairs each target with whether the coverage reaches it.
func targetHits(result model.SolveResult) map[model.Point]bool {
	hits := make(map[model.Point]bool, len(result.Puzzle.Targets))
	for _, t := range result.Puzzle.Targets {
		hits[t] = true
	}
	for _, m := range result.MissingTargets() {
		hits[m] = false
	}
	return hits
}

// isPlaced reports whether the cell received an inventory block.
func isPlaced(result model.SolveResult, c model.Cell) bool {
	if result.Placement == nil {
		return false
	}
	for _, b := range result.Placement.Blocks {
		if b.Cell == c {
			return true
		}
	}
	return false
}
