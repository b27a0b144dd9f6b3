package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// DXF layer names.
const (
	LayerBlocks  = "BLOCKS"
	LayerLasers  = "LASERS"
	LayerTargets = "TARGETS"
)

// ExportDXF writes the solved board as a DXF drawing in lattice units.
// Every non-open cell becomes a closed square of LINE entities on the
// BLOCKS layer, laser paths are LINE segments on LASERS, and targets are
// CIRCLEs on TARGETS. DXF Y grows upward, so lattice Y is mirrored.
func ExportDXF(path string, result model.SolveResult) error {
	grid, err := solvedBoard(result)
	if err != nil {
		return err
	}

	height := float64(2 * grid.Rows())
	flip := func(p model.Point) (float64, float64) {
		return float64(p.X), height - float64(p.Y)
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerBlocks, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerBlocks, err)
	}
	for r, row := range grid.Cells {
		for c, kind := range row {
			if kind == model.BlockOpen {
				continue
			}
			if err := drawCell(d, flip, r, c); err != nil {
				return err
			}
		}
	}

	if _, err := d.AddLayer(LayerLasers, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerLasers, err)
	}
	for _, p := range result.Paths {
		for i := 1; i < len(p); i++ {
			x1, y1 := flip(p[i-1])
			x2, y2 := flip(p[i])
			if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
				return fmt.Errorf("laser segment: %w", err)
			}
		}
	}

	if _, err := d.AddLayer(LayerTargets, color.Green, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerTargets, err)
	}
	for _, t := range result.Puzzle.Targets {
		x, y := flip(t)
		if _, err := d.Circle(x, y, 0, 0.25); err != nil {
			return fmt.Errorf("target %v: %w", t, err)
		}
	}

	return d.SaveAs(path)
}

// drawCell outlines the coarse cell (r, c), two lattice units on a side.
func drawCell(d *drawing.Drawing, flip func(model.Point) (float64, float64), r, c int) error {
	corners := []model.Point{
		{X: 2 * c, Y: 2 * r},
		{X: 2*c + 2, Y: 2 * r},
		{X: 2*c + 2, Y: 2*r + 2},
		{X: 2 * c, Y: 2*r + 2},
	}
	for i := range corners {
		x1, y1 := flip(corners[i])
		x2, y2 := flip(corners[(i+1)%len(corners)])
		if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
			return fmt.Errorf("cell (%d, %d): %w", r, c, err)
		}
	}
	return nil
}
