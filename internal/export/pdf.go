package export

import (
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 12.0
	qrSize       = 40.0
	drawAreaTop  = marginTop + headerHeight + statsHeight
)

// ExportPDF renders the solved board on the first page (blocks, laser paths,
// origins and targets, with a QR code of the solution) and a summary of
// the placed blocks and targets on the second.
func ExportPDF(path string, result model.SolveResult) error {
	grid, err := solvedBoard(result)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderBoardPage(pdf, result, grid)
	if err := renderSolutionQR(pdf, result, pageWidth-marginRight-qrSize, pageHeight-marginBottom-qrSize-6); err != nil {
		return err
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderBoardPage draws the board scaled to the page width.
func renderBoardPage(pdf *fpdf.Fpdf, result model.SolveResult, grid model.Grid) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Lazor: %s (%d x %d)", result.Puzzle.Name, grid.Rows(), grid.Cols())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Blocks: %s | Lasers: %d | Targets: %d | Strategy: %s | Candidates: %d | Time: %s",
		result.Puzzle.Inventory, len(result.Puzzle.Lasers), len(result.Puzzle.Targets),
		result.Strategy, result.Candidates, result.Elapsed.Round(time.Millisecond))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - qrSize - 12

	// One lattice unit is half a cell.
	unit := math.Min(drawWidth/float64(2*grid.Cols()), drawHeight/float64(2*grid.Rows()))
	canvasW := float64(2*grid.Cols()) * unit
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop
	at := func(p model.Point) (float64, float64) {
		return offsetX + float64(p.X)*unit, offsetY + float64(p.Y)*unit
	}

	for r, row := range grid.Cells {
		for c, kind := range row {
			col := blockColors[kind]
			x, y := at(model.Point{X: 2 * c, Y: 2 * r})
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(90, 90, 90)
			pdf.SetLineWidth(0.3)
			pdf.Rect(x, y, 2*unit, 2*unit, "FD")

			if isPlaced(result, model.Cell{Row: r, Col: c}) {
				// Placed blocks get a heavier outline than the fixed ones.
				pdf.SetDrawColor(0, 0, 0)
				pdf.SetLineWidth(0.9)
				pdf.Rect(x+0.6, y+0.6, 2*unit-1.2, 2*unit-1.2, "D")
			}
			if unit > 4 {
				pdf.SetFont("Helvetica", "B", labelFontSize(unit))
				if kind == model.BlockOpaque {
					pdf.SetTextColor(255, 255, 255)
				} else {
					pdf.SetTextColor(0, 0, 0)
				}
				pdf.SetXY(x, y+unit-2)
				pdf.CellFormat(2*unit, 4, string(kind.Code()), "", 0, "C", false, 0, "")
			}
		}
	}
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(laserColor.R, laserColor.G, laserColor.B)
	pdf.SetLineWidth(0.6)
	for _, path := range result.Paths {
		for i := 1; i < len(path); i++ {
			x1, y1 := at(path[i-1])
			x2, y2 := at(path[i])
			pdf.Line(x1, y1, x2, y2)
		}
	}

	pdf.SetFillColor(laserColor.R, laserColor.G, laserColor.B)
	for _, l := range result.Puzzle.Lasers {
		x, y := at(l.Position())
		pdf.Circle(x, y, unit*0.25, "F")
	}

	pdf.SetLineWidth(0.5)
	hits := targetHits(result)
	for _, t := range result.Puzzle.Targets {
		col := targetMissed
		if hits[t] {
			col = targetHitColor
		}
		x, y := at(t)
		pdf.SetDrawColor(col.R, col.G, col.B)
		pdf.Circle(x, y, unit*0.35, "D")
	}

	drawLegend(pdf, pageHeight-marginBottom-qrSize-6)
}

// drawLegend renders block color swatches in a column at the bottom left.
func drawLegend(pdf *fpdf.Fpdf, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Legend:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	y := startY + 5
	for _, kind := range []model.BlockKind{model.BlockOpen, model.BlockFixed, model.BlockReflect, model.BlockOpaque, model.BlockRefract} {
		col := blockColors[kind]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(90, 90, 90)
		pdf.SetLineWidth(0.2)
		pdf.Rect(marginLeft, y+0.5, 3, 3, "FD")
		pdf.SetXY(marginLeft+4, y)
		pdf.CellFormat(60, 4, fmt.Sprintf("%c  %s", kind.Code(), kind), "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetDrawColor(laserColor.R, laserColor.G, laserColor.B)
	pdf.SetLineWidth(0.6)
	pdf.Line(marginLeft, y+2, marginLeft+3, y+2)
	pdf.SetXY(marginLeft+4, y)
	pdf.CellFormat(60, 4, "Laser path", "", 0, "L", false, 0, "")
}

// renderSummaryPage lists the placed blocks and the target status.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.SolveResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Solution Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Puzzle", result.Puzzle.Name},
		{"Result ID", result.ID},
		{"Strategy", string(result.Strategy)},
		{"Placements Evaluated", fmt.Sprintf("%d", result.Candidates)},
		{"Duplicates Skipped", fmt.Sprintf("%d", result.Skipped)},
		{"Points Lit", fmt.Sprintf("%d", len(result.Coverage))},
		{"Search Time", result.Elapsed.String()},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	y = drawTable(pdf, y, "Placed Blocks", []float64{20, 30, 30, 60},
		[]string{"#", "Row", "Column", "Block"}, placedRows(result))
	y += 8

	hits := targetHits(result)
	var targetRows [][]string
	for i, t := range result.Puzzle.Targets {
		status := "missed"
		if hits[t] {
			status = "hit"
		}
		targetRows = append(targetRows, []string{fmt.Sprintf("%d", i+1), fmt.Sprintf("%d", t.X), fmt.Sprintf("%d", t.Y), status})
	}
	drawTable(pdf, y, "Targets", []float64{20, 30, 30, 60}, []string{"#", "X", "Y", "Status"}, targetRows)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LazorSolve", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func placedRows(result model.SolveResult) [][]string {
	if result.Placement == nil {
		return nil
	}
	rows := make([][]string, 0, len(result.Placement.Blocks))
	for i, b := range result.Placement.Blocks {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", b.Cell.Row),
			fmt.Sprintf("%d", b.Cell.Col),
			fmt.Sprintf("%c (%s)", b.Kind.Code(), b.Kind),
		})
	}
	return rows
}

// drawTable renders a titled table with alternating row fills and returns
// the Y position below it.
func drawTable(pdf *fpdf.Fpdf, y float64, title string, colWidths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if y > pageHeight-marginBottom-10 {
			break
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
	return y
}

// labelFontSize returns a font size for block codes based on the lattice unit.
func labelFontSize(unit float64) float64 {
	switch {
	case unit > 15:
		return 14
	case unit > 8:
		return 10
	default:
		return 7
	}
}
