package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// SolutionInfo holds the data encoded into the solution QR code.
type SolutionInfo struct {
	ID         string         `json:"id"`
	Puzzle     string         `json:"puzzle"`
	Grid       []string       `json:"grid"`
	Strategy   model.Strategy `json:"strategy"`
	Candidates int            `json:"candidates"`
}

// CollectSolutionInfo extracts the QR payload from a solved result.
func CollectSolutionInfo(result model.SolveResult) (SolutionInfo, error) {
	grid, err := solvedBoard(result)
	if err != nil {
		return SolutionInfo{}, err
	}
	return SolutionInfo{
		ID:         result.ID,
		Puzzle:     result.Puzzle.Name,
		Grid:       grid.Strings(),
		Strategy:   result.Strategy,
		Candidates: result.Candidates,
	}, nil
}

// renderSolutionQR draws a QR code of the solution with its caption at (x, y).
func renderSolutionQR(pdf *fpdf.Fpdf, result model.SolveResult, x, y float64) error {
	info, err := CollectSolutionInfo(result)
	if err != nil {
		return err
	}

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal solution info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_solution_" + info.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x, y+qrSize)
	pdf.CellFormat(qrSize, 3, "Solution "+info.ID, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return nil
}
