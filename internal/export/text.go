package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// WriteText writes the initial grid, the solution grid (or a no-solution
// notice) and summary lines. Unlike the drawing exporters it accepts
// unsolved results.
func WriteText(w io.Writer, result model.SolveResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Puzzle: %s\n\n", result.Puzzle.Name)
	fmt.Fprintln(bw, "Initial Grid:")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, result.Puzzle.Grid.String())
	fmt.Fprintln(bw)

	if result.Solved && result.Placement != nil {
		fmt.Fprintln(bw, "Solution:")
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, result.Placement.Grid.String())
	} else {
		fmt.Fprintln(bw, "No solution found")
	}
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "Blocks: %s\n", result.Puzzle.Inventory)
	fmt.Fprintf(bw, "Strategy: %s\n", result.Strategy)
	fmt.Fprintf(bw, "Candidates evaluated: %d (skipped %d)\n", result.Candidates, result.Skipped)
	if result.Faults > 0 {
		fmt.Fprintf(bw, "Faulted candidates: %d\n", result.Faults)
	}
	if len(result.Puzzle.Targets) > 0 {
		fmt.Fprintf(bw, "Targets: %s\n", joinPoints(result.Puzzle.Targets))
	}
	fmt.Fprintf(bw, "Points lit: %d\n", len(result.Coverage))
	fmt.Fprintf(bw, "Time: %s\n", result.Elapsed)

	return bw.Flush()
}

// SaveText writes WriteText output to path.
func SaveText(path string, result model.SolveResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteText(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func joinPoints(pts []model.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
