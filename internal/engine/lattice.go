package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// Lattice is the fine coordinate system rays move through. Every coarse
// cell spans three fine coordinates per axis and neighbouring cells share
// their boundary coordinate, so a grid of R x C cells expands to
// (2R+1) x (2C+1) addresses. Odd/odd addresses are cell interiors, mixed
// parity addresses are edge midpoints, even/even addresses are corners.
//
// The label at an address concatenates the codes of the coarse cells
// touching it. Corners where four cells meet are not labeled correctly;
// unit diagonal rays starting on an edge midpoint never visit a corner.
type Lattice struct {
	labels [][]string
	kinds  [][]model.BlockKind
}

// BuildLattice expands a coarse grid into its fine lattice.
func BuildLattice(g model.Grid) (*Lattice, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	// Row expansion: the first coarse row covers fine rows 0..2, every
	// following row adds two more because it shares its top boundary.
	var expanded [][]model.BlockKind
	for r, row := range g.Cells {
		reps := 2
		if r == 0 {
			reps = 3
		}
		for i := 0; i < reps; i++ {
			expanded = append(expanded, row)
		}
	}

	labels := make([][]string, len(expanded))
	for y, row := range expanded {
		labels[y] = mergeRow(tripleCodes(row))
	}

	// Vertical boundary merge. The last even row has no row below it and
	// keeps the labels of the coarse row above.
	width := 2*g.Cols() + 1
	for y := 2; y+1 < len(labels); y += 2 {
		for x := 1; x < width-1; x++ {
			labels[y][x] = labels[y-1][x] + labels[y+1][x]
		}
	}

	l := &Lattice{labels: labels, kinds: make([][]model.BlockKind, len(labels))}
	for y, row := range labels {
		l.kinds[y] = make([]model.BlockKind, len(row))
		for x, label := range row {
			l.kinds[y][x] = classify(label)
		}
	}
	return l, nil
}

// tripleCodes spells every coarse cell as three single-character codes.
func tripleCodes(row []model.BlockKind) []byte {
	flat := make([]byte, 0, 3*len(row))
	for _, k := range row {
		c := k.Code()
		flat = append(flat, c, c, c)
	}
	return flat
}

// mergeRow folds a tripled row into fine columns. The character at each
// interior cell boundary absorbs its right neighbour, which is then skipped.
func mergeRow(flat []byte) []string {
	row := make([]string, 0, 2*len(flat)/3+1)
	for j := 0; j < len(flat); j++ {
		switch {
		case j != 0 && j%3 == 0:
			// absorbed by the boundary on its left
		case j%3 == 2 && j < len(flat)-1:
			row = append(row, string(flat[j:j+2]))
		default:
			row = append(row, string(flat[j]))
		}
	}
	return row
}

// classify resolves a label once, so the tracer never inspects strings.
func classify(label string) model.BlockKind {
	kinds := make([]model.BlockKind, 0, len(label))
	for i := 0; i < len(label); i++ {
		if k, ok := model.ParseBlockKind(label[i]); ok {
			kinds = append(kinds, k)
		}
	}
	return model.Dominant(kinds...)
}

// Rows is the number of fine rows (the Y extent).
func (l *Lattice) Rows() int { return len(l.labels) }

// Cols is the number of fine columns (the X extent).
func (l *Lattice) Cols() int {
	if len(l.labels) == 0 {
		return 0
	}
	return len(l.labels[0])
}

// Contains reports whether (x, y) lies inside the lattice bounds.
func (l *Lattice) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && y < l.Rows() && x < l.Cols()
}

// Label returns the composite label at (x, y).
func (l *Lattice) Label(x, y int) (string, error) {
	if !l.Contains(x, y) || x >= len(l.labels[y]) {
		return "", fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrLatticeBounds, x, y, l.Cols(), l.Rows())
	}
	return l.labels[y][x], nil
}

// Kind returns the governing block kind at (x, y).
func (l *Lattice) Kind(x, y int) (model.BlockKind, error) {
	if !l.Contains(x, y) || x >= len(l.kinds[y]) {
		return model.BlockOpen, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrLatticeBounds, x, y, l.Cols(), l.Rows())
	}
	return l.kinds[y][x], nil
}

// kindOrOpen treats addresses outside the lattice as empty space.
func (l *Lattice) kindOrOpen(x, y int) (model.BlockKind, error) {
	if !l.Contains(x, y) {
		return model.BlockOpen, nil
	}
	return l.Kind(x, y)
}

// String renders the labels one fine row per line, each centered in five columns.
func (l *Lattice) String() string {
	var b strings.Builder
	for y, row := range l.labels {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, label := range row {
			pad := 5 - len(label)
			if pad < 0 {
				pad = 0
			}
			left := pad / 2
			b.WriteString(strings.Repeat(" ", left))
			b.WriteString(label)
			b.WriteString(strings.Repeat(" ", pad-left))
		}
	}
	return b.String()
}
