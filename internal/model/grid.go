package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cell addresses a coarse grid cell.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is the coarse block-per-cell puzzle layout, row-major.
type Grid struct {
	Cells [][]BlockKind
}

// ParseGrid builds a Grid from rows of single-character codes separated by
// whitespace, e.g. "o B x".
func ParseGrid(rows []string) (Grid, error) {
	g := Grid{Cells: make([][]BlockKind, 0, len(rows))}
	for i, row := range rows {
		fields := strings.Fields(row)
		cells := make([]BlockKind, 0, len(fields))
		for _, f := range fields {
			if len(f) != 1 {
				return Grid{}, fmt.Errorf("%w: row %d: invalid cell %q", ErrInvalidPuzzle, i+1, f)
			}
			k, ok := ParseBlockKind(f[0])
			if !ok {
				return Grid{}, fmt.Errorf("%w: row %d: unknown block code %q", ErrInvalidPuzzle, i+1, f)
			}
			cells = append(cells, k)
		}
		g.Cells = append(g.Cells, cells)
	}
	if err := g.Validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// MustParseGrid is ParseGrid for literals known to be valid.
func MustParseGrid(rows ...string) Grid {
	g, err := ParseGrid(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Validate checks that the grid is non-empty and rectangular.
func (g Grid) Validate() error {
	if len(g.Cells) == 0 || len(g.Cells[0]) == 0 {
		return fmt.Errorf("%w: empty grid", ErrInvalidPuzzle)
	}
	cols := len(g.Cells[0])
	for i, row := range g.Cells {
		if len(row) != cols {
			return fmt.Errorf("%w: ragged grid: row %d has %d cells, want %d", ErrInvalidPuzzle, i+1, len(row), cols)
		}
	}
	return nil
}

func (g Grid) Rows() int { return len(g.Cells) }

func (g Grid) Cols() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

func (g Grid) At(c Cell) BlockKind { return g.Cells[c.Row][c.Col] }

// OpenCells lists the cells eligible for placement in row-major order.
func (g Grid) OpenCells() []Cell {
	var open []Cell
	for r, row := range g.Cells {
		for c, k := range row {
			if k == BlockOpen {
				open = append(open, Cell{Row: r, Col: c})
			}
		}
	}
	return open
}

// Count returns how many cells hold the given kind.
func (g Grid) Count(kind BlockKind) int {
	n := 0
	for _, row := range g.Cells {
		for _, k := range row {
			if k == kind {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy safe to modify.
func (g Grid) Clone() Grid {
	cells := make([][]BlockKind, len(g.Cells))
	for i, row := range g.Cells {
		cells[i] = append([]BlockKind(nil), row...)
	}
	return Grid{Cells: cells}
}

// Strings renders each row as its codes joined by single spaces.
func (g Grid) Strings() []string {
	out := make([]string, len(g.Cells))
	var b strings.Builder
	for i, row := range g.Cells {
		b.Reset()
		for j, k := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(k.Code())
		}
		out[i] = b.String()
	}
	return out
}

func (g Grid) String() string {
	return strings.Join(g.Strings(), "\n")
}

// Equal reports whether both grids hold the same kinds in the same cells.
func (g Grid) Equal(other Grid) bool {
	if len(g.Cells) != len(other.Cells) {
		return false
	}
	for i := range g.Cells {
		if len(g.Cells[i]) != len(other.Cells[i]) {
			return false
		}
		for j := range g.Cells[i] {
			if g.Cells[i][j] != other.Cells[i][j] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the grid as its row strings.
func (g Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Strings())
}

func (g *Grid) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		*g = Grid{}
		return nil
	}
	parsed, err := ParseGrid(rows)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
