package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPuzzle marks precondition violations detected before a search.
var ErrInvalidPuzzle = errors.New("invalid puzzle")

// Point is an address on the fine lattice.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// SortPoints orders points by X, then Y.
func SortPoints(pts []Point) {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
}

// LaserState is a ray position on the fine lattice plus its unit diagonal velocity.
type LaserState struct {
	X  int `json:"x"`
	Y  int `json:"y"`
	VX int `json:"vx"`
	VY int `json:"vy"`
}

func (l LaserState) Position() Point { return Point{X: l.X, Y: l.Y} }

func (l LaserState) Validate() error {
	if (l.VX != 1 && l.VX != -1) || (l.VY != 1 && l.VY != -1) {
		return fmt.Errorf("%w: laser at %v has velocity (%d, %d), want components of +1 or -1",
			ErrInvalidPuzzle, l.Position(), l.VX, l.VY)
	}
	return nil
}

// Inventory holds the number of blocks of each kind still to be placed.
type Inventory struct {
	Reflect int `json:"reflect"`
	Opaque  int `json:"opaque"`
	Refract int `json:"refract"`
}

func (inv Inventory) Total() int { return inv.Reflect + inv.Opaque + inv.Refract }

// Kinds expands the inventory into one entry per block, in the canonical
// assignment order reflect, opaque, refract.
func (inv Inventory) Kinds() []BlockKind {
	kinds := make([]BlockKind, 0, inv.Total())
	for i := 0; i < inv.Reflect; i++ {
		kinds = append(kinds, BlockReflect)
	}
	for i := 0; i < inv.Opaque; i++ {
		kinds = append(kinds, BlockOpaque)
	}
	for i := 0; i < inv.Refract; i++ {
		kinds = append(kinds, BlockRefract)
	}
	return kinds
}

func (inv Inventory) String() string {
	return fmt.Sprintf("A=%d B=%d C=%d", inv.Reflect, inv.Opaque, inv.Refract)
}

// Puzzle is a fully parsed puzzle, immutable for the duration of a search.
type Puzzle struct {
	Name      string       `json:"name"`
	Grid      Grid         `json:"grid"`
	Inventory Inventory    `json:"inventory"`
	Lasers    []LaserState `json:"lasers"`
	Targets   []Point      `json:"targets"`
}

// Validate checks the preconditions of a search.
func (p Puzzle) Validate() error {
	if err := p.Grid.Validate(); err != nil {
		return err
	}
	inv := p.Inventory
	if inv.Reflect < 0 || inv.Opaque < 0 || inv.Refract < 0 {
		return fmt.Errorf("%w: negative inventory %s", ErrInvalidPuzzle, inv)
	}
	if open := len(p.Grid.OpenCells()); inv.Total() > open {
		return fmt.Errorf("%w: inventory of %d blocks exceeds %d open cells", ErrInvalidPuzzle, inv.Total(), open)
	}
	if len(p.Lasers) == 0 {
		return fmt.Errorf("%w: no lasers", ErrInvalidPuzzle)
	}
	for _, l := range p.Lasers {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PlacedBlock records one inventory block put into an open cell.
type PlacedBlock struct {
	Cell Cell      `json:"cell"`
	Kind BlockKind `json:"kind"`
}

// Placement is a grid with inventory blocks written into some of its open cells.
type Placement struct {
	Grid   Grid          `json:"grid"`
	Blocks []PlacedBlock `json:"blocks"`
}

// NewPlacement copies base and writes kinds[i] into cells[i].
func NewPlacement(base Grid, cells []Cell, kinds []BlockKind) Placement {
	g := base.Clone()
	blocks := make([]PlacedBlock, len(cells))
	for i, c := range cells {
		g.Cells[c.Row][c.Col] = kinds[i]
		blocks[i] = PlacedBlock{Cell: c, Kind: kinds[i]}
	}
	return Placement{Grid: g, Blocks: blocks}
}

// Signature identifies the placement by its resulting grid, so two block
// orders that produce the same board share one signature.
func (p Placement) Signature() string {
	return strings.Join(p.Grid.Strings(), "/")
}

// Strategy selects how candidate placements are enumerated.
type Strategy string

const (
	StrategyAuto         Strategy = "auto"         // Pick by candidate-space size
	StrategyCombinations Strategy = "combinations" // Cell subsets, kinds in canonical order
	StrategyPermutations Strategy = "permutations" // Ordered cell choices, kinds assigned positionally
)

// ParseStrategy accepts the names of the Strategy constants.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyAuto, "":
		return StrategyAuto, nil
	case StrategyCombinations:
		return StrategyCombinations, nil
	case StrategyPermutations:
		return StrategyPermutations, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// SolverSettings holds the placement search configuration.
type SolverSettings struct {
	Strategy             Strategy      `json:"strategy"`
	CombinationThreshold int64         `json:"combination_threshold"` // Above this many cell subsets, enumerate combinations
	TimeBudget           time.Duration `json:"time_budget"`           // Zero disables the budget
	Workers              int           `json:"workers"`               // Candidates evaluated concurrently; <= 1 is sequential
}

func DefaultSettings() SolverSettings {
	return SolverSettings{
		Strategy:             StrategyAuto,
		CombinationThreshold: 50000,
		TimeBudget:           60 * time.Second,
		Workers:              1,
	}
}

// SolveResult is the outcome of one placement search.
type SolveResult struct {
	ID         string        `json:"id"`
	Puzzle     Puzzle        `json:"puzzle"`
	Solved     bool          `json:"solved"`
	Placement  *Placement    `json:"placement,omitempty"`
	Coverage   []Point       `json:"coverage,omitempty"` // Sorted points lit by the winning placement
	Paths      [][]Point     `json:"paths,omitempty"`    // Per-ray visit order, for rendering
	Strategy   Strategy      `json:"strategy"`
	Candidates int           `json:"candidates"` // Placements evaluated
	Skipped    int           `json:"skipped"`    // Placements already tried
	Faults     int           `json:"faults"`     // Candidates aborted on an internal error
	Elapsed    time.Duration `json:"elapsed"`
	CreatedAt  time.Time     `json:"created_at"`
}

func NewSolveResult(p Puzzle) SolveResult {
	return SolveResult{
		ID:        uuid.New().String()[:8],
		Puzzle:    p,
		CreatedAt: time.Now().UTC(),
	}
}

// MissingTargets lists the puzzle targets absent from the coverage.
func (r SolveResult) MissingTargets() []Point {
	lit := make(map[Point]bool, len(r.Coverage))
	for _, p := range r.Coverage {
		lit[p] = true
	}
	var missing []Point
	for _, t := range r.Puzzle.Targets {
		if !lit[t] {
			missing = append(missing, t)
		}
	}
	return missing
}
