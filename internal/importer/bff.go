// Package importer reads Lazor puzzle descriptions in the .bff text format.
//
// A .bff file lists the board between GRID START and GRID STOP, followed by
// inventory lines (A n, B n, C n), laser lines (L x y vx vy) and target
// lines (P x y). Any line containing '#' is a comment.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Puzzle   model.Puzzle
	Errors   []string
	Warnings []string
}

// OK reports whether the import produced a usable puzzle.
func (r ImportResult) OK() bool { return len(r.Errors) == 0 }

// ImportBFF reads a .bff file from disk. The puzzle is named after the file.
func ImportBFF(path string) ImportResult {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseBFF(f, name)
}

// ParseBFF parses .bff content from a reader and validates the resulting puzzle.
func ParseBFF(r io.Reader, name string) ImportResult {
	result := ImportResult{Puzzle: model.Puzzle{Name: name}}

	var (
		gridRows []string
		inGrid   bool
		sawGrid  bool
		lineNum  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		if strings.Contains(raw, "#") {
			continue
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "GRID START"):
			if sawGrid {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: second grid block ignored", lineNum))
			}
			inGrid = true
			continue
		case strings.HasPrefix(line, "GRID STOP"):
			inGrid = false
			sawGrid = true
			continue
		case inGrid:
			if !sawGrid {
				gridRows = append(gridRows, line)
			}
			continue
		}

		fields := strings.Fields(line)
		args := fields[1:]
		switch fields[0] {
		case "A", "B", "C":
			n, ok := parseInts(&result, lineNum, fields[0], args, 1)
			if !ok {
				continue
			}
			setInventory(&result.Puzzle.Inventory, fields[0], n[0])
		case "L":
			n, ok := parseInts(&result, lineNum, "L", args, 4)
			if !ok {
				continue
			}
			result.Puzzle.Lasers = append(result.Puzzle.Lasers, model.LaserState{X: n[0], Y: n[1], VX: n[2], VY: n[3]})
		case "P":
			n, ok := parseInts(&result, lineNum, "P", args, 2)
			if !ok {
				continue
			}
			result.Puzzle.Targets = append(result.Puzzle.Targets, model.Point{X: n[0], Y: n[1]})
		default:
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: unrecognized line %q skipped", lineNum, line))
		}
	}
	if err := scanner.Err(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Read error: %v", err))
		return result
	}

	if inGrid {
		result.Errors = append(result.Errors, "GRID START without matching GRID STOP")
		return result
	}
	if len(gridRows) == 0 {
		result.Errors = append(result.Errors, "No grid found")
		return result
	}

	grid, err := model.ParseGrid(gridRows)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Puzzle.Grid = grid

	if len(result.Puzzle.Targets) == 0 {
		result.Warnings = append(result.Warnings, "No targets: any placement solves the puzzle")
	}
	if err := result.Puzzle.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
	return result
}

// parseInts converts exactly want integer arguments, recording an error on failure.
func parseInts(result *ImportResult, lineNum int, key string, args []string, want int) ([]int, bool) {
	if len(args) != want {
		result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %s expects %d values, got %d", lineNum, key, want, len(args)))
		return nil, false
	}
	out := make([]int, want)
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: invalid %s value %q", lineNum, key, a))
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func setInventory(inv *model.Inventory, key string, n int) {
	switch key {
	case "A":
		inv.Reflect = n
	case "B":
		inv.Opaque = n
	case "C":
		inv.Refract = n
	}
}
