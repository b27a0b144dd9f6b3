package model

import "fmt"

// BlockKind is the content of a single coarse grid cell.
type BlockKind int

const (
	BlockOpen    BlockKind = iota // Empty cell, can receive a placed block
	BlockFixed                    // Cell that never holds a block and never changes the ray
	BlockReflect                  // Bounces the ray
	BlockOpaque                   // Absorbs the ray
	BlockRefract                  // Bounces the ray and lets a second ray pass straight through
)

func (k BlockKind) String() string {
	switch k {
	case BlockFixed:
		return "Fixed"
	case BlockReflect:
		return "Reflect"
	case BlockOpaque:
		return "Opaque"
	case BlockRefract:
		return "Refract"
	default:
		return "Open"
	}
}

// Code returns the single character used for the kind in puzzle files.
func (k BlockKind) Code() byte {
	switch k {
	case BlockFixed:
		return 'x'
	case BlockReflect:
		return 'A'
	case BlockOpaque:
		return 'B'
	case BlockRefract:
		return 'C'
	default:
		return 'o'
	}
}

// Placeable reports whether the kind is one of the inventory blocks.
func (k BlockKind) Placeable() bool {
	return k == BlockReflect || k == BlockOpaque || k == BlockRefract
}

// precedence orders kinds for composite lattice labels; higher wins.
func (k BlockKind) precedence() int {
	switch k {
	case BlockOpaque:
		return 4
	case BlockReflect:
		return 3
	case BlockRefract:
		return 2
	case BlockFixed:
		return 1
	default:
		return 0
	}
}

// Dominant returns the kind that governs a ray at a label made of several
// codes: Opaque beats Reflect, Reflect beats Refract, and anything else lets
// the ray pass.
func Dominant(kinds ...BlockKind) BlockKind {
	best := BlockOpen
	for _, k := range kinds {
		if k.precedence() > best.precedence() {
			best = k
		}
	}
	return best
}

// ParseBlockKind maps a puzzle file code to its kind.
func ParseBlockKind(code byte) (BlockKind, bool) {
	switch code {
	case 'o':
		return BlockOpen, true
	case 'x':
		return BlockFixed, true
	case 'A':
		return BlockReflect, true
	case 'B':
		return BlockOpaque, true
	case 'C':
		return BlockRefract, true
	}
	return BlockOpen, false
}

func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte{k.Code()}, nil
}

func (k *BlockKind) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("invalid block code %q", text)
	}
	parsed, ok := ParseBlockKind(text[0])
	if !ok {
		return fmt.Errorf("invalid block code %q", text)
	}
	*k = parsed
	return nil
}
