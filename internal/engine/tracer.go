package engine

import (
	"errors"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// ErrLatticeBounds signals a lookup outside the built lattice. Rays are
// bounds-checked before every lookup, so this indicates a builder defect.
var ErrLatticeBounds = errors.New("lattice address out of bounds")

// Ray is the result of tracing one laser until it terminates.
type Ray struct {
	Path    []model.Point      // Points in visit order
	Visited []model.Point      // Path deduplicated, sorted by X then Y
	Spawned []model.LaserState // Refraction branches still to trace
}

// history keeps the kinds resolved at the last three visited addresses.
type history struct {
	kinds [3]model.BlockKind
	n     int
}

func (h *history) push(k model.BlockKind) {
	h.kinds[0], h.kinds[1], h.kinds[2] = h.kinds[1], h.kinds[2], k
	if h.n < len(h.kinds) {
		h.n++
	}
}

// refracting reports whether the two most recent addresses were both refract
// interfaces, in which case the ray is still crossing the same block.
func (h *history) refracting() bool {
	return h.n >= 2 && h.kinds[1] == model.BlockRefract && h.kinds[2] == model.BlockRefract
}

// Trace steps a single laser through the lattice until it is absorbed,
// trapped, leaves the lattice, or repeats a state.
//
// An even X means the ray sits on a vertical cell boundary (a side hit) and
// a reflection flips VX; an odd X means a horizontal boundary and flips VY.
func Trace(origin model.LaserState, l *Lattice) (Ray, error) {
	var ray Ray
	if !l.Contains(origin.X, origin.Y) {
		return ray, nil
	}

	s := origin
	ray.Path = append(ray.Path, s.Position())
	seen := map[model.LaserState]bool{s: true}
	var hist history

	for step := 0; ; step++ {
		side := s.X%2 == 0

		trapped, err := l.trapped(s.X, s.Y, side)
		if err != nil {
			return Ray{}, err
		}
		if trapped {
			break
		}

		kind, err := l.Kind(s.X, s.Y)
		if err != nil {
			return Ray{}, err
		}
		// The guard looks at visited labels, so history records the label
		// before the first-step correction below.
		refracting := hist.refracting()
		hist.push(kind)

		if step == 0 {
			// A laser starts on the boundary of the cell it enters; only that
			// cell may deflect it, not the one it is leaving.
			ahead, err := l.kindAhead(s, side)
			if err != nil {
				return Ray{}, err
			}
			if !ahead.Placeable() {
				kind = model.BlockOpen
			}
		}

		switch kind {
		case model.BlockOpaque:
			return finish(ray), nil
		case model.BlockReflect:
			s = reflect(s, side)
		case model.BlockRefract:
			if !refracting {
				ray.Spawned = append(ray.Spawned, model.LaserState{
					X: s.X + s.VX, Y: s.Y + s.VY, VX: s.VX, VY: s.VY,
				})
			}
			s = reflect(s, side)
		}

		s.X += s.VX
		s.Y += s.VY
		if !l.Contains(s.X, s.Y) || seen[s] {
			break
		}
		seen[s] = true
		ray.Path = append(ray.Path, s.Position())
	}
	return finish(ray), nil
}

func reflect(s model.LaserState, side bool) model.LaserState {
	if side {
		s.VX = -s.VX
	} else {
		s.VY = -s.VY
	}
	return s
}

// trapped reports whether both neighbours across the hit axis are
// reflectors, which would bounce the ray back and forth forever.
func (l *Lattice) trapped(x, y int, side bool) (bool, error) {
	ax, ay, bx, by := x, y-1, x, y+1
	if side {
		ax, ay, bx, by = x-1, y, x+1, y
	}
	a, err := l.kindOrOpen(ax, ay)
	if err != nil {
		return false, err
	}
	b, err := l.kindOrOpen(bx, by)
	if err != nil {
		return false, err
	}
	return a == model.BlockReflect && b == model.BlockReflect, nil
}

// kindAhead returns the kind of the cell interior the ray is about to enter.
func (l *Lattice) kindAhead(s model.LaserState, side bool) (model.BlockKind, error) {
	if side {
		return l.kindOrOpen(s.X+s.VX, s.Y)
	}
	return l.kindOrOpen(s.X, s.Y+s.VY)
}

func finish(ray Ray) Ray {
	seen := make(map[model.Point]bool, len(ray.Path))
	for _, p := range ray.Path {
		if p.X < 0 || p.Y < 0 || seen[p] {
			continue
		}
		seen[p] = true
		ray.Visited = append(ray.Visited, p)
	}
	model.SortPoints(ray.Visited)
	return ray
}
