package engine

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// Lit is the union of every point reached by a set of lasers and their
// refraction branches.
type Lit struct {
	Points mapset.Set[model.Point]
	Paths  [][]model.Point // One entry per traced ray, in trace order
}

// Coverage traces every origin and every spawned branch breadth-first.
// A state is traced at most once, so the work is finite even when branches
// feed back into each other.
func Coverage(origins []model.LaserState, l *Lattice) (Lit, error) {
	lit := Lit{Points: mapset.New[model.Point]()}
	traced := mapset.New[model.LaserState]()

	queue := append([]model.LaserState(nil), origins...)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if traced.Has(s) {
			continue
		}
		traced.Put(s)

		ray, err := Trace(s, l)
		if err != nil {
			return Lit{}, err
		}
		for _, p := range ray.Visited {
			lit.Points.Put(p)
		}
		if len(ray.Path) > 0 {
			lit.Paths = append(lit.Paths, ray.Path)
		}
		queue = append(queue, ray.Spawned...)
	}
	return lit, nil
}

// Covers reports whether every target is lit.
func (l Lit) Covers(targets []model.Point) bool {
	for _, t := range targets {
		if !l.Points.Has(t) {
			return false
		}
	}
	return true
}

// Missing lists the targets that are not lit, in input order.
func (l Lit) Missing(targets []model.Point) []model.Point {
	var missing []model.Point
	for _, t := range targets {
		if !l.Points.Has(t) {
			missing = append(missing, t)
		}
	}
	return missing
}

// Sorted returns the lit points ordered by X, then Y.
func (l Lit) Sorted() []model.Point {
	pts := make([]model.Point, 0, l.Points.Size())
	l.Points.Each(func(p model.Point) {
		pts = append(pts, p)
	})
	model.SortPoints(pts)
	return pts
}
