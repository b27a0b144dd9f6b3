package engine

import (
	"context"
	"errors"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/LazorSolve/internal/model"
)

var log = logrus.New()

// progressEvery is the number of evaluated candidates between progress logs.
const progressEvery = 10000

// errSolved stops the worker group once a candidate satisfies every target.
var errSolved = errors.New("solved")

// Solver runs the placement search.
type Solver struct {
	Settings model.SolverSettings
	logger   *logrus.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger routes search logs to l instead of the package logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Solver with the given settings.
func New(settings model.SolverSettings, opts ...Option) *Solver {
	s := &Solver{Settings: settings, logger: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// triedSet guards the caller's set of evaluated signatures. Workers record
// into it while the producer goroutine consults it.
type triedSet struct {
	mu  sync.Mutex
	set *mapset.Set[string]
}

func (t *triedSet) has(sig string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.set.Has(sig)
}

func (t *triedSet) put(sig string) {
	t.mu.Lock()
	t.set.Put(sig)
	t.mu.Unlock()
}

// candidate is one placement ready for evaluation.
type candidate struct {
	placement model.Placement
	signature string
}

// Solve searches for a placement of the puzzle inventory into its open
// cells that lights every target.
//
// tried holds the signatures of placements already evaluated; pass nil to
// start from an empty set. A placement whose signature is already present
// is skipped. Signatures are added only once their evaluation completes, so
// placements abandoned by cancellation stay eligible for a later call.
//
// An exhausted candidate space or an expired time budget returns a result
// with Solved == false and a nil error. Cancellation of ctx by the caller
// returns the context error.
func (s *Solver) Solve(ctx context.Context, p model.Puzzle, tried *mapset.Set[string]) (model.SolveResult, error) {
	if err := p.Validate(); err != nil {
		return model.SolveResult{}, err
	}
	if tried == nil {
		fresh := mapset.New[string]()
		tried = &fresh
	}

	start := time.Now()
	result := model.NewSolveResult(p)
	open := p.Grid.OpenCells()
	kinds := p.Inventory.Kinds()
	result.Strategy = s.pickStrategy(len(open), len(kinds))

	fields := logrus.Fields{
		"puzzle":     p.Name,
		"strategy":   result.Strategy,
		"open_cells": len(open),
		"inventory":  p.Inventory.String(),
		"workers":    s.Settings.Workers,
	}
	s.logger.WithFields(fields).Info("search started")

	searchCtx := ctx
	if s.Settings.TimeBudget > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.Settings.TimeBudget)
		defer cancel()
	}

	visited := &triedSet{set: tried}
	seq := s.candidates(p.Grid, open, kinds, result.Strategy, visited, &result)

	var err error
	if s.Settings.Workers > 1 {
		err = s.race(searchCtx, p, seq, visited, &result)
	} else {
		err = s.scan(searchCtx, p, seq, visited, &result)
	}
	result.Elapsed = time.Since(start)

	done := s.logger.WithFields(fields).WithFields(logrus.Fields{
		"solved":     result.Solved,
		"candidates": result.Candidates,
		"skipped":    result.Skipped,
		"faults":     result.Faults,
		"elapsed":    result.Elapsed.Round(time.Millisecond).String(),
	})

	if err != nil && !result.Solved {
		if ctxErr := ctx.Err(); ctxErr != nil {
			done.WithError(ctxErr).Info("search cancelled")
			return result, ctxErr
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			done.WithError(err).Error("search failed")
			return result, err
		}
		done.Info("time budget exhausted")
		return result, nil
	}
	done.Info("search finished")
	return result, nil
}

// pickStrategy resolves the auto strategy from the size of the candidate space.
func (s *Solver) pickStrategy(open, blocks int) model.Strategy {
	switch s.Settings.Strategy {
	case model.StrategyCombinations, model.StrategyPermutations:
		return s.Settings.Strategy
	}
	if binomialExceeds(open, blocks, s.Settings.CombinationThreshold) {
		return model.StrategyCombinations
	}
	return model.StrategyPermutations
}

// candidates turns index selections into placements, dropping (and counting)
// those already in tried or already produced by this call. It must be
// drained by a single goroutine.
func (s *Solver) candidates(base model.Grid, open []model.Cell, kinds []model.BlockKind,
	strategy model.Strategy, tried *triedSet, result *model.SolveResult) iter.Seq[candidate] {

	indices := permutations(len(open), len(kinds))
	if strategy == model.StrategyCombinations {
		indices = combinations(len(open), len(kinds))
	}

	return func(yield func(candidate) bool) {
		produced := mapset.New[string]()
		cells := make([]model.Cell, len(kinds))
		for idx := range indices {
			for i, j := range idx {
				cells[i] = open[j]
			}
			placement := model.NewPlacement(base, cells, kinds)
			sig := placement.Signature()
			if produced.Has(sig) || tried.has(sig) {
				result.Skipped++
				continue
			}
			produced.Put(sig)
			if !yield(candidate{placement: placement, signature: sig}) {
				return
			}
		}
	}
}

// scan evaluates candidates one at a time on the calling goroutine.
func (s *Solver) scan(ctx context.Context, p model.Puzzle, seq iter.Seq[candidate], tried *triedSet, result *model.SolveResult) error {
	for c := range seq {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Candidates++
		s.progress(p, result.Candidates)

		lit, ok, err := evaluate(p, c.placement)
		tried.put(c.signature)
		if err != nil {
			result.Faults++
			s.fault(p, c, err)
			continue
		}
		if ok {
			accept(result, c.placement, lit)
			return nil
		}
	}
	return nil
}

// race evaluates candidates on a fixed pool of workers. The producer
// goroutine owns enumeration; workers record each placement in tried once
// evaluated. The first worker to find a satisfying placement cancels the
// others.
func (s *Solver) race(ctx context.Context, p model.Puzzle, seq iter.Seq[candidate], tried *triedSet, result *model.SolveResult) error {
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan candidate)

	var (
		mu        sync.Mutex // guards winner and winLit
		winner    *model.Placement
		winLit    Lit
		evaluated atomic.Int64
		faults    atomic.Int64
	)

	g.Go(func() error {
		defer close(jobs)
		for c := range seq {
			select {
			case jobs <- c:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < s.Settings.Workers; i++ {
		g.Go(func() error {
			for c := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				s.progress(p, int(evaluated.Add(1)))

				lit, ok, err := evaluate(p, c.placement)
				tried.put(c.signature)
				if err != nil {
					faults.Add(1)
					s.fault(p, c, err)
					continue
				}
				if ok {
					mu.Lock()
					if winner == nil {
						placement := c.placement
						winner, winLit = &placement, lit
					}
					mu.Unlock()
					return errSolved
				}
			}
			return nil
		})
	}

	err := g.Wait()
	result.Candidates = int(evaluated.Load())
	result.Faults = int(faults.Load())
	if winner != nil {
		accept(result, *winner, winLit)
		return nil
	}
	if errors.Is(err, errSolved) {
		return nil
	}
	return err
}

// evaluate builds the lattice for a placement and checks its coverage.
func evaluate(p model.Puzzle, placement model.Placement) (Lit, bool, error) {
	l, err := BuildLattice(placement.Grid)
	if err != nil {
		return Lit{}, false, err
	}
	lit, err := Coverage(p.Lasers, l)
	if err != nil {
		return Lit{}, false, err
	}
	return lit, lit.Covers(p.Targets), nil
}

func accept(result *model.SolveResult, placement model.Placement, lit Lit) {
	result.Solved = true
	result.Placement = &placement
	result.Coverage = lit.Sorted()
	result.Paths = lit.Paths
}

func (s *Solver) progress(p model.Puzzle, n int) {
	if n%progressEvery == 0 {
		s.logger.WithFields(logrus.Fields{"puzzle": p.Name, "candidates": n}).Debug("search progress")
	}
}

func (s *Solver) fault(p model.Puzzle, c candidate, err error) {
	s.logger.WithFields(logrus.Fields{
		"puzzle":    p.Name,
		"placement": c.signature,
	}).WithError(err).Error("candidate evaluation failed")
}
