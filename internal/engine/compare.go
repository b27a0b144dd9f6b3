package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.SolverSettings
}

// ComparisonResult holds the search result and summary statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Result     model.SolveResult
	Solved     bool
	Strategy   model.Strategy // Strategy actually used after resolving auto
	Candidates int
	Elapsed    time.Duration
}

// CompareStrategies solves the puzzle once per scenario and returns the
// results in scenario order. Every scenario gets its own tried set, so the
// candidate counts are comparable.
func CompareStrategies(ctx context.Context, p model.Puzzle, scenarios []ComparisonScenario, opts ...Option) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings, opts...).Solve(ctx, p, nil)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:   scenario,
			Result:     result,
			Solved:     result.Solved,
			Strategy:   result.Strategy,
			Candidates: result.Candidates,
			Elapsed:    result.Elapsed,
		})
	}

	return results, nil
}

// BuildDefaultScenarios derives what-if alternatives from the current
// settings: each forced strategy, and a parallel run when the base is sequential.
func BuildDefaultScenarios(base model.SolverSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, strategy := range []model.Strategy{model.StrategyCombinations, model.StrategyPermutations} {
		if base.Strategy == strategy {
			continue
		}
		alt := base
		alt.Strategy = strategy
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Force %s", strategy),
			Settings: alt,
		})
	}

	// Scenario: same strategy on a worker pool
	if base.Workers <= 1 {
		parallel := base
		parallel.Workers = 4
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Parallel (%d workers)", parallel.Workers),
			Settings: parallel,
		})
	}

	return scenarios
}
