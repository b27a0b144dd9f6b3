package model

import "time"

// AppConfig holds application-wide preferences and default solver settings.
type AppConfig struct {
	// Default solver settings applied to every puzzle
	DefaultStrategy             Strategy `json:"default_strategy"`
	DefaultTimeBudgetSeconds    float64  `json:"default_time_budget_seconds"` // 0 = unlimited
	DefaultCombinationThreshold int64    `json:"default_combination_threshold"`
	DefaultWorkers              int      `json:"default_workers"`

	// Application preferences
	OutputFormats []string `json:"output_formats"` // txt, pdf, dxf, xlsx, json
	LogLevel      string   `json:"log_level"`      // logrus level name
	RecentPuzzles []string `json:"recent_puzzles"`
}

// DefaultAppConfig returns an AppConfig populated with defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultStrategy:             defaults.Strategy,
		DefaultTimeBudgetSeconds:    defaults.TimeBudget.Seconds(),
		DefaultCombinationThreshold: defaults.CombinationThreshold,
		DefaultWorkers:              defaults.Workers,
		OutputFormats:               []string{"txt"},
		LogLevel:                    "info",
		RecentPuzzles:               []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a SolverSettings struct.
func (c AppConfig) ApplyToSettings(s *SolverSettings) {
	if c.DefaultStrategy != "" {
		s.Strategy = c.DefaultStrategy
	}
	s.TimeBudget = time.Duration(c.DefaultTimeBudgetSeconds * float64(time.Second))
	if c.DefaultCombinationThreshold > 0 {
		s.CombinationThreshold = c.DefaultCombinationThreshold
	}
	s.Workers = c.DefaultWorkers
}

// AddRecentPuzzle moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentPuzzle(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentPuzzles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentPuzzles = recent
}
