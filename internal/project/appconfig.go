package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// HomeEnv names the environment variable that relocates the config directory.
const HomeEnv = "LAZORSOLVE_HOME"

// DefaultConfigDir is $LAZORSOLVE_HOME when set, otherwise ~/.lazorsolve.
func DefaultConfigDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".lazorsolve")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes config as indented JSON, creating parent directories.
// The file is replaced through a rename so a crash never leaves it truncated.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

// LoadAppConfig reads the config at path on top of DefaultAppConfig, so a
// missing file or missing fields fall back to the defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := normalize(&config); err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// normalize canonicalizes hand-edited values and rejects unusable ones.
func normalize(c *model.AppConfig) error {
	strategy, err := model.ParseStrategy(string(c.DefaultStrategy))
	if err != nil {
		return err
	}
	c.DefaultStrategy = strategy

	if c.DefaultTimeBudgetSeconds < 0 {
		return fmt.Errorf("negative time budget %g", c.DefaultTimeBudgetSeconds)
	}
	if c.DefaultWorkers < 1 {
		c.DefaultWorkers = 1
	}

	formats := make([]string, 0, len(c.OutputFormats))
	for _, f := range c.OutputFormats {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	c.OutputFormats = formats
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.RecentPuzzles == nil {
		c.RecentPuzzles = []string{}
	}
	return nil
}
