package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/LazorSolve/internal/model"
)

// ResultArchiveVersion is written into every saved result.
const ResultArchiveVersion = "1.0.0"

// ResultArchive is the on-disk envelope for a solve result.
type ResultArchive struct {
	Version   string            `json:"version"`
	CreatedAt string            `json:"created_at"`
	Result    model.SolveResult `json:"result"`
}

// SaveResult writes the result to a versioned JSON archive at path,
// creating parent directories as needed.
func SaveResult(path string, result model.SolveResult) error {
	archive := ResultArchive{
		Version:   ResultArchiveVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Result:    result,
	}
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

// LoadResult reads an archive written by SaveResult.
func LoadResult(path string) (ResultArchive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultArchive{}, fmt.Errorf("failed to read result file: %w", err)
	}
	var archive ResultArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return ResultArchive{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	if archive.Version == "" {
		return ResultArchive{}, fmt.Errorf("invalid result file: missing version field")
	}
	return archive, nil
}
