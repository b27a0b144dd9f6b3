// LazorSolve: a solver for Lazor-style laser puzzles
//
// Reads one or more .bff puzzle files, searches for a block placement that
// lights every target, and writes the solution in the requested formats.
//
// Build:
//   go build -o lazorsolve ./cmd/lazorsolve
//
// Usage:
//   lazorsolve [flags] puzzle.bff ...
//   lazorsolve -formats txt,pdf,xlsx -out solutions/ bff_files/*.bff
//   lazorsolve -compare bff_files/tiny_5.bff

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/piwi3910/LazorSolve/internal/engine"
	"github.com/piwi3910/LazorSolve/internal/export"
	"github.com/piwi3910/LazorSolve/internal/importer"
	"github.com/piwi3910/LazorSolve/internal/model"
	"github.com/piwi3910/LazorSolve/internal/project"
)

// Exit codes.
const (
	exitOK       = 0
	exitInvalid  = 1
	exitUnsolved = 2
)

const maxRecentPuzzles = 10

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options are the resolved command-line settings.
type options struct {
	configPath string
	outDir     string
	formats    []string
	compare    bool
	settings   model.SolverSettings
	logLevel   string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lazorsolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: lazorsolve [flags] puzzle.bff ...")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", project.DefaultConfigPath(), "path to the JSON config file")
	timeout := fs.Duration("timeout", 0, "search time budget per puzzle (0 keeps the configured value)")
	workers := fs.Int("workers", 0, "placements evaluated concurrently (0 keeps the configured value)")
	strategy := fs.String("strategy", "", "auto, combinations or permutations")
	threshold := fs.Int64("threshold", 0, "cell-subset count above which auto uses combinations")
	outDir := fs.String("out", "", "output directory (default: next to each puzzle)")
	formats := fs.String("formats", "", "comma list of txt,pdf,dxf,xlsx,json")
	compare := fs.Bool("compare", false, "print a strategy comparison instead of writing outputs")
	logLevel := fs.String("log-level", "", "logrus level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitInvalid
	}

	cfg, err := project.LoadAppConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "cannot load config %s: %v\n", *configPath, err)
		return exitInvalid
	}

	opts := options{
		configPath: *configPath,
		outDir:     *outDir,
		formats:    cfg.OutputFormats,
		compare:    *compare,
		settings:   model.DefaultSettings(),
		logLevel:   cfg.LogLevel,
	}
	cfg.ApplyToSettings(&opts.settings)

	// Flags override the config only when given explicitly.
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "timeout":
			opts.settings.TimeBudget = *timeout
		case "workers":
			opts.settings.Workers = *workers
		case "strategy":
			s, err := model.ParseStrategy(*strategy)
			if err != nil {
				flagErr = err
				return
			}
			opts.settings.Strategy = s
		case "threshold":
			opts.settings.CombinationThreshold = *threshold
		case "formats":
			opts.formats = splitFormats(*formats)
		case "log-level":
			opts.logLevel = *logLevel
		}
	})
	if flagErr != nil {
		fmt.Fprintln(stderr, flagErr)
		return exitInvalid
	}
	for _, f := range opts.formats {
		if _, ok := writers[f]; !ok {
			fmt.Fprintf(stderr, "unknown output format %q\n", f)
			return exitInvalid
		}
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitInvalid
	}

	code := exitOK
	for _, path := range fs.Args() {
		c := solveFile(ctx, path, opts, logger, stdout)
		if c > code {
			code = c
		}
		if ctx.Err() != nil {
			break
		}
		cfg.AddRecentPuzzle(path, maxRecentPuzzles)
	}

	if err := project.SaveAppConfig(opts.configPath, cfg); err != nil {
		logger.WithError(err).Warn("could not save config")
	}
	return code
}

func newLogger(out io.Writer, level string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// solveFile imports, solves and exports one puzzle, returning its exit code.
func solveFile(ctx context.Context, path string, opts options, logger *logrus.Logger, stdout io.Writer) int {
	entry := logger.WithField("file", path)

	imported := importer.ImportBFF(path)
	for _, w := range imported.Warnings {
		entry.Warn(w)
	}
	if !imported.OK() {
		for _, e := range imported.Errors {
			entry.Error(e)
		}
		return exitInvalid
	}
	puzzle := imported.Puzzle

	if opts.compare {
		return comparePuzzle(ctx, puzzle, opts.settings, logger, stdout)
	}

	result, err := engine.New(opts.settings, engine.WithLogger(logger)).Solve(ctx, puzzle, nil)
	if err != nil {
		entry.WithError(err).Error("search aborted")
		return exitInvalid
	}

	if err := export.WriteText(stdout, result); err != nil {
		entry.WithError(err).Error("cannot write result")
	}
	fmt.Fprintln(stdout)

	dir := opts.outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	for _, format := range opts.formats {
		out, err := writeOutput(dir, format, result)
		switch {
		case err != nil:
			entry.WithError(err).WithField("format", format).Warn("output skipped")
		default:
			entry.WithField("output", out).Info("wrote output")
		}
	}

	if !result.Solved {
		return exitUnsolved
	}
	return exitOK
}

// writers maps output format names to their exporter and file suffix.
var writers = map[string]struct {
	suffix string
	write  func(path string, result model.SolveResult) error
}{
	"txt":  {"_solved.txt", export.SaveText},
	"pdf":  {"_solved.pdf", export.ExportPDF},
	"dxf":  {"_solved.dxf", export.ExportDXF},
	"xlsx": {"_solved.xlsx", export.ExportXLSX},
	"json": {"_result.json", project.SaveResult},
}

func writeOutput(dir, format string, result model.SolveResult) (string, error) {
	w := writers[format]
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	out := filepath.Join(dir, result.Puzzle.Name+w.suffix)
	if err := w.write(out, result); err != nil {
		return "", err
	}
	return out, nil
}

func comparePuzzle(ctx context.Context, puzzle model.Puzzle, settings model.SolverSettings, logger *logrus.Logger, stdout io.Writer) int {
	results, err := engine.CompareStrategies(ctx, puzzle, engine.BuildDefaultScenarios(settings), engine.WithLogger(logger))
	if err != nil {
		logger.WithError(err).WithField("puzzle", puzzle.Name).Error("comparison aborted")
		return exitInvalid
	}

	fmt.Fprintf(stdout, "Puzzle: %s\n", puzzle.Name)
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tSTRATEGY\tWORKERS\tSOLVED\tCANDIDATES\tTIME")
	solved := false
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%d\t%s\n", r.Scenario.Name, r.Strategy, max(r.Scenario.Settings.Workers, 1),
			r.Solved, r.Candidates, r.Elapsed.Round(time.Millisecond))
		solved = solved || r.Solved
	}
	tw.Flush()
	fmt.Fprintln(stdout)

	if !solved {
		return exitUnsolved
	}
	return exitOK
}

func splitFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
