// Command validate checks every game configuration in the configs directory
// and reports problems that would stop the server from loading it or make the
// board unwinnable.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/tile-merge-game/game/engine"
)

// ValidationResult holds the validation results for a config file
type ValidationResult struct {
	File     string
	Name     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// largestReachableTile is the biggest value a size x size board can hold
// when every cell takes part in the merge chain
func largestReachableTile(size int, fourProbability float64) int {
	exp := size * size
	if fourProbability > 0 {
		exp++
	}
	if exp > 30 {
		exp = 30
	}
	return 1 << exp
}

func validateConfig(path string) ValidationResult {
	result := ValidationResult{File: filepath.Base(path)}
	var errs *multierror.Error

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = []string{fmt.Sprintf("Failed to read file: %v", err)}
		return result
	}

	var cfg engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		result.Errors = []string{fmt.Sprintf("Invalid JSON: %v", err)}
		return result
	}
	result.Name = cfg.Name

	if err := engine.ValidateGameConfig(&cfg); err != nil {
		errs = multierror.Append(errs, err)
	}

	if cfg.StartTiles == 0 {
		errs = multierror.Append(errs, fmt.Errorf("start_tiles must be at least 1, an empty board never moves"))
	}

	if cfg.GridSize >= engine.MinGridSize && cfg.GridSize <= engine.MaxGridSize {
		if limit := largestReachableTile(cfg.GridSize, cfg.FourProbability); cfg.WinValue > limit {
			errs = multierror.Append(errs, fmt.Errorf("win_value %d is unreachable on a %dx%d board (largest possible tile is %d)",
				cfg.WinValue, cfg.GridSize, cfg.GridSize, limit))
		}
	}

	if errs.ErrorOrNil() == nil {
		e, err := engine.NewEngine(&cfg, engine.WithSeed(1))
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("engine rejected config: %w", err))
		} else {
			result.Info = append(result.Info,
				fmt.Sprintf("✓ Grid: %dx%d", cfg.GridSize, cfg.GridSize),
				fmt.Sprintf("✓ Start tiles: %d", cfg.StartTiles),
				fmt.Sprintf("✓ Win tile: %d", cfg.WinValue),
				fmt.Sprintf("✓ Four probability: %g", cfg.FourProbability),
				fmt.Sprintf("✓ Opening moves: %d", len(e.GetPossibleMoves())),
			)
		}
	}

	if cfg.Messages.KeepPlaying == "" {
		result.Warnings = append(result.Warnings, "messages.keep_playing is empty")
	}
	if cfg.FourProbability == 1 {
		result.Warnings = append(result.Warnings, "four_probability is 1, no 2 tiles will ever spawn")
	}

	if errs != nil {
		for _, e := range errs.Errors {
			result.Errors = append(result.Errors, strings.TrimPrefix(e.Error(), "config validation: "))
		}
	}
	result.Valid = len(result.Errors) == 0
	return result
}

// validateDir validates every *.json file in dir. The returned error lists
// each invalid file.
func validateDir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files found in %s", dir)
	}
	sort.Strings(files)

	results := make([]ValidationResult, 0, len(files))
	owners := make(map[string]int)
	for _, file := range files {
		r := validateConfig(file)
		if r.Name != "" {
			if first, ok := owners[r.Name]; ok {
				r.Errors = append(r.Errors, fmt.Sprintf("name %q is already used by %s", r.Name, results[first].File))
				r.Valid = false
			} else {
				owners[r.Name] = len(results)
			}
		}
		results = append(results, r)
	}

	var errs *multierror.Error
	for _, r := range results {
		if !r.Valid {
			errs = multierror.Append(errs, fmt.Errorf("%s: %s", r.File, strings.Join(r.Errors, "; ")))
		}
	}
	return results, errs.ErrorOrNil()
}

func printReport(w io.Writer, results []ValidationResult) {
	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
			fmt.Fprintf(w, "✅ %s (%s)\n", r.File, r.Name)
		} else {
			fmt.Fprintf(w, "❌ %s\n", r.File)
		}
		for _, e := range r.Errors {
			fmt.Fprintf(w, "   ERROR: %s\n", e)
		}
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "   ⚠️  %s\n", warn)
		}
		for _, info := range r.Info {
			fmt.Fprintf(w, "   %s\n", info)
		}
	}
	fmt.Fprintf(w, "\n%d/%d configs valid\n", valid, len(results))
}

func run(ctx context.Context, cmd *cli.Command) error {
	results, err := validateDir(cmd.String("config-dir"))
	if len(results) > 0 {
		printReport(cmd.Root().Writer, results)
	}
	return err
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "check every game configuration in a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: run,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("validation failed")
	}
}
