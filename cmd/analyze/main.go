// Command analyze plays batches of random games on each configuration in the
// configs directory and prints how far random play gets: average and best
// score, win rate, average moves and a histogram of the largest tile reached.
// It is a quick way to check whether a new configuration is much harder or
// easier than the classic board.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/exp/rand"

	"github.com/wricardo/tile-merge-game/game/config"
	"github.com/wricardo/tile-merge-game/game/engine"
)

// Stats aggregates the outcome of many games on one configuration
type Stats struct {
	ConfigID   string
	Name       string
	GridSize   int
	WinValue   int
	Games      int
	Wins       int
	TotalScore int
	BestScore  int
	TotalMoves int
	MaxTiles   map[int]int
}

// AverageScore is the mean final score
func (s *Stats) AverageScore() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Games)
}

// AverageMoves is the mean number of accepted moves per game
func (s *Stats) AverageMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Games)
}

// WinRate is the fraction of games that reached the win tile
func (s *Stats) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// playRandomGame plays uniformly random legal moves until the game ends or
// maxMoves accepted moves have been made
func playRandomGame(cfg *engine.GameConfig, seed uint64, maxMoves int) (*engine.GameEngine, error) {
	e, err := engine.NewEngine(cfg, engine.WithSeed(seed))
	if err != nil {
		return nil, err
	}

	policy := rand.New(rand.NewSource(seed ^ 0x9e3779b97f4a7c15))
	for e.TotalMoves() < maxMoves && !e.IsTerminated() {
		possible := e.GetPossibleMoves()
		if len(possible) == 0 {
			break
		}
		e.Move(possible[policy.Intn(len(possible))])
	}
	return e, nil
}

// simulate plays games random games on cfg with seeds seed, seed+1, ...
func simulate(configID string, cfg *engine.GameConfig, games int, seed uint64, maxMoves int) (*Stats, error) {
	stats := &Stats{
		ConfigID: configID,
		Name:     cfg.Name,
		GridSize: cfg.GridSize,
		WinValue: cfg.WinValue,
		MaxTiles: make(map[int]int),
	}

	for i := 0; i < games; i++ {
		e, err := playRandomGame(cfg, seed+uint64(i), maxMoves)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", configID, err)
		}

		stats.Games++
		stats.TotalScore += e.Score()
		stats.TotalMoves += e.TotalMoves()
		if e.Score() > stats.BestScore {
			stats.BestScore = e.Score()
		}
		if e.IsWon() {
			stats.Wins++
		}
		stats.MaxTiles[e.Board().MaxValue()]++
	}

	return stats, nil
}

func printStats(w io.Writer, s *Stats) {
	fmt.Fprintf(w, "\n=== %s (%s) ===\n", s.Name, s.ConfigID)
	fmt.Fprintf(w, "Grid: %dx%d, Win tile: %d\n", s.GridSize, s.GridSize, s.WinValue)
	fmt.Fprintf(w, "Games: %d, Wins: %d (%.1f%%)\n", s.Games, s.Wins, 100*s.WinRate())
	fmt.Fprintf(w, "Score: avg %.1f, best %d\n", s.AverageScore(), s.BestScore)
	fmt.Fprintf(w, "Moves: avg %.1f\n", s.AverageMoves())

	tiles := make([]int, 0, len(s.MaxTiles))
	for v := range s.MaxTiles {
		tiles = append(tiles, v)
	}
	sort.Ints(tiles)

	fmt.Fprintf(w, "Largest tile reached:\n")
	for _, v := range tiles {
		n := s.MaxTiles[v]
		bar := strings.Repeat("#", (n*40+s.Games-1)/s.Games)
		fmt.Fprintf(w, "  %6d %5d %s\n", v, n, bar)
	}

	if s.Wins == 0 {
		fmt.Fprintf(w, "⚠️  Random play never reached %d\n", s.WinValue)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	configs, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		infos, err := configs.ListConfigs()
		if err != nil {
			return err
		}
		for _, info := range infos {
			ids = append(ids, info.ConfigID)
		}
	}

	games := cmd.Int("games")
	if games <= 0 {
		return fmt.Errorf("--games must be positive, got %d", games)
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		cfg, err := configs.LoadConfig(id)
		if err != nil {
			log.Warn().Err(err).Str("config", id).Msg("skipping config")
			continue
		}

		stats, err := simulate(id, cfg, games, uint64(cmd.Int64("seed")), cmd.Int("max-moves"))
		if err != nil {
			return err
		}
		printStats(cmd.Root().Writer, stats)
	}
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "play random games on each configuration and summarize the results",
		ArgsUsage: "[config-id...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.IntFlag{
				Name:    "games",
				Aliases: []string{"n"},
				Value:   100,
				Usage:   "games to play per configuration",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Value: 1,
				Usage: "seed for the first game; game i uses seed+i",
			},
			&cli.IntFlag{
				Name:  "max-moves",
				Value: 100000,
				Usage: "stop a game after this many accepted moves",
			},
		},
		Action: run,
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("analyze failed")
	}
}
