// Command play runs a tile merge game in the terminal. Commands are read one
// line at a time: a direction (w/a/s/d, h/j/k/l, arrow keys or the full
// name, several keys per line allowed), r to restart, c to keep playing
// after a win and q to quit. Best scores are kept per configuration in the
// scores file.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/tile-merge-game/game/config"
	"github.com/wricardo/tile-merge-game/game/engine"
	"github.com/wricardo/tile-merge-game/game/render"
	"github.com/wricardo/tile-merge-game/game/score"
)

const controls = "Controls: w/a/s/d, h/j/k/l or arrows to move, r=Restart, c=Continue, q=Quit"

var arrowKeys = map[string]engine.Direction{
	"\x1b[a": engine.Up,
	"\x1b[b": engine.Down,
	"\x1b[c": engine.Right,
	"\x1b[d": engine.Left,
}

// parseMoves turns one input line into the moves it names
func parseMoves(input string) ([]engine.Direction, error) {
	if dir, err := engine.ParseDirection(input); err == nil {
		return []engine.Direction{dir}, nil
	}

	var moves []engine.Direction
	for len(input) > 0 {
		if len(input) >= 3 {
			if dir, ok := arrowKeys[input[:3]]; ok {
				moves = append(moves, dir)
				input = input[3:]
				continue
			}
		}
		dir, err := engine.ParseDirection(input[:1])
		if err != nil || input[0] >= '0' && input[0] <= '9' {
			return nil, fmt.Errorf("%w: %q", engine.ErrInvalidDirection, input[:1])
		}
		moves = append(moves, dir)
		input = input[1:]
	}
	return moves, nil
}

// handleInput applies one line of input. It returns true when the player quits.
func handleInput(e *engine.GameEngine, w io.Writer, input string) bool {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "":
		return false
	case "q", "quit", "exit":
		fmt.Fprintf(w, "Bye. Final score: %d, best: %d\n", e.Score(), e.BestScore())
		return true
	case "r", "restart":
		e.Restart()
		return false
	case "c", "continue":
		if e.IsWon() && !e.KeepPlaying() {
			e.ContinuePlaying()
			fmt.Fprintln(w, "Continuing past the win tile.")
		} else {
			fmt.Fprintln(w, "Nothing to continue.")
		}
		return false
	case "?", "help":
		fmt.Fprintln(w, controls)
		return false
	}

	moves, err := parseMoves(input)
	if err != nil {
		fmt.Fprintln(w, "Invalid input. Use w/a/s/d, r, c or q.")
		return false
	}

	for _, dir := range moves {
		if e.IsTerminated() {
			if e.IsOver() {
				fmt.Fprintln(w, "The game is over: r to restart.")
			} else {
				fmt.Fprintln(w, "You won: c to keep playing, r to restart.")
			}
			break
		}
		if !e.Move(dir) {
			fmt.Fprintf(w, "Cannot move %s.\n", dir)
		}
	}
	return false
}

// play reads commands from r until quit, end of input or cancellation
func play(ctx context.Context, r io.Reader, w io.Writer, e *engine.GameEngine) error {
	fmt.Fprintln(w, controls)

	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		if handleInput(e, w, scanner.Text()) {
			return nil
		}
	}
}

// loadConfig returns the named configuration, resized when size is set
func loadConfig(dir, id string, size int) (*engine.GameConfig, error) {
	configs, err := config.NewManager(dir)
	if err != nil {
		return nil, err
	}
	loaded, err := configs.LoadConfig(id)
	if err != nil {
		return nil, err
	}

	cfg := *loaded
	if size > 0 && size != cfg.GridSize {
		cfg.GridSize = size
		cfg.Name = fmt.Sprintf("%s %dx%d", cfg.Name, size, size)
		if err := engine.ValidateGameConfig(&cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := loadConfig(cmd.String("config-dir"), cmd.String("config"), cmd.Int("size"))
	if err != nil {
		return err
	}

	scores, err := score.NewFileStore(cmd.String("scores-file"))
	if err != nil {
		return err
	}

	root := cmd.Root()
	term := render.NewTerminal(root.Writer, render.WithClearScreen(cmd.Bool("clear")))
	opts := []engine.Option{
		engine.WithActuator(term),
		engine.WithScoreStore(scores.For(cfg.Name)),
	}
	if seed := cmd.Int64("seed"); seed != 0 {
		opts = append(opts, engine.WithSeed(uint64(seed)))
	}

	e, err := engine.NewEngine(cfg, opts...)
	if err != nil {
		return err
	}

	log.Debug().Str("config", cfg.Name).Int("size", cfg.GridSize).Msg("game started")
	return play(ctx, root.Reader, root.Writer, e)
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "play the tile merge game in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "classic",
				Usage:   "configuration to play",
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "override the configuration's grid size",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed for tile spawns, 0 picks one from the clock",
			},
			&cli.StringFlag{
				Name:    "scores-file",
				Value:   "scores.json",
				Usage:   "file holding best scores",
				Sources: cli.EnvVars("SCORES_FILE"),
			},
			&cli.BoolFlag{
				Name:  "clear",
				Value: true,
				Usage: "clear the screen before drawing each frame",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log debug output to stderr",
			},
		},
		Action: run,
	}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("play failed")
	}
}
