// Package render draws game snapshots as text.
//
// Terminal implements engine.Actuator: every snapshot the engine emits is
// printed as a score line, the board grid, and, once the game is
// terminated, a win or lose overlay that stays up until Continue is called.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/tile-merge-game/game/engine"
)

const clearScreen = "\033[H\033[2J"

const (
	OverlayWin  = "You win!"
	OverlayLose = "Game over!"
)

// Terminal prints snapshots to a writer
type Terminal struct {
	mu        sync.Mutex
	w         io.Writer
	clear     bool
	lastScore int
	overlay   string
	frames    int
}

// Option configures a Terminal
type Option func(*Terminal)

// WithClearScreen makes every frame start by clearing the terminal
func WithClearScreen(clear bool) Option {
	return func(t *Terminal) {
		t.clear = clear
	}
}

// NewTerminal creates a renderer writing to w
func NewTerminal(w io.Writer, opts ...Option) *Terminal {
	t := &Terminal{w: w}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Actuate draws one frame
func (t *Terminal) Actuate(s *engine.Snapshot) {
	if s == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	if t.clear {
		b.WriteString(clearScreen)
	}

	b.WriteString(scoreLine(s, t.lastScore))
	b.WriteString("\n")
	b.WriteString(engine.RenderGrid(s))

	if merges := mergedTiles(s); len(merges) > 0 {
		b.WriteString("Merged: " + strings.Join(merges, ", ") + "\n")
	}

	if s.Metadata.Terminated {
		if s.Metadata.Over {
			t.overlay = OverlayLose
		} else {
			t.overlay = OverlayWin
		}
	}
	if t.overlay != "" {
		b.WriteString("\n*** " + t.overlay + " ***\n")
	} else if s.Message != "" {
		b.WriteString(s.Message + "\n")
	}

	if _, err := io.WriteString(t.w, b.String()); err != nil {
		log.Debug().Err(err).Msg("terminal write failed")
	}

	t.lastScore = s.Metadata.Score
	t.frames++
}

// Continue clears the win/lose overlay
func (t *Terminal) Continue() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.overlay = ""
}

// Overlay returns the message currently shown over the board, if any
func (t *Terminal) Overlay() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overlay
}

// Frames returns how many snapshots have been drawn
func (t *Terminal) Frames() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames
}

func scoreLine(s *engine.Snapshot, previous int) string {
	line := fmt.Sprintf("Score: %d", s.Metadata.Score)
	if delta := s.Metadata.Score - previous; delta > 0 {
		line += fmt.Sprintf(" (+%d)", delta)
	}
	line += fmt.Sprintf("  Best: %d  Moves: %d", s.Metadata.BestScore, s.TotalMoves)
	if s.ConfigName != "" {
		line = s.ConfigName + "  " + line
	}
	return line
}

// mergedTiles lists the tiles created by merges in the last move
func mergedTiles(s *engine.Snapshot) []string {
	var out []string
	for _, tile := range s.Tiles {
		if tile.Merged() {
			out = append(out, fmt.Sprintf("%d at (%d,%d)", tile.Value, tile.X, tile.Y))
		}
	}
	return out
}
