package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/tile-merge-game/game/board"
)

const (
	// Validation constants
	MinGridSize  = 2
	MaxGridSize  = 8
	MinWinValue  = 8
	MaxBulkMoves = 50

	DefaultGridSize        = 4
	DefaultStartTiles      = 2
	DefaultWinValue        = 2048
	DefaultFourProbability = 0.1
	WebSocketBufferSize    = 256
)

var (
	// ErrInvalidDirection is returned when a direction string cannot be parsed
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidState is returned when a persisted state is inconsistent
	ErrInvalidState = errors.New("invalid game state")
)

// Direction is one of the four move directions. The numeric values are part of
// the external interface: 0=up, 1=right, 2=down, 3=left.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// AllDirections lists the directions in numeric order
var AllDirections = []Direction{Up, Right, Down, Left}

var directionVectors = map[Direction]board.Position{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

var directionNames = map[Direction]string{
	Up:    "up",
	Right: "right",
	Down:  "down",
	Left:  "left",
}

// Vector returns the unit step for the direction
func (d Direction) Vector() board.Position {
	return directionVectors[d]
}

// Valid reports whether d is one of the four directions
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts anything ParseDirection accepts
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection normalizes user input into a Direction. It accepts direction
// names, numeric codes 0-3, WASD and vim (hjkl) keys, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "0", "w", "k":
		return Up, nil
	case "right", "1", "d", "l":
		return Right, nil
	case "down", "2", "s", "j":
		return Down, nil
	case "left", "3", "a", "h":
		return Left, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	GridSize        int      `json:"grid_size"`
	StartTiles      int      `json:"start_tiles"`
	WinValue        int      `json:"win_value"`
	FourProbability float64  `json:"four_probability"`
	Messages        Messages `json:"messages"`
}

// Messages are the player-facing texts attached to state transitions
type Messages struct {
	Welcome     string `json:"welcome"`
	Victory     string `json:"victory"`
	GameOver    string `json:"game_over"`
	KeepPlaying string `json:"keep_playing"`
}

// Metadata accompanies every snapshot handed to an Actuator
type Metadata struct {
	Score      int  `json:"score"`
	Over       bool `json:"over"`
	Won        bool `json:"won"`
	BestScore  int  `json:"best_score"`
	Terminated bool `json:"terminated"`
}

// Snapshot is the renderer's view of the board after a command
type Snapshot struct {
	Size       int          `json:"size"`
	Tiles      []board.Tile `json:"tiles"`
	Grid       [][]int      `json:"grid"`
	Metadata   Metadata     `json:"metadata"`
	Message    string       `json:"message,omitempty"`
	TotalMoves int          `json:"total_moves"`
	ConfigName string       `json:"config_name,omitempty"`
}

// GameState is the serializable form of an engine, used for persistence
type GameState struct {
	Size        int          `json:"size"`
	Tiles       []board.Tile `json:"tiles"`
	Score       int          `json:"score"`
	Over        bool         `json:"over"`
	Won         bool         `json:"won"`
	KeepPlaying bool         `json:"keep_playing"`
	NextTileID  int          `json:"next_tile_id"`
	TotalMoves  int          `json:"total_moves"`
	ConfigName  string       `json:"config_name"`
	Message     string       `json:"message"`
}

// MoveSummary describes the most recent accepted move
type MoveSummary struct {
	Direction   Direction    `json:"direction"`
	Moved       bool         `json:"moved"`
	ScoreGained int          `json:"score_gained"`
	Merges      []board.Tile `json:"merges,omitempty"`
	Spawned     *board.Tile  `json:"spawned,omitempty"`
	Won         bool         `json:"won"`
	Over        bool         `json:"over"`
}
