package service

import (
	"time"

	"github.com/wricardo/tile-merge-game/game/board"
	"github.com/wricardo/tile-merge-game/game/engine"
)

// Event types reported in move results
const (
	EventMove     = "move"
	EventNoMove   = "no_move"
	EventMerge    = "merge"
	EventSpawn    = "spawn"
	EventWon      = "won"
	EventGameOver = "game_over"
	EventRestart  = "restart"
	EventContinue = "continue"
)

// Stop reason codes for bulk moves
const (
	StopGameOver   = "game_over"
	StopWon        = "won"
	StopTerminated = "terminated"
	StopInvalid    = "invalid_direction"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Snapshot       *engine.Snapshot   `json:"snapshot"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool             `json:"success"`
	Direction   string           `json:"direction"`
	Snapshot    *engine.Snapshot `json:"snapshot"`
	Message     string           `json:"message"`
	Events      []GameEvent      `json:"events,omitempty"`
	ScoreGained int              `json:"score_gained"`
	Merges      int              `json:"merges"`
	Spawned     *board.Tile      `json:"spawned,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	RequestedMoves int    `json:"requested_moves"`
	MovesExecuted  int    `json:"moves_executed"`
	MovesApplied   int    `json:"moves_applied"`
	Success        bool   `json:"success"`
	StoppedReason  string `json:"stopped_reason,omitempty"`
	StopReasonCode string `json:"stop_reason_code,omitempty"` // game_over|won|terminated|invalid_direction
	StoppedOnMove  int    `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool   `json:"truncated,omitempty"`
	Limit          int    `json:"limit,omitempty"`

	// Start/end snapshot
	StartScore int `json:"start_score"`
	EndScore   int `json:"end_score"`
	ScoreDelta int `json:"score_delta"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	Snapshot      *engine.Snapshot `json:"snapshot"`
	Events        []GameEvent      `json:"events"`
	Message       string           `json:"message,omitempty"`
	PossibleMoves []string         `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx         int    `json:"idx"`
	Dir         string `json:"dir"`
	Moved       bool   `json:"moved"`
	ScoreBefore int    `json:"score_before"`
	ScoreAfter  int    `json:"score_after"`
	Merges      int    `json:"merges,omitempty"`
	MaxTile     int    `json:"max_tile"`
	Won         bool   `json:"won,omitempty"`
	Over        bool   `json:"over,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // move, no_move, merge, spawn, won, game_over, restart, continue
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  *board.Position `json:"position,omitempty"`
	Value     int             `json:"value,omitempty"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	StartTiles  int    `json:"start_tiles"`
	WinValue    int    `json:"win_value"`
}
