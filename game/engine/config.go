package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/tile-merge-game/game/board"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate board
	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridSize)
	}
	cells := config.GridSize * config.GridSize
	if config.StartTiles < 0 || config.StartTiles > cells {
		return fmt.Errorf("config validation: start_tiles must be between 0 and %d, got %d", cells, config.StartTiles)
	}

	// Validate rules
	if !board.ValidValue(config.WinValue) || config.WinValue < MinWinValue {
		return fmt.Errorf("config validation: win_value must be a power of two of at least %d, got %d", MinWinValue, config.WinValue)
	}
	if config.FourProbability < 0 || config.FourProbability > 1 {
		return fmt.Errorf("config validation: four_probability must be between 0 and 1, got %g", config.FourProbability)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.GameOver == "" {
		return fmt.Errorf("config validation: messages.game_over is required")
	}

	return nil
}

// DefaultConfig returns the classic 4x4 game
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:            "Classic",
		Description:     "The classic 4x4 board. Join the numbers and get to the 2048 tile!",
		GridSize:        DefaultGridSize,
		StartTiles:      DefaultStartTiles,
		WinValue:        DefaultWinValue,
		FourProbability: DefaultFourProbability,
		Messages: Messages{
			Welcome:     "Join the numbers and get to the 2048 tile!",
			Victory:     "You win!",
			GameOver:    "Game over!",
			KeepPlaying: "Keep going!",
		},
	}
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	return ParseGameConfig(data)
}

// ParseGameConfig decodes and validates a JSON game configuration
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
