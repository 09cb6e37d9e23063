// Package config provides configuration management for the tile merge game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board size (grid_size) and the number of tiles placed at the start
//   - The tile value that wins the game (win_value)
//   - The chance that a spawned tile is a 4 instead of a 2
//   - Player-facing messages for the welcome, win and game over states
//
// Available Configurations:
//   - classic: 4x4 board, win at 2048
//   - mini: 3x3 board for short games
//   - big: 5x5 board
//   - marathon: 6x6 board, win at 4096
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("mini")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
